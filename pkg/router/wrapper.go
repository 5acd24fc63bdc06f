package router

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/parnaso/backend/pkg/errorx"
	"github.com/parnaso/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	r *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	befores := r.befores
	afters := r.afters
	closers := r.closers

	return func(w http.ResponseWriter, req *http.Request) {
		ctx := xcontext.WithRequestState(r.baseCtx)
		ctx = xcontext.WithHTTPRequest(ctx, req)
		ctx = xcontext.WithHTTPWriter(ctx, w)

		defer func() {
			for _, closer := range closers {
				closer(ctx)
			}
		}()

		if req.Method != method {
			writeError(ctx, errorx.New(errorx.BadRequest, "Not supported method %s", req.Method))
			return
		}

		var request Request
		var err error
		switch method {
		case http.MethodGet:
			err = bindQuery(req, &request)
		case http.MethodPost:
			// Upload handlers read the multipart form from the raw request.
			if !strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/form-data") {
				err = json.NewDecoder(req.Body).Decode(&request)
			}
		}

		if err != nil {
			writeError(ctx, errorx.New(errorx.BadRequest, "Cannot parse the request"))
			return
		}

		for _, m := range befores {
			newCtx, merr := m(ctx)
			if merr != nil {
				xcontext.SetError(ctx, merr)
				writeError(ctx, merr)
				return
			}

			if newCtx != nil {
				ctx = newCtx
			}
		}

		resp, err := handler(ctx, &request)
		if err != nil {
			xcontext.SetError(ctx, err)
			writeError(ctx, err)
			return
		}

		xcontext.SetResponse(ctx, resp)
		for _, m := range afters {
			newCtx, merr := m(ctx)
			if merr != nil {
				xcontext.SetError(ctx, merr)
				writeError(ctx, merr)
				return
			}

			if newCtx != nil {
				ctx = newCtx
			}
		}

		writeResponse(ctx, resp)
	}
}

// bindQuery decodes url query parameters into the request struct by its json
// tags. Values are weakly typed so numeric and boolean fields parse from their
// string form.
func bindQuery(req *http.Request, out any) error {
	values := map[string]string{}
	for key, value := range req.URL.Query() {
		if len(value) > 0 {
			values[key] = value[0]
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(values)
}
