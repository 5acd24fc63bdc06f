package model

// UploadImageRequest is empty because the image comes in as a multipart form,
// read from the raw http request.
type UploadImageRequest struct{}

type UploadImageResponse struct {
	URL string `json:"url"`
}
