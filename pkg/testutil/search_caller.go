package testutil

import "errors"

type MockSearchCaller struct {
	IndexFunc  func(document, id string, data any) error
	DeleteFunc func(document, id string) error
	SearchFunc func(document, query string, offset, limit int) ([]string, error)
}

func (c *MockSearchCaller) Index(document, id string, data any) error {
	if c.IndexFunc != nil {
		return c.IndexFunc(document, id, data)
	}

	return nil
}

func (c *MockSearchCaller) Delete(document, id string) error {
	if c.DeleteFunc != nil {
		return c.DeleteFunc(document, id)
	}

	return nil
}

func (c *MockSearchCaller) Search(document, query string, offset, limit int) ([]string, error) {
	if c.SearchFunc != nil {
		return c.SearchFunc(document, query, offset, limit)
	}

	return nil, errors.New("not implemented")
}

func (c *MockSearchCaller) Close() {}
