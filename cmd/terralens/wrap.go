package main

import (
	"errors"
	"fmt"

	"github.com/terralens/terralens/internal/scenes"
)

// callAndWrap runs a remote-client operation and converts known API
// failures into single-line user-facing errors. Each failure is
// translated exactly once; anything outside the API error taxonomy
// propagates untouched.
func callAndWrap(op func() (*scenes.Response, error)) (*scenes.Response, error) {
	resp, err := op()
	if err != nil {
		return nil, wrapClientError(err)
	}
	return resp, nil
}

// wrapClientError maps domain failures to their user-facing form:
// known kinds get a "<Kind>: <message>" line, unexpected API responses
// get an "Unexpected response:" line.
func wrapClientError(err error) error {
	var (
		badQuery   *scenes.BadQuery
		invalidKey *scenes.InvalidAPIKey
		missing    *scenes.MissingResource
		apiErr     *scenes.APIError
	)

	switch {
	case errors.As(err, &badQuery):
		return fmt.Errorf("BadQuery: %s", badQuery.Error())
	case errors.As(err, &invalidKey):
		return fmt.Errorf("InvalidAPIKey: %s", invalidKey.Error())
	case errors.As(err, &missing):
		return fmt.Errorf("MissingResource: %s", missing.Error())
	case errors.As(err, &apiErr):
		return fmt.Errorf("Unexpected response: %s", apiErr.Error())
	default:
		return err
	}
}
