// Package httpkit is the HTTP surface modules build against: the router,
// handler adapters, the common middleware stack and api versioning
package httpkit

import (
	"net/http"

	phttp "fertilitydash/internal/platform/net/http"
)

type (
	// Envelope is the JSON body every endpoint answers with
	Envelope = phttp.Envelope

	// Response is a return-style response
	Response = phttp.Response

	// Router is the platform router
	Router = phttp.Router
)

// Attachment answers with a file download instead of an envelope
func Attachment(filename, contentType string, body []byte) Response {
	return phttp.Attachment(filename, contentType, body)
}

// Call adapts a body-less handler. A returned Response is written as is,
// any other value becomes the data of a 200 envelope
func Call(fn func(*http.Request) (any, error)) phttp.Handler {
	return phttp.Handle(func(r *http.Request) phttp.Response {
		out, err := fn(r)
		switch {
		case err != nil:
			return phttp.Error(err)
		case out == nil:
			return phttp.OK(nil)
		}
		if resp, ok := out.(phttp.Response); ok {
			return resp
		}
		return phttp.OK(out)
	})
}
