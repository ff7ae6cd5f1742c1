package http

import (
	"net/http"

	"fertilitydash/internal/platform/net/http/bind"
)

// JSONHandler binds and validates a T from the body, calls fn and envelopes
// the result. Bind failures never reach fn. opts default to bind.Strict
func JSONHandler[T any](fn func(*http.Request, T) (any, error), opts ...bind.JSONOptions) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r, opts...)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		if err != nil {
			return Error(err)
		}
		return OK(out)
	})
}
