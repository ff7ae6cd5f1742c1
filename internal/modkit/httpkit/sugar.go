package httpkit

import (
	"net/http"

	phttp "fertilitydash/internal/platform/net/http"
	"fertilitydash/internal/platform/net/http/bind"
)

// Get mounts a body-less handler under GET; the result is enveloped by Call
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// Post mounts a body-less handler under POST
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, Call(h))
}

// PostJSON mounts a bound and validated JSON handler under POST. An empty
// body binds as the zero T
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h, bind.Optional))
}
