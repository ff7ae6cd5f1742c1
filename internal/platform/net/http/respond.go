// Package http writes every JSON response in one envelope shape and adapts
// return-style handlers to net/http
package http

import (
	"encoding/json"
	"fmt"
	stdhttp "net/http"
	"strconv"

	perr "fertilitydash/internal/platform/errors"
	pnet "fertilitydash/internal/platform/net"
)

// Envelope wraps data and errors alike. Error fields are empty on success,
// Data is empty on failure
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	Retryable  bool           `json:"retryable,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

func newEnvelope(r *stdhttp.Request, status int) Envelope {
	return Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		RequestID:  pnet.RequestID(r.Context()),
	}
}

func dataEnvelope(r *stdhttp.Request, status int, data any) Envelope {
	env := newEnvelope(r, status)
	env.Data = data
	return env
}

func errorEnvelope(r *stdhttp.Request, err error) Envelope {
	env := newEnvelope(r, perr.HTTPStatus(err))
	wr := perr.WireFrom(err)
	env.Code = wr.Code
	env.Error = wr.Message
	env.Field = wr.Field
	env.Retryable = perr.Retryable(err)
	return env
}

// JSON writes v with status as application/json
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError writes err as an error envelope. Middleware uses it where no
// Response is in play
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	env := errorEnvelope(r, err)
	JSON(w, env.StatusCode, env)
}

// Response is what return-style handlers produce. A Body that is an error
// becomes an error envelope regardless of Status
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header

	// raw bypasses the envelope
	raw []byte
}

// OK is a 200 with data
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Error maps err to its status and envelope
func Error(err error) Response { return Response{Body: err} }

// Attachment is a 200 download of body under filename. Failures before the
// download still come back as JSON envelopes
func Attachment(filename, contentType string, body []byte) Response {
	h := stdhttp.Header{}
	h.Set("Content-Type", contentType)
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if body == nil {
		body = []byte{}
	}
	return Response{Status: stdhttp.StatusOK, Header: h, raw: body}
}

// Handle adapts a return-style handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).writeTo(w, r)
	}
}

func (resp Response) writeTo(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}

	if err, ok := resp.Body.(error); ok && err != nil {
		RespondError(w, r, err)
		return
	}

	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	switch {
	case status == stdhttp.StatusNoContent:
		w.WriteHeader(status)
	case resp.raw != nil:
		w.Header().Set("Content-Length", strconv.Itoa(len(resp.raw)))
		w.WriteHeader(status)
		_, _ = w.Write(resp.raw)
	default:
		JSON(w, status, dataEnvelope(r, status, resp.Body))
	}
}
