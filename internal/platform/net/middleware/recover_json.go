package middleware

import (
	"fmt"
	"net/http"

	perr "fertilitydash/internal/platform/errors"
	"fertilitydash/internal/platform/logger"
	phttp "fertilitydash/internal/platform/net/http"

	"github.com/pkg/errors"
)

// RecoverJSON turns a handler panic into the standard 500 envelope with
// ErrorCodePanic and logs it with a stack. http.ErrAbortHandler is re-raised
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			cause, ok := v.(error)
			if !ok {
				cause = fmt.Errorf("%v", v)
			}
			logger.C(r.Context()).Error().
				Stack().
				Err(errors.WithStack(cause)).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("panic recovered")

			phttp.RespondError(w, r, perr.PanicErrf("internal error"))
		}()
		next.ServeHTTP(w, r)
	})
}
