// Package bind decodes and validates JSON request bodies
package bind

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"unicode"

	perr "fertilitydash/internal/platform/errors"
	"fertilitydash/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldLevel aliases validator.FieldLevel for custom tags
type FieldLevel = validator.FieldLevel

// ValidatorSvc holds the shared validator and its english translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Get returns the validator, building it on first use
func Get() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		trans, _ := ut.New(enLoc, enLoc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		translate(v, trans, "min", "{0} must be at least {1}")
		translate(v, trans, "max", "{0} must be at most {1}")

		_ = v.RegisterValidation("country", countryName)
		translate(v, trans, "country", "{0} must be a country name")

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// RegisterValidation adds or replaces a custom tag
func RegisterValidation(tag string, fn validator.Func) error {
	return Get().Validator.RegisterValidation(tag, fn)
}

// jsonName reports fields by their json name so messages match the wire
func jsonName(fld reflect.StructField) string {
	tag, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if tag == "" || tag == "-" {
		return fld.Name
	}
	return tag
}

// countryName accepts a display name: not blank, no surrounding space, no
// control characters. Names like "Côte d'Ivoire" or "Korea, Rep." pass
func countryName(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" || s != strings.TrimSpace(s) {
		return false
	}
	return strings.IndexFunc(s, unicode.IsControl) < 0
}

// translate registers a one-line message; {0} is the field, {1} the param
func translate(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(u ut.Translator) error { return u.Add(tag, text, true) },
		func(u ut.Translator, fe validator.FieldError) string {
			msg, _ := u.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// JSONOptions controls parsing. The zero value reads an unlimited body and
// accepts unknown fields; ParseJSON without options uses Strict
type JSONOptions struct {
	MaxBytes        int64
	DisallowUnknown bool
	AllowEmptyBody  bool
}

var (
	// Strict caps bodies at 64KiB and rejects unknown fields
	Strict = JSONOptions{MaxBytes: 64 << 10, DisallowUnknown: true}
	// Optional is Strict where an empty body decodes to the zero T
	Optional = JSONOptions{MaxBytes: 64 << 10, DisallowUnknown: true, AllowEmptyBody: true}
)

// ParseJSON decodes one JSON value into T and validates it.
// Decode failures map to ErrorCodeJSON, rule failures to ErrorCodeValidation
// with the offending field attached. GET and HEAD may omit the body
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var dst T
	o := Strict
	if len(opts) > 0 {
		o = opts[0]
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.Get().Warn().Err(err).Msg("request body close failed")
		}
	}()

	body, empty, err := peek(r.Body)
	switch {
	case err != nil:
		return dst, perr.Wrap(err, perr.ErrorCodeJSON, "request body unreadable")
	case empty && o.AllowEmptyBody:
		return dst, nil
	case empty && (r.Method == http.MethodGet || r.Method == http.MethodHead):
		return dst, nil
	case empty:
		return dst, perr.JSONErrf("empty body")
	}

	if err := decode(body, &dst, o); err != nil {
		var zero T
		return zero, err
	}
	if err := check(dst); err != nil {
		var zero T
		return zero, err
	}
	return dst, nil
}

func decode(body io.Reader, dst any, o JSONOptions) error {
	if o.MaxBytes > 0 {
		body = io.LimitReader(body, o.MaxBytes)
	}
	dec := json.NewDecoder(body)
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(dst); err != nil {
		return perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return perr.JSONErrf("unexpected trailing data")
	}
	return nil
}

func check(v any) error {
	err := Get().Validator.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Get().Error().Err(inv).Msg("validator misuse")
		return perr.JSONErrf("validation error")
	}
	field, msg := ValidationFieldAndMessage(err)
	return perr.WithField(perr.New(perr.ErrorCodeValidation, msg), field)
}

// peek looks ahead one byte so an empty body can be told apart from a bad
// one. Only io.EOF counts as empty; a reader that keeps returning nothing
// fails with io.ErrNoProgress
func peek(rc io.Reader) (io.Reader, bool, error) {
	br := bufio.NewReader(rc)
	if _, err := br.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return br, true, nil
		}
		return nil, false, err
	}
	return br, false, nil
}

// ValidationFieldAndMessage returns the first failing field and its message
func ValidationFieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), verrs[0].Translate(Get().Translator)
	}
	return "", err.Error()
}
