// Package bind decodes JSON request bodies and checks them against their
// validate tags. Failures come back as perr JSON or Validation errors
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "devstreams/internal/platform/errors"
	ptime "devstreams/internal/platform/time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
)

// DefaultMaxBytes caps a body when Options.MaxBytes is zero
const DefaultMaxBytes = 1 << 20

// Options tunes JSON
type Options struct {
	MaxBytes int64
	// Strict rejects fields the target type does not declare
	Strict bool
}

var (
	once  sync.Once
	check *validator.Validate
	trans ut.Translator
)

func setup() {
	once.Do(func() {
		loc := en.New()
		trans, _ = ut.New(loc, loc).GetTranslator("en")

		check = validator.New(validator.WithRequiredStructEnabled())
		check.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			switch name {
			case "-":
				return ""
			case "":
				return f.Name
			}
			return name
		})
		_ = entrans.RegisterDefaultTranslations(check, trans)

		message(check, "max", "{0} must be at most {1} characters")
		_ = check.RegisterValidation("iana_tz", func(fl validator.FieldLevel) bool {
			_, err := ptime.LoadLocation(fl.Field().String())
			return err == nil
		})
		message(check, "iana_tz", "{0} must be an IANA time zone such as Europe/London")
	})
}

// message replaces the translation of tag. {0} is the field, {1} the tag param
func message(v *validator.Validate, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field(), fe.Param())
			return s
		},
	)
}

// Struct validates s. The error names the first failing field by its JSON
// path, e.g. "request.type"
func Struct(s any) error {
	setup()
	err := check.Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "validator misuse")
	}
	fe := ves[0]
	field := fe.Field()
	if _, rest, ok := strings.Cut(fe.Namespace(), "."); ok {
		field = rest
	}
	return perr.WithField(perr.New(perr.ErrorCodeValidation, fe.Translate(trans)), field)
}

// JSON decodes exactly one JSON value from r's body into T and validates it
func JSON[T any](r *http.Request, o Options) (T, error) {
	var v T
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxBytes
	}
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(io.LimitReader(r.Body, o.MaxBytes))
	if o.Strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return v, perr.JSONErrf("empty body")
		}
		return v, perr.Wrap(err, perr.ErrorCodeJSON, "malformed JSON body")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return v, perr.JSONErrf("body holds more than one JSON value")
	}
	if err := Struct(v); err != nil {
		return v, err
	}
	return v, nil
}
