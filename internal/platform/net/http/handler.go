package http

import (
	"net/http"

	"devstreams/internal/platform/net/http/bind"
)

// Call adapts fn to a Handler that answers in the envelope
func Call(fn func(*http.Request) (any, error)) Handler {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := fn(r)
		if err != nil {
			RespondError(w, r, err)
			return
		}
		Respond(w, r, out)
	}
}

// Bound adapts fn to a Handler that first decodes and validates a T body.
// Unknown fields are rejected
func Bound[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Call(func(r *http.Request) (any, error) {
		in, err := bind.JSON[T](r, bind.Options{Strict: true})
		if err != nil {
			return nil, err
		}
		return fn(r, in)
	})
}
