package http

import (
	"net/http"

	"helpdesk/internal/platform/net/http/bind"
)

// JSONHandler decodes the request body into T and adapts fn to a Handler
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		return outcome(fn(r, in))
	})
}

// JSONHandlerNoBody adapts a body-less fn to a Handler
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		return outcome(fn(r))
	})
}

// outcome maps a handler result to a Response
// handlers may return a Response directly to control status and headers
func outcome(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}
