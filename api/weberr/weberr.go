// Package weberr decorates errors with what the HTTP layer needs to answer
// them: a response body and status, and extra log fields.
package weberr

import "errors"

type Opt func(error) error

// Wrap applies opts to err in order; the last option ends up outermost.
func Wrap(err error, opts ...Opt) error {
	for _, opt := range opts {
		err = opt(err)
	}
	return err
}

func WithResponse(body any, status int) Opt {
	return func(err error) error {
		return &responseError{error: err, body: body, status: status}
	}
}

func WithFields(fields map[string]any) Opt {
	return func(err error) error {
		return &fieldsError{error: err, fields: fields}
	}
}

// Response returns the body and status attached anywhere in err's chain.
func Response(err error) (body any, status int, ok bool) {
	var re *responseError
	if errors.As(err, &re) {
		return re.body, re.status, true
	}
	return nil, 0, false
}

// Fields returns the log fields attached anywhere in err's chain.
func Fields(err error) (fields map[string]any, ok bool) {
	var fe *fieldsError
	if errors.As(err, &fe) {
		return fe.fields, true
	}
	return nil, false
}

type responseError struct {
	error
	body   any
	status int
}

func (e *responseError) Unwrap() error { return e.error }

type fieldsError struct {
	error
	fields map[string]any
}

func (e *fieldsError) Unwrap() error { return e.error }
