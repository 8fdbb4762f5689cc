package dispatch

import "encoding/json"

// ErrorEnvelope is the uniform shape of an upstream business error.
type ErrorEnvelope struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// Result holds either a success value or an ErrorEnvelope, never both.
type Result[T any] struct {
	value    T
	envelope *ErrorEnvelope
}

func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

func Err[T any](envelope ErrorEnvelope) Result[T] {
	return Result[T]{envelope: &envelope}
}

func (r Result[T]) IsErr() bool {
	return r.envelope != nil
}

// Value returns the success value and true, or the zero value and false
// for an error result.
func (r Result[T]) Value() (T, bool) {
	if r.envelope != nil {
		var zero T
		return zero, false
	}
	return r.value, true
}

func (r Result[T]) Envelope() (ErrorEnvelope, bool) {
	if r.envelope == nil {
		return ErrorEnvelope{}, false
	}
	return *r.envelope, true
}
