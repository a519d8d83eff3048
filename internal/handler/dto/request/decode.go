package request

import (
	"bytes"
	"encoding/json"
)

// InvalidFieldError reports a body field whose value could not be decoded.
type InvalidFieldError struct {
	Field string
	Err   error
}

func (e *InvalidFieldError) Error() string {
	return e.Field + " has an invalid value."
}

func (e *InvalidFieldError) Unwrap() error {
	return e.Err
}

// decodeField treats an absent or null field as not set.
func decodeField[T any](name string, raw json.RawMessage) (*T, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, &InvalidFieldError{Field: name, Err: err}
	}
	return &v, nil
}
