package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// maxBodyBytes caps how much of a request body is read.
const maxBodyBytes = 1 << 20

// ErrInvalidBody is returned when a request body is not a JSON object.
var ErrInvalidBody = errors.New("invalid request body")

// Global validator instance for reuse
var validate = validator.New()

// DecodeJSONObject reads the request body as a JSON object and returns its
// fields undecoded, so callers can tell absent fields from null ones.
// An empty body is treated as an empty object.
func DecodeJSONObject(r *http.Request) (map[string]json.RawMessage, error) {
	if r.Body == nil {
		return map[string]json.RawMessage{}, nil
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]json.RawMessage{}, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if fields == nil {
		// The body was the JSON literal null.
		return nil, fmt.Errorf("%w: body must be a JSON object", ErrInvalidBody)
	}
	return fields, nil
}

// StringField decodes a raw JSON value that must be a string.
func StringField(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	// json.Unmarshal leaves s untouched for null
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", false
	}
	return s, true
}

// ValidateVar validates a single value against validator tags.
func ValidateVar(value interface{}, tag string) error {
	return validate.Var(value, tag)
}
