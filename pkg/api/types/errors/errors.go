// Package errors declares the wire shape of every error response.
package errors

import (
	"encoding/json"
	"fmt"
)

// error kind names, surfaced as the "exception" field.
const (
	KindNotFound   = "NotFoundException"
	KindConflict   = "ConflictException"
	KindValidation = "RequestValidationError"
	KindInternal   = "InternalServerError"
)

// Message is the body of every non-2xx response:
//
//	{"exception": "<kind>", "detail": <string or [FieldViolation]>}
//
// Detail is a string for most kinds, and a list of FieldViolation
// for KindValidation.
type Message struct {
	Exception string `json:"exception"`
	Detail    any    `json:"detail"`
}

func (m *Message) UnmarshalJSON(bytes []byte) error {
	f := new(struct {
		Exception *string         `json:"exception"`
		Detail    json.RawMessage `json:"detail"`
	})
	if err := json.Unmarshal(bytes, f); err != nil {
		return err
	}

	if f.Exception == nil {
		return fmt.Errorf(`required field missing: "exception"`)
	}
	m.Exception = *f.Exception

	if f.Detail == nil {
		return nil
	}

	// try the structured form first, then fall back to a plain string
	violations := []FieldViolation{}
	if err := json.Unmarshal(f.Detail, &violations); err == nil {
		m.Detail = violations
		return nil
	}
	var detail string
	if err := json.Unmarshal(f.Detail, &detail); err != nil {
		return err
	}
	m.Detail = detail
	return nil
}

func (m Message) Error() string {
	return fmt.Sprintf("%s: %v", m.Exception, m.Detail)
}

// FieldViolation names one request field failing validation,
// with a machine-checkable reason.
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (v FieldViolation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Reason)
}

// reusable reason texts. Tests and clients match on these.
const (
	ReasonNotInteger  = "value is not a valid integer"
	ReasonNonNegative = "value must be >= 0"
	ReasonPositive    = "value must be >= 1"
	ReasonRequired    = "field required"
)

func ReasonMaxLength(limit int) string {
	return fmt.Sprintf("value must be at most %d characters", limit)
}

func ReasonMax(limit int) string {
	return fmt.Sprintf("value must be at most %d", limit)
}
