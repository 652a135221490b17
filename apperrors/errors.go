// Package apperrors defines the error kinds surfaced by the census API.
// Handlers translate a Kind into an HTTP status; everything below the
// handler layer returns *Error values or plain wrapped errors.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindEmptyMatch
	KindNotFound
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindEmptyMatch:
		return "empty_match"
	case KindNotFound:
		return "not_found"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error codes returned to clients.
const (
	CodeBadRequest   = "BAD_REQUEST"
	CodeMissingField = "MISSING_REQUIRED_FIELD"
	CodeInvalidField = "INVALID_FIELD"
	CodeEmptyMatch   = "EMPTY_SUBDISTRICT_MATCH"
	CodeNotFound     = "NOT_FOUND"
	CodeDataSource   = "DATA_SOURCE_FAILURE"
	CodeInternal     = "INTERNAL_ERROR"
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details map[string]interface{}
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches on kind and code so callers can compare against a template
// such as New(KindEmptyMatch, CodeEmptyMatch, "").
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind && e.Code == t.Code
	}
	return false
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Wrap(kind Kind, code, message string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Cause: cause}
}

// WithDetails returns a copy of the error carrying details.
func (e *Error) WithDetails(details map[string]interface{}) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

// MissingField reports that one or more required request fields are absent.
func MissingField(fields ...string) *Error {
	return New(KindValidation, CodeMissingField,
		"missing required field: "+strings.Join(fields, ", ")).
		WithDetails(map[string]interface{}{"fields": fields})
}

// InvalidField reports a present but unusable request field.
func InvalidField(field, reason string) *Error {
	return New(KindValidation, CodeInvalidField, field+": "+reason).
		WithDetails(map[string]interface{}{"field": field})
}

// EmptyMatch reports that the sub-district set has no 2011 population to
// distribute, which would make the village share undefined.
func EmptyMatch(codes []int64) *Error {
	return New(KindEmptyMatch, CodeEmptyMatch,
		"no census population found for the requested sub-districts").
		WithDetails(map[string]interface{}{"subdistrict_codes": codes})
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsEmptyMatch(err error) bool { return KindOf(err) == KindEmptyMatch }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }

// HTTPStatus maps an error to the status code the API responds with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindEmptyMatch:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
