package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind enumerates every failure category the HTTP layer knows how to render.
type Kind int

const (
	KindUnknown Kind = iota
	KindMalformattedID
	KindValidationFailed
	KindDuplicateKey
	KindMalformedToken
	KindTokenExpired
	KindInvalidToken
	KindUnauthorized
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindMalformattedID:
		return "MALFORMATTED_ID"
	case KindValidationFailed:
		return "VALIDATION_FAILED"
	case KindDuplicateKey:
		return "DUPLICATE_KEY"
	case KindMalformedToken:
		return "MALFORMED_TOKEN"
	case KindTokenExpired:
		return "TOKEN_EXPIRED"
	case KindInvalidToken:
		return "INVALID_TOKEN"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindNotFound:
		return "NOT_FOUND"
	default:
		return "UNKNOWN"
	}
}

// Violation is one failed validation rule on one field.
type Violation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// Failure standardizes application errors.
type Failure struct {
	Kind       Kind
	Message    string
	Field      string
	Violations []Violation
	Err        error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %v", f.Message, f.Err)
	}
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// NewFailure constructs a Failure.
func NewFailure(kind Kind, message string, err error) *Failure {
	return &Failure{Kind: kind, Message: message, Err: err}
}

func NewMalformattedID(id string, err error) error {
	return NewFailure(KindMalformattedID, fmt.Sprintf("malformatted id %q", id), err)
}

// NewValidationError keeps message verbatim; it is rendered as the response error text.
func NewValidationError(message string, violations []Violation) error {
	return &Failure{Kind: KindValidationFailed, Message: message, Violations: violations}
}

func NewDuplicateKey(field string, err error) error {
	return &Failure{
		Kind:    KindDuplicateKey,
		Message: fmt.Sprintf("duplicate value for %s", field),
		Field:   field,
		Err:     err,
	}
}

func NewMalformedToken(err error) error {
	return NewFailure(KindMalformedToken, "token missing or invalid", err)
}

func NewTokenExpired(err error) error {
	return NewFailure(KindTokenExpired, "token expired", err)
}

func NewInvalidToken(err error) error {
	return NewFailure(KindInvalidToken, "token invalid", err)
}

func NewUnauthorized(message string) error {
	return NewFailure(KindUnauthorized, message, nil)
}

func NewNotFound(resource string) error {
	return NewFailure(KindNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// ToFailure extracts a Failure from err. Errors that are not Failures come back as KindUnknown.
func ToFailure(err error) *Failure {
	if err == nil {
		return nil
	}
	var failure *Failure
	if errors.As(err, &failure) {
		return failure
	}
	return &Failure{Kind: KindUnknown, Message: "internal server error", Err: err}
}

// KindOf reports the Kind of err.
func KindOf(err error) Kind {
	if f := ToFailure(err); f != nil {
		return f.Kind
	}
	return KindUnknown
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error   string      `json:"error"`
	Details []Violation `json:"details,omitempty"`
}

// Translate maps err to a status and body. handled is false for KindUnknown, which callers
// must hand to the next failure handler unchanged.
func Translate(err error) (status int, body ErrorBody, handled bool) {
	f := ToFailure(err)
	if f == nil {
		return 0, ErrorBody{}, false
	}

	switch f.Kind {
	case KindMalformattedID:
		return http.StatusBadRequest, ErrorBody{Error: "malformatted id"}, true
	case KindValidationFailed:
		return http.StatusBadRequest, ErrorBody{Error: f.Message, Details: f.Violations}, true
	case KindDuplicateKey:
		field := f.Field
		if field == "" {
			field = "username"
		}
		return http.StatusBadRequest, ErrorBody{Error: fmt.Sprintf("expected `%s` to be unique", field)}, true
	case KindMalformedToken:
		return http.StatusBadRequest, ErrorBody{Error: "token missing or invalid"}, true
	case KindTokenExpired:
		return http.StatusUnauthorized, ErrorBody{Error: "token expired"}, true
	case KindInvalidToken:
		return http.StatusUnauthorized, ErrorBody{Error: "token invalid"}, true
	case KindUnauthorized:
		return http.StatusUnauthorized, ErrorBody{Error: f.Message}, true
	case KindNotFound:
		return http.StatusNotFound, ErrorBody{Error: f.Message}, true
	case KindUnknown:
		return 0, ErrorBody{}, false
	}
	return 0, ErrorBody{}, false
}
