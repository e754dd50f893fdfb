// Package errors defines common error types used throughout the Facebook
// Graph API client.
package errors

import (
	"encoding/json"
	"fmt"
)

// ConfigError indicates a problem with the client configuration.
type ConfigError struct {
	// Field contains the name of the configuration field that caused the error
	Field string
	// Message contains the detailed error message
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

// StateError indicates an operation was attempted that the client is not
// configured to perform, such as a write without an access token.
type StateError struct {
	// Operation is the name of the operation that was attempted
	Operation string
	// Message contains the detailed error message
	Message string
}

func (e *StateError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("state error during %s: %s", e.Operation, e.Message)
	}
	return fmt.Sprintf("state error: %s", e.Message)
}

// RequestError indicates the HTTP call itself failed before a usable
// response was received, e.g. a network or timeout error.
type RequestError struct {
	// Operation is the name of the API operation that failed
	Operation string
	// URL is the URL that was being accessed
	URL string
	// Err contains the underlying error
	Err error
}

func (e *RequestError) Error() string {
	msg := ""
	if e.Err != nil {
		msg = e.Err.Error()
	}

	if e.Operation != "" && e.URL != "" {
		return fmt.Sprintf("request error during %s to %s: %s", e.Operation, e.URL, msg)
	} else if e.Operation != "" {
		return fmt.Sprintf("request error during %s: %s", e.Operation, msg)
	}
	return fmt.Sprintf("request error: %s", msg)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// ErrorDialect identifies which legacy payload shape an APIError message was
// extracted from. Facebook reported errors in three formats over the years;
// the client recognizes all of them.
type ErrorDialect string

const (
	// DialectOAuthDraft10 is the {"error_description": ...} shape.
	DialectOAuthDraft10 ErrorDialect = "oauth-draft-10"
	// DialectOAuthDraft00 is the {"error": {"message": ...}} shape.
	DialectOAuthDraft00 ErrorDialect = "oauth-draft-00"
	// DialectREST is the {"error_msg": ...} shape of the old REST server.
	DialectREST ErrorDialect = "rest"
	// DialectUnstructured means no known shape matched and the message is
	// the stringified payload.
	DialectUnstructured ErrorDialect = "unstructured"
)

// APIError represents an error reported by the Graph API itself, either via
// an HTTP error status or inside the body of an otherwise successful
// response.
type APIError struct {
	// Code is the error code from the payload's "error_code" field, if any
	Code string
	// Message is the extracted error message
	Message string
	// Dialect identifies the payload shape the message came from
	Dialect ErrorDialect
	// Raw contains the original response body
	Raw json.RawMessage
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("graph API error (code %s): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("graph API error: %s", e.Message)
}

// ParseError indicates a response that matched none of the recognized
// shapes: not JSON, not an image, not a token-bearing query string.
type ParseError struct {
	// Operation is the name of the API operation where parsing failed
	Operation string
	// ContentType is the content type the server declared
	ContentType string
	// Message contains the detailed error message
	Message string
}

func (e *ParseError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("parse error during %s: %s", e.Operation, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// SignedRequestErrorKind enumerates the ways signed-request verification can
// fail.
type SignedRequestErrorKind string

const (
	// SignedRequestMalformed means the input lacked the signature.payload
	// separator.
	SignedRequestMalformed SignedRequestErrorKind = "malformed"
	// SignedRequestCorrupt means a segment failed to base64url-decode, or
	// the decoded payload was not a valid claims object.
	SignedRequestCorrupt SignedRequestErrorKind = "corrupted payload"
	// SignedRequestUnknownAlgorithm means the payload declared an algorithm
	// other than HMAC-SHA256.
	SignedRequestUnknownAlgorithm SignedRequestErrorKind = "unknown algorithm"
	// SignedRequestSignatureMismatch means the recomputed signature did not
	// match the one supplied.
	SignedRequestSignatureMismatch SignedRequestErrorKind = "signature mismatch"
)

// SignedRequestError indicates a signed request that failed verification.
type SignedRequestError struct {
	// Kind identifies the verification step that failed
	Kind SignedRequestErrorKind
	// Err contains the underlying error, if any
	Err error
}

func (e *SignedRequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("signed request %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("signed request %s", e.Kind)
}

func (e *SignedRequestError) Unwrap() error {
	return e.Err
}
