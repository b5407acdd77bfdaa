package engine

import (
	"errors"
	"fmt"

	"github.com/roach88/cardsearch/internal/parser"
)

// SearchError represents a search that could not produce a page.
//
// The wrapped Err keeps the underlying typed error reachable through
// errors.As (for example *parser.SyntaxError).
type SearchError struct {
	// Code identifies the error category.
	Code SearchErrorCode

	// Query is the search string as given by the caller.
	Query string

	// Err is the underlying cause.
	Err error
}

// SearchErrorCode categorizes search errors.
type SearchErrorCode string

const (
	// ErrCodeSyntax indicates the search string does not parse.
	ErrCodeSyntax SearchErrorCode = "SYNTAX_ERROR"

	// ErrCodeInvalidQuery indicates the parsed query could not be compiled.
	ErrCodeInvalidQuery SearchErrorCode = "INVALID_QUERY"

	// ErrCodeInvalidPage indicates a negative cursor or a non-positive limit.
	ErrCodeInvalidPage SearchErrorCode = "INVALID_PAGE"

	// ErrCodeFetchFailed indicates the store query failed.
	ErrCodeFetchFailed SearchErrorCode = "FETCH_FAILED"
)

// Error implements the error interface.
func (e *SearchError) Error() string {
	if e.Query != "" {
		return fmt.Sprintf("%s: %v (query=%q)", e.Code, e.Err, e.Query)
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

// Unwrap returns the underlying cause.
func (e *SearchError) Unwrap() error { return e.Err }

// IsSyntaxError returns true if err is a search rejected for bad syntax.
// Uses errors.As to handle wrapped errors.
func IsSyntaxError(err error) bool {
	var se *SearchError
	if errors.As(err, &se) {
		return se.Code == ErrCodeSyntax
	}
	return parser.IsSyntaxError(err)
}

// ErrorCode returns the code of the SearchError in err's chain, or "" if
// there is none.
func ErrorCode(err error) SearchErrorCode {
	var se *SearchError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// classifyCompileError maps a parse or compile failure to a SearchError.
func classifyCompileError(query string, err error) *SearchError {
	code := ErrCodeInvalidQuery
	if parser.IsSyntaxError(err) {
		code = ErrCodeSyntax
	}
	return &SearchError{Code: code, Query: query, Err: err}
}
