package parser

import (
	"errors"
	"fmt"
)

// SyntaxError reports input the grammar could not consume.
type SyntaxError struct {
	// Input is the normalized text that was parsed.
	Input string
	// Offset is the byte offset into Input where parsing stopped.
	Offset int
	// Remaining is the unconsumed tail of Input.
	Remaining string
}

func (e *SyntaxError) Error() string {
	if e.Offset == 0 {
		return fmt.Sprintf("syntax error: cannot parse %q", e.Remaining)
	}
	return fmt.Sprintf("syntax error at offset %d: unexpected %q", e.Offset, e.Remaining)
}

// IsSyntaxError reports whether err is, or wraps, a SyntaxError.
func IsSyntaxError(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se)
}
