package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// scanner is a cursor over the input with cheap backtracking: callers save
// pos before an attempt and restore it on failure.
type scanner struct {
	src string
	pos int
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) rest() string { return s.src[s.pos:] }

func (s *scanner) peek() rune {
	if s.eof() {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(s.rest())
	return r
}

// skipSpace consumes whitespace and returns how many bytes it consumed.
func (s *scanner) skipSpace() int {
	start := s.pos
	for !s.eof() {
		r, size := utf8.DecodeRuneInString(s.rest())
		if !unicode.IsSpace(r) {
			break
		}
		s.pos += size
	}
	return s.pos - start
}

// char consumes c if it is next.
func (s *scanner) char(c byte) bool {
	if !s.eof() && s.src[s.pos] == c {
		s.pos++
		return true
	}
	return false
}

// fold consumes tag if the input starts with it, ignoring ASCII case.
func (s *scanner) fold(tag string) bool {
	if len(s.rest()) < len(tag) || !strings.EqualFold(s.src[s.pos:s.pos+len(tag)], tag) {
		return false
	}
	s.pos += len(tag)
	return true
}

// foldAny consumes the first of tags that matches. Longer spellings must be
// listed before their prefixes.
func (s *scanner) foldAny(tags ...string) bool {
	for _, tag := range tags {
		if s.fold(tag) {
			return true
		}
	}
	return false
}

// atBoundary reports whether the cursor sits where a bare word ends.
func (s *scanner) atBoundary() bool {
	if s.eof() {
		return true
	}
	r := s.peek()
	return unicode.IsSpace(r) || r == ')'
}

// bare consumes a run of characters up to whitespace or ')'. The run may be
// empty. A run never starts with a quote character.
func (s *scanner) bare() (string, bool) {
	if !s.eof() && (s.src[s.pos] == '"' || s.src[s.pos] == '\'') {
		return "", false
	}
	start := s.pos
	for !s.atBoundary() {
		_, size := utf8.DecodeRuneInString(s.rest())
		s.pos += size
	}
	return s.src[start:s.pos], true
}

// quoted consumes text between matching single or double quotes and
// returns the text without them.
func (s *scanner) quoted() (string, bool) {
	if s.eof() {
		return "", false
	}
	q := s.src[s.pos]
	if q != '"' && q != '\'' {
		return "", false
	}
	end := strings.IndexByte(s.src[s.pos+1:], q)
	if end < 0 {
		return "", false
	}
	text := s.src[s.pos+1 : s.pos+1+end]
	s.pos += end + 2
	return text, true
}

// text consumes quoted text, or failing that a bare run. The boolean
// result reports whether the text was quoted.
func (s *scanner) text() (text string, quoted bool, ok bool) {
	if t, ok := s.quoted(); ok {
		return t, true, true
	}
	t, ok := s.bare()
	return t, false, ok
}
