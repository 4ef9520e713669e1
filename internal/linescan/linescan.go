// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package linescan provides a line oriented scanner with one line lookahead
// along with helpers for classifying the lines of a screen config.
package linescan

import "strings"

// Scanner iterates over the non-blank lines of a string. Every line
// returned has its surrounding whitespace trimmed and is a substring
// of the original input.
type Scanner struct {
	rest string

	peeked  string
	hasPeek bool
}

// New returns a Scanner positioned at the start of s.
func New(s string) *Scanner {
	return &Scanner{rest: s}
}

// Peek returns the next non-blank line without consuming it.
// The bool is false once the input is exhausted.
func (s *Scanner) Peek() (string, bool) {
	if s.hasPeek {
		return s.peeked, true
	}
	line, ok := s.advance()
	if !ok {
		return "", false
	}
	s.peeked = line
	s.hasPeek = true
	return line, true
}

// Next returns and consumes the next non-blank line.
// The bool is false once the input is exhausted.
func (s *Scanner) Next() (string, bool) {
	if s.hasPeek {
		s.hasPeek = false
		line := s.peeked
		s.peeked = ""
		return line, true
	}
	return s.advance()
}

func (s *Scanner) advance() (string, bool) {
	for len(s.rest) > 0 {
		line, rest, _ := strings.Cut(s.rest, "\n")
		s.rest = rest

		line = strings.TrimSpace(line)
		if line != "" {
			return line, true
		}
	}
	return "", false
}

// ParseKV splits line on its first '='. Both the key and the value are
// trimmed and must be non-empty for ok to be true. The value may itself
// contain '='.
func ParseKV(line string) (key, value string, ok bool) {
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key == "" || value == "" {
		return "", "", false
	}
	return key, value, true
}

// CleanString strips a single leading and a single trailing double quote
// from v. No escape sequences are processed.
func CleanString(v string) string {
	v = strings.TrimPrefix(v, `"`)
	return strings.TrimSuffix(v, `"`)
}

// SectionName reports the name of a section opening tag, e.g. "Panel01"
// for the line "[Panel01]". The name may be empty, "[]" opens a section
// named "". Closing tags, which start with "[#", and anything else not
// shaped like "[name]" are rejected.
func SectionName(line string) (string, bool) {
	if len(line) < 2 || line[0] != '[' || line[len(line)-1] != ']' {
		return "", false
	}
	name := line[1 : len(line)-1]
	if strings.HasPrefix(name, "#") {
		return "", false
	}
	return name, true
}

// IsClosingTag reports whether line is exactly the closing tag of the
// section with the given name.
func IsClosingTag(line, name string) bool {
	return len(line) == len(name)+3 &&
		strings.HasPrefix(line, "[#") &&
		line[len(line)-1] == ']' &&
		line[2:len(line)-1] == name
}
