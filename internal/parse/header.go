// Package parse extracts metadata from the header block of a raw PEP
// document.
package parse

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyDocument is returned when there is no first line to inspect.
	ErrEmptyDocument = errors.New("empty document")
	// ErrMalformedHeader is returned when the first header line is not a
	// "label: value" pair.
	ErrMalformedHeader = errors.New("malformed header")
)

// SplitDocument splits raw text at the first blank line into the header
// block and the body. A document without a blank line is all header.
func SplitDocument(raw string) (header, body string) {
	if i := strings.Index(raw, "\n\n"); i >= 0 {
		return raw[:i], raw[i+2:]
	}

	return raw, ""
}

// DeclaredNumber extracts the proposal number declared on the first
// header line, so "PEP: 8" yields "8". The declared number cross-checks
// a document against its index entry; it is never used as a storage key.
func DeclaredNumber(header string) (string, error) {
	if header == "" {
		return "", ErrEmptyDocument
	}

	line, _, _ := strings.Cut(header, "\n")
	_, value, found := strings.Cut(line, ":")
	if !found {
		return "", fmt.Errorf("%w: %q", ErrMalformedHeader, line)
	}

	return strings.TrimSpace(value), nil
}
