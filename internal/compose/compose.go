// Package compose assembles heuristic extractor output into formatted study
// notes and practice questions.
//
// The public Notes and Questions functions always return a string: warnings
// carry a "⚠️" prefix, internal failures an "Error generating ..." prefix.
// Nothing panics or propagates an error past this boundary, so callers need
// no error handling of their own.
package compose

import "strings"

// Options bound what the composers will attempt.
type Options struct {
	// MinContentLength is the minimum cleaned-content length, in characters,
	// required before heuristic generation is attempted.
	MinContentLength int
}

// DefaultOptions returns the standard composer bounds.
func DefaultOptions() Options {
	return Options{MinContentLength: 100}
}

// InsufficientContentWarning is returned by both composers when the input is
// below the minimum length threshold.
const InsufficientContentWarning = "⚠️ Insufficient content to generate study material. Upload a document with more extractable text."

// NoTextWarning is surfaced when PDF extraction found no usable text layer.
const NoTextWarning = "⚠️ No extractable text found in this PDF. It may be a scanned document without a text layer."

// IsWarning reports whether a composer result is a warning rather than
// generated content. Callers sniff results instead of handling errors.
func IsWarning(s string) bool {
	return strings.HasPrefix(s, "⚠️")
}

// IsError reports whether a composer result is an error marker.
func IsError(s string) bool {
	return strings.HasPrefix(s, "Error generating")
}

func tooShort(content string, opts Options) bool {
	return len(strings.TrimSpace(content)) < opts.MinContentLength
}
