// Package report provides reporting of validation outcomes.
package report

import (
	"io"
	"time"
)

// DocResult is the outcome of validating one instance document.
type DocResult struct {
	Path string // Path of the instance document
	Err  error  // nil if the document validated
}

// Result aggregates the outcomes of a validation run of one schema against
// one or more instance documents.
type Result struct {
	SchemaPath string
	StartTime  time.Time
	EndTime    time.Time
	Docs       []DocResult
}

// Passed returns the number of documents that validated.
func (r *Result) Passed() int {
	n := 0
	for _, d := range r.Docs {
		if d.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of documents that did not validate.
func (r *Result) Failed() int {
	return len(r.Docs) - r.Passed()
}

// OK reports whether every document validated.
func (r *Result) OK() bool {
	return r.Failed() == 0
}

// Reporter renders a Result to a writer.
type Reporter interface {
	Write(w io.Writer, r *Result) error
}
