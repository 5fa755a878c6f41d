package report

import (
	"io"
	"time"

	"github.com/goccy/go-json"

	"github.com/andyballingall/json-schema-validator/internal/validator"
)

// JSONReporter implements Reporter for machine-readable JSON output.
type JSONReporter struct{}

type jsonDoc struct {
	Path  string `json:"path"`
	Valid bool   `json:"valid"`
	Error any    `json:"error,omitempty"`
}

type jsonOutput struct {
	Schema    string `json:"schema"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Duration  string `json:"duration"`
	Stats     struct {
		TotalPassed int `json:"totalPassed"`
		TotalFailed int `json:"totalFailed"`
	} `json:"stats"`
	Results []jsonDoc `json:"results"`
}

func (jr *JSONReporter) Write(w io.Writer, r *Result) error {
	out := jsonOutput{
		Schema:    r.SchemaPath,
		StartTime: r.StartTime.Format(time.RFC3339),
		EndTime:   r.EndTime.Format(time.RFC3339),
		Duration:  r.EndTime.Sub(r.StartTime).String(),
		Results:   make([]jsonDoc, 0, len(r.Docs)),
	}
	out.Stats.TotalPassed = r.Passed()
	out.Stats.TotalFailed = r.Failed()

	for _, d := range r.Docs {
		jd := jsonDoc{Path: d.Path, Valid: d.Err == nil}
		if d.Err != nil {
			jd.Error = errorRecord(d.Err)
		}
		out.Results = append(out.Results, jd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// errorRecord renders an error as its structured record where available, and
// as its message otherwise.
func errorRecord(err error) any {
	if ve, ok := err.(validator.ValidationError); ok {
		return ve.Record()
	}
	return err.Error()
}
