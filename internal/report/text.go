package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"

	"github.com/andyballingall/json-schema-validator/internal/validator"
)

// TextReporter implements Reporter for plain text output.
type TextReporter struct {
	Verbose   bool
	UseColour bool
}

const (
	colReset     = "\033[0m"
	colRed       = "\033[31m"
	colGreen     = "\033[32m"
	colGrey      = "\033[90m"
	colWhite     = "\033[37m"
	colBoldWhite = "\033[1;37m"
)

// cs returns a string which will render with the given colour
// if colourisation is enabled.
func (tr *TextReporter) cs(c, s string) string {
	if !tr.UseColour {
		return s
	}
	return c + s + colReset
}

func (tr *TextReporter) Write(w io.Writer, r *Result) error {
	divider := strings.Repeat("-", 40)

	fmt.Fprintf(w, "%s\n", divider)
	fmt.Fprint(w, tr.cs(colBoldWhite, "JSV VALIDATION REPORT\n\n"))
	fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "Schema:  "), tr.cs(colWhite, r.SchemaPath))
	fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "Started: "), tr.cs(colWhite, r.StartTime.Format("15:04:05")))
	fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "Duration:"), tr.cs(colWhite, r.EndTime.Sub(r.StartTime).String()))
	fmt.Fprintf(w, "%s\n", divider)

	for _, d := range r.Docs {
		if d.Err == nil {
			fmt.Fprintf(w, "%s %s\n", tr.cs(colGreen, "PASS"), d.Path)
			continue
		}
		fmt.Fprintf(w, "%s %s\n", tr.cs(colRed, "FAIL"), d.Path)
		fmt.Fprintf(w, "     %s\n", d.Err)
		if tr.Verbose {
			tr.writeRecord(w, d.Err)
		}
	}

	fmt.Fprintf(w, "%s\n", divider)
	fmt.Fprintf(w, "%s %s\n",
		tr.cs(colGreen, fmt.Sprintf("%d passed", r.Passed())),
		tr.cs(colRed, fmt.Sprintf("%d failed", r.Failed())))
	return nil
}

// writeRecord renders the structured error record, indented, for verbose mode.
func (tr *TextReporter) writeRecord(w io.Writer, err error) {
	ve, ok := err.(validator.ValidationError)
	if !ok {
		return
	}
	data, mErr := json.MarshalIndent(ve.Record(), "     ", "  ")
	if mErr != nil {
		return
	}
	fmt.Fprintf(w, "     %s\n", tr.cs(colGrey, string(data)))
}
