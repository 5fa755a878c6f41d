package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/andyballingall/json-schema-validator/internal/validator"
)

func sampleResult() *Result {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &Result{
		SchemaPath: "person.schema.json",
		StartTime:  start,
		EndTime:    start.Add(50 * time.Millisecond),
		Docs: []DocResult{
			{Path: "good.json"},
			{Path: "bad.json", Err: &validator.WrongTypeError{
				Expected: []string{"integer"},
				Data:     "x",
			}},
		},
	}
}

func TestResultCounts(t *testing.T) {
	t.Parallel()

	r := sampleResult()
	assert.Equal(t, 1, r.Passed())
	assert.Equal(t, 1, r.Failed())
	assert.False(t, r.OK())

	empty := &Result{}
	assert.True(t, empty.OK())
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tr := &TextReporter{}
	require.NoError(t, tr.Write(&buf, sampleResult()))

	out := buf.String()
	assert.Contains(t, out, "PASS good.json")
	assert.Contains(t, out, "FAIL bad.json")
	assert.Contains(t, out, "1 passed")
	assert.Contains(t, out, "1 failed")
	assert.NotContains(t, out, "\033[", "colour disabled by default")
}

func TestTextReporterColour(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tr := &TextReporter{UseColour: true}
	require.NoError(t, tr.Write(&buf, sampleResult()))

	assert.Contains(t, buf.String(), "\033[32m")
}

func TestTextReporterVerboseShowsRecord(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tr := &TextReporter{Verbose: true}
	require.NoError(t, tr.Write(&buf, sampleResult()))

	assert.Contains(t, buf.String(), `"error"`)
	assert.Contains(t, buf.String(), "wrong-type")
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	jr := &JSONReporter{}
	require.NoError(t, jr.Write(&buf, sampleResult()))

	out := buf.Bytes()
	require.True(t, gjson.ValidBytes(out))

	assert.Equal(t, "person.schema.json", gjson.GetBytes(out, "schema").String())
	assert.Equal(t, int64(1), gjson.GetBytes(out, "stats.totalPassed").Int())
	assert.Equal(t, int64(1), gjson.GetBytes(out, "stats.totalFailed").Int())
	assert.True(t, gjson.GetBytes(out, "results.0.valid").Bool())
	assert.False(t, gjson.GetBytes(out, "results.1.valid").Bool())
	assert.Equal(t, "wrong-type", gjson.GetBytes(out, "results.1.error.error").String())
	assert.Equal(t, "integer", gjson.GetBytes(out, "results.1.error.expected").String())
}
