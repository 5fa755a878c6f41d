package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andyballingall/json-schema-validator/internal/validator"
)

func TestReadDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "doc.json", `{"a":[1,2]}`)

	doc, err := ReadDocument(path)
	require.NoError(t, err)
	m, ok := doc.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, m, "a")
}

func TestReadDocumentErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	broken := writeFile(t, dir, "broken.json", `not json`)

	_, err := ReadDocument(broken)
	var invalid InvalidJSONError
	require.ErrorAs(t, err, &invalid)

	_, err = ReadDocument(dir + "/absent.json")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestReadSchemaDetectsDraft(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    validator.Draft
	}{
		{
			name:    "draft 3 declaration",
			content: `{"$schema":"http://json-schema.org/draft-03/schema#","type":"object"}`,
			want:    validator.Draft3,
		},
		{
			name:    "draft 4 declaration",
			content: `{"$schema":"http://json-schema.org/draft-04/schema#","type":"object"}`,
			want:    validator.Draft4,
		},
		{
			name:    "no declaration leaves the draft empty",
			content: `{"type":"object"}`,
			want:    "",
		},
		{
			name:    "unrecognised declaration leaves the draft empty",
			content: `{"$schema":"http://json-schema.org/draft-07/schema#"}`,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := writeFile(t, dir, "s.json", tt.content)

			doc, draft, err := ReadSchema(path)
			require.NoError(t, err)
			assert.NotNil(t, doc)
			assert.Equal(t, tt.want, draft)
		})
	}
}

func TestReadSchemaInvalidJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "bad.json", `{{{`)

	_, _, err := ReadSchema(path)
	var invalid InvalidJSONSchemaError
	require.ErrorAs(t, err, &invalid)
}
