package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckNot(t *testing.T) {
	t.Parallel()

	schema := parse(t, `{"not":{"type":"string"}}`)

	require.NoError(t, Validate(schema, float64(1), nil))

	err := Validate(schema, "a string", nil)
	var snm *ShouldNotMatchError
	require.ErrorAs(t, err, &snm)
}

func TestCheckAllOf(t *testing.T) {
	t.Parallel()

	schema := parse(t, `{"allOf":[{"type":"object"},{"required":["a"],"properties":{"a":{}}}]}`)

	require.NoError(t, Validate(schema, parse(t, `{"a":1}`), nil))

	// The combinator reports its own failure, not per-branch detail.
	err := Validate(schema, parse(t, `{}`), nil)
	var dnma *DoesNotMatchAllOfError
	require.ErrorAs(t, err, &dnma)
	assert.Len(t, dnma.Schemas, 2)
}

func TestCheckAnyOf(t *testing.T) {
	t.Parallel()

	schema := parse(t, `{"anyOf":[{"type":"string"},{"type":"integer"}]}`)

	require.NoError(t, Validate(schema, "s", nil))
	require.NoError(t, Validate(schema, float64(3), nil))

	err := Validate(schema, parse(t, `[1]`), nil)
	var dnma *DoesNotMatchAnyOfError
	require.ErrorAs(t, err, &dnma)
}

func TestCheckDependenciesSchemaForm(t *testing.T) {
	t.Parallel()

	// The schema form validates the whole instance, not the property value.
	schema := parse(t, `{
		"dependencies": {
			"credit_card": {"required": ["billing_address"], "properties": {"billing_address": {"type": "string"}}}
		}
	}`)

	require.NoError(t, Validate(schema, parse(t, `{"credit_card":1,"billing_address":"x"}`), nil))
	require.NoError(t, Validate(schema, parse(t, `{"name":"no card"}`), nil))

	err := Validate(schema, parse(t, `{"credit_card":1}`), nil)
	var dep *DependencyMismatchError
	require.ErrorAs(t, err, &dep)
	assert.Equal(t, "credit_card", dep.Property)
}

func TestCheckDependenciesSkipsNonObjects(t *testing.T) {
	t.Parallel()

	schema := parse(t, `{"dependencies":{"a":["b"]}}`)
	assert.NoError(t, Validate(schema, parse(t, `[1,2]`), nil))
	assert.NoError(t, Validate(schema, "str", nil))
}

func TestCombinatorsPropagateUnresolvableRef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		schema string
	}{
		{"inside not", `{"not":{"$ref":"#/missing"}}`},
		{"inside anyOf", `{"anyOf":[{"$ref":"#/missing"}]}`},
		{"inside dependencies", `{"dependencies":{"a":{"$ref":"#/missing"}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			instance := parse(t, `{"a":1}`)
			err := Validate(parse(t, tt.schema), instance, nil)

			var ur *UnresolvableRefError
			require.ErrorAs(t, err, &ur)
		})
	}
}
