package validator

import (
	"errors"
)

// Validate validates an instance document against a schema and returns nil on
// success or the first error record produced by the validator battery.
//
// The schema and instance are parsed JSON values. A schema that is not a JSON
// mapping, or a mapping with none of the recognised keys, accepts every
// instance.
func Validate(schema JSONSchema, instance JSONDocument, opts *Options) error {
	o := newOptions(opts)
	if o.root == nil {
		o.root = schema
	}
	return validate(schema, instance, o)
}

// check inspects one schema keyword group against the instance. A check whose
// keyword is absent, or whose keyword constrains a JSON kind the instance is
// not of, succeeds silently.
type check func(node map[string]any, instance JSONDocument, o options) error

// battery is the fixed validator order. The combinators run first since they
// can short-circuit regardless of the instance's shape, dependency checks are
// cheaper than a property walk, shape checks precede shape-dependent checks,
// and the recursing object and array checks run last.
var battery []check

func init() {
	battery = []check{
		checkNot,
		checkAllOf,
		checkAnyOf,
		checkDependencies,
		checkType,
		checkEnum,
		checkNumericBounds,
		checkStringLength,
		checkStringPattern,
		checkStringFormat,
		checkProperties,
		checkPropertyCount,
		checkArrayItems,
		checkArrayItemCount,
		checkArrayUniqueItems,
	}
}

func validate(schema JSONDocument, instance JSONDocument, o options) error {
	effective, o, err := resolveRefs(schema, o)
	if err != nil {
		return err
	}

	node, ok := effective.(map[string]any)
	if !ok {
		return nil
	}

	for _, chk := range battery {
		if cErr := chk(node, instance, o); cErr != nil {
			return cErr
		}
	}
	return nil
}

// isFatal reports whether a sub-schema error must abort validation instead of
// being folded into an aggregate record: an unresolvable ref, or any error
// from outside the validation taxonomy (e.g. a regex compile failure).
func isFatal(err error) bool {
	var unresolvable *UnresolvableRefError
	if errors.As(err, &unresolvable) {
		return true
	}
	_, isRecord := err.(ValidationError)
	return !isRecord
}
