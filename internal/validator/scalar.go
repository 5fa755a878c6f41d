package validator

import (
	"math"
	"unicode/utf8"

	"github.com/goccy/go-json"
)

// multipleOfTolerance absorbs floating-point noise in the multipleOf quotient,
// so e.g. 0.3 is a multiple of 0.1.
const multipleOfTolerance = 1e-9

func checkType(node map[string]any, instance JSONDocument, _ options) error {
	tv, present := node["type"]
	if !present {
		return nil
	}

	var tags []string
	switch t := tv.(type) {
	case string:
		tags = []string{t}
	case []any:
		for _, v := range t {
			if s, ok := v.(string); ok {
				tags = append(tags, s)
			}
		}
	}
	if len(tags) == 0 {
		return nil
	}

	for _, tag := range tags {
		if typeMatches(tag, instance) {
			return nil
		}
	}
	return &WrongTypeError{Expected: tags, Data: instance}
}

func typeMatches(tag string, instance JSONDocument) bool {
	switch tag {
	case "null":
		return instance == nil
	case "boolean":
		_, ok := instance.(bool)
		return ok
	case "string":
		_, ok := instance.(string)
		return ok
	case "array":
		_, ok := instance.([]any)
		return ok
	case "object":
		_, ok := instance.(map[string]any)
		return ok
	case "number":
		_, ok := numberValue(instance)
		return ok
	case "integer":
		n, ok := numberValue(instance)
		return ok && isIntegral(n)
	}
	return false
}

func checkEnum(node map[string]any, instance JSONDocument, _ options) error {
	allowed, ok := node["enum"].([]any)
	if !ok {
		return nil
	}
	if enumContains(allowed, instance) {
		return nil
	}
	return &InvalidEnumValueError{Allowed: allowed, Data: instance}
}

func enumContains(allowed []any, instance JSONDocument) bool {
	for _, v := range allowed {
		if jsonEqual(v, instance) {
			return true
		}
	}
	return false
}

func checkNumericBounds(node map[string]any, instance JSONDocument, _ options) error {
	n, ok := numberValue(instance)
	if !ok {
		return nil
	}

	if minimum, has := schemaNumber(node, "minimum"); has {
		exclusive := node["exclusiveMinimum"] == true
		if n < minimum || (exclusive && n == minimum) {
			return &OutOfBoundsError{Data: instance, Minimum: &minimum, Exclusive: exclusive}
		}
	}

	if maximum, has := schemaNumber(node, "maximum"); has {
		exclusive := node["exclusiveMaximum"] == true
		if n > maximum || (exclusive && n == maximum) {
			return &OutOfBoundsError{Data: instance, Maximum: &maximum, Exclusive: exclusive}
		}
	}

	if divisor, has := schemaNumber(node, "multipleOf"); has && divisor > 0 {
		if !isMultiple(n, divisor) {
			return &NotMultipleOfError{Data: instance, ExpectedMultipleOf: divisor}
		}
	}

	return nil
}

// isMultiple reports whether n is an integral multiple of divisor, within
// floating-point tolerance. Zero is always a multiple.
func isMultiple(n, divisor float64) bool {
	if n == 0 {
		return true
	}
	q := n / divisor
	return math.Abs(q-math.Round(q)) <= multipleOfTolerance*math.Max(1, math.Abs(q))
}

func checkStringLength(node map[string]any, instance JSONDocument, _ options) error {
	s, ok := instance.(string)
	if !ok {
		return nil
	}

	// Lengths are counted in code points, not bytes.
	length := utf8.RuneCountInString(s)

	if minLength, has := schemaInt(node, "minLength"); has && length < minLength {
		return &StringTooShortError{Data: s, MinLength: minLength}
	}
	if maxLength, has := schemaInt(node, "maxLength"); has && length > maxLength {
		return &StringTooLongError{Data: s, MaxLength: maxLength}
	}
	return nil
}

func checkStringPattern(node map[string]any, instance JSONDocument, o options) error {
	s, ok := instance.(string)
	if !ok {
		return nil
	}
	pattern, ok := node["pattern"].(string)
	if !ok {
		return nil
	}

	re, err := o.patterns.get(pattern)
	if err != nil {
		return err
	}
	// Find mode: the pattern may match anywhere in the string.
	if !re.MatchString(s) {
		return &StringDoesNotMatchPatternError{Data: s, Pattern: pattern}
	}
	return nil
}

// numberValue extracts a numeric instance value. JSON decoding yields float64
// by default and json.Number when number mode is enabled; both are handled,
// along with plain Go integer values from hand-built documents.
func numberValue(instance JSONDocument) (float64, bool) {
	switch n := instance.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func isIntegral(n float64) bool {
	return n == math.Trunc(n) && !math.IsInf(n, 0)
}

// schemaNumber reads a numeric schema option.
func schemaNumber(node map[string]any, key string) (float64, bool) {
	v, present := node[key]
	if !present {
		return 0, false
	}
	return numberValue(v)
}

// schemaInt reads a non-negative integer schema option.
func schemaInt(node map[string]any, key string) (int, bool) {
	n, ok := schemaNumber(node, key)
	if !ok || !isIntegral(n) || n < 0 {
		return 0, false
	}
	return int(n), true
}

// jsonEqual is structural equality over parsed JSON values. Numbers compare by
// value regardless of their decoded Go type.
func jsonEqual(a, b JSONDocument) bool {
	if an, ok := numberValue(a); ok {
		bn, bok := numberValue(b)
		return bok && an == bn
	}

	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !jsonEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bc, present := bv[k]
			if !present || !jsonEqual(v, bc) {
				return false
			}
		}
		return true
	}
	return false
}
