package validator

import (
	"sort"
)

// checkProperties runs the object property battery: required presence,
// declared property validation, pattern properties, and then the additional
// properties policy. Property-level failures collect into one properties
// record; the additional properties policy is checked separately once the
// declared properties are clean.
func checkProperties(node map[string]any, instance JSONDocument, o options) error {
	obj, ok := instance.(map[string]any)
	if !ok {
		return nil
	}

	propErrs := make(map[string]error)

	for _, name := range requiredProperties(node, o) {
		if _, present := obj[name]; !present {
			propErrs[name] = &MissingPropertyError{Property: name}
		}
	}

	declared, _ := node["properties"].(map[string]any)
	for name, sub := range declared {
		if _, already := propErrs[name]; already {
			continue
		}
		value, present := obj[name]
		// A null value is treated as absent here; presence is enforced by the
		// required check above.
		if !present || value == nil {
			continue
		}
		if err := validate(sub, value, o); err != nil {
			if isFatal(err) {
				return err
			}
			propErrs[name] = err
		}
	}

	patterns, _ := node["patternProperties"].(map[string]any)
	for pattern, sub := range patterns {
		re, err := o.patterns.get(pattern)
		if err != nil {
			return err
		}
		var failing []string
		for name, value := range obj {
			if !re.MatchString(name) {
				continue
			}
			if vErr := validate(sub, value, o); vErr != nil {
				if isFatal(vErr) {
					return vErr
				}
				failing = append(failing, name)
			}
		}
		if len(failing) > 0 {
			sort.Strings(failing)
			propErrs[pattern] = &InvalidPatternPropertiesError{Pattern: pattern, Properties: failing}
		}
	}

	if len(propErrs) > 0 {
		return &PropertiesError{Data: instance, Properties: propErrs}
	}

	return checkAdditionalProperties(node, obj, declared, patterns, o)
}

// checkAdditionalProperties applies the additionalProperties policy to the
// instance keys that are neither declared nor matched by a patternProperties
// regex. A value of true or an empty schema is a no-op.
func checkAdditionalProperties(
	node map[string]any,
	obj map[string]any,
	declared map[string]any,
	patterns map[string]any,
	o options,
) error {
	ap, present := node["additionalProperties"]
	if !present {
		return nil
	}

	extra, err := extraProperties(obj, declared, patterns, o)
	if err != nil {
		return err
	}
	if len(extra) == 0 {
		return nil
	}

	switch policy := ap.(type) {
	case bool:
		if !policy {
			return &AdditionalPropertiesError{PropertyNames: extra}
		}
	case map[string]any:
		if len(policy) == 0 {
			return nil
		}
		invalid := make(map[string]error)
		for _, name := range extra {
			if vErr := validate(policy, obj[name], o); vErr != nil {
				if isFatal(vErr) {
					return vErr
				}
				invalid[name] = vErr
			}
		}
		if len(invalid) > 0 {
			return &InvalidAdditionalPropertiesError{Data: obj, Invalid: invalid}
		}
	}
	return nil
}

// extraProperties returns the sorted instance keys not covered by properties
// or patternProperties.
func extraProperties(
	obj map[string]any,
	declared map[string]any,
	patterns map[string]any,
	o options,
) ([]string, error) {
	var extra []string
outer:
	for name := range obj {
		if _, isDeclared := declared[name]; isDeclared {
			continue
		}
		for pattern := range patterns {
			re, err := o.patterns.get(pattern)
			if err != nil {
				return nil, err
			}
			if re.MatchString(name) {
				continue outer
			}
		}
		extra = append(extra, name)
	}
	sort.Strings(extra)
	return extra, nil
}

func checkPropertyCount(node map[string]any, instance JSONDocument, _ options) error {
	obj, ok := instance.(map[string]any)
	if !ok {
		return nil
	}

	if minimum, has := schemaInt(node, "minProperties"); has && len(obj) < minimum {
		return &TooFewPropertiesError{Minimum: minimum, Actual: len(obj)}
	}
	if maximum, has := schemaInt(node, "maxProperties"); has && len(obj) > maximum {
		return &TooManyPropertiesError{Maximum: maximum, Actual: len(obj)}
	}
	return nil
}

// requiredProperties collects the required property names. Draft 4 reads the
// schema's required array; draft 3 reads a required boolean from each property
// sub-schema.
func requiredProperties(node map[string]any, o options) []string {
	if o.draft3 {
		declared, _ := node["properties"].(map[string]any)
		var names []string
		for name, sub := range declared {
			if subSchema, ok := sub.(map[string]any); ok && subSchema["required"] == true {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		return names
	}

	required, _ := node["required"].([]any)
	names := make([]string, 0, len(required))
	for _, v := range required {
		if name, ok := v.(string); ok {
			names = append(names, name)
		}
	}
	return names
}
