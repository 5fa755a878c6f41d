package validator

import (
	"sort"
)

// The combinators report the combinator failure only, not per-branch detail.

func checkNot(node map[string]any, instance JSONDocument, o options) error {
	sub, present := node["not"]
	if !present {
		return nil
	}

	err := validate(sub, instance, o)
	if err == nil {
		return &ShouldNotMatchError{Schema: sub, Data: instance}
	}
	if isFatal(err) {
		return err
	}
	return nil
}

func checkAllOf(node map[string]any, instance JSONDocument, o options) error {
	subs, ok := node["allOf"].([]any)
	if !ok {
		return nil
	}

	for _, sub := range subs {
		if err := validate(sub, instance, o); err != nil {
			if isFatal(err) {
				return err
			}
			return &DoesNotMatchAllOfError{Schemas: subs, Data: instance}
		}
	}
	return nil
}

func checkAnyOf(node map[string]any, instance JSONDocument, o options) error {
	subs, ok := node["anyOf"].([]any)
	if !ok {
		return nil
	}

	for _, sub := range subs {
		err := validate(sub, instance, o)
		if err == nil {
			return nil
		}
		if isFatal(err) {
			return err
		}
	}
	return &DoesNotMatchAnyOfError{Schemas: subs, Data: instance}
}

// checkDependencies enforces the dependencies keyword. The name-list form
// requires the listed properties to be present alongside the trigger; the
// schema form validates the entire instance. Non-object instances skip
// silently.
func checkDependencies(node map[string]any, instance JSONDocument, o options) error {
	deps, ok := node["dependencies"].(map[string]any)
	if !ok {
		return nil
	}
	obj, ok := instance.(map[string]any)
	if !ok {
		return nil
	}

	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, present := obj[name]; !present {
			continue
		}

		switch dep := deps[name].(type) {
		case []any:
			for _, v := range dep {
				needed, isName := v.(string)
				if !isName {
					continue
				}
				if _, present := obj[needed]; !present {
					return &DependencyMismatchError{Property: name, Dependency: dep, Data: instance}
				}
			}
		case map[string]any:
			if err := validate(dep, instance, o); err != nil {
				if isFatal(err) {
					return err
				}
				return &DependencyMismatchError{Property: name, Dependency: dep, Data: instance}
			}
		}
	}
	return nil
}
