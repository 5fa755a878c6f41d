package validator

// checkArrayItems validates each element against the single-schema form of
// items. The tuple form (an array of schemas) is not supported and is ignored.
func checkArrayItems(node map[string]any, instance JSONDocument, o options) error {
	arr, ok := instance.([]any)
	if !ok {
		return nil
	}
	items, ok := node["items"].(map[string]any)
	if !ok {
		return nil
	}

	var itemErrs []ItemError

	// A pure enum item schema is checked inline rather than re-dispatched per
	// element. The semantics are identical.
	if allowed, isEnum := pureEnum(items); isEnum {
		for i, value := range arr {
			if !enumContains(allowed, value) {
				itemErrs = append(itemErrs, ItemError{
					Position: i,
					Err:      &InvalidEnumValueError{Allowed: allowed, Data: value},
				})
			}
		}
	} else {
		for i, value := range arr {
			if err := validate(items, value, o); err != nil {
				if isFatal(err) {
					return err
				}
				itemErrs = append(itemErrs, ItemError{Position: i, Err: err})
			}
		}
	}

	if len(itemErrs) > 0 {
		return &ArrayItemsError{Data: instance, Items: itemErrs}
	}
	return nil
}

// pureEnum reports whether the schema constrains elements with an enum and
// nothing else.
func pureEnum(schema map[string]any) ([]any, bool) {
	if len(schema) != 1 {
		return nil, false
	}
	allowed, ok := schema["enum"].([]any)
	return allowed, ok
}

func checkArrayItemCount(node map[string]any, instance JSONDocument, _ options) error {
	arr, ok := instance.([]any)
	if !ok {
		return nil
	}

	if minimum, has := schemaInt(node, "minItems"); has && len(arr) < minimum {
		return &WrongNumberOfElementsError{Minimum: &minimum, Actual: len(arr)}
	}
	if maximum, has := schemaInt(node, "maxItems"); has && len(arr) > maximum {
		return &WrongNumberOfElementsError{Maximum: &maximum, Actual: len(arr)}
	}
	return nil
}

func checkArrayUniqueItems(node map[string]any, instance JSONDocument, _ options) error {
	arr, ok := instance.([]any)
	if !ok {
		return nil
	}
	if node["uniqueItems"] != true {
		return nil
	}

	var duplicates []JSONDocument
	for i := range arr {
		if containsValue(duplicates, arr[i]) {
			continue
		}
		for j := i + 1; j < len(arr); j++ {
			if jsonEqual(arr[i], arr[j]) {
				duplicates = append(duplicates, arr[i])
				break
			}
		}
	}

	if len(duplicates) > 0 {
		return &DuplicateItemsError{Duplicates: duplicates}
	}
	return nil
}

func containsValue(values []JSONDocument, v JSONDocument) bool {
	for _, existing := range values {
		if jsonEqual(existing, v) {
			return true
		}
	}
	return false
}
