package validator

import (
	"net/url"
	"strconv"
	"strings"
)

// resolveRefs follows $ref chains until a non-ref schema is reached.
//
// Cases, in order:
//  1. No $ref: the schema is already effective.
//  2. "#": the root schema.
//  3. "#/...": a JSON Pointer into the root schema.
//  4. Anything else: a URI, loaded through the ref resolver. The loaded
//     document becomes the root for pointers resolved inside it.
//
// A ref seen twice within one chain is a cycle and fails with
// UnresolvableRefError.
func resolveRefs(schema JSONDocument, o options) (JSONDocument, options, error) {
	var seen map[string]bool

	for {
		node, ok := schema.(map[string]any)
		if !ok {
			return schema, o, nil
		}
		ref, ok := node["$ref"].(string)
		if !ok {
			return schema, o, nil
		}

		if seen == nil {
			seen = make(map[string]bool)
		}
		if seen[ref] {
			return nil, o, &UnresolvableRefError{Ref: ref}
		}
		seen[ref] = true

		switch {
		case ref == "#":
			schema = o.root
		case strings.HasPrefix(ref, "#/"):
			target, err := walkPointer(o.root, ref)
			if err != nil {
				return nil, o, err
			}
			schema = target
		default:
			loaded, err := o.resolve(ref)
			if err != nil {
				return nil, o, &UnresolvableRefError{Ref: ref, Wrapped: err}
			}
			schema = loaded
			o.root = loaded
		}
	}
}

// walkPointer dereferences a "#/..." JSON Pointer against the root schema.
func walkPointer(root JSONDocument, ref string) (JSONDocument, error) {
	node := root
	for _, raw := range strings.Split(ref[2:], "/") {
		segment, err := decodeSegment(raw)
		if err != nil {
			return nil, &UnresolvableRefError{Ref: ref, Wrapped: err}
		}

		if idx, isIndex := segmentIndex(segment); isIndex {
			arr, ok := node.([]any)
			if ok {
				if idx >= len(arr) {
					return nil, &UnresolvableRefError{Ref: ref}
				}
				node = arr[idx]
				continue
			}
			// An all-digit segment may still be an object key.
		}

		obj, ok := node.(map[string]any)
		if !ok {
			return nil, &UnresolvableRefError{Ref: ref}
		}
		child, present := obj[segment]
		if !present {
			return nil, &UnresolvableRefError{Ref: ref}
		}
		node = child
	}
	return node, nil
}

// decodeSegment unescapes one pointer segment: ~1 becomes '/', ~0 becomes '~',
// then percent-encoding is decoded.
func decodeSegment(raw string) (string, error) {
	s := strings.ReplaceAll(raw, "~1", "/")
	s = strings.ReplaceAll(s, "~0", "~")
	return url.PathUnescape(s)
}

// segmentIndex reports whether the segment is all digits, and if so its value
// as an array index.
func segmentIndex(segment string) (int, bool) {
	if segment == "" {
		return 0, false
	}
	for _, r := range segment {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	idx, err := strconv.Atoi(segment)
	if err != nil {
		return 0, false
	}
	return idx, true
}
