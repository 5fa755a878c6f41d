package validator

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// ErrSchemaMissing is the missing-schema signal returned by a RefResolver when
// the URI does not name a loadable schema.
var ErrSchemaMissing = errors.New("schema missing")

// RefResolver loads an external schema by URI. Implementations return
// ErrSchemaMissing (possibly wrapped) when no schema exists at the URI.
// The resolver is the engine's only suspension point; callers needing
// cancellation or timeouts wrap it.
type RefResolver func(uri string) (JSONSchema, error)

// DateTimeParser checks a date-time format candidate. A nil error means the
// string is a valid date-time.
type DateTimeParser func(s string) (time.Time, error)

// Options configures validation.
type Options struct {
	// RootSchema is the schema that "#"-anchored pointers resolve against.
	// If nil, the dispatcher binds it to the top-level schema on entry.
	// Following a URI $ref rebinds the root to the loaded document, so
	// pointers inside it resolve relative to it.
	RootSchema JSONSchema

	// RefResolver loads external schemas named by URI $refs.
	// Defaults to FileResolver.
	RefResolver RefResolver

	// Draft3Required selects draft 3 required semantics: a boolean marker on
	// each property schema instead of the draft 4 required array.
	Draft3Required bool

	// DateTimeParser checks values against the date-time format.
	// Defaults to RFC 3339 parsing.
	DateTimeParser DateTimeParser

	// Diagnostics receives warnings about unsupported format values.
	// Defaults to a text logger on stderr. Unsupported formats never fail
	// validation; they are only reported here.
	Diagnostics *slog.Logger
}

// FileResolver is the default RefResolver. It treats the URI as a filesystem
// path, reads the file, and parses it as JSON. An unreadable or unparsable
// file reports ErrSchemaMissing.
func FileResolver(uri string) (JSONSchema, error) {
	data, err := os.ReadFile(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSchemaMissing, uri)
	}

	var doc JSONSchema
	if uErr := json.Unmarshal(data, &doc); uErr != nil {
		return nil, fmt.Errorf("%w: %s is not valid JSON", ErrSchemaMissing, uri)
	}
	return doc, nil
}

func defaultDateTimeParser(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

var defaultDiagnostics = slog.New(slog.NewTextHandler(os.Stderr, nil))

// options is the resolved per-call form of Options, passed down the recursion
// by value so a URI $ref can rebind the root for its subtree only.
type options struct {
	root     JSONDocument
	resolve  RefResolver
	draft3   bool
	dateTime DateTimeParser
	diag     *slog.Logger
	patterns *patternCache
}

func newOptions(o *Options) options {
	out := options{patterns: newPatternCache()}
	if o != nil {
		out.root = o.RootSchema
		out.resolve = o.RefResolver
		out.draft3 = o.Draft3Required
		out.dateTime = o.DateTimeParser
		out.diag = o.Diagnostics
	}
	if out.resolve == nil {
		out.resolve = FileResolver
	}
	if out.dateTime == nil {
		out.dateTime = defaultDateTimeParser
	}
	if out.diag == nil {
		out.diag = defaultDiagnostics
	}
	return out
}

// patternCache holds the compiled form of every pattern and patternProperties
// regex. Compilation happens once per distinct pattern; a compiled schema can
// then be shared across parallel validation calls.
type patternCache struct {
	mu  sync.RWMutex
	res map[string]*regexp.Regexp
}

func newPatternCache() *patternCache {
	return &patternCache{res: make(map[string]*regexp.Regexp)}
}

func (c *patternCache) get(pattern string) (*regexp.Regexp, error) {
	c.mu.RLock()
	re, ok := c.res[pattern]
	c.mu.RUnlock()
	if ok {
		return re, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &InvalidPatternError{Pattern: pattern, Wrapped: err}
	}

	c.mu.Lock()
	c.res[pattern] = re
	c.mu.Unlock()
	return re, nil
}

// compileAll walks a schema document and compiles every pattern and
// patternProperties regex it finds, so invalid regexes are reported at ingest
// rather than mid-validation. Subtrees under enum hold data, not schemas, and
// are not walked.
func (c *patternCache) compileAll(doc JSONDocument) error {
	switch node := doc.(type) {
	case map[string]any:
		if p, ok := node["pattern"].(string); ok {
			if _, err := c.get(p); err != nil {
				return err
			}
		}
		if pp, ok := node["patternProperties"].(map[string]any); ok {
			for p := range pp {
				if _, err := c.get(p); err != nil {
					return err
				}
			}
		}
		for key, child := range node {
			if key == "enum" {
				continue
			}
			if err := c.compileAll(child); err != nil {
				return err
			}
		}
	case []any:
		for _, child := range node {
			if err := c.compileAll(child); err != nil {
				return err
			}
		}
	}
	return nil
}
