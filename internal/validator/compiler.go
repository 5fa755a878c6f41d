package validator

import (
	"sync"
)

// NewCompiler returns the engine's Compiler implementation. A nil opts uses
// the default options. Schemas registered with AddSchema are resolvable by id
// when another registered schema references them via a URI $ref.
func NewCompiler(opts *Options) Compiler {
	return &engineCompiler{
		opts:     opts,
		schemas:  make(map[string]JSONSchema),
		patterns: newPatternCache(),
	}
}

type engineCompiler struct {
	mu       sync.Mutex
	opts     *Options
	schemas  map[string]JSONSchema
	patterns *patternCache
}

func (c *engineCompiler) AddSchema(id string, data JSONSchema) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Compile the schema's regexes now so bad patterns surface at ingest.
	if err := c.patterns.compileAll(data); err != nil {
		return err
	}
	c.schemas[id] = data
	return nil
}

func (c *engineCompiler) Compile(id string) (Validator, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	schema, ok := c.schemas[id]
	if !ok {
		return nil, &UnknownSchemaIDError{ID: id}
	}

	o := newOptions(c.opts)
	o.patterns = c.patterns
	o.root = schema

	// Registered schemas shadow the outer resolver for URI refs. The snapshot
	// keeps the compiled validator stable across later AddSchema/Clear calls.
	registered := make(map[string]JSONSchema, len(c.schemas))
	for id, s := range c.schemas {
		registered[id] = s
	}
	outer := o.resolve
	o.resolve = func(uri string) (JSONSchema, error) {
		if s, found := registered[uri]; found {
			return s, nil
		}
		return outer(uri)
	}

	return &engineValidator{schema: schema, opts: o}, nil
}

func (c *engineCompiler) SupportedSchemaVersions() []Draft {
	return []Draft{Draft3, Draft4}
}

func (c *engineCompiler) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.schemas = make(map[string]JSONSchema)
	c.patterns = newPatternCache()
}

// New compiles a standalone schema into a Validator, precompiling its regexes.
// Use a Compiler instead when schemas reference each other by id.
func New(schema JSONSchema, opts *Options) (Validator, error) {
	o := newOptions(opts)
	if err := o.patterns.compileAll(schema); err != nil {
		return nil, err
	}
	if o.root == nil {
		o.root = schema
	}
	return &engineValidator{schema: schema, opts: o}, nil
}

// engineValidator binds a compiled schema to its options. It is immutable and
// safe for concurrent use.
type engineValidator struct {
	schema JSONSchema
	opts   options
}

func (v *engineValidator) Validate(doc JSONDocument) error {
	return validate(v.schema, doc, v.opts)
}
