package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"

	"github.com/andyballingall/json-schema-validator/internal/validator"
)

// Cache is the type used to store parsed schema documents in memory.
type Cache map[string]validator.JSONSchema

// Store loads external schema documents referenced by URI $refs and caches
// them in memory. Concurrent requests for the same URI are collapsed into a
// single read. Store.Resolve satisfies the engine's ref-resolver capability.
type Store struct {
	baseDir   string
	mu        sync.RWMutex // Protects cache
	cache     Cache
	loadGroup singleflight.Group // Prevents duplicate loads
}

// NewStore creates a schema store. Relative URIs resolve against baseDir;
// an empty baseDir leaves them relative to the working directory.
func NewStore(baseDir string) *Store {
	return &Store{
		baseDir: baseDir,
		cache:   make(Cache),
	}
}

// Resolve loads the schema document at the given URI, treating it as a
// filesystem path. Unreadable files report the engine's missing-schema signal.
func (s *Store) Resolve(uri string) (validator.JSONSchema, error) {
	s.mu.RLock()
	doc, ok := s.cache[uri]
	s.mu.RUnlock()
	if ok {
		return doc, nil
	}

	loaded, err, _ := s.loadGroup.Do(uri, func() (any, error) {
		return s.load(uri)
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[uri] = loaded
	s.mu.Unlock()

	return loaded, nil
}

// Add seeds the cache with an already-parsed schema document, shadowing
// whatever the URI would load from disk.
func (s *Store) Add(uri string, doc validator.JSONSchema) {
	s.mu.Lock()
	s.cache[uri] = doc
	s.mu.Unlock()
}

// Invalidate drops a cached document so the next Resolve rereads it.
func (s *Store) Invalidate(uri string) {
	s.mu.Lock()
	delete(s.cache, uri)
	s.mu.Unlock()
}

// Path returns the filesystem path a URI resolves to.
func (s *Store) Path(uri string) string {
	if s.baseDir == "" || filepath.IsAbs(uri) {
		return uri
	}
	return filepath.Join(s.baseDir, uri)
}

func (s *Store) load(uri string) (validator.JSONSchema, error) {
	path := s.Path(uri)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", validator.ErrSchemaMissing, uri)
	}

	var doc validator.JSONSchema
	if uErr := json.Unmarshal(data, &doc); uErr != nil {
		return nil, InvalidJSONError{Path: path, Wrapped: uErr}
	}
	return doc, nil
}
