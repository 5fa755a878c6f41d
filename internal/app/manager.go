package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/andyballingall/json-schema-validator/internal/config"
	"github.com/andyballingall/json-schema-validator/internal/report"
	"github.com/andyballingall/json-schema-validator/internal/schema"
	"github.com/andyballingall/json-schema-validator/internal/validator"
)

// ValidateParams carries the per-run options of the validate command.
type ValidateParams struct {
	SchemaPath      string   // The schema to validate against
	DocPaths        []string // The instance documents to validate
	Verbose         bool
	Format          string // "text" or "json"; empty uses the configured default
	UseColour       bool
	ContinueOnError bool   // Validate all documents instead of stopping at the first failure
	Draft3          bool   // Force draft 3 required semantics
	BaseDir         string // Base directory for relative $ref URIs
}

// Manager defines the business logic for validation operations.
type Manager interface {
	ValidateDocuments(ctx context.Context, p ValidateParams) error
	WatchValidation(ctx context.Context, p ValidateParams, readyChan chan<- struct{}) error
}

// Ensure the interface is satisfied.
var _ Manager = (*LazyManager)(nil)

// LazyManager acts as a placeholder for a real Manager implementation, allowing
// for deferred initialization of dependencies.
type LazyManager struct {
	inner Manager
}

func (l *LazyManager) SetInner(m Manager) {
	l.inner = m
}

// HasInner returns true if the inner manager has been set.
// This is used by PersistentPreRunE to skip initialization if already configured (e.g., in tests).
func (l *LazyManager) HasInner() bool {
	return l.inner != nil
}

func (l *LazyManager) check() Manager {
	if l.inner == nil {
		panic("LazyManager accessed before initialization; check command wiring.")
	}
	return l.inner
}

func (l *LazyManager) ValidateDocuments(ctx context.Context, p ValidateParams) error {
	return l.check().ValidateDocuments(ctx, p)
}

func (l *LazyManager) WatchValidation(ctx context.Context, p ValidateParams, readyChan chan<- struct{}) error {
	return l.check().WatchValidation(ctx, p, readyChan)
}

// Ensure the interface is satisfied.
var _ Manager = (*CLIManager)(nil)

// CLIManager is the concrete implementation of the Manager interface.
type CLIManager struct {
	logger *slog.Logger
	config *config.Config
	out    io.Writer
}

func NewCLIManager(l *slog.Logger, cfg *config.Config, out io.Writer) *CLIManager {
	return &CLIManager{
		logger: l,
		config: cfg,
		out:    out,
	}
}

// ValidateDocuments validates each instance document against the schema and
// writes a report. It returns a ValidationFailedError if any document failed.
func (m *CLIManager) ValidateDocuments(ctx context.Context, p ValidateParams) error {
	if p.SchemaPath == "" {
		return &NoSchemaError{}
	}
	if len(p.DocPaths) == 0 {
		return &NoDocumentsError{}
	}

	result, err := m.runValidation(ctx, p)
	if err != nil {
		return err
	}

	if rErr := m.writeReport(result, p); rErr != nil {
		return rErr
	}

	if failed := result.Failed(); failed > 0 {
		return &ValidationFailedError{Failed: failed}
	}
	return nil
}

func (m *CLIManager) runValidation(ctx context.Context, p ValidateParams) (*report.Result, error) {
	result := &report.Result{SchemaPath: p.SchemaPath, StartTime: time.Now()}
	defer func() { result.EndTime = time.Now() }()

	schemaDoc, draft, err := schema.ReadSchema(p.SchemaPath)
	if err != nil {
		return nil, err
	}

	store := schema.NewStore(m.baseDir(p))

	v, err := validator.New(schemaDoc, &validator.Options{
		RefResolver:    store.Resolve,
		Draft3Required: m.useDraft3(p, draft),
		Diagnostics:    m.logger,
	})
	if err != nil {
		return nil, schema.InvalidJSONSchemaError{Path: p.SchemaPath, Wrapped: err}
	}

	for _, docPath := range p.DocPaths {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		doc, rErr := schema.ReadDocument(docPath)
		if rErr != nil {
			return nil, rErr
		}

		vErr := v.Validate(doc)
		result.Docs = append(result.Docs, report.DocResult{Path: docPath, Err: vErr})
		m.logger.Debug("validated document", "path", docPath, "valid", vErr == nil)

		if vErr != nil && !p.ContinueOnError {
			break
		}
	}

	return result, nil
}

// baseDir decides where relative $ref URIs resolve: the flag wins, then the
// configured directory, then the schema's own directory.
func (m *CLIManager) baseDir(p ValidateParams) string {
	if p.BaseDir != "" {
		return p.BaseDir
	}
	if m.config.SchemaBaseDir != "" {
		return m.config.SchemaBaseDir
	}
	return filepath.Dir(p.SchemaPath)
}

// useDraft3 decides the required-collection semantics: the flag wins, then the
// schema's own $schema declaration, then the configured default.
func (m *CLIManager) useDraft3(p ValidateParams, declared validator.Draft) bool {
	if p.Draft3 {
		return true
	}
	if declared != "" {
		return declared == validator.Draft3
	}
	return m.config.DefaultDraft == validator.Draft3
}

func (m *CLIManager) writeReport(result *report.Result, p ValidateParams) error {
	format := p.Format
	if format == "" {
		format = m.config.Output
	}

	var reporter report.Reporter
	if format == "json" {
		reporter = &report.JSONReporter{}
	} else {
		reporter = &report.TextReporter{Verbose: p.Verbose, UseColour: p.UseColour}
	}
	return reporter.Write(m.out, result)
}

// WatchValidation runs an initial validation, then revalidates whenever the
// schema or one of the documents changes. It blocks until the context is
// cancelled. Validation failures are reported but do not stop the watch.
func (m *CLIManager) WatchValidation(ctx context.Context, p ValidateParams, readyChan chan<- struct{}) error {
	runOnce := func() {
		var failed *ValidationFailedError
		if err := m.ValidateDocuments(ctx, p); err != nil && !errors.As(err, &failed) {
			m.logger.Error("validation run failed", "error", err)
		}
	}

	runOnce()

	watcher := schema.NewWatcher(p.SchemaPath, p.DocPaths, m.logger)
	if readyChan != nil {
		go func() {
			<-watcher.Ready
			close(readyChan)
		}()
	}

	return watcher.Watch(ctx, func(ev schema.WatchEvent) {
		m.logger.Info("change detected, revalidating", "path", ev.Path)
		runOnce()
	})
}
