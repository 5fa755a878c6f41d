package schema

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestWatcherReportsSchemaChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "s.json", `{"type":"object"}`)
	docPath := writeFile(t, dir, "doc.json", `{}`)

	w := NewWatcher(schemaPath, []string{docPath}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan WatchEvent, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Watch(ctx, func(ev WatchEvent) {
			select {
			case events <- ev:
			default:
			}
		})
	}()

	<-w.Ready
	require.NoError(t, os.WriteFile(schemaPath, []byte(`{"type":"array"}`), 0o600))

	select {
	case ev := <-events:
		assert.True(t, ev.IsSchema)
		assert.Equal(t, filepath.Clean(schemaPath), ev.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch event")
	}

	cancel()
	<-done
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "s.json", `{"type":"object"}`)

	w := NewWatcher(schemaPath, nil, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan WatchEvent, 4)
	go func() {
		_ = w.Watch(ctx, func(ev WatchEvent) { events <- ev })
	}()

	<-w.Ready
	writeFile(t, dir, "unrelated.json", `{}`)

	select {
	case ev := <-events:
		t.Fatalf("unexpected event for %s", ev.Path)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcherStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "s.json", `{}`)

	w := NewWatcher(schemaPath, nil, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	errC := make(chan error, 1)
	go func() {
		errC <- w.Watch(ctx, func(WatchEvent) {})
	}()

	<-w.Ready
	cancel()

	select {
	case err := <-errC:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
