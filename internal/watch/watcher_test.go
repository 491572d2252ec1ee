package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsage/docsage/internal/store"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestWatcher_IngestsCreatedFile(t *testing.T) {
	st := newTestStore(t)
	dir := t.TempDir()

	w, err := New(st, nil)
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() }) //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, dir) }()

	// Give the watcher a moment to register before creating the file.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("Quarterly revenue grew in every region."), 0o644))

	require.Eventually(t, func() bool {
		docs, err := st.ListDocuments(context.Background(), store.DocumentFilter{})
		return err == nil && len(docs) == 1
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	docs, err := st.ListDocuments(context.Background(), store.DocumentFilter{})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "notes.txt", docs[0].Filename)
}

func TestWatcher_IgnoresUnsupportedFiles(t *testing.T) {
	st := newTestStore(t)
	dir := t.TempDir()

	w, err := New(st, nil)
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() }) //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, dir) }()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "image.png"), []byte("binary"), 0o644))

	// Never ingested; give the event loop time to see and skip it.
	time.Sleep(300 * time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	docs, err := st.ListDocuments(context.Background(), store.DocumentFilter{})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestWatcher_MissingDirectory(t *testing.T) {
	st := newTestStore(t)

	w, err := New(st, nil)
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() }) //nolint:errcheck

	err = w.Run(context.Background(), filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}
