package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsage/docsage/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func testDocument(id string) *model.Document {
	return &model.Document{
		ID:         id,
		Filename:   "report.txt",
		FileType:   "txt",
		Text:       "The annual report covers revenue and headcount.",
		WordCount:  7,
		CharCount:  47,
		UploadedAt: time.Now().UTC().Truncate(time.Second),
	}
}

// --- Documents ---

func TestSQLite_PutAndGetDocument(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	doc := testDocument("doc-1")
	require.NoError(t, st.PutDocument(ctx, doc))

	got, err := st.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, doc.Filename, got.Filename)
	assert.Equal(t, doc.Text, got.Text)
	assert.Equal(t, doc.WordCount, got.WordCount)
}

func TestSQLite_GetDocument_NotFound(t *testing.T) {
	st := newTestSQLiteStore(t)

	_, err := st.GetDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_PutDocument_ReplacesExisting(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	doc := testDocument("doc-1")
	require.NoError(t, st.PutDocument(ctx, doc))

	doc.Summary = "Updated summary."
	require.NoError(t, st.PutDocument(ctx, doc))

	got, err := st.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "Updated summary.", got.Summary)
}

func TestSQLite_DeleteDocument(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.PutDocument(ctx, testDocument("doc-1")))
	require.NoError(t, st.DeleteDocument(ctx, "doc-1"))

	_, err := st.GetDocument(ctx, "doc-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_DeleteDocument_NotFound(t *testing.T) {
	st := newTestSQLiteStore(t)

	err := st.DeleteDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_DeleteDocument_CascadesTurns(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.PutDocument(ctx, testDocument("doc-1")))
	require.NoError(t, st.AppendTurn(ctx, model.ConversationTurn{
		DocumentID: "doc-1", Question: "q?", Answer: "a", CreatedAt: time.Now().UTC(),
	}))
	require.NoError(t, st.DeleteDocument(ctx, "doc-1"))

	turns, err := st.RecentTurns(ctx, "doc-1", 10)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestSQLite_ListDocuments(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	for i := range 3 {
		doc := testDocument(fmt.Sprintf("doc-%d", i))
		doc.UploadedAt = time.Date(2026, 1, 1+i, 0, 0, 0, 0, time.UTC)
		require.NoError(t, st.PutDocument(ctx, doc))
	}

	docs, err := st.ListDocuments(ctx, DocumentFilter{})
	require.NoError(t, err)
	require.Len(t, docs, 3)
	// Newest first.
	assert.Equal(t, "doc-2", docs[0].ID)
	assert.Equal(t, "doc-0", docs[2].ID)
}

func TestSQLite_ListDocuments_LimitAndOffset(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	for i := range 5 {
		doc := testDocument(fmt.Sprintf("doc-%d", i))
		doc.UploadedAt = time.Date(2026, 1, 1+i, 0, 0, 0, 0, time.UTC)
		require.NoError(t, st.PutDocument(ctx, doc))
	}

	docs, err := st.ListDocuments(ctx, DocumentFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "doc-3", docs[0].ID)
	assert.Equal(t, "doc-2", docs[1].ID)
}

func TestSQLite_UpdateSummary(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.PutDocument(ctx, testDocument("doc-1")))
	require.NoError(t, st.UpdateSummary(ctx, "doc-1", "A fresh summary."))

	got, err := st.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "A fresh summary.", got.Summary)
}

func TestSQLite_UpdateSummary_NotFound(t *testing.T) {
	st := newTestSQLiteStore(t)

	err := st.UpdateSummary(context.Background(), "missing", "summary")
	assert.ErrorIs(t, err, ErrNotFound)
}

// --- Conversations ---

func TestSQLite_RecentTurns_ChronologicalWindow(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.PutDocument(ctx, testDocument("doc-1")))
	for i := range 5 {
		require.NoError(t, st.AppendTurn(ctx, model.ConversationTurn{
			DocumentID: "doc-1",
			Question:   fmt.Sprintf("question %d", i),
			Answer:     fmt.Sprintf("answer %d", i),
			CreatedAt:  time.Now().UTC(),
		}))
	}

	turns, err := st.RecentTurns(ctx, "doc-1", 3)
	require.NoError(t, err)
	require.Len(t, turns, 3)
	// Last three turns, oldest of the window first.
	assert.Equal(t, "question 2", turns[0].Question)
	assert.Equal(t, "question 4", turns[2].Question)
}

func TestSQLite_RecentTurns_Empty(t *testing.T) {
	st := newTestSQLiteStore(t)

	turns, err := st.RecentTurns(context.Background(), "doc-1", 10)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestSQLite_RecentTurns_IsolatedPerDocument(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.PutDocument(ctx, testDocument("doc-a")))
	require.NoError(t, st.PutDocument(ctx, testDocument("doc-b")))
	require.NoError(t, st.AppendTurn(ctx, model.ConversationTurn{
		DocumentID: "doc-a", Question: "about a?", Answer: "a", CreatedAt: time.Now().UTC(),
	}))
	require.NoError(t, st.AppendTurn(ctx, model.ConversationTurn{
		DocumentID: "doc-b", Question: "about b?", Answer: "b", CreatedAt: time.Now().UTC(),
	}))

	turns, err := st.RecentTurns(ctx, "doc-a", 10)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "about a?", turns[0].Question)
}
