package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsage/docsage/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func TestPostgresStore_GetDocument_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, filename, file_type, content, word_count, char_count, summary, uploaded_at`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetDocument_ScansRow(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	uploaded := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, filename, file_type, content, word_count, char_count, summary, uploaded_at`).
		WithArgs("doc-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "filename", "file_type", "content", "word_count", "char_count", "summary", "uploaded_at"}).
			AddRow("doc-1", "report.txt", "txt", "Body text.", 2, 10, "A summary.", uploaded))

	got, err := s.GetDocument(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "report.txt", got.Filename)
	assert.Equal(t, "Body text.", got.Text)
	assert.Equal(t, uploaded, got.UploadedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_PutDocument_Upsert(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO documents .+ ON CONFLICT \(id\) DO UPDATE`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	doc := &model.Document{ID: "doc-1", Filename: "report.txt", FileType: "txt", Text: "Body.", UploadedAt: time.Now().UTC()}
	err := s.PutDocument(context.Background(), doc)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeleteDocument_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`DELETE FROM documents WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := s.DeleteDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateSummary_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE documents SET summary = \$1 WHERE id = \$2`).
		WithArgs("text", "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.UpdateSummary(context.Background(), "missing", "text")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_RecentTurns_ReversesToChronological(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	now := time.Now().UTC()

	// Rows come back newest first.
	mock.ExpectQuery(`SELECT document_id, question, answer, justification, created_at`).
		WithArgs("doc-1", 3).
		WillReturnRows(pgxmock.NewRows([]string{"document_id", "question", "answer", "justification", "created_at"}).
			AddRow("doc-1", "third?", "c", "", now).
			AddRow("doc-1", "second?", "b", "", now).
			AddRow("doc-1", "first?", "a", "", now))

	turns, err := s.RecentTurns(context.Background(), "doc-1", 3)
	require.NoError(t, err)
	require.Len(t, turns, 3)
	assert.Equal(t, "first?", turns[0].Question)
	assert.Equal(t, "third?", turns[2].Question)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_AppendTurn(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO conversation_turns`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.AppendTurn(context.Background(), model.ConversationTurn{
		DocumentID: "doc-1", Question: "q?", Answer: "a", CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS documents`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
