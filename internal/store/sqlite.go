package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/docsage/docsage/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS documents (
	id          TEXT PRIMARY KEY,
	filename    TEXT NOT NULL,
	file_type   TEXT NOT NULL,
	content     TEXT NOT NULL,
	word_count  INTEGER NOT NULL,
	char_count  INTEGER NOT NULL,
	summary     TEXT NOT NULL DEFAULT '',
	uploaded_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS conversation_turns (
	seq           INTEGER PRIMARY KEY AUTOINCREMENT,
	document_id   TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	question      TEXT NOT NULL,
	answer        TEXT NOT NULL,
	justification TEXT NOT NULL DEFAULT '',
	created_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_documents_uploaded_at ON documents(uploaded_at);
CREATE INDEX IF NOT EXISTS idx_conversation_turns_document_id ON conversation_turns(document_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) PutDocument(ctx context.Context, doc *model.Document) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO documents (id, filename, file_type, content, word_count, char_count, summary, uploaded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.Filename, doc.FileType, doc.Text, doc.WordCount, doc.CharCount, doc.Summary, doc.UploadedAt,
	)
	return eris.Wrapf(err, "sqlite: put document %s", doc.ID)
}

func (s *SQLiteStore) GetDocument(ctx context.Context, id string) (*model.Document, error) {
	var doc model.Document
	err := s.db.QueryRowContext(ctx,
		`SELECT id, filename, file_type, content, word_count, char_count, summary, uploaded_at
		 FROM documents WHERE id = ?`,
		id,
	).Scan(&doc.ID, &doc.Filename, &doc.FileType, &doc.Text, &doc.WordCount, &doc.CharCount, &doc.Summary, &doc.UploadedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrapf(err, "sqlite: get document %s", id)
	}
	return &doc, nil
}

func (s *SQLiteStore) DeleteDocument(ctx context.Context, id string) error {
	// The foreign_keys pragma is per-connection and database/sql pools
	// connections, so cascade is done explicitly.
	if _, err := s.db.ExecContext(ctx, `DELETE FROM conversation_turns WHERE document_id = ?`, id); err != nil {
		return eris.Wrapf(err, "sqlite: delete turns for %s", id)
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete document %s", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) ListDocuments(ctx context.Context, filter DocumentFilter) ([]model.DocumentInfo, error) {
	query := `SELECT id, filename, file_type, word_count, char_count, summary, uploaded_at
		 FROM documents ORDER BY uploaded_at DESC LIMIT ?`
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args := []any{limit}
	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list documents")
	}
	defer rows.Close()

	var docs []model.DocumentInfo
	for rows.Next() {
		var d model.DocumentInfo
		if err := rows.Scan(&d.ID, &d.Filename, &d.FileType, &d.WordCount, &d.CharCount, &d.Summary, &d.UploadedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan document")
		}
		docs = append(docs, d)
	}
	return docs, eris.Wrap(rows.Err(), "sqlite: list documents iterate")
}

func (s *SQLiteStore) UpdateSummary(ctx context.Context, id, summary string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE documents SET summary = ? WHERE id = ?`,
		summary, id,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update summary %s", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) AppendTurn(ctx context.Context, turn model.ConversationTurn) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversation_turns (document_id, question, answer, justification, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		turn.DocumentID, turn.Question, turn.Answer, turn.Justification, turn.CreatedAt,
	)
	return eris.Wrapf(err, "sqlite: append turn for %s", turn.DocumentID)
}

// RecentTurns returns the last limit turns for a document in chronological
// order, oldest first.
func (s *SQLiteStore) RecentTurns(ctx context.Context, documentID string, limit int) ([]model.ConversationTurn, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT document_id, question, answer, justification, created_at
		 FROM conversation_turns WHERE document_id = ?
		 ORDER BY seq DESC LIMIT ?`,
		documentID, limit,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: recent turns for %s", documentID)
	}
	defer rows.Close()

	var turns []model.ConversationTurn
	for rows.Next() {
		var t model.ConversationTurn
		if err := rows.Scan(&t.DocumentID, &t.Question, &t.Answer, &t.Justification, &t.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan turn")
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrapf(err, "sqlite: recent turns iterate")
	}

	// Query walks newest-first; flip back to chronological order.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}
