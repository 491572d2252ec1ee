package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/docsage/docsage/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

var _ Store = (*PostgresStore)(nil)

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS documents (
	id          TEXT PRIMARY KEY,
	filename    TEXT NOT NULL,
	file_type   TEXT NOT NULL,
	content     TEXT NOT NULL,
	word_count  INTEGER NOT NULL,
	char_count  INTEGER NOT NULL,
	summary     TEXT NOT NULL DEFAULT '',
	uploaded_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS conversation_turns (
	seq           BIGSERIAL PRIMARY KEY,
	document_id   TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	question      TEXT NOT NULL,
	answer        TEXT NOT NULL,
	justification TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_documents_uploaded_at ON documents(uploaded_at);
CREATE INDEX IF NOT EXISTS idx_conversation_turns_document_id ON conversation_turns(document_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) PutDocument(ctx context.Context, doc *model.Document) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO documents (id, filename, file_type, content, word_count, char_count, summary, uploaded_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET
			filename = EXCLUDED.filename,
			file_type = EXCLUDED.file_type,
			content = EXCLUDED.content,
			word_count = EXCLUDED.word_count,
			char_count = EXCLUDED.char_count,
			summary = EXCLUDED.summary,
			uploaded_at = EXCLUDED.uploaded_at`,
		doc.ID, doc.Filename, doc.FileType, doc.Text, doc.WordCount, doc.CharCount, doc.Summary, doc.UploadedAt,
	)
	return eris.Wrapf(err, "postgres: put document %s", doc.ID)
}

func (s *PostgresStore) GetDocument(ctx context.Context, id string) (*model.Document, error) {
	var doc model.Document
	err := s.pool.QueryRow(ctx,
		`SELECT id, filename, file_type, content, word_count, char_count, summary, uploaded_at
		 FROM documents WHERE id = $1`,
		id,
	).Scan(&doc.ID, &doc.Filename, &doc.FileType, &doc.Text, &doc.WordCount, &doc.CharCount, &doc.Summary, &doc.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrapf(err, "postgres: get document %s", id)
	}
	return &doc, nil
}

func (s *PostgresStore) DeleteDocument(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete document %s", id)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListDocuments(ctx context.Context, filter DocumentFilter) ([]model.DocumentInfo, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, filename, file_type, word_count, char_count, summary, uploaded_at
		 FROM documents ORDER BY uploaded_at DESC LIMIT $1 OFFSET $2`,
		limit, filter.Offset,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list documents")
	}
	defer rows.Close()

	var docs []model.DocumentInfo
	for rows.Next() {
		var d model.DocumentInfo
		if err := rows.Scan(&d.ID, &d.Filename, &d.FileType, &d.WordCount, &d.CharCount, &d.Summary, &d.UploadedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan document")
		}
		docs = append(docs, d)
	}
	return docs, eris.Wrap(rows.Err(), "postgres: list documents iterate")
}

func (s *PostgresStore) UpdateSummary(ctx context.Context, id, summary string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE documents SET summary = $1 WHERE id = $2`,
		summary, id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update summary %s", id)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) AppendTurn(ctx context.Context, turn model.ConversationTurn) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO conversation_turns (document_id, question, answer, justification, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		turn.DocumentID, turn.Question, turn.Answer, turn.Justification, turn.CreatedAt,
	)
	return eris.Wrapf(err, "postgres: append turn for %s", turn.DocumentID)
}

// RecentTurns returns the last limit turns for a document in chronological
// order, oldest first.
func (s *PostgresStore) RecentTurns(ctx context.Context, documentID string, limit int) ([]model.ConversationTurn, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.pool.Query(ctx,
		`SELECT document_id, question, answer, justification, created_at
		 FROM conversation_turns WHERE document_id = $1
		 ORDER BY seq DESC LIMIT $2`,
		documentID, limit,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: recent turns for %s", documentID)
	}
	defer rows.Close()

	var turns []model.ConversationTurn
	for rows.Next() {
		var t model.ConversationTurn
		if err := rows.Scan(&t.DocumentID, &t.Question, &t.Answer, &t.Justification, &t.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan turn")
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: recent turns iterate")
	}

	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}
