package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/docsage/docsage/internal/model"
)

// ErrNotFound is returned when a document lookup matches nothing.
var ErrNotFound = errors.New("not found")

// DocumentFilter specifies criteria for listing documents.
type DocumentFilter struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// Store defines the persistence interface for documents and conversations.
type Store interface {
	// Documents
	PutDocument(ctx context.Context, doc *model.Document) error
	GetDocument(ctx context.Context, id string) (*model.Document, error)
	DeleteDocument(ctx context.Context, id string) error
	ListDocuments(ctx context.Context, filter DocumentFilter) ([]model.DocumentInfo, error)
	UpdateSummary(ctx context.Context, id, summary string) error

	// Conversations
	AppendTurn(ctx context.Context, turn model.ConversationTurn) error
	RecentTurns(ctx context.Context, documentID string, limit int) ([]model.ConversationTurn, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Pool abstracts the pgxpool operations used by PostgresStore. Satisfied by
// *pgxpool.Pool and by pgxmock pools in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}
