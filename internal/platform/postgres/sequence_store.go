package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mbriand/railgo/internal/platform/logger"
	"github.com/mbriand/railgo/internal/store"
)

// PostgresSequenceStore implements store.SequenceStore on the counters
// table. Every entity identifier in the system comes out of here.
type PostgresSequenceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSequenceStore creates a new PostgreSQL implementation of the
// SequenceStore interface.
func NewPostgresSequenceStore(db store.DBTX, logger *slog.Logger) *PostgresSequenceStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSequenceStore{
		db:     db,
		logger: logger.With(slog.String("component", "sequence_store")),
	}
}

var _ store.SequenceStore = (*PostgresSequenceStore)(nil)

// Next implements store.SequenceStore.Next.
//
// The increment-or-create runs as a single statement so two concurrent
// callers can never read the same value: the row lock taken by the upsert
// serializes them, and RETURNING hands each caller its own value. This is
// the only read-modify-write on shared state in the system; it must never
// be split into a SELECT followed by an UPDATE.
func (s *PostgresSequenceStore) Next(ctx context.Context, name string) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO counters (name, value)
		VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
		RETURNING value
	`

	var value int64
	if err := s.db.QueryRowContext(ctx, query, name).Scan(&value); err != nil {
		log.Error("failed to allocate sequence value",
			slog.String("error", err.Error()),
			slog.String("sequence", name))
		return 0, fmt.Errorf("failed to allocate next value for sequence %q: %w", name, err)
	}

	log.Debug("allocated sequence value",
		slog.String("sequence", name),
		slog.Int64("value", value))
	return value, nil
}
