package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mbriand/railgo/internal/domain"
	"github.com/mbriand/railgo/internal/platform/logger"
	"github.com/mbriand/railgo/internal/store"
)

// PostgresTicketStore implements store.TicketStore on PostgreSQL.
type PostgresTicketStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTicketStore creates a new PostgreSQL implementation of the
// TicketStore interface.
func NewPostgresTicketStore(db store.DBTX, logger *slog.Logger) *PostgresTicketStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTicketStore{
		db:     db,
		logger: logger.With(slog.String("component", "ticket_store")),
	}
}

var _ store.TicketStore = (*PostgresTicketStore)(nil)

const ticketColumns = `id, user_id, train_id, validated, validation_date, created_at`

func scanTicket(row interface{ Scan(dest ...any) error }) (*domain.Ticket, error) {
	var ticket domain.Ticket
	var validationDate sql.NullTime
	err := row.Scan(
		&ticket.ID,
		&ticket.UserID,
		&ticket.TrainID,
		&ticket.Validated,
		&validationDate,
		&ticket.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if validationDate.Valid {
		ticket.ValidationDate = &validationDate.Time
	}
	return &ticket, nil
}

// Create implements store.TicketStore.Create.
// Returns a wrapped not-found error if the referenced user or train
// vanished between the handler's existence checks and the insert.
func (s *PostgresTicketStore) Create(ctx context.Context, ticket *domain.Ticket) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := ticket.Validate(); err != nil {
		log.Warn("ticket validation failed during create",
			slog.String("error", err.Error()),
			slog.String("ticket_id", ticket.ID.String()))
		return err
	}

	query := `
		INSERT INTO tickets (id, user_id, train_id, validated, validation_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	var validationDate sql.NullTime
	if ticket.ValidationDate != nil {
		validationDate = sql.NullTime{Time: *ticket.ValidationDate, Valid: true}
	}

	_, err := s.db.ExecContext(
		ctx,
		query,
		ticket.ID,
		ticket.UserID,
		ticket.TrainID,
		ticket.Validated,
		validationDate,
		ticket.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during ticket creation",
				slog.String("ticket_id", ticket.ID.String()),
				slog.Int64("user_id", ticket.UserID),
				slog.Int64("train_id", ticket.TrainID))
			return fmt.Errorf("%w: referenced by ticket %s", store.ErrNotFound, ticket.ID)
		}
		log.Error("failed to create ticket",
			slog.String("error", err.Error()),
			slog.String("ticket_id", ticket.ID.String()))
		return err
	}

	log.Info("ticket created",
		slog.String("ticket_id", ticket.ID.String()),
		slog.Int64("user_id", ticket.UserID),
		slog.Int64("train_id", ticket.TrainID))
	return nil
}

// GetByID implements store.TicketStore.GetByID.
func (s *PostgresTicketStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

	ticket, err := scanTicket(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTicketNotFound
		}
		return nil, err
	}
	return ticket, nil
}

// GetOldestByUserAndTrain implements store.TicketStore.GetOldestByUserAndTrain.
func (s *PostgresTicketStore) GetOldestByUserAndTrain(
	ctx context.Context,
	userID, trainID int64,
) (*domain.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE user_id = $1 AND train_id = $2
		ORDER BY validated, created_at
		LIMIT 1
	`

	// Unvalidated tickets sort first, so as long as the pair has one left
	// it is the validation target; once all are validated the caller gets
	// a validated ticket back and reports the conflict.
	ticket, err := scanTicket(s.db.QueryRowContext(ctx, query, userID, trainID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTicketNotFound
		}
		return nil, err
	}
	return ticket, nil
}

// ListByUser implements store.TicketStore.ListByUser.
func (s *PostgresTicketStore) ListByUser(ctx context.Context, userID int64) ([]*domain.Ticket, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE user_id = $1 ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list tickets",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, err
	}
	defer closeRows(rows, log)

	tickets := []*domain.Ticket{}
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

// Validate implements store.TicketStore.Validate.
//
// The guard lives in the WHERE clause: an already-validated ticket matches
// no row, so the transition can only ever happen once even under
// concurrent validation attempts.
func (s *PostgresTicketStore) Validate(ctx context.Context, id uuid.UUID, at time.Time) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tickets
		SET validated = TRUE, validation_date = $1
		WHERE id = $2 AND validated = FALSE
	`
	result, err := s.db.ExecContext(ctx, query, at.UTC(), id)
	if err != nil {
		log.Error("failed to validate ticket",
			slog.String("error", err.Error()),
			slog.String("ticket_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		// Either the ticket is gone or it was already validated; one
		// more read tells them apart.
		ticket, getErr := s.GetByID(ctx, id)
		if getErr != nil {
			return getErr
		}
		if ticket.Validated {
			return store.ErrAlreadyValidated
		}
		return store.ErrTicketNotFound
	}

	log.Info("ticket validated", slog.String("ticket_id", id.String()))
	return nil
}
