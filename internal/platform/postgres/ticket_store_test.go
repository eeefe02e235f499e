package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/mbriand/railgo/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validateQuery = `
		UPDATE tickets
		SET validated = TRUE, validation_date = $1
		WHERE id = $2 AND validated = FALSE
	`

func TestTicketValidateTransitions(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	id := uuid.New()
	at := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta(validateQuery)).
		WithArgs(at, id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := NewPostgresTicketStore(db, nil)
	require.NoError(t, s.Validate(context.Background(), id, at))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketValidateAlreadyValidated(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	id := uuid.New()
	at := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	earlier := at.Add(-time.Hour)

	// The guarded UPDATE matches nothing, the follow-up read finds the
	// ticket already validated.
	mock.ExpectExec(regexp.QuoteMeta(validateQuery)).
		WithArgs(at, id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT .+ FROM tickets WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "user_id", "train_id", "validated", "validation_date", "created_at"},
		).AddRow(id, int64(3), int64(12), true, earlier, earlier.Add(-time.Hour)))

	s := NewPostgresTicketStore(db, nil)
	err = s.Validate(context.Background(), id, at)
	assert.ErrorIs(t, err, store.ErrAlreadyValidated)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketValidateUnknownTicket(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	id := uuid.New()
	at := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta(validateQuery)).
		WithArgs(at, id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT .+ FROM tickets WHERE id = \$1`).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	s := NewPostgresTicketStore(db, nil)
	err = s.Validate(context.Background(), id, at)
	assert.ErrorIs(t, err, store.ErrTicketNotFound)
}

func TestTicketGetOldestByUserAndTrain(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	id := uuid.New()
	created := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .+ FROM tickets\s+WHERE user_id = \$1 AND train_id = \$2\s+ORDER BY validated, created_at\s+LIMIT 1`).
		WithArgs(int64(3), int64(12)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "user_id", "train_id", "validated", "validation_date", "created_at"},
		).AddRow(id, int64(3), int64(12), false, nil, created))

	s := NewPostgresTicketStore(db, nil)
	ticket, err := s.GetOldestByUserAndTrain(context.Background(), 3, 12)
	require.NoError(t, err)

	assert.Equal(t, id, ticket.ID)
	assert.False(t, ticket.Validated)
	assert.Nil(t, ticket.ValidationDate)
}
