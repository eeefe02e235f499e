package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nextValueQuery = `
		INSERT INTO counters (name, value)
		VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
		RETURNING value
	`

func TestSequenceNext(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(nextValueQuery)).
		WithArgs("userId").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta(nextValueQuery)).
		WithArgs("userId").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(int64(2)))

	s := NewPostgresSequenceStore(db, nil)

	first, err := s.Next(context.Background(), "userId")
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)

	second, err := s.Next(context.Background(), "userId")
	require.NoError(t, err)
	assert.Equal(t, int64(2), second)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSequenceNextIsSingleStatement(t *testing.T) {
	t.Parallel()

	// The allocator must not fall back to a read-then-write pair: the
	// only statement it is allowed to issue is the upsert-and-return.
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(nextValueQuery)).
		WithArgs("trainId").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(int64(41)))

	s := NewPostgresSequenceStore(db, nil)
	value, err := s.Next(context.Background(), "trainId")
	require.NoError(t, err)
	assert.Equal(t, int64(41), value)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSequenceNextPropagatesError(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	storeErr := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta(nextValueQuery)).
		WithArgs("stationId").
		WillReturnError(storeErr)

	s := NewPostgresSequenceStore(db, nil)
	_, err = s.Next(context.Background(), "stationId")
	assert.ErrorIs(t, err, storeErr)
}
