package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mbriand/railgo/internal/domain"
	"github.com/mbriand/railgo/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStationDeleteCascadesTrains(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM trains WHERE start_station = $1 OR end_station = $1`)).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM stations WHERE id = $1`)).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	s := NewPostgresStationStore(db, nil)
	require.NoError(t, s.Delete(context.Background(), 3))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStationDeleteUnknownStationRollsBack(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM trains WHERE start_station = $1 OR end_station = $1`)).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM stations WHERE id = $1`)).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	s := NewPostgresStationStore(db, nil)
	err = s.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, store.ErrStationNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStationDeleteTrainFailureRollsBack(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	boom := errors.New("deadlock detected")
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM trains WHERE start_station = $1 OR end_station = $1`)).
		WithArgs(int64(3)).
		WillReturnError(boom)
	mock.ExpectRollback()

	s := NewPostgresStationStore(db, nil)
	err = s.Delete(context.Background(), 3)
	assert.ErrorIs(t, err, boom)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStationGetByID(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	now := time.Now().UTC()
	rows := sqlmock.NewRows(
		[]string{"id", "name", "open_hour", "close_hour", "image", "created_at", "updated_at"},
	).AddRow(int64(1), "Lyon Part Dieu", "7:00", "22:00", nil, now, now)

	mock.ExpectQuery(`SELECT .+ FROM stations WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	s := NewPostgresStationStore(db, nil)
	station, err := s.GetByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Lyon Part Dieu", station.Name)
	assert.Empty(t, station.Image, "NULL image maps to empty path")
}

func TestStationListFiltersByName(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	now := time.Now().UTC()
	rows := sqlmock.NewRows(
		[]string{"id", "name", "open_hour", "close_hour", "image", "created_at", "updated_at"},
	).AddRow(int64(2), "Gare de Lyon", "5:30", "23:30", "uploads/1717000000.png", now, now)

	mock.ExpectQuery(`SELECT .+ FROM stations WHERE 1=1 AND name = \$1 ORDER BY id`).
		WithArgs("Gare de Lyon").
		WillReturnRows(rows)

	s := NewPostgresStationStore(db, nil)
	stations, err := s.List(context.Background(), store.StationFilter{Name: "Gare de Lyon"})
	require.NoError(t, err)

	require.Len(t, stations, 1)
	assert.Equal(t, "uploads/1717000000.png", stations[0].Image)
}

func TestStationCreateValidates(t *testing.T) {
	t.Parallel()

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	s := NewPostgresStationStore(db, nil)
	err = s.Create(context.Background(), &domain.Station{ID: 1, Name: "X", OpenHour: "bad", CloseHour: "7:00"})
	assert.ErrorIs(t, err, domain.ErrInvalidHour)
}
