package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mbriand/railgo/internal/domain"
	"github.com/mbriand/railgo/internal/platform/logger"
	"github.com/mbriand/railgo/internal/store"
)

// PostgresTrainStore implements store.TrainStore on PostgreSQL.
type PostgresTrainStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTrainStore creates a new PostgreSQL implementation of the
// TrainStore interface.
func NewPostgresTrainStore(db store.DBTX, logger *slog.Logger) *PostgresTrainStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTrainStore{
		db:     db,
		logger: logger.With(slog.String("component", "train_store")),
	}
}

var _ store.TrainStore = (*PostgresTrainStore)(nil)

const trainColumns = `id, name, start_station, end_station, time_of_departure, time_of_arrival, created_at, updated_at`

func scanTrain(row interface{ Scan(dest ...any) error }) (*domain.Train, error) {
	var train domain.Train
	err := row.Scan(
		&train.ID,
		&train.Name,
		&train.StartStation,
		&train.EndStation,
		&train.TimeOfDeparture,
		&train.TimeOfArrival,
		&train.CreatedAt,
		&train.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &train, nil
}

// Create implements store.TrainStore.Create.
// Returns store.ErrStationNotFound if either referenced station vanished
// between the handler's existence check and the insert.
func (s *PostgresTrainStore) Create(ctx context.Context, train *domain.Train) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := train.Validate(); err != nil {
		log.Warn("train validation failed during create",
			slog.String("error", err.Error()),
			slog.Int64("train_id", train.ID))
		return err
	}

	query := `
		INSERT INTO trains (id, name, start_station, end_station, time_of_departure, time_of_arrival, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		train.ID,
		train.Name,
		train.StartStation,
		train.EndStation,
		train.TimeOfDeparture,
		train.TimeOfArrival,
		train.CreatedAt,
		train.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during train creation",
				slog.Int64("train_id", train.ID),
				slog.Int64("start_station", train.StartStation),
				slog.Int64("end_station", train.EndStation))
			return fmt.Errorf("%w: referenced by train %d", store.ErrStationNotFound, train.ID)
		}
		log.Error("failed to create train",
			slog.String("error", err.Error()),
			slog.Int64("train_id", train.ID))
		return err
	}

	log.Info("train created",
		slog.Int64("train_id", train.ID),
		slog.String("name", train.Name))
	return nil
}

// GetByID implements store.TrainStore.GetByID.
func (s *PostgresTrainStore) GetByID(ctx context.Context, id int64) (*domain.Train, error) {
	query := `SELECT ` + trainColumns + ` FROM trains WHERE id = $1`

	train, err := scanTrain(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTrainNotFound
		}
		return nil, err
	}
	return train, nil
}

// List implements store.TrainStore.List.
func (s *PostgresTrainStore) List(ctx context.Context, filter store.TrainFilter) ([]*domain.Train, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	limit := filter.Limit
	if limit <= 0 {
		limit = store.DefaultTrainLimit
	}

	query := `SELECT ` + trainColumns + ` FROM trains WHERE 1=1`
	args := []any{}
	if filter.Name != "" {
		args = append(args, filter.Name)
		query += placeholderClause(` AND name = `, len(args))
	}
	if filter.StartStation > 0 {
		args = append(args, filter.StartStation)
		query += placeholderClause(` AND start_station = `, len(args))
	}
	if filter.EndStation > 0 {
		args = append(args, filter.EndStation)
		query += placeholderClause(` AND end_station = `, len(args))
	}
	if !filter.TimeOfDeparture.IsZero() {
		args = append(args, filter.TimeOfDeparture)
		query += placeholderClause(` AND time_of_departure = `, len(args))
	}
	if !filter.TimeOfArrival.IsZero() {
		args = append(args, filter.TimeOfArrival)
		query += placeholderClause(` AND time_of_arrival = `, len(args))
	}
	args = append(args, limit)
	query += ` ORDER BY id` + placeholderClause(` LIMIT `, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list trains", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(rows, log)

	trains := []*domain.Train{}
	for rows.Next() {
		train, err := scanTrain(rows)
		if err != nil {
			return nil, err
		}
		trains = append(trains, train)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return trains, nil
}

// Update implements store.TrainStore.Update.
func (s *PostgresTrainStore) Update(ctx context.Context, train *domain.Train) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := train.Validate(); err != nil {
		log.Warn("train validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("train_id", train.ID))
		return err
	}

	query := `
		UPDATE trains
		SET name = $1, start_station = $2, end_station = $3, time_of_departure = $4, time_of_arrival = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		train.Name,
		train.StartStation,
		train.EndStation,
		train.TimeOfDeparture,
		train.TimeOfArrival,
		time.Now().UTC(),
		train.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: referenced by train %d", store.ErrStationNotFound, train.ID)
		}
		log.Error("failed to update train",
			slog.String("error", err.Error()),
			slog.Int64("train_id", train.ID))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrTrainNotFound
	}

	log.Info("train updated", slog.Int64("train_id", train.ID))
	return nil
}

// Delete implements store.TrainStore.Delete.
func (s *PostgresTrainStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM trains WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete train",
			slog.String("error", err.Error()),
			slog.Int64("train_id", id))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrTrainNotFound
	}

	log.Info("train deleted", slog.Int64("train_id", id))
	return nil
}
