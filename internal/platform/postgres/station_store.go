package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/mbriand/railgo/internal/domain"
	"github.com/mbriand/railgo/internal/platform/logger"
	"github.com/mbriand/railgo/internal/store"
)

// PostgresStationStore implements store.StationStore on PostgreSQL.
// Unlike the other stores it holds a *sql.DB rather than a DBTX: the
// cascade delete needs to open its own transaction.
type PostgresStationStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresStationStore creates a new PostgreSQL implementation of the
// StationStore interface.
func NewPostgresStationStore(db *sql.DB, logger *slog.Logger) *PostgresStationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresStationStore{
		db:     db,
		logger: logger.With(slog.String("component", "station_store")),
	}
}

var _ store.StationStore = (*PostgresStationStore)(nil)

const stationColumns = `id, name, open_hour, close_hour, image, created_at, updated_at`

func scanStation(row interface{ Scan(dest ...any) error }) (*domain.Station, error) {
	var station domain.Station
	var image sql.NullString
	err := row.Scan(
		&station.ID,
		&station.Name,
		&station.OpenHour,
		&station.CloseHour,
		&image,
		&station.CreatedAt,
		&station.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	station.Image = image.String
	return &station, nil
}

// nullableImage maps an empty image path to SQL NULL.
func nullableImage(image string) sql.NullString {
	return sql.NullString{String: image, Valid: image != ""}
}

// Create implements store.StationStore.Create.
func (s *PostgresStationStore) Create(ctx context.Context, station *domain.Station) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := station.Validate(); err != nil {
		log.Warn("station validation failed during create",
			slog.String("error", err.Error()),
			slog.Int64("station_id", station.ID))
		return err
	}

	query := `
		INSERT INTO stations (id, name, open_hour, close_hour, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		station.ID,
		station.Name,
		station.OpenHour,
		station.CloseHour,
		nullableImage(station.Image),
		station.CreatedAt,
		station.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create station",
			slog.String("error", err.Error()),
			slog.Int64("station_id", station.ID))
		return err
	}

	log.Info("station created",
		slog.Int64("station_id", station.ID),
		slog.String("name", station.Name))
	return nil
}

// GetByID implements store.StationStore.GetByID.
func (s *PostgresStationStore) GetByID(ctx context.Context, id int64) (*domain.Station, error) {
	query := `SELECT ` + stationColumns + ` FROM stations WHERE id = $1`

	station, err := scanStation(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrStationNotFound
		}
		return nil, err
	}
	return station, nil
}

// GetByName implements store.StationStore.GetByName.
func (s *PostgresStationStore) GetByName(ctx context.Context, name string) (*domain.Station, error) {
	// Station names are not unique in the schema; take the oldest match,
	// which is what train creation resolves against.
	query := `SELECT ` + stationColumns + ` FROM stations WHERE name = $1 ORDER BY id LIMIT 1`

	station, err := scanStation(s.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrStationNotFound
		}
		return nil, err
	}
	return station, nil
}

// List implements store.StationStore.List.
func (s *PostgresStationStore) List(ctx context.Context, filter store.StationFilter) ([]*domain.Station, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + stationColumns + ` FROM stations WHERE 1=1`
	args := []any{}
	if filter.Name != "" {
		args = append(args, filter.Name)
		query += placeholderClause(` AND name = `, len(args))
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list stations", slog.String("error", err.Error()))
		return nil, err
	}
	defer closeRows(rows, log)

	stations := []*domain.Station{}
	for rows.Next() {
		station, err := scanStation(rows)
		if err != nil {
			return nil, err
		}
		stations = append(stations, station)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stations, nil
}

// Update implements store.StationStore.Update.
func (s *PostgresStationStore) Update(ctx context.Context, station *domain.Station) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := station.Validate(); err != nil {
		log.Warn("station validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("station_id", station.ID))
		return err
	}

	query := `
		UPDATE stations
		SET name = $1, open_hour = $2, close_hour = $3, image = $4, updated_at = $5
		WHERE id = $6
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		station.Name,
		station.OpenHour,
		station.CloseHour,
		nullableImage(station.Image),
		time.Now().UTC(),
		station.ID,
	)
	if err != nil {
		log.Error("failed to update station",
			slog.String("error", err.Error()),
			slog.Int64("station_id", station.ID))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return store.ErrStationNotFound
	}

	log.Info("station updated", slog.Int64("station_id", station.ID))
	return nil
}

// Delete implements store.StationStore.Delete.
//
// Trains are routes between stations: once a station is gone, any train
// that starts or ends there is dangling, so they go in the same
// transaction. Tickets for those trains are removed by the schema's
// cascading foreign key.
func (s *PostgresStationStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		trainResult, err := tx.ExecContext(
			ctx,
			`DELETE FROM trains WHERE start_station = $1 OR end_station = $1`,
			id,
		)
		if err != nil {
			log.Error("failed to delete dependent trains",
				slog.String("error", err.Error()),
				slog.Int64("station_id", id))
			return err
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM stations WHERE id = $1`, id)
		if err != nil {
			log.Error("failed to delete station",
				slog.String("error", err.Error()),
				slog.Int64("station_id", id))
			return err
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			return store.ErrStationNotFound
		}

		trainsDeleted, err := trainResult.RowsAffected()
		if err != nil {
			return err
		}

		log.Info("station deleted with dependent trains",
			slog.Int64("station_id", id),
			slog.Int64("trains_deleted", trainsDeleted))
		return nil
	})
}
