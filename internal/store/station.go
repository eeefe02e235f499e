package store

import (
	"context"

	"github.com/mbriand/railgo/internal/domain"
)

// StationFilter restricts List results. Zero-valued fields are ignored.
type StationFilter struct {
	Name string
}

// StationStore defines the interface for station persistence.
type StationStore interface {
	// Create saves a new station. The station must already carry its
	// allocated ID.
	Create(ctx context.Context, station *domain.Station) error

	// GetByID retrieves a station by ID.
	// Returns ErrStationNotFound if the station does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Station, error)

	// GetByName retrieves a station by exact name.
	// Returns ErrStationNotFound if no station has that name.
	GetByName(ctx context.Context, name string) (*domain.Station, error)

	// List retrieves stations matching the filter, by ascending ID.
	List(ctx context.Context, filter StationFilter) ([]*domain.Station, error)

	// Update overwrites an existing station's mutable fields.
	// Returns ErrStationNotFound if the station does not exist.
	Update(ctx context.Context, station *domain.Station) error

	// Delete removes the station and every train that references it as
	// either endpoint, as a single transaction. From the caller's
	// perspective this is one logical operation: partial failure leaves
	// the store untouched.
	// Returns ErrStationNotFound if the station does not exist.
	Delete(ctx context.Context, id int64) error
}
