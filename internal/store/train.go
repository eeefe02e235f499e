package store

import (
	"context"
	"time"

	"github.com/mbriand/railgo/internal/domain"
)

// DefaultTrainLimit bounds train listings when the caller does not ask
// for a specific limit.
const DefaultTrainLimit = 10

// TrainFilter restricts List results. Zero-valued fields are ignored;
// non-zero fields are matched by equality. Limit falls back to
// DefaultTrainLimit when not positive.
type TrainFilter struct {
	Name            string
	StartStation    int64
	EndStation      int64
	TimeOfDeparture time.Time
	TimeOfArrival   time.Time
	Limit           int
}

// TrainStore defines the interface for train persistence.
type TrainStore interface {
	// Create saves a new train. The train must already carry its
	// allocated ID, and both referenced stations must exist.
	Create(ctx context.Context, train *domain.Train) error

	// GetByID retrieves a train by ID.
	// Returns ErrTrainNotFound if the train does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Train, error)

	// List retrieves trains matching the filter, by ascending ID, capped
	// at the filter's limit.
	List(ctx context.Context, filter TrainFilter) ([]*domain.Train, error)

	// Update overwrites an existing train's mutable fields.
	// Returns ErrTrainNotFound if the train does not exist.
	Update(ctx context.Context, train *domain.Train) error

	// Delete removes a train by ID. Tickets referencing the train are
	// removed by the schema's cascading foreign key.
	// Returns ErrTrainNotFound if the train does not exist.
	Delete(ctx context.Context, id int64) error
}
