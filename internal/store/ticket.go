package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mbriand/railgo/internal/domain"
)

// TicketStore defines the interface for ticket persistence.
type TicketStore interface {
	// Create saves a new ticket. Both referenced entities must exist.
	Create(ctx context.Context, ticket *domain.Ticket) error

	// GetByID retrieves a ticket by ID.
	// Returns ErrTicketNotFound if the ticket does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error)

	// GetOldestByUserAndTrain retrieves the oldest ticket for the given
	// (user, train) pair. Duplicate tickets per pair are allowed, so
	// validation always targets the oldest one.
	// Returns ErrTicketNotFound if no ticket exists for the pair.
	GetOldestByUserAndTrain(ctx context.Context, userID, trainID int64) (*domain.Ticket, error)

	// ListByUser retrieves all tickets belonging to the given user,
	// oldest first.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Ticket, error)

	// Validate transitions the ticket to validated, stamping the given
	// validation date. The transition is guarded in the store: it only
	// applies to a ticket that is not yet validated.
	// Returns ErrAlreadyValidated if the ticket was already validated and
	// ErrTicketNotFound if it does not exist.
	Validate(ctx context.Context, id uuid.UUID, at time.Time) error
}
