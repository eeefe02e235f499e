package store

import (
	"context"

	"github.com/mbriand/railgo/internal/domain"
)

// UserFilter restricts List results. Zero-valued fields are ignored;
// non-zero fields are matched by equality.
type UserFilter struct {
	Username string
	Email    string
}

// UserStore defines the interface for user persistence.
type UserStore interface {
	// Create saves a new user. The user must already carry its allocated
	// ID and hashed password.
	// Returns ErrUsernameExists or ErrEmailExists on unique violations.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List retrieves users matching the filter, newest first.
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)

	// Update overwrites an existing user's mutable fields (username,
	// email, hashed password, role).
	// Returns ErrUserNotFound if the user does not exist and
	// ErrUsernameExists/ErrEmailExists on unique violations.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user by ID. Tickets referencing the user are
	// removed by the schema's cascading foreign key.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id int64) error
}
