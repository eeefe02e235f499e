package domain

import (
	"errors"
	"strings"
	"time"
)

// Role classifies what a user is allowed to do.
type Role string

// Known roles. Anything else is rejected at validation time.
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User validation errors.
var (
	ErrEmptyUserID         = errors.New("user ID must be a positive integer")
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrInvalidRole         = errors.New("invalid role")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a registered user of the ticketing service.
// IDs are allocated by the sequence allocator, not by the database.
type User struct {
	ID             int64     `json:"_id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext, only set transiently during registration/update
	HashedPassword string    `json:"-"` // Never expose the hash
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a User with the given allocated ID and credentials.
// The role defaults to RoleUser. The caller is responsible for hashing the
// password before the user is stored.
func NewUser(id int64, username, email, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        id,
		Username:  username,
		Email:     email,
		Password:  password,
		Role:      RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks the user's fields. A user must carry either a transient
// plaintext password (pre-hash) or a hashed one (as loaded from the store).
func (u *User) Validate() error {
	if u.ID <= 0 {
		return ErrEmptyUserID
	}
	if strings.TrimSpace(u.Username) == "" {
		return ErrEmptyUsername
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !strings.Contains(u.Email[1:], "@") || strings.HasSuffix(u.Email, "@") {
		return ErrInvalidEmail
	}
	if !u.Role.Valid() {
		return ErrInvalidRole
	}
	if u.Password == "" && u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	return nil
}
