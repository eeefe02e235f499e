package api

import (
	"time"

	"github.com/mbriand/railgo/internal/domain"
)

// Request models with validation tags.

// RegisterRequest holds the registration payload. Roles are never accepted
// here: every new account starts as a regular user.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest holds the login payload.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest holds the mutable user fields. Zero-valued fields keep
// their current value. Role changes require the admin role.
type UpdateUserRequest struct {
	Username string `json:"username" validate:"omitempty,min=3,max=50"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6,max=72"`
	Role     string `json:"role"     validate:"omitempty,oneof=user admin"`
}

// StationRequest holds the station payload for both create and update. The
// image arrives separately as a multipart part, never in the JSON body.
type StationRequest struct {
	Name      string `json:"name"       validate:"required"`
	OpenHour  string `json:"open_hour"  validate:"required"`
	CloseHour string `json:"close_hour" validate:"required"`
}

// CreateTrainRequest holds the train creation payload. Stations are referenced
// by name and resolved before anything is stored.
type CreateTrainRequest struct {
	Name            string    `json:"name"              validate:"required"`
	StartStation    string    `json:"start_station"     validate:"required"`
	EndStation      string    `json:"end_station"       validate:"required"`
	TimeOfDeparture time.Time `json:"time_of_departure" validate:"required"`
	TimeOfArrival   time.Time `json:"time_of_arrival"   validate:"required"`
}

// UpdateTrainRequest holds the train update payload. Updates address stations
// by their numeric IDs, matching what reads return.
type UpdateTrainRequest struct {
	Name            string    `json:"name"              validate:"required"`
	StartStation    int64     `json:"start_station"     validate:"required,gt=0"`
	EndStation      int64     `json:"end_station"       validate:"required,gt=0"`
	TimeOfDeparture time.Time `json:"time_of_departure" validate:"required"`
	TimeOfArrival   time.Time `json:"time_of_arrival"   validate:"required"`
}

// CreateTicketRequest holds the ticket creation and validation payload. The
// user is always the authenticated caller.
type CreateTicketRequest struct {
	TrainID int64 `json:"trainId" validate:"required,gt=0"`
}

// Response models. Every write responds with a message plus the affected
// resource; reads return the resource (or list) directly.

// UserResponse wraps a user mutation result.
type UserResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

// LoginResponse carries the issued token alongside the user.
type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

// StationResponse wraps a station mutation result.
type StationResponse struct {
	Message string          `json:"message"`
	Station *domain.Station `json:"station"`
}

// TrainResponse wraps a train mutation result.
type TrainResponse struct {
	Message string        `json:"message"`
	Train   *domain.Train `json:"train"`
}

// TicketResponse wraps a ticket mutation result.
type TicketResponse struct {
	Message string         `json:"message"`
	Ticket  *domain.Ticket `json:"ticket"`
}

// TicketStatusResponse is the admin's view of a ticket's validation state.
type TicketStatusResponse struct {
	Validated      bool       `json:"validated"`
	ValidationDate *time.Time `json:"validationDate"`
}
