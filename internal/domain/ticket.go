package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Ticket errors.
var (
	ErrEmptyTicketID        = errors.New("ticket ID cannot be empty")
	ErrEmptyTicketUser      = errors.New("ticket must reference a user")
	ErrEmptyTicketTrain     = errors.New("ticket must reference a train")
	ErrTicketAlreadyChecked = errors.New("ticket already validated")
)

// Ticket represents a booking of a train by a user. A ticket starts out
// unvalidated; validation is a one-way transition that stamps
// ValidationDate.
type Ticket struct {
	ID             uuid.UUID  `json:"_id"`
	UserID         int64      `json:"user"`
	TrainID        int64      `json:"train"`
	Validated      bool       `json:"validated"`
	ValidationDate *time.Time `json:"validationDate"`
	CreatedAt      time.Time  `json:"created_at"`
}

// NewTicket creates an unvalidated Ticket for the given user and train.
func NewTicket(userID, trainID int64) (*Ticket, error) {
	ticket := &Ticket{
		ID:        uuid.New(),
		UserID:    userID,
		TrainID:   trainID,
		Validated: false,
		CreatedAt: time.Now().UTC(),
	}

	if err := ticket.Validate(); err != nil {
		return nil, err
	}

	return ticket, nil
}

// Validate checks the ticket's fields.
func (t *Ticket) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTicketID
	}
	if t.UserID <= 0 {
		return ErrEmptyTicketUser
	}
	if t.TrainID <= 0 {
		return ErrEmptyTicketTrain
	}
	return nil
}

// MarkValidated transitions the ticket to the validated state at the given
// time. Returns ErrTicketAlreadyChecked if the ticket has already been
// validated; the transition happens at most once.
func (t *Ticket) MarkValidated(at time.Time) error {
	if t.Validated {
		return ErrTicketAlreadyChecked
	}
	t.Validated = true
	at = at.UTC()
	t.ValidationDate = &at
	return nil
}
