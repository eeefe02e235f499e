package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Station validation errors.
var (
	ErrEmptyStationID   = errors.New("station ID must be a positive integer")
	ErrEmptyStationName = errors.New("station name cannot be empty")
	ErrInvalidHour      = errors.New("hour must be in H:MM or HH:MM format")
)

// hourFormat matches opening hours as the clients send them, e.g. "7:00"
// or "22:30".
var hourFormat = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`)

// Station represents a train station. Image holds the stored path of the
// uploaded picture, empty when none was provided.
type Station struct {
	ID        int64     `json:"_id"`
	Name      string    `json:"name"`
	OpenHour  string    `json:"open_hour"`
	CloseHour string    `json:"close_hour"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewStation creates a Station with the given allocated ID.
func NewStation(id int64, name, openHour, closeHour, image string) (*Station, error) {
	now := time.Now().UTC()
	station := &Station{
		ID:        id,
		Name:      name,
		OpenHour:  openHour,
		CloseHour: closeHour,
		Image:     image,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := station.Validate(); err != nil {
		return nil, err
	}

	return station, nil
}

// Validate checks the station's fields.
func (s *Station) Validate() error {
	if s.ID <= 0 {
		return ErrEmptyStationID
	}
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyStationName
	}
	if !hourFormat.MatchString(s.OpenHour) || !hourFormat.MatchString(s.CloseHour) {
		return ErrInvalidHour
	}
	return nil
}
