package domain

import (
	"errors"
	"strings"
	"time"
)

// Train validation errors.
var (
	ErrEmptyTrainID      = errors.New("train ID must be a positive integer")
	ErrEmptyTrainName    = errors.New("train name cannot be empty")
	ErrEmptyTrainStation = errors.New("train must reference a start and an end station")
	ErrInvalidTrainTimes = errors.New("arrival must be after departure")
)

// Train represents a scheduled train between two stations.
// StartStation and EndStation hold station IDs; existence of both is
// checked at creation time by the handler, the database enforces it with
// foreign keys after that.
type Train struct {
	ID              int64     `json:"_id"`
	Name            string    `json:"name"`
	StartStation    int64     `json:"start_station"`
	EndStation      int64     `json:"end_station"`
	TimeOfDeparture time.Time `json:"time_of_departure"`
	TimeOfArrival   time.Time `json:"time_of_arrival"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewTrain creates a Train with the given allocated ID.
func NewTrain(
	id int64,
	name string,
	startStation, endStation int64,
	departure, arrival time.Time,
) (*Train, error) {
	now := time.Now().UTC()
	train := &Train{
		ID:              id,
		Name:            name,
		StartStation:    startStation,
		EndStation:      endStation,
		TimeOfDeparture: departure,
		TimeOfArrival:   arrival,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := train.Validate(); err != nil {
		return nil, err
	}

	return train, nil
}

// Validate checks the train's fields.
func (t *Train) Validate() error {
	if t.ID <= 0 {
		return ErrEmptyTrainID
	}
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyTrainName
	}
	if t.StartStation <= 0 || t.EndStation <= 0 {
		return ErrEmptyTrainStation
	}
	if !t.TimeOfArrival.After(t.TimeOfDeparture) {
		return ErrInvalidTrainTimes
	}
	return nil
}
