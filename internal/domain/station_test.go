package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStationValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		openHour  string
		closeHour string
		wantErr   error
	}{
		{"full hours", "07:00", "22:00", nil},
		{"short hour form", "7:00", "22:30", nil},
		{"midnight", "0:00", "23:59", nil},
		{"hour out of range", "24:00", "22:00", ErrInvalidHour},
		{"minutes out of range", "7:60", "22:00", ErrInvalidHour},
		{"not an hour", "seven", "22:00", ErrInvalidHour},
		{"empty close hour", "7:00", "", ErrInvalidHour},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := &Station{ID: 1, Name: "Lyon Part Dieu", OpenHour: tc.openHour, CloseHour: tc.closeHour}
			err := s.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestTrainValidate(t *testing.T) {
	t.Parallel()

	dep := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	arr := dep.Add(2 * time.Hour)

	train, err := NewTrain(1, "TGV 6201", 1, 2, dep, arr)
	require.NoError(t, err)
	assert.Equal(t, int64(1), train.StartStation)

	_, err = NewTrain(1, "TGV 6201", 0, 2, dep, arr)
	assert.ErrorIs(t, err, ErrEmptyTrainStation)

	_, err = NewTrain(1, "TGV 6201", 1, 2, arr, dep)
	assert.ErrorIs(t, err, ErrInvalidTrainTimes)

	_, err = NewTrain(1, "TGV 6201", 1, 2, dep, dep)
	assert.ErrorIs(t, err, ErrInvalidTrainTimes)
}
