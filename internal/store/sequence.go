package store

import "context"

// Sequence names used for identifier allocation. They mirror the counter
// keys in the production data, so an imported dataset keeps allocating
// from where it left off.
const (
	UserSequence    = "userId"
	StationSequence = "stationId"
	TrainSequence   = "trainId"
)

// SequenceStore allocates monotonically increasing integer identifiers per
// sequence name.
type SequenceStore interface {
	// Next atomically increments the counter for the given sequence name
	// and returns the new value. A counter that does not exist yet is
	// created at 1 in the same atomic step. Two concurrent calls for the
	// same name never observe or return the same value; the backing store
	// performs the increment-and-return as one operation, never as a
	// read-then-write pair.
	Next(ctx context.Context, name string) (int64, error)
}
