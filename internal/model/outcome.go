package model

// Status is the terminal classification of one item after a run.
type Status int

const (
	// StatusSkipped means the local file already matched the expected
	// size and no network transfer happened.
	StatusSkipped Status = iota

	// StatusDownloaded means the item was fetched and the local file
	// is now complete.
	StatusDownloaded

	// StatusFailed means the item could not be completed. The outcome
	// detail carries the cause.
	StatusFailed
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusDownloaded:
		return "downloaded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of processing one collection item.
//
// Exactly one Outcome is produced per item per run, after the
// existence check and, if needed, the fetch have run. Outcomes are
// immutable once created and are consumed by the download Reporter.
type Outcome struct {
	// Item is the item this outcome belongs to.
	Item *Item

	// Status classifies the result.
	Status Status

	// Detail is a human-readable reason: the skip cause, the bytes
	// written, or the failure cause. Failed outcomes always carry
	// enough detail to retry manually.
	Detail string
}
