package download

import (
	"fmt"
	"os"
)

// CheckResult classifies an item's destination before any transfer.
type CheckResult int

const (
	// NeedsDownload means no valid local copy exists and the item
	// must be fetched.
	NeedsDownload CheckResult = iota

	// AlreadySatisfied means the local file matches the expected size
	// exactly and the fetch can be skipped.
	AlreadySatisfied
)

// Check decides whether the file at path already satisfies an item
// with the given expected size.
//
// The decision rules, in order:
//   - A directory (or any non-regular file) at path is a conflict:
//     ErrDestinationConflict is returned and the item fails.
//   - force always yields NeedsDownload, regardless of file state.
//   - A missing file yields NeedsDownload.
//   - An unknown expected size (negative) yields NeedsDownload: an
//     existing file cannot be verified, so it is refetched to be safe.
//   - Exact byte equality yields AlreadySatisfied. This includes a
//     zero-byte file matching a zero expected size.
//   - Any size mismatch yields NeedsDownload; the file will be
//     overwritten by the fetch.
//
// The only side effect is a filesystem metadata read: contents are
// never read and nothing is hashed.
func Check(path string, expectedSize int64, force bool) (CheckResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NeedsDownload, nil
		}
		return NeedsDownload, fmt.Errorf("could not stat %s: %w", path, err)
	}

	if !info.Mode().IsRegular() {
		return NeedsDownload, fmt.Errorf("%w: %s", ErrDestinationConflict, path)
	}

	if force {
		return NeedsDownload, nil
	}

	if expectedSize < 0 {
		return NeedsDownload, nil
	}

	if info.Size() == expectedSize {
		return AlreadySatisfied, nil
	}

	return NeedsDownload, nil
}
