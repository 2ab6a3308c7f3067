package download

import (
	"context"

	bchttp "github.com/handiism/bandcamp-collector/internal/http"
	"github.com/handiism/bandcamp-collector/internal/model"
)

// Fetcher transfers one item to its destination path.
//
// The transfer is atomic with respect to the final path: the HTTP
// client streams into a temp file and renames it into place only
// after the whole body arrived, so an interrupted fetch never leaves
// a partial file where the existence check would find it.
//
// Fetcher never retries. A failure is wrapped in *FetchError and
// reported; retrying is a decision for whoever reads the outcome.
type Fetcher struct {
	client *bchttp.Client

	// onBytes, if set, is called with per-item byte progress.
	onBytes func(item *model.Item, written, total int64)
}

// NewFetcher creates a Fetcher using the given client.
//
// onBytes may be nil; when set it receives byte-level progress for
// each item being transferred.
func NewFetcher(client *bchttp.Client, onBytes func(item *model.Item, written, total int64)) *Fetcher {
	return &Fetcher{
		client:  client,
		onBytes: onBytes,
	}
}

// Fetch downloads the item and returns the number of bytes written.
//
// Missing intermediate directories under the destination path are
// created. On any transport or status failure the returned error is a
// *FetchError wrapping the cause, and the destination path is left
// exactly as it was.
func (f *Fetcher) Fetch(ctx context.Context, item *model.Item) (int64, error) {
	var onProgress func(written, total int64)
	if f.onBytes != nil {
		onProgress = func(written, total int64) {
			f.onBytes(item, written, total)
		}
	}

	written, err := f.client.DownloadFile(ctx, item.URL, item.Path, onProgress)
	if err != nil {
		return 0, &FetchError{URL: item.URL, Err: err}
	}

	return written, nil
}
