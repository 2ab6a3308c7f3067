package dto

import (
	"fmt"

	"github.com/handiism/bandcamp-collector/internal/model"
)

const (
	artworkURLStart = "https://f4.bcbits.com/img/a"
	artworkURLEnd   = "_0.jpg"
)

// JSONDownloadPage represents the deserialized pagedata blob from a
// redownload page. Redownload pages always describe exactly one
// purchase, but the blob wraps it in a list.
type JSONDownloadPage struct {
	DownloadItems []JSONDownloadItem `json:"download_items"`
}

// JSONDownloadItem represents one purchase on a redownload page.
type JSONDownloadItem struct {
	// Type is "a" for albums and "t" for single tracks.
	Type      string                  `json:"type"`
	Artist    string                  `json:"artist"`
	Title     string                  `json:"title"`
	ArtID     *int64                  `json:"art_id"`
	Downloads map[string]JSONDownload `json:"downloads"`
}

// JSONDownload is one format variant of a purchase.
type JSONDownload struct {
	URL string `json:"url"`
}

// ErrFormatUnavailable is returned by ToItem when the purchase has no
// download in the requested format.
type ErrFormatUnavailable struct {
	Title  string
	Format string
}

func (e *ErrFormatUnavailable) Error() string {
	return fmt.Sprintf("item %q has no download for format %q", e.Title, e.Format)
}

// ToItem converts a JSONDownloadItem to a model.Item in the given format.
//
// The expected size is unknown at this point (-1); it is resolved
// later via HEAD requests. Artwork is attached when the purchase
// carries an art id, using Bandcamp's image CDN URL scheme.
//
// Returns *ErrFormatUnavailable if the purchase doesn't offer the
// requested format.
func (ji *JSONDownloadItem) ToItem(format string, cfg *model.PathConfig) (*model.Item, error) {
	dl, ok := ji.Downloads[format]
	if !ok || dl.URL == "" {
		return nil, &ErrFormatUnavailable{Title: ji.Title, Format: format}
	}

	kind := model.KindAlbum
	if ji.Type == "t" {
		kind = model.KindTrack
	}

	item := model.NewItem(ji.Artist, ji.Title, format, dl.URL, -1, kind, cfg)

	if ji.ArtID != nil {
		item.SetArtwork(fmt.Sprintf("%s%010d%s", artworkURLStart, *ji.ArtID, artworkURLEnd))
	}

	return item, nil
}
