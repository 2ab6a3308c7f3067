package bandcamp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/handiism/bandcamp-collector/internal/bandcamp/dto"
	"github.com/handiism/bandcamp-collector/internal/http"
	"github.com/handiism/bandcamp-collector/internal/model"
)

const (
	fanPageURL         = "https://bandcamp.com/%s"
	collectionItemsURL = "https://bandcamp.com/api/fancollection/1/collection_items"
)

// Resolver turns a fan username into concrete download items.
//
// Resolution happens in two stages:
//
//  1. FetchRedownloadURLs reads the fan page and pages through the
//     collection API until every purchase's redownload URL is known.
//  2. ResolveItem fetches one redownload page and extracts the
//     download URL for the configured format.
//
// The Resolver needs an authenticated client; without valid session
// cookies Bandcamp serves a page with no collection data.
//
// Example usage:
//
//	resolver := bandcamp.NewResolver(client, "flac", pathConfig)
//
//	urls, err := resolver.FetchRedownloadURLs(ctx, "somefan")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, url := range urls {
//	    item, err := resolver.ResolveItem(ctx, url)
//	    ...
//	}
type Resolver struct {
	client  *http.Client
	format  string
	pathCfg *model.PathConfig
}

// NewResolver creates a Resolver that resolves items in the given
// format and computes destination paths with the given config.
func NewResolver(client *http.Client, format string, pathCfg *model.PathConfig) *Resolver {
	return &Resolver{
		client:  client,
		format:  format,
		pathCfg: pathCfg,
	}
}

// FetchRedownloadURLs returns the redownload page URL of every
// purchase in the fan's collection.
//
// The fan page blob lists the most recent purchases; the rest are
// fetched with a single collection_items request asking for the
// remaining count, exactly as the web player does.
//
// Returns ErrNoPageData (wrapped) when the fan page carries no
// collection blob, which usually means the session is not logged in.
func (r *Resolver) FetchRedownloadURLs(ctx context.Context, username string) ([]string, error) {
	pageHTML, err := r.client.GetString(ctx, fmt.Sprintf(fanPageURL, username))
	if err != nil {
		return nil, fmt.Errorf("could not fetch fan page for %q: %w", username, err)
	}

	fanPage, err := ParseFanPage(pageHTML)
	if err != nil {
		return nil, fmt.Errorf("could not read collection for %q: %w", username, err)
	}

	urls := fanPage.RedownloadURLs
	remaining := fanPage.CollectionCount - len(urls)
	if remaining <= 0 {
		return urls, nil
	}

	payload, err := json.Marshal(dto.JSONCollectionPayload{
		FanID:          fanPage.FanID,
		Count:          remaining,
		OlderThanToken: fanPage.LastToken,
	})
	if err != nil {
		return nil, err
	}

	body, err := r.client.PostJSON(ctx, collectionItemsURL, payload)
	if err != nil {
		return nil, fmt.Errorf("could not fetch remaining collection items: %w", err)
	}

	older, _, err := ParseCollectionItems(body)
	if err != nil {
		return nil, err
	}

	return append(urls, older...), nil
}

// ResolveItem fetches one redownload page and builds the download item
// for the resolver's format.
//
// The returned item has an unknown expected size (-1); use ResolveSize
// to fill it in before the download run.
//
// Returns *dto.ErrFormatUnavailable when the purchase doesn't offer
// the configured format.
func (r *Resolver) ResolveItem(ctx context.Context, redownloadURL string) (*model.Item, error) {
	pageHTML, err := r.client.GetString(ctx, redownloadURL)
	if err != nil {
		return nil, fmt.Errorf("could not fetch download page %s: %w", redownloadURL, err)
	}

	dlItem, err := ParseDownloadPage(pageHTML)
	if err != nil {
		return nil, fmt.Errorf("could not parse download page %s: %w", redownloadURL, err)
	}

	return dlItem.ToItem(r.format, r.pathCfg)
}

// ResolveSize fills in the item's expected size via a HEAD request.
//
// Items whose size the server does not report keep ExpectedSize -1 and
// are treated as always needing a download; that is not an error.
func (r *Resolver) ResolveSize(ctx context.Context, item *model.Item) {
	size, err := r.client.GetFileSize(ctx, item.URL)
	if err != nil {
		return
	}
	item.ExpectedSize = size
}
