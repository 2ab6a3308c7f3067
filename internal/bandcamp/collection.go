package bandcamp

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/handiism/bandcamp-collector/internal/bandcamp/dto"
)

// ErrNoPageData is returned when a page carries no pagedata blob.
//
// This typically occurs when:
//   - The session cookies are missing or stale and Bandcamp served a
//     login page instead
//   - The username doesn't exist
//   - The HTML structure has changed unexpectedly
var ErrNoPageData = errors.New("no pagedata blob found on page")

// FanPage holds the collection info extracted from a fan's page.
type FanPage struct {
	// FanID identifies the fan in the collection API.
	FanID int64

	// CollectionCount is the total number of purchases.
	CollectionCount int

	// LastToken is the paging token for fetching older purchases.
	LastToken string

	// RedownloadURLs are the purchase pages listed on the fan page
	// itself (the first page of the collection), in stable order.
	RedownloadURLs []string
}

// ParseFanPage extracts collection info from a fan page's HTML.
//
// Bandcamp embeds the collection summary as JSON in a pagedata div:
//
//	<div id="pagedata" data-blob="{...JSON...}"></div>
//
// Returns ErrNoPageData if the blob cannot be found, which usually
// means the session is not logged in.
func ParseFanPage(htmlContent string) (*FanPage, error) {
	blob, err := extractPageData(htmlContent)
	if err != nil {
		return nil, err
	}

	var page dto.JSONFanPage
	if err := json.Unmarshal([]byte(blob), &page); err != nil {
		return nil, fmt.Errorf("failed to parse fan page JSON: %w", err)
	}

	if page.FanData == nil || page.CollectionData == nil {
		return nil, fmt.Errorf("fan page data is incomplete (are you logged in?)")
	}

	return &FanPage{
		FanID:           page.FanData.FanID,
		CollectionCount: page.CollectionCount,
		LastToken:       page.CollectionData.LastToken,
		RedownloadURLs:  sortedURLs(page.CollectionData.RedownloadURLs),
	}, nil
}

// ParseCollectionItems extracts redownload URLs and the next paging
// token from a collection_items API response body.
func ParseCollectionItems(body []byte) ([]string, string, error) {
	var items dto.JSONCollectionItems
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, "", fmt.Errorf("failed to parse collection items JSON: %w", err)
	}
	return sortedURLs(items.RedownloadURLs), items.LastToken, nil
}

// ParseDownloadPage extracts the single purchase described by a
// redownload page's pagedata blob.
func ParseDownloadPage(htmlContent string) (*dto.JSONDownloadItem, error) {
	blob, err := extractPageData(htmlContent)
	if err != nil {
		return nil, err
	}

	var page dto.JSONDownloadPage
	if err := json.Unmarshal([]byte(blob), &page); err != nil {
		return nil, fmt.Errorf("failed to parse download page JSON: %w", err)
	}

	if len(page.DownloadItems) == 0 {
		return nil, errors.New("download page lists no items")
	}

	return &page.DownloadItems[0], nil
}

// extractPageData extracts the pagedata data-blob JSON string from HTML.
//
// The JSON is embedded in an HTML attribute, so characters like quotes
// are escaped as &quot; and the attribute's own closing quote is the
// first raw double quote after the opening one. The extracted string
// is HTML-unescaped before being returned.
func extractPageData(htmlContent string) (string, error) {
	const marker = `id="pagedata"`
	const attrStart = `data-blob="`

	idIndex := strings.Index(htmlContent, marker)
	if idIndex == -1 {
		return "", ErrNoPageData
	}

	remaining := htmlContent[idIndex:]
	startIndex := strings.Index(remaining, attrStart)
	if startIndex == -1 {
		return "", ErrNoPageData
	}

	remaining = remaining[startIndex+len(attrStart):]
	endIndex := strings.Index(remaining, `"`)
	if endIndex == -1 {
		return "", fmt.Errorf("could not find end of pagedata blob")
	}

	return html.UnescapeString(remaining[:endIndex]), nil
}

// sortedURLs returns the map values in key order.
//
// The redownload_urls maps are keyed by sale id; sorting by key gives
// a stable item order across runs.
func sortedURLs(urls map[string]string) []string {
	keys := make([]string, 0, len(urls))
	for k := range urls {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, urls[k])
	}
	return out
}
