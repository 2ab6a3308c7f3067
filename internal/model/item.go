package model

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// SupportedFormats lists the download formats Bandcamp offers for
// purchased items. The format selects which variant of an item's
// redownload URL is used and which file extension single tracks get.
var SupportedFormats = []string{
	"aac-hi",
	"aiff-lossless",
	"alac",
	"flac",
	"mp3-320",
	"mp3-v0",
	"vorbis",
	"wav",
}

// DefaultFormat is used when no format is configured.
const DefaultFormat = "mp3-320"

// IsSupportedFormat reports whether format is one of SupportedFormats.
func IsSupportedFormat(format string) bool {
	for _, f := range SupportedFormats {
		if f == format {
			return true
		}
	}
	return false
}

// ItemKind distinguishes album purchases from single-track purchases.
//
// Albums are delivered by Bandcamp as zip archives regardless of the
// audio format; single tracks are delivered as one audio file in the
// chosen format.
type ItemKind int

const (
	// KindAlbum is a multi-track purchase delivered as a zip archive.
	KindAlbum ItemKind = iota

	// KindTrack is a single-track purchase delivered as one audio file.
	KindTrack
)

// Item represents one downloadable unit of a fan's collection.
//
// Item contains everything the download engine needs to fetch one
// purchase:
//   - Artist and Title for metadata and file naming
//   - Format selecting the download variant
//   - URL, the resolved and authenticated download location
//   - ExpectedSize, the authoritative byte size for skip detection
//   - Computed local Path where the file will be saved
//
// The path is computed once in NewItem and is a pure function of
// (artist, title, format) under a given PathConfig, so repeated runs
// always target the same file. Two items with the same triple map to
// the same path; the collection resolver guarantees distinct items
// never share a triple.
//
// Example:
//
//	cfg := &PathConfig{DownloadsPath: "/music/{artist}", FileNameFormat: "{title} [{format}]"}
//	item := NewItem("The Beatles", "Abbey Road", "flac", url, sizeBytes, KindAlbum, cfg)
//	// item.Path = "/music/The Beatles/Abbey Road [flac].zip"
type Item struct {
	// Artist is the artist name, used to namespace the destination directory.
	Artist string

	// Title is the album or track title, used to derive the file name.
	Title string

	// Format is the download format (one of SupportedFormats).
	Format string

	// URL is the resolved, authenticated download URL for this item
	// in the selected format.
	URL string

	// ExpectedSize is the expected file size in bytes. A negative
	// value means the size is unknown and the item must always be
	// fetched (an existing file cannot be verified).
	ExpectedSize int64

	// Kind distinguishes album archives from single track files.
	Kind ItemKind

	// ArtworkURL is the URL of the item's cover art.
	// Empty string means no artwork is available.
	ArtworkURL string

	// Path is the computed local file path where the item will be saved.
	// This is automatically set by NewItem based on PathConfig.
	Path string

	// ArtworkPath is the computed local file path for the cover art.
	// Empty if the item has no artwork.
	ArtworkPath string
}

// PathConfig holds path formatting settings for collection items.
//
// Both fields support placeholders that are replaced with item values:
//   - {artist} - Artist name
//   - {title} - Album or track title
//   - {format} - Download format
//
// Example configuration:
//
//	cfg := &PathConfig{
//	    DownloadsPath:  "/home/user/Music/Bandcamp/{artist}",
//	    FileNameFormat: "{title} [{format}]",
//	}
type PathConfig struct {
	// DownloadsPath is the directory template items are saved under.
	// Example: "/music/{artist}"
	DownloadsPath string

	// FileNameFormat is the filename template, without extension.
	// The extension is derived from the item kind and format.
	// Example: "{title} [{format}]"
	FileNameFormat string
}

// NewItem creates an Item with its destination paths computed.
//
// The file extension is ".zip" for albums and the format's audio
// extension for single tracks. Invalid filename characters in artist
// and title are replaced with underscores, and the total path length
// is truncated for Windows compatibility.
func NewItem(artist, title, format, url string, expectedSize int64, kind ItemKind, cfg *PathConfig) *Item {
	item := &Item{
		Artist:       artist,
		Title:        title,
		Format:       format,
		URL:          url,
		ExpectedSize: expectedSize,
		Kind:         kind,
	}

	item.Path = item.parseFilePath(cfg)

	return item
}

// SetArtwork records the artwork URL and computes the artwork path
// next to the item file. The artwork filename reuses the item's base
// name so re-runs target the same file.
func (i *Item) SetArtwork(url string) {
	i.ArtworkURL = url
	if url == "" {
		i.ArtworkPath = ""
		return
	}

	ext := filepath.Ext(url)
	if ext == "" {
		ext = ".jpg"
	}
	base := strings.TrimSuffix(i.Path, filepath.Ext(i.Path))
	i.ArtworkPath = base + ext
}

// HasArtwork returns true if the item has cover art available for download.
func (i *Item) HasArtwork() bool {
	return i.ArtworkURL != ""
}

// SizeKnown reports whether the item carries an authoritative expected size.
func (i *Item) SizeKnown() bool {
	return i.ExpectedSize >= 0
}

// Name returns a short human-readable identity for progress and
// failure reporting: "Artist - Title".
func (i *Item) Name() string {
	return fmt.Sprintf("%s - %s", i.Artist, i.Title)
}

// Extension returns the file extension for the item, including the dot.
//
// Albums are always zip archives. Single tracks use the audio
// extension of the download format.
func (i *Item) Extension() string {
	if i.Kind == KindAlbum {
		return ".zip"
	}

	switch i.Format {
	case "aac-hi":
		return ".m4a"
	case "aiff-lossless":
		return ".aiff"
	case "alac":
		return ".m4a"
	case "flac":
		return ".flac"
	case "mp3-320", "mp3-v0":
		return ".mp3"
	case "vorbis":
		return ".ogg"
	case "wav":
		return ".wav"
	default:
		return ".bin"
	}
}

// parseFilePath computes the full destination path for this item.
func (i *Item) parseFilePath(cfg *PathConfig) string {
	dir := cfg.DownloadsPath
	dir = strings.ReplaceAll(dir, "{artist}", sanitizeFileName(i.Artist))
	dir = strings.ReplaceAll(dir, "{title}", sanitizeFileName(i.Title))
	dir = strings.ReplaceAll(dir, "{format}", sanitizeFileName(i.Format))

	// Limit directory length for cross-platform compatibility (Windows MAX_PATH)
	if len(dir) >= 248 {
		dir = dir[:247]
	}

	fileName := cfg.FileNameFormat
	fileName = strings.ReplaceAll(fileName, "{artist}", i.Artist)
	fileName = strings.ReplaceAll(fileName, "{title}", i.Title)
	fileName = strings.ReplaceAll(fileName, "{format}", i.Format)
	fileName = sanitizeFileName(fileName)

	ext := i.Extension()
	filePath := filepath.Join(dir, fileName+ext)

	// Limit total path length for Windows compatibility (MAX_PATH = 260)
	if len(filePath) >= 260 {
		maxLen := 11 - len(ext)
		if maxLen > 0 && maxLen < len(fileName) {
			filePath = filepath.Join(dir, fileName[:maxLen]+ext)
		}
	}

	return filePath
}

// sanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Multiple whitespace is collapsed to single space
//   - Trailing whitespace is removed
//
// Example:
//
//	sanitizeFileName("Song: Part 1/2") // Returns "Song_ Part 1_2"
func sanitizeFileName(name string) string {
	// Replace invalid path/file characters
	invalidChars := regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	name = invalidChars.ReplaceAllString(name, "_")

	// Remove trailing dots
	name = regexp.MustCompile(`\.+$`).ReplaceAllString(name, "")

	// Replace multiple whitespace with single space
	name = regexp.MustCompile(`\s+`).ReplaceAllString(name, " ")

	// Remove trailing whitespace
	name = strings.TrimRight(name, " ")

	return name
}
