package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/handiism/bandcamp-collector/internal/model"
)

// Worker counts must stay within these bounds. The limits match the
// original tool's parallel-download range; values outside it are
// rejected before a run begins.
const (
	MinWorkers     = 1
	MaxWorkers     = 32
	DefaultWorkers = 5
)

// Settings holds all configuration options.
type Settings struct {
	// Download settings
	DownloadsPath  string `json:"downloads_path"`
	FileNameFormat string `json:"file_name_format"`
	Format         string `json:"format"`
	Workers        int    `json:"workers"`
	Force          bool   `json:"force"`

	// Session settings
	CookiesPath string `json:"cookies_path"`

	// Cover art settings
	SaveCoverArt         bool `json:"save_cover_art"`
	CoverArtResize       bool `json:"cover_art_resize"`
	CoverArtMaxSize      int  `json:"cover_art_max_size"`
	ConvertCoverArtToJPG bool `json:"convert_cover_art_to_jpg"`

	// Tag settings
	ModifyTags bool `json:"modify_tags"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		DownloadsPath:  filepath.Join(homeDir, "Music", "Bandcamp", "{artist}"),
		FileNameFormat: "{title} [{format}]",
		Format:         model.DefaultFormat,
		Workers:        DefaultWorkers,
		Force:          false,

		CookiesPath: filepath.Join(homeDir, ".config", "bandcamp-collector", "cookies.txt"),

		SaveCoverArt:         false,
		CoverArtResize:       true,
		CoverArtMaxSize:      1000,
		ConvertCoverArtToJPG: true,

		ModifyTags: true,
	}
}

// Load reads settings from a JSON file.
//
// A missing file is not an error: defaults are returned so the tool
// works without any configuration.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate rejects settings the download engine cannot run with.
//
// Worker counts outside [MinWorkers, MaxWorkers] and unknown formats
// are caught here, before any work starts, so a bad value never
// surfaces mid-run.
func (s *Settings) Validate() error {
	if s.Workers < MinWorkers || s.Workers > MaxWorkers {
		return fmt.Errorf("workers must be between %d and %d, got %d", MinWorkers, MaxWorkers, s.Workers)
	}
	if !model.IsSupportedFormat(s.Format) {
		return fmt.Errorf("unsupported format %q (supported: %v)", s.Format, model.SupportedFormats)
	}
	return nil
}

// ToPathConfig converts settings to a model.PathConfig.
func (s *Settings) ToPathConfig() *model.PathConfig {
	return &model.PathConfig{
		DownloadsPath:  s.DownloadsPath,
		FileNameFormat: s.FileNameFormat,
	}
}
