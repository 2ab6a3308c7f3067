// Package config provides configuration management for bandcamp-collector.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Validation of values the download engine depends on
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Downloads to ~/Music/Bandcamp/{artist}
//	// mp3-320 format, 5 parallel downloads
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Validation
//
// Validate() must pass before a run is started. It rejects worker
// counts outside [1, 32] and download formats Bandcamp doesn't offer:
//
//	if err := settings.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
