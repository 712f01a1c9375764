// Package config provides configuration management for the art gallery viewer.
//
// This package handles:
//   - Loading and saving settings from JSON or YAML files
//   - Default configuration values
//   - Conversion of second-based fields to time.Duration
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Catalog read from ./artworks.json
//	// Local catalogs are watched for changes
//	// HTTP front end listens on :8080
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/gallery.yaml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.CatalogSource = "https://example.com/artworks.json"
//	err := settings.Save("/path/to/gallery.json")
//
// # Configuration Options
//
// Settings includes options for:
//   - Catalog source, HTTP timeout and user agent
//   - Catalog cache lifetime and file watching
//   - Card width and mouse support in the terminal UI
//   - Listen address of the HTTP front end
//   - Log file and level
package config
