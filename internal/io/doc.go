// Package ioutils provides file system and image export utilities for the
// art gallery viewer.
//
// This package contains functions for:
//   - Atomic file writing
//   - Filename sanitization for cross-platform compatibility
//   - Directory creation
//   - Rendering galleries as swatch sheet images
//
// # File Operations
//
//	// Write data to file, creating parent directories
//	err := ioutils.WriteFile(ctx, "exports/gallery.html", page)
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("exports/2024")
//
// # Filename Sanitization
//
// Use SanitizeFileName to turn a search query into a safe export name:
//
//	safe := ioutils.SanitizeFileName("Night: Study 1/2") // Returns "Night_ Study 1_2"
//
// # Swatch Sheets
//
// The ImageService draws one tile per gallery card with the artwork's
// color swatch and its text lines:
//
//	svc := ioutils.NewImageService()
//	data, err := svc.SwatchSheet(ctx, gallery, ioutils.SheetOptions{
//		Columns: 3,
//		Scale:   2,
//	})
package ioutils
