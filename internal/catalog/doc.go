// Package catalog loads the gallery catalog from a static JSON resource.
//
// The package handles three concerns:
//
//  1. Fetching the resource from an HTTP(S) URL, a file:// URL or a path
//  2. Parsing and validating the JSON array of artwork records
//  3. Watching local catalog files so front ends can reload them
//
// # Loading
//
//	loader := catalog.NewLoader(client, settings.CacheExpiration(), logger)
//	cat, err := loader.Load(ctx, "artworks.json")
//	if err != nil {
//	    // network or parse failure; the caller keeps an empty catalog
//	}
//
// # Catalog Format
//
// The resource is a JSON array of records:
//
//	[
//	  {"id": 1, "title": "Still Water", "artist": "Ana Ruiz", "mood": "Calm",
//	   "style": "Minimal", "year": 2019, "color": "#A3C4F3",
//	   "description": "A pale lake at dawn."}
//	]
//
// Records need a positive, unique id and a title. Descriptions may use
// Markdown.
//
// # Watching
//
//	w, _ := catalog.NewWatcher("artworks.json", 500*time.Millisecond, logger)
//	changes, _ := w.Start()
//	for range changes {
//	    loader.Invalidate("artworks.json")
//	    // reload
//	}
package catalog
