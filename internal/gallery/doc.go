// Package gallery provides the interaction controller of the art gallery
// viewer.
//
// # Controller
//
// The Controller owns the catalog and the filtered view and turns user
// actions into presentation state:
//
//  1. Load or reload the catalog
//  2. Apply a search (text and style)
//  3. Show all artworks
//  4. Highlight a random artwork
//  5. Select an artwork for the detail panel
//
// Every action returns a Result holding the view, the card and detail
// view-models, the mood theme and the status line. Front ends only draw
// Results; they never filter or pick on their own.
//
// # Basic Usage
//
//	loader := catalog.NewLoader(fetcher, 5*time.Minute, logger)
//	ctrl := gallery.NewController(loader, "artworks.json", nil, gallery.LogProgress(logger))
//
//	res, err := ctrl.Load(ctx)
//	if err != nil {
//	    fmt.Println(res.Status) // "Error loading artworks."
//	}
//
//	res = ctrl.Apply(filter.Query{Text: "calm", Style: "all"})
//	fmt.Println(res.Status) // "Showing 2 artwork(s)."
//
// # Progress Tracking
//
// Loads and actions are reported via an optional callback receiving
// ProgressEvent. LogProgress adapts a zap logger into such a callback.
// The callback runs while the controller is locked and must not call
// back into it.
package gallery
