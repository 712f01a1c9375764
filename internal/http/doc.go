// Package http provides the HTTP client used to fetch remote gallery catalogs.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Timeout handling
//   - Treating any non-200 response as an error
//
// # Basic Usage
//
//	client := http.NewClient("ArtGalleryViewer", 30*time.Second)
//
//	// Fetch a JSON catalog
//	data, err := client.Get(ctx, "https://example.com/artworks.json")
//	var statusErr *http.StatusError
//	if errors.As(err, &statusErr) {
//	    fmt.Println(statusErr.StatusCode)
//	}
package http
