// Package model defines the core data structures used throughout
// the art gallery viewer.
//
// # Artwork
//
// Artwork is a single catalog record. Values are copied, never shared,
// so a record cannot change after the catalog is loaded:
//
//	art := model.Artwork{ID: 1, Title: "Still Water", Artist: "Ana Ruiz", Mood: "Calm", Style: "Minimal", Year: 2019}
//	fmt.Println(art.SearchText()) // "still waterana ruizcalmminimal"
//
// # Catalog
//
// Catalog is the ordered, read-only collection loaded at startup:
//
//	cat := model.NewCatalog(artworks)
//	all := cat.All()        // copy in original order
//	art, ok := cat.ByID(2)  // lookup by id
//	styles := cat.Styles()  // distinct styles in first-seen order
package model
