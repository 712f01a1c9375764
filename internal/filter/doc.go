// Package filter derives filtered views of the gallery catalog.
//
// A view is always a subset of its input in input order. Filter never
// mutates its input and never ranks results:
//
//	view := filter.Filter(catalog.All(), filter.Query{Text: "night", Style: "abstract"})
//
// Picker selects a uniformly random artwork from a view:
//
//	picker := filter.NewPicker(nil)
//	art, ok := picker.Pick(view)
//	if !ok {
//	    // view was empty
//	}
package filter
