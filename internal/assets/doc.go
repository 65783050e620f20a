// Package assets stores each movie project as two co-located files under a
// configured root directory: <id>.xml (the timeline document) and <id>.png
// (the thumbnail).
//
// The store validates identifiers before every path join, writes through an
// atomic temp-and-rename, and reports missing halves with ErrNotFound so the
// coordinator can tell a broken pair from an IO failure.
package assets
