// Package index persists project metadata records in SQLite, partitioned
// into the "movies" and "assets" collections.
//
// Records are derived state: the coordinator recomputes them from the stored
// timeline document on every save and upserts the result here. Each call is
// atomic per record; consistency between the index and the asset files is the
// coordinator's responsibility, not this package's.
//
// Schema changes bump the version in schema.go; a mismatched database must be
// deleted and rebuilt from the asset files.
package index
