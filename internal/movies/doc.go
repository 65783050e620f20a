// Package movies coordinates the asset store, the metadata index, and the
// archive codec into the public persistence operations: save, upload, load,
// thumbnail, audio cues, metadata, list, and delete.
//
// The coordinator owns the consistency protocol between the two stores.
// Neither store spans the other transactionally, so every mutating operation
// is serialized per project id and ordered so a crash leaves a diagnosable
// partial state rather than a silent one: a record in the index implies both
// asset files exist, and delete reports any remnant it could not remove.
package movies
