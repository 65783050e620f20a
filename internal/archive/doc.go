// Package archive converts between the portable single-file movie container
// and its (document, thumbnail) halves, and extracts audio cue descriptors
// from timeline documents.
//
// The container is a zip holding movie.xml and thumbnail.png under fixed
// entry names. The coordinator treats both the container layout and the cue
// schema as this package's contract.
package archive
