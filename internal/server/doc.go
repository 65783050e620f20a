// Package server exposes the persistence coordinator over HTTP: save and
// upload of portable containers, container and thumbnail download, audio cue
// extraction, listings, and deletes, plus health and Prometheus metrics
// endpoints.
package server
