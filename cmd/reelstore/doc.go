// Package main hosts the reelstore CLI entrypoint and command graph.
//
// The Cobra-based command tree operates directly on the asset store and the
// metadata index: saving and importing movie containers, repacking them for
// download, extracting thumbnails and audio cues, listing collections, and
// configuration scaffolding. It centralizes configuration resolution and
// service construction so subcommands can focus on user experience instead of
// wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
