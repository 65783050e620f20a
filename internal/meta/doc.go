// Package meta derives display metadata (title, duration, scene count) from
// raw timeline-document bytes.
//
// Extraction is a deliberate tolerant byte-pattern scan rather than an XML
// parse: documents may come from encoder versions that add attributes or
// reorder elements, and may be partially written. As long as the literal
// anchors survive, extraction succeeds; missing anchors degrade to empty or
// zero fields instead of failing the enclosing save.
package meta
