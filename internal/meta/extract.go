package meta

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Anchors for the byte-pattern scan. The timeline document is not guaranteed
// to be well-formed XML, so extraction keys on these literals only and never
// assumes any document-wide structure.
const (
	titleOpen  = "<title><![CDATA["
	titleClose = "]]></title>"
	durAttr    = `duration="`
	sceneOpen  = "<scene id="
)

// ErrMalformedDocument reports a document missing both the title and the
// duration anchors. Extraction still returns a usable zero-field record;
// callers decide whether to surface or to proceed with empty metadata.
var ErrMalformedDocument = errors.New("malformed movie document")

// Record holds display metadata derived from a timeline document.
type Record struct {
	ID             string
	Title          string
	Duration       float64
	DurationString string
	Date           time.Time
	SceneCount     int
	Type           string
}

// Extract derives a Record from raw document bytes and a file modification
// time. It is a pure function of its inputs: repeated calls over the same
// bytes and timestamp yield identical records.
//
// Missing optional anchors never fail the scan; the corresponding fields stay
// empty or zero. Only a document with neither a title nor a duration anchor
// returns ErrMalformedDocument, alongside the zero-field record.
func Extract(doc []byte, modified time.Time) (Record, error) {
	record := Record{
		Date:           modified,
		DurationString: FormatDuration(0),
	}

	title, titleFound := scanTitle(doc)
	record.Title = title

	duration, durationFound := scanDuration(doc)
	record.Duration = duration
	record.DurationString = FormatDuration(duration)

	record.SceneCount = countScenes(doc)

	if !titleFound && !durationFound {
		return record, ErrMalformedDocument
	}
	return record, nil
}

func scanTitle(doc []byte) (string, bool) {
	open := bytes.Index(doc, []byte(titleOpen))
	if open < 0 {
		return "", false
	}
	start := open + len(titleOpen)
	closeRel := bytes.Index(doc[start:], []byte(titleClose))
	if closeRel < 0 {
		return "", false
	}
	return strings.TrimSpace(string(doc[start : start+closeRel])), true
}

func scanDuration(doc []byte) (float64, bool) {
	anchor := bytes.Index(doc, []byte(durAttr))
	if anchor < 0 {
		return 0, false
	}
	start := anchor + len(durAttr)
	quoteRel := bytes.IndexByte(doc[start:], '"')
	if quoteRel < 0 {
		return 0, false
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(string(doc[start:start+quoteRel])), 64)
	if err != nil || value < 0 {
		return 0, true
	}
	return value, true
}

// countScenes counts non-overlapping occurrences of the scene anchor, moving
// the cursor past each match so adjacent anchors are never double-counted.
func countScenes(doc []byte) int {
	count := 0
	pattern := []byte(sceneOpen)
	pos := 0
	for {
		idx := bytes.Index(doc[pos:], pattern)
		if idx < 0 {
			return count
		}
		count++
		pos += idx + len(pattern)
	}
}

// FormatDuration renders whole seconds as a zero-padded MM:SS string, flooring
// both components (125.7 seconds renders as "02:05").
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
