package archive

import (
	"bytes"
	"strconv"
	"strings"
)

// Fade describes one edge of an audio cue's envelope.
type Fade struct {
	Duration float64 `json:"duration"`
	Volume   float64 `json:"vol"`
}

// Cue describes one audio segment referenced by a timeline document, in
// document order. Start/Stop bound the source window; the trim offsets and
// fades refine playback within it.
type Cue struct {
	Filepath  string  `json:"filepath"`
	Start     float64 `json:"start"`
	Stop      float64 `json:"stop"`
	TrimStart float64 `json:"trimStart"`
	TrimEnd   float64 `json:"trimEnd"`
	FadeIn    Fade    `json:"fadeIn"`
	FadeOut   Fade    `json:"fadeOut"`
}

var soundOpen = []byte("<sound ")

// AudioCues scans a timeline document for sound elements and returns their
// cue descriptors in document order. The scan uses the same tolerant
// anchor-and-attribute approach as metadata extraction: unknown attributes
// are skipped, missing ones default to zero, and nothing beyond the literal
// element anchor is assumed about the surrounding document.
func AudioCues(doc []byte) ([]Cue, error) {
	var cues []Cue
	pos := 0
	for {
		idx := bytes.Index(doc[pos:], soundOpen)
		if idx < 0 {
			return cues, nil
		}
		start := pos + idx
		end := bytes.IndexByte(doc[start:], '>')
		if end < 0 {
			// Truncated element at EOF; everything before it still counts.
			return cues, nil
		}
		cues = append(cues, parseCue(doc[start:start+end]))
		pos = start + end + 1
	}
}

func parseCue(element []byte) Cue {
	attrs := scanAttrs(element)
	return Cue{
		Filepath:  attrs["src"],
		Start:     attrFloat(attrs, "start"),
		Stop:      attrFloat(attrs, "stop"),
		TrimStart: attrFloat(attrs, "trimstart"),
		TrimEnd:   attrFloat(attrs, "trimend"),
		FadeIn: Fade{
			Duration: attrFloat(attrs, "fadein"),
			Volume:   attrFloat(attrs, "fadeinvol"),
		},
		FadeOut: Fade{
			Duration: attrFloat(attrs, "fadeout"),
			Volume:   attrFloat(attrs, "fadeoutvol"),
		},
	}
}

// scanAttrs collects key="value" pairs from a single element's bytes. Keys
// are lowercased; malformed fragments are skipped rather than failing.
func scanAttrs(element []byte) map[string]string {
	attrs := make(map[string]string)
	pos := 0
	for {
		eq := bytes.Index(element[pos:], []byte(`="`))
		if eq < 0 {
			return attrs
		}
		keyEnd := pos + eq
		keyStart := keyEnd
		for keyStart > pos && isAttrNameByte(element[keyStart-1]) {
			keyStart--
		}
		valueStart := keyEnd + 2
		quoteRel := bytes.IndexByte(element[valueStart:], '"')
		if quoteRel < 0 {
			return attrs
		}
		if keyStart < keyEnd {
			key := strings.ToLower(string(element[keyStart:keyEnd]))
			attrs[key] = string(element[valueStart : valueStart+quoteRel])
		}
		pos = valueStart + quoteRel + 1
	}
}

func attrFloat(attrs map[string]string, key string) float64 {
	value, ok := attrs[key]
	if !ok {
		return 0
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return parsed
}

func isAttrNameByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	case b >= '0' && b <= '9':
		return true
	case b == '_' || b == '-':
		return true
	}
	return false
}
