package testsupport

import (
	"fmt"
	"strings"
	"testing"

	"reelstore/internal/archive"
)

// MovieDocument builds a realistic timeline document with the given title,
// duration, and scene count, including one audio cue per scene.
func MovieDocument(title string, duration float64, scenes int) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<film duration="%g" width="552" height="360">`+"\n", duration)
	fmt.Fprintf(&sb, "<title><![CDATA[%s]]></title>\n", title)
	for i := 0; i < scenes; i++ {
		fmt.Fprintf(&sb, `<scene id="s%d" start="%d">`+"\n", i+1, i*10)
		fmt.Fprintf(&sb, `<sound src="audio/cue%d.mp3" start="%d" stop="%d" fadein="0.5" fadeinvol="1"/>`+"\n", i+1, i*10, i*10+8)
		sb.WriteString("</scene>\n")
	}
	sb.WriteString("</film>\n")
	return []byte(sb.String())
}

// Thumbnail returns fake PNG bytes, distinguishable by tag.
func Thumbnail(tag string) []byte {
	return append([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, []byte(tag)...)
}

// MovieArchive packs a document and thumbnail into a portable container,
// failing the test on error.
func MovieArchive(t testing.TB, doc, thumb []byte) []byte {
	t.Helper()

	packed, err := archive.Pack(doc, thumb)
	if err != nil {
		t.Fatalf("archive.Pack: %v", err)
	}
	return packed
}
