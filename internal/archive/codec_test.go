package archive_test

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"testing"

	"reelstore/internal/archive"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	doc := []byte(`<film duration="12"><title><![CDATA[Round Trip]]></title></film>`)
	thumb := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 1, 2, 3}

	packed, err := archive.Pack(doc, thumb)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}

	gotDoc, gotThumb, err := archive.Unpack(packed)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if !bytes.Equal(gotDoc, doc) {
		t.Fatalf("document bytes differ after round trip")
	}
	if !bytes.Equal(gotThumb, thumb) {
		t.Fatalf("thumbnail bytes differ after round trip")
	}
}

func TestPackWithoutThumbnail(t *testing.T) {
	packed, err := archive.Pack([]byte("<film/>"), nil)
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	doc, thumb, err := archive.Unpack(packed)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if string(doc) != "<film/>" {
		t.Fatalf("unexpected document %q", doc)
	}
	if thumb != nil {
		t.Fatalf("expected nil thumbnail, got %d bytes", len(thumb))
	}
}

func TestUnpackIgnoresEntryOrderAndExtras(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, entry := range []struct {
		name string
		data string
	}{
		{"assets/extra.mp3", "not relevant"},
		{"thumbnail.png", "png-bytes"},
		{"movie.xml", "<film/>"},
	} {
		w, err := zw.Create(entry.name)
		if err != nil {
			t.Fatalf("create entry: %v", err)
		}
		if _, err := io.WriteString(w, entry.data); err != nil {
			t.Fatalf("write entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	doc, thumb, err := archive.Unpack(buf.Bytes())
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if string(doc) != "<film/>" || string(thumb) != "png-bytes" {
		t.Fatalf("unexpected halves: doc=%q thumb=%q", doc, thumb)
	}
}

func TestUnpackMissingDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("thumbnail.png")
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	if _, err := io.WriteString(w, "png"); err != nil {
		t.Fatalf("write entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	if _, _, err := archive.Unpack(buf.Bytes()); !errors.Is(err, archive.ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument, got %v", err)
	}
}

func TestUnpackRejectsGarbage(t *testing.T) {
	if _, _, err := archive.Unpack([]byte("definitely not a zip")); err == nil {
		t.Fatal("expected error for non-archive input")
	}
}

func TestExtractDocument(t *testing.T) {
	packed, err := archive.Pack([]byte("<film duration=\"3\"/>"), []byte("png"))
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	doc, err := archive.ExtractDocument(packed)
	if err != nil {
		t.Fatalf("ExtractDocument failed: %v", err)
	}
	if string(doc) != "<film duration=\"3\"/>" {
		t.Fatalf("unexpected document %q", doc)
	}
}
