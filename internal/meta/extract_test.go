package meta_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"reelstore/internal/meta"
)

const sampleDoc = `<film duration="125.7" width="552" height="360">
<title><![CDATA[  My First Movie  ]]></title>
<scene id="s1" start="0"><char id="c1"/></scene>
<scene id="s2" start="40"></scene>
<scene id="s3" start="90"></scene>
</film>`

func TestExtractFullDocument(t *testing.T) {
	modified := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	record, err := meta.Extract([]byte(sampleDoc), modified)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if record.Title != "My First Movie" {
		t.Fatalf("unexpected title %q", record.Title)
	}
	if record.Duration != 125.7 {
		t.Fatalf("unexpected duration %v", record.Duration)
	}
	if record.DurationString != "02:05" {
		t.Fatalf("unexpected duration string %q", record.DurationString)
	}
	if record.SceneCount != 3 {
		t.Fatalf("unexpected scene count %d", record.SceneCount)
	}
	if !record.Date.Equal(modified) {
		t.Fatalf("expected date passthrough, got %v", record.Date)
	}
}

func TestExtractIsPure(t *testing.T) {
	doc := []byte(sampleDoc)
	modified := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	first, err1 := meta.Extract(doc, modified)
	second, err2 := meta.Extract(doc, modified)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v %v", err1, err2)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated extraction differs: %#v vs %#v", first, second)
	}
}

func TestExtractMissingTitleAnchors(t *testing.T) {
	doc := `<film duration="59"><scene id="only"></scene></film>`
	record, err := meta.Extract([]byte(doc), time.Now())
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if record.Title != "" {
		t.Fatalf("expected empty title, got %q", record.Title)
	}
	if record.DurationString != "00:59" {
		t.Fatalf("unexpected duration string %q", record.DurationString)
	}
}

func TestExtractUnterminatedTitle(t *testing.T) {
	doc := `<film duration="10"><title><![CDATA[never closed`
	record, err := meta.Extract([]byte(doc), time.Now())
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if record.Title != "" {
		t.Fatalf("expected empty title for unterminated anchor, got %q", record.Title)
	}
}

func TestExtractMalformedDocument(t *testing.T) {
	record, err := meta.Extract([]byte("<not><a><movie/></a></not>"), time.Now())
	if !errors.Is(err, meta.ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument, got %v", err)
	}
	if record.Title != "" || record.Duration != 0 || record.SceneCount != 0 {
		t.Fatalf("expected zero-field record, got %#v", record)
	}
	if record.DurationString != "00:00" {
		t.Fatalf("unexpected duration string %q", record.DurationString)
	}
}

func TestExtractToleratesReorderedAttributes(t *testing.T) {
	doc := `<film version="2" fps="24" duration="61.2" extra="x">
<meta><title><![CDATA[Reordered]]></title></meta>
<scene id="a"/><scene id="b"/>`
	record, err := meta.Extract([]byte(doc), time.Now())
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if record.Title != "Reordered" || record.Duration != 61.2 || record.SceneCount != 2 {
		t.Fatalf("unexpected record %#v", record)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{125.7, "02:05"},
		{59, "00:59"},
		{0, "00:00"},
		{3600, "60:00"},
		{-4, "00:00"},
	}
	for _, tc := range cases {
		if got := meta.FormatDuration(tc.seconds); got != tc.want {
			t.Fatalf("FormatDuration(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestCountScenesAdjacentAnchors(t *testing.T) {
	doc := strings.Repeat("<scene id=", 4)
	record, err := meta.Extract([]byte(`<film duration="1">`+doc), time.Now())
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if record.SceneCount != 4 {
		t.Fatalf("expected 4 scenes, got %d", record.SceneCount)
	}
}
