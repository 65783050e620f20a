package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Entry names inside the portable movie container. These are fixed by the
// authoring tool and must be reproduced exactly.
const (
	documentEntry  = "movie.xml"
	thumbnailEntry = "thumbnail.png"
)

// ErrNoDocument reports a container without a movie.xml entry.
var ErrNoDocument = errors.New("archive contains no movie document")

// Pack assembles a portable container from a timeline document and its
// thumbnail. A nil thumbnail produces a container with the document only.
func Pack(doc, thumb []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create(documentEntry)
	if err != nil {
		return nil, fmt.Errorf("create %s entry: %w", documentEntry, err)
	}
	if _, err := w.Write(doc); err != nil {
		return nil, fmt.Errorf("write %s entry: %w", documentEntry, err)
	}

	if thumb != nil {
		w, err := zw.Create(thumbnailEntry)
		if err != nil {
			return nil, fmt.Errorf("create %s entry: %w", thumbnailEntry, err)
		}
		if _, err := w.Write(thumb); err != nil {
			return nil, fmt.Errorf("write %s entry: %w", thumbnailEntry, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

// Unpack splits a portable container into its document and thumbnail bytes.
// Entry order inside the container does not matter. The document entry is
// mandatory; the thumbnail may be nil when the container omits it.
func Unpack(archiveBytes []byte) (doc, thumb []byte, err error) {
	zr, err := zip.NewReader(bytes.NewReader(archiveBytes), int64(len(archiveBytes)))
	if err != nil {
		return nil, nil, fmt.Errorf("open archive: %w", err)
	}

	for _, file := range zr.File {
		switch file.Name {
		case documentEntry:
			doc, err = readEntry(file)
		case thumbnailEntry:
			thumb, err = readEntry(file)
		}
		if err != nil {
			return nil, nil, err
		}
	}

	if doc == nil {
		return nil, nil, ErrNoDocument
	}
	return doc, thumb, nil
}

// ExtractDocument pulls only the movie document out of a container. The save
// path uses it because manual saves carry the thumbnail out of band.
func ExtractDocument(archiveBytes []byte) ([]byte, error) {
	doc, _, err := Unpack(archiveBytes)
	return doc, err
}

func readEntry(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open entry %s: %w", file.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read entry %s: %w", file.Name, err)
	}
	return data, nil
}
