package assets

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"reelstore/internal/fileutil"
	"reelstore/internal/ident"
)

// File extensions for the two halves of a stored project.
const (
	DocumentExt  = ".xml"
	ThumbnailExt = ".png"
)

var (
	// ErrNotFound reports a missing document or thumbnail file.
	ErrNotFound = errors.New("asset not found")
	// ErrInvalidID reports an identifier unsafe to join into an asset path.
	ErrInvalidID = errors.New("invalid asset id")
)

// Store maps project identifiers to document/thumbnail file pairs under a
// single root directory.
type Store struct {
	root string
}

// New constructs a Store rooted at dir, creating it if necessary.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("asset root directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create asset root %q: %w", dir, err)
	}
	return &Store{root: dir}, nil
}

// Root returns the configured asset root directory.
func (s *Store) Root() string {
	return s.root
}

// DocumentPath resolves the timeline-document path for id.
func (s *Store) DocumentPath(id string) (string, error) {
	return s.path(id, DocumentExt)
}

// ThumbnailPath resolves the thumbnail path for id.
func (s *Store) ThumbnailPath(id string) (string, error) {
	return s.path(id, ThumbnailExt)
}

func (s *Store) path(id, ext string) (string, error) {
	if !ident.Valid(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return filepath.Join(s.root, id+ext), nil
}

// WriteDocument creates or overwrites the timeline document for id.
func (s *Store) WriteDocument(id string, data []byte) error {
	return s.write(id, DocumentExt, data)
}

// WriteThumbnail creates or overwrites the thumbnail for id.
func (s *Store) WriteThumbnail(id string, data []byte) error {
	return s.write(id, ThumbnailExt, data)
}

func (s *Store) write(id, ext string, data []byte) error {
	path, err := s.path(id, ext)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// ReadDocument returns the timeline document bytes for id.
func (s *Store) ReadDocument(id string) ([]byte, error) {
	return s.read(id, DocumentExt)
}

// ReadThumbnail returns the thumbnail bytes for id.
func (s *Store) ReadThumbnail(id string) ([]byte, error) {
	return s.read(id, ThumbnailExt)
}

func (s *Store) read(id, ext string) ([]byte, error) {
	path, err := s.path(id, ext)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, filepath.Base(path))
		}
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return data, nil
}

// ThumbnailExists reports whether a thumbnail file is present for id.
func (s *Store) ThumbnailExists(id string) bool {
	path, err := s.path(id, ThumbnailExt)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// OpenThumbnail returns a forward-only reader over the thumbnail file.
// The caller owns the returned reader and must close it.
func (s *Store) OpenThumbnail(id string) (io.ReadCloser, error) {
	path, err := s.path(id, ThumbnailExt)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, filepath.Base(path))
		}
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	return file, nil
}

// ModifiedTime returns the document file's last-write timestamp.
func (s *Store) ModifiedTime(id string) (time.Time, error) {
	path, err := s.path(id, DocumentExt)
	if err != nil {
		return time.Time{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return time.Time{}, fmt.Errorf("%w: %s", ErrNotFound, filepath.Base(path))
		}
		return time.Time{}, fmt.Errorf("stat %s: %w", filepath.Base(path), err)
	}
	return info.ModTime(), nil
}

// Remove deletes both halves of the pair. Each removal is attempted
// independently; a missing half surfaces as a wrapped ErrNotFound in the
// joined error so callers can distinguish partial state from IO failure.
func (s *Store) Remove(id string) error {
	var errs []error
	for _, ext := range []string{DocumentExt, ThumbnailExt} {
		path, err := s.path(id, ext)
		if err != nil {
			return err
		}
		if err := os.Remove(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, fmt.Errorf("%w: %s", ErrNotFound, filepath.Base(path)))
			} else {
				errs = append(errs, fmt.Errorf("remove %s: %w", filepath.Base(path), err))
			}
		}
	}
	return errors.Join(errs...)
}
