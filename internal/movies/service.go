package movies

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"reelstore/internal/archive"
	"reelstore/internal/assets"
	"reelstore/internal/config"
	"reelstore/internal/ident"
	"reelstore/internal/index"
	"reelstore/internal/logging"
	"reelstore/internal/meta"
)

// legacyMarker is the single framing byte one downstream player expects ahead
// of a packed movie on the non-API load path. It must stay 0x00.
const legacyMarker byte = 0x00

// ErrNotFound reports an id with no stored movie.
var ErrNotFound = errors.New("movie not found")

// Service coordinates the asset store, the metadata index, and the archive
// codec to implement the public persistence operations.
type Service struct {
	store  *assets.Store
	idx    *index.Store
	locks  *idLocks
	logger *slog.Logger
	newID  func() string
}

// NewService wires a Service from configuration, an open index store, and a
// logger. The asset root directory is created if absent.
func NewService(cfg *config.Config, idx *index.Store, logger *slog.Logger) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if idx == nil {
		return nil, errors.New("index store is required")
	}
	store, err := assets.New(cfg.Store.RootDir)
	if err != nil {
		return nil, err
	}
	return &Service{
		store:  store,
		idx:    idx,
		locks:  newIDLocks(store.Root()),
		logger: logging.WithComponent(logger, "movies"),
		newID:  ident.New,
	}, nil
}

// Assets exposes the underlying asset store for diagnostics.
func (s *Service) Assets() *assets.Store {
	return s.store
}

// Save stores a movie from a portable container holding the timeline
// document. An empty id allocates a fresh one; a supplied id overwrites in
// place. A non-nil thumbnail is written unconditionally (the manual save path
// always carries one). The metadata record is recomputed from the freshly
// written document and upserted into the kind's collection.
func (s *Service) Save(ctx context.Context, body, thumb []byte, id string, kind Kind) (string, error) {
	if id == "" {
		id = s.newID()
	} else if !ident.Valid(id) {
		return "", fmt.Errorf("%w: %q", assets.ErrInvalidID, id)
	}

	doc, err := archive.ExtractDocument(body)
	if err != nil {
		return "", fmt.Errorf("extract document: %w", err)
	}

	release, err := s.locks.acquire(id)
	if err != nil {
		return "", err
	}
	defer release()

	if thumb != nil {
		if err := s.store.WriteThumbnail(id, thumb); err != nil {
			return "", err
		}
	}
	if err := s.store.WriteDocument(id, doc); err != nil {
		return "", err
	}

	record, err := s.deriveRecord(id, doc, kind)
	if err != nil {
		return "", err
	}

	result, err := s.idx.Upsert(ctx, kind.Collection(), record)
	if err != nil {
		return "", fmt.Errorf("index movie %s: %w", id, err)
	}
	s.logger.Info("movie saved",
		slog.String("id", id),
		slog.String("kind", kind.String()),
		slog.String("index", result.String()),
		slog.Int("scenes", record.SceneCount),
	)
	return id, nil
}

// Upload imports a portable container, always under a fresh id. Both halves
// are written and a fresh metadata record is inserted.
func (s *Service) Upload(ctx context.Context, archiveBytes []byte, kind Kind) (string, error) {
	doc, thumb, err := archive.Unpack(archiveBytes)
	if err != nil {
		return "", fmt.Errorf("unpack archive: %w", err)
	}

	id := s.newID()
	release, err := s.locks.acquire(id)
	if err != nil {
		return "", err
	}
	defer release()

	if err := s.store.WriteDocument(id, doc); err != nil {
		return "", err
	}
	if err := s.store.WriteThumbnail(id, thumb); err != nil {
		return "", err
	}

	record, err := s.deriveRecord(id, doc, kind)
	if err != nil {
		return "", err
	}
	if err := s.idx.Insert(ctx, kind.Collection(), record); err != nil {
		return "", fmt.Errorf("index movie %s: %w", id, err)
	}
	s.logger.Info("movie uploaded",
		slog.String("id", id),
		slog.String("kind", kind.String()),
		slog.Int("scenes", record.SceneCount),
	)
	return id, nil
}

// deriveRecord recomputes metadata from the just-written document. A
// malformed document is logged and indexed with empty fields rather than
// failing the save.
func (s *Service) deriveRecord(id string, doc []byte, kind Kind) (index.Record, error) {
	mtime, err := s.store.ModifiedTime(id)
	if err != nil {
		return index.Record{}, err
	}
	extracted, err := meta.Extract(doc, mtime)
	if err != nil {
		if !errors.Is(err, meta.ErrMalformedDocument) {
			return index.Record{}, err
		}
		s.logger.Warn("document metadata anchors missing; indexing with empty fields",
			slog.String("id", id))
	}
	return index.Record{
		ID:             id,
		Title:          extracted.Title,
		Duration:       extracted.Duration,
		DurationString: extracted.DurationString,
		SceneCount:     extracted.SceneCount,
		Type:           kind.RecordType(),
		Date:           extracted.Date,
	}, nil
}

// Load reads both halves and repacks them into the portable container. When
// raw is false the result carries the legacy marker byte ahead of the packed
// payload for the player transport path.
func (s *Service) Load(ctx context.Context, id string, raw bool) ([]byte, error) {
	_ = ctx

	doc, err := s.store.ReadDocument(id)
	if err != nil {
		return nil, err
	}
	thumb, err := s.store.ReadThumbnail(id)
	if err != nil {
		return nil, err
	}
	packed, err := archive.Pack(doc, thumb)
	if err != nil {
		return nil, fmt.Errorf("pack movie %s: %w", id, err)
	}
	if raw {
		return packed, nil
	}
	framed := make([]byte, 0, len(packed)+1)
	framed = append(framed, legacyMarker)
	return append(framed, packed...), nil
}

// Thumbnail returns a forward-only stream over the movie's thumbnail file.
func (s *Service) Thumbnail(id string) (io.ReadCloser, error) {
	return s.store.OpenThumbnail(id)
}

// AudioCues extracts the document's audio cue descriptors in document order.
func (s *Service) AudioCues(ctx context.Context, id string) ([]archive.Cue, error) {
	_ = ctx

	doc, err := s.store.ReadDocument(id)
	if err != nil {
		return nil, err
	}
	return archive.AudioCues(doc)
}

// Meta re-derives the movie's metadata record from the stored document. The
// type tag lives only in the index, so it is joined in from there when a
// record exists.
func (s *Service) Meta(ctx context.Context, id string) (meta.Record, error) {
	doc, err := s.store.ReadDocument(id)
	if err != nil {
		return meta.Record{}, err
	}
	mtime, err := s.store.ModifiedTime(id)
	if err != nil {
		return meta.Record{}, err
	}
	record, err := meta.Extract(doc, mtime)
	record.ID = id
	if indexed, idxErr := s.idx.Find(ctx, id); idxErr == nil && indexed != nil {
		record.Type = indexed.Type
	}
	return record, err
}

// List returns a collection's metadata records, newest first.
func (s *Service) List(ctx context.Context, collection index.Collection) ([]*index.Record, error) {
	return s.idx.List(ctx, collection)
}

// Stats reports record counts per collection.
func (s *Service) Stats(ctx context.Context) (index.Stats, error) {
	return s.idx.CollectionStats(ctx)
}

// Delete removes the movie's index records (from both collections, since the
// caller does not know which one holds the id) and both asset files. Every
// removal is attempted independently; the joined error reports exactly which
// resources were already missing or failed, and nothing is auto-repaired.
// An id with no trace anywhere returns ErrNotFound.
func (s *Service) Delete(ctx context.Context, id string) error {
	if !ident.Valid(id) {
		return fmt.Errorf("%w: %q", assets.ErrInvalidID, id)
	}

	release, err := s.locks.acquire(id)
	if err != nil {
		return err
	}
	defer release()

	var errs []error
	recordRemoved := false
	for _, collection := range index.Collections() {
		removed, err := s.idx.Delete(ctx, collection, id)
		if err != nil {
			errs = append(errs, fmt.Errorf("index delete %s/%s: %w", collection, id, err))
			continue
		}
		if removed {
			recordRemoved = true
		}
	}

	fileErr := s.store.Remove(id)

	if !recordRemoved && fileErr != nil && allNotFound(fileErr) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if fileErr != nil {
		errs = append(errs, fileErr)
	}

	if err := errors.Join(errs...); err != nil {
		s.logger.Warn("partial delete", slog.String("id", id), slog.String("detail", err.Error()))
		return err
	}
	s.logger.Info("movie deleted", slog.String("id", id))
	return nil
}

// allNotFound reports whether every joined removal failure is a missing file.
func allNotFound(err error) bool {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return errors.Is(err, assets.ErrNotFound)
	}
	for _, e := range joined.Unwrap() {
		if !errors.Is(e, assets.ErrNotFound) {
			return false
		}
	}
	return true
}
