package server

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"reelstore/internal/archive"
	"reelstore/internal/assets"
	"reelstore/internal/index"
	"reelstore/internal/meta"
	"reelstore/internal/movies"
)

type saveResponse struct {
	ID string `json:"id"`
}

type recordResponse struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Duration       float64 `json:"duration"`
	DurationString string  `json:"durationString"`
	SceneCount     int     `json:"sceneCount"`
	Type           string  `json:"type,omitempty"`
	Date           string  `json:"date"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSave accepts a multipart form with a "movie" container part, an
// optional "thumbnail" part, an optional "id" field (empty allocates a fresh
// one), and an optional "starter" flag routing the record to the assets
// collection.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	body, thumb, ok := s.readUploadForm(w, r)
	if !ok {
		return
	}

	id := r.FormValue("id")
	kind := movies.KindForStarter(parseBool(r.FormValue("starter")))

	saved, err := s.svc.Save(r.Context(), body, thumb, id, kind)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, saveResponse{ID: saved})
}

// handleUpload imports a container under a fresh id. The container must carry
// both halves.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	body, _, ok := s.readUploadForm(w, r)
	if !ok {
		return
	}

	kind := movies.KindForStarter(parseBool(r.FormValue("starter")))

	id, err := s.svc.Upload(r.Context(), body, kind)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, saveResponse{ID: id})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	collection := index.Collection(r.URL.Query().Get("collection"))
	if collection == "" {
		collection = index.CollectionMovies
	}
	if !collection.Valid() {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "unknown collection: " + string(collection),
		})
		return
	}

	records, err := s.svc.List(r.Context(), collection)
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]recordResponse, 0, len(records))
	for _, record := range records {
		out = append(out, recordResponse{
			ID:             record.ID,
			Title:          record.Title,
			Duration:       record.Duration,
			DurationString: record.DurationString,
			SceneCount:     record.SceneCount,
			Type:           record.Type,
			Date:           record.Date.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	record, err := s.svc.Meta(r.Context(), chi.URLParam(r, "id"))
	if err != nil && !errors.Is(err, meta.ErrMalformedDocument) {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, recordResponse{
		ID:             record.ID,
		Title:          record.Title,
		Duration:       record.Duration,
		DurationString: record.DurationString,
		SceneCount:     record.SceneCount,
		Type:           record.Type,
		Date:           record.Date.UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
}

// handleLoad streams the packed container. The raw query flag skips the
// legacy framing byte.
func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	raw := parseBool(r.URL.Query().Get("raw"))
	payload, err := s.svc.Load(r.Context(), chi.URLParam(r, "id"), raw)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
	_, _ = w.Write(payload)
}

func (s *Server) handleThumbnail(w http.ResponseWriter, r *http.Request) {
	stream, err := s.svc.Thumbnail(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer stream.Close()

	w.Header().Set("Content-Type", "image/png")
	if _, err := io.Copy(w, stream); err != nil {
		s.logger.Warn("thumbnail stream interrupted", slog.String("detail", err.Error()))
	}
}

func (s *Server) handleCues(w http.ResponseWriter, r *http.Request) {
	cues, err := s.svc.AudioCues(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cues)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// readUploadForm parses the multipart form and reads the container part named
// "movie" plus the optional "thumbnail" part. A nil thumbnail means the part
// was absent.
func (s *Server) readUploadForm(w http.ResponseWriter, r *http.Request) (body, thumb []byte, ok bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "parse multipart form: " + err.Error(),
		})
		return nil, nil, false
	}

	body, err := readFormFile(r, "movie")
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "read movie part: " + err.Error(),
		})
		return nil, nil, false
	}

	if _, _, err := r.FormFile("thumbnail"); err == nil {
		thumb, err = readFormFile(r, "thumbnail")
		if err != nil {
			s.writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": "read thumbnail part: " + err.Error(),
			})
			return nil, nil, false
		}
	}
	return body, thumb, true
}

func readFormFile(r *http.Request, name string) ([]byte, error) {
	file, _, err := r.FormFile(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// writeError maps service errors onto HTTP status codes. Not-found conditions
// from either the asset store or the service become 404; invalid ids and
// unusable containers become 400; everything else is a 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, movies.ErrNotFound), errors.Is(err, assets.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, assets.ErrInvalidID),
		errors.Is(err, archive.ErrNoDocument),
		errors.Is(err, zip.ErrFormat):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", slog.String("detail", err.Error()))
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warn("encode response", slog.String("detail", err.Error()))
	}
}

func parseBool(value string) bool {
	parsed, err := strconv.ParseBool(value)
	return err == nil && parsed
}
