package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/glabrego/wikiscroll/internal/app"
	"github.com/glabrego/wikiscroll/internal/content"
)

type errorResponse struct {
	Error string `json:"error"`
}

type popularResponse struct {
	Items []content.Item `json:"items"`
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	size, err := intQuery(r, "size", app.DefaultBatchSize)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeResult(w, r, s.svc.Batch(r.Context(), size))
}

func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	s.writeResult(w, r, s.svc.Random(r.Context()))
}

func (s *Server) handleLike(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp, err := s.svc.Like(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleLikes(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp, err := s.svc.Likes(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handlePopular(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit", app.DefaultPopularLimit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	items, err := s.svc.Popular(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if items == nil {
		items = []content.Item{}
	}
	s.writeJSON(w, r, http.StatusOK, popularResponse{Items: items})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// writeResult maps an acquisition outcome onto the wire: failures become 502,
// partial results stay 200 with the warning alongside the items.
func (s *Server) writeResult(w http.ResponseWriter, r *http.Request, res content.Result) {
	if res.Failed() {
		s.writeJSON(w, r, http.StatusBadGateway, errorResponse{Error: res.Message})
		return
	}
	s.writeJSON(w, r, http.StatusOK, res.Response())
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", RequestID(r.Context()), "err", err)
		msg = http.StatusText(status)
	}
	s.writeJSON(w, r, status, errorResponse{Error: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", "path", r.URL.Path, "err", err)
	}
}

func statusFor(err error) int {
	switch {
	case content.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, content.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// intQuery parses an optional integer query parameter. Clamping is left to
// the service.
func intQuery(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, content.Invalid(name, "must be an integer")
	}
	return n, nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, content.Invalid("id", "must be a positive integer")
	}
	return id, nil
}
