package liveview

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	gkerrors "github.com/gamekit-dev/gamekit/internal/errors"
	"github.com/gamekit-dev/gamekit/pkg/bindable"
	"github.com/gamekit-dev/gamekit/pkg/settings"
)

const maxBodySize = 1 << 20

type valueResponse struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code,omitempty"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	values := s.settings.Values()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, values)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	s.mu.Lock()
	value, err := s.settings.Value(key)
	s.mu.Unlock()

	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, valueResponse{Key: key, Value: value})
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "read body: " + err.Error()})
		return
	}
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
		return
	}

	s.mu.Lock()
	err = s.settings.SetRaw(key, raw)
	var value any
	if err == nil {
		value, err = s.settings.Value(key)
	}
	s.mu.Unlock()

	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, valueResponse{Key: key, Value: value})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	err := s.settings.Save(r.Context())
	s.mu.Unlock()

	if err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	err := s.settings.Load(r.Context())
	s.mu.Unlock()

	if err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}

	resp := errorResponse{Error: err.Error()}
	var ge *gkerrors.GameError
	if errors.As(err, &ge) {
		resp.Error = ge.Message
		resp.Code = ge.Code
		resp.Detail = ge.Detail
	}
	writeJSON(w, status, resp)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, settings.ErrUnknownKey):
		return http.StatusNotFound
	case errors.Is(err, settings.ErrTypeMismatch):
		return http.StatusBadRequest
	case errors.Is(err, bindable.ErrInvalidState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
