package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dgallion1/docoutline/internal/store"
	"github.com/go-chi/chi/v5"
)

// storeOrUnavailable writes a 503 when no result store is configured.
func (s *Server) storeOrUnavailable(w http.ResponseWriter) store.Store {
	st := s.orchestrator.Store()
	if st == nil {
		jsonError(w, "no result store configured", http.StatusServiceUnavailable)
	}
	return st
}

func renderRecord(rec store.Record, r *http.Request) map[string]any {
	return map[string]any{
		"id":           rec.ID,
		"file":         rec.File,
		"content_hash": rec.ContentHash,
		"created_at":   rec.CreatedAt,
		"result":       renderResult(rec.Result, r),
	}
}

func (s *Server) handleListOutlines(w http.ResponseWriter, r *http.Request) {
	st := s.storeOrUnavailable(w)
	if st == nil {
		return
	}

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			jsonError(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	recs, err := st.List(r.Context(), limit)
	if err != nil {
		jsonError(w, "failed to list outlines: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]map[string]any, 0, len(recs))
	for _, rec := range recs {
		out = append(out, renderRecord(rec, r))
	}
	writeJSON(w, http.StatusOK, map[string]any{"outlines": out})
}

func (s *Server) handleGetOutline(w http.ResponseWriter, r *http.Request) {
	st := s.storeOrUnavailable(w)
	if st == nil {
		return
	}

	rec, err := st.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "outline not found", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, "failed to get outline: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, renderRecord(rec, r))
}

func (s *Server) handleDeleteOutline(w http.ResponseWriter, r *http.Request) {
	st := s.storeOrUnavailable(w)
	if st == nil {
		return
	}

	id := chi.URLParam(r, "id")
	err := st.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "outline not found", http.StatusNotFound)
		return
	}
	if err != nil {
		jsonError(w, "failed to delete outline: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}
