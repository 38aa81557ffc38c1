package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"crafting-catalogue/internal/catalog"
	"crafting-catalogue/internal/store"
)

// handleListComponents returns the components matching the optional search
// and category query parameters.
func (s *Server) handleListComponents(w http.ResponseWriter, r *http.Request) {
	recs, err := s.service.ListComponents(r.Context(),
		r.URL.Query().Get("search"), r.URL.Query().Get("category"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleGetComponent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	rec, err := s.service.GetComponent(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleCreateComponent(w http.ResponseWriter, r *http.Request) {
	rec, err := decodeComponent(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	created, err := s.service.CreateComponent(r.Context(), rec)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateComponent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	rec, err := decodeComponent(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	updated, err := s.service.UpdateComponent(r.Context(), id, rec)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteComponent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.service.DeleteComponent(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.service.Categories(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.Stats(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.service.Settings(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	var in store.Settings
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, r, fmt.Errorf("invalid request body: %w", err))
		return
	}

	saved, err := s.service.SaveSettings(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// decodeComponent reads a component from a JSON request body. The ID and
// timestamps are server-assigned and ignored if present.
func decodeComponent(r *http.Request) (catalog.Component, error) {
	var rec catalog.Component
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		return catalog.Component{}, fmt.Errorf("invalid request body: %w", err)
	}
	rec.ID = 0
	return rec, nil
}
