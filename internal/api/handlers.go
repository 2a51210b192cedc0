package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/idilsaglam/lostfound/internal/log"
	"github.com/idilsaglam/lostfound/internal/matcher"
	"github.com/idilsaglam/lostfound/internal/model"
	"github.com/idilsaglam/lostfound/internal/store/jsonstore"
)

// writeJSON encodes v before touching the response so an encoding failure
// still yields a 500 with an error body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Error("encode response: %v", err)
		status = http.StatusInternalServerError
		buf.Reset()
		_ = json.NewEncoder(&buf).Encode(map[string]string{"error": "could not encode response"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Warn("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStoreError maps store and validation failures to status codes.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidItem):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, jsonstore.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		log.Error("store: %v", err)
		writeError(w, http.StatusInternalServerError, "storage failure")
	}
}

func (s *Server) loadItems() ([]model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Load()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.routes)
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := model.Filter{Query: q.Get("q")}
	if v := q.Get("kind"); v != "" && v != "all" {
		k, err := model.ParseKind(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		f.Kind = k
	}
	if v := q.Get("status"); v != "" && v != "all" {
		st, err := model.ParseStatus(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		f.Status = st
	}

	items, err := s.loadItems()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f.Apply(items))
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	it, err := s.store.Get(mux.Vars(r)["id"])
	s.mu.Unlock()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var it model.Item
	if err := json.NewDecoder(r.Body).Decode(&it); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	// new reports always start open with a server-assigned id
	it.ID = ""
	it.Status = model.StatusOpen
	if err := it.Validate(s.routes); err != nil {
		writeStoreError(w, err)
		return
	}

	s.mu.Lock()
	saved, err := s.store.Add(it)
	s.mu.Unlock()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	log.Info("reported %s item %s on route %s", saved.Kind, saved.ID, saved.RouteID)
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status model.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Status == 0 {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}

	s.mu.Lock()
	it, err := s.store.SetStatus(mux.Vars(r)["id"], req.Status)
	s.mu.Unlock()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	err := s.store.Remove(mux.Vars(r)["id"])
	s.mu.Unlock()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleMatches recomputes candidates from the current items on every call.
func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	items, err := s.loadItems()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	matches := matcher.FindMatches(items)
	if route := r.URL.Query().Get("route"); route != "" {
		kept := make([]model.MatchCandidate, 0, len(matches))
		for _, m := range matches {
			if m.Lost.RouteID == route {
				kept = append(kept, m)
			}
		}
		matches = kept
	}
	writeJSON(w, http.StatusOK, matches)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	items, err := s.loadItems()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.CountStats(items))
}
