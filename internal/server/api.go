package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	zooerrors "github.com/zoodb/zoodb/internal/errors"
	"github.com/zoodb/zoodb/internal/habitat"
	"github.com/zoodb/zoodb/pkg/routematch"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encoding response", "status", status, "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListHabitats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.List())
}

func (s *Server) handleGetHabitat(w http.ResponseWriter, r *http.Request) {
	h, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, h)
}

type animalResponse struct {
	Animal  habitat.Animal `json:"animal"`
	Habitat string         `json:"habitat"`
}

func (s *Server) handleGetAnimal(w http.ResponseWriter, r *http.Request) {
	a, habitatID, err := s.store.Animal(chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, animalResponse{Animal: a, Habitat: habitatID})
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, habitat.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "E002", err.Error())
		return
	}
	s.logger.Error("habitat store", "error", err)
	s.writeError(w, http.StatusInternalServerError, "E120", "habitat catalogue unavailable")
}

type routeInfo struct {
	Name    string   `json:"name"`
	Pattern string   `json:"pattern"`
	Params  []string `json:"params"`
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	routes := s.routes.Routes()
	out := make([]routeInfo, 0, len(routes))
	for _, route := range routes {
		params := route.Pattern.Params()
		if params == nil {
			params = []string{}
		}
		out = append(out, routeInfo{Name: route.Name, Pattern: route.Pattern.String(), Params: params})
	}
	s.writeJSON(w, http.StatusOK, out)
}

type matchResponse struct {
	Match  bool              `json:"match"`
	Params routematch.Params `json:"params"`
}

// handleMatch runs the path matcher on ?pattern= and ?path=. A successful
// static match returns an empty params object; no match returns null.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params, ok, err := routematch.Match(q.Get("pattern"), q.Get("path"))
	if err != nil {
		s.metrics.decodeErrors.Inc()
		s.writeError(w, http.StatusBadRequest, "E001", err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, matchResponse{Match: ok, Params: params})
}

func (s *Server) handleNotImplemented(w http.ResponseWriter, r *http.Request) {
	tmpl, _ := zooerrors.Lookup("E141")
	s.writeError(w, http.StatusNotImplemented, "E141", tmpl.Detail)
}
