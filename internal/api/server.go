// Package api exposes items, routes and match proposals over HTTP.
package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/idilsaglam/lostfound/internal/auth"
	"github.com/idilsaglam/lostfound/internal/log"
	"github.com/idilsaglam/lostfound/internal/model"
	"github.com/idilsaglam/lostfound/internal/store/jsonstore"
)

// Server serialises access to the JSON store; the store itself has no locking.
type Server struct {
	mu     sync.Mutex
	store  *jsonstore.Store
	routes []model.Route
	token  string
}

// New returns a server. An empty token leaves mutating endpoints open.
func New(st *jsonstore.Store, routes []model.Route, token string) *Server {
	return &Server{store: st, routes: routes, token: auth.StripBearer(strings.TrimSpace(token))}
}

// Router registers every endpoint.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/routes", s.handleRoutes).Methods(http.MethodGet)
	api.HandleFunc("/items", s.handleListItems).Methods(http.MethodGet)
	api.HandleFunc("/items", s.requireToken(s.handleCreateItem)).Methods(http.MethodPost)
	api.HandleFunc("/items/{id}", s.handleGetItem).Methods(http.MethodGet)
	api.HandleFunc("/items/{id}", s.requireToken(s.handleUpdateStatus)).Methods(http.MethodPatch)
	api.HandleFunc("/items/{id}", s.requireToken(s.handleDeleteItem)).Methods(http.MethodDelete)
	api.HandleFunc("/matches", s.handleMatches).Methods(http.MethodGet)
	api.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)

	r.Use(accessLog)
	return r
}

// Handler wraps the router with CORS for the given origins.
func (s *Server) Handler(origins []string) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false, // bearer header, no cookies
	}).Handler(s.Router())
}

func (s *Server) requireToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" {
			got := auth.StripBearer(strings.TrimSpace(r.Header.Get("Authorization")))
			if subtle.ConstantTimeCompare([]byte(got), []byte(s.token)) != 1 {
				writeError(w, http.StatusUnauthorized, "missing or invalid token")
				return
			}
		}
		next(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond))
	})
}
