// Package api serves the simulation over HTTP: a JSON REST API for vessel
// state and orders, and a WebSocket stream of frames.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"

	"github.com/unklstewy/shipcommand/internal/auth"
	"github.com/unklstewy/shipcommand/internal/logging"
	"github.com/unklstewy/shipcommand/internal/sim"
)

// Server holds the HTTP router and its dependencies
type Server struct {
	router   *chi.Mux
	world    *sim.World
	authSvc  *auth.Service
	log      *logging.Logger
	upgrader websocket.Upgrader
}

// Options configures optional Server behaviour.
type Options struct {
	// AllowedOrigins for CORS and WebSocket upgrades; empty allows any
	AllowedOrigins []string

	// AccessLog enables chi request logging
	AccessLog bool
}

// NewServer creates a server for world using authSvc for protected routes.
func NewServer(world *sim.World, authSvc *auth.Service, log *logging.Logger, opts Options) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		world:   world,
		authSvc: authSvc,
		log:     log,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     originChecker(opts.AllowedOrigins),
	}
	s.setupRoutes(opts)
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(opts Options) {
	r := s.router

	// Middleware
	if opts.AccessLog {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(correlation)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Get("/health", s.handleHealth)
		r.Post("/auth/login", s.handleLogin)
		r.Get("/vehicles", s.handleGetVehicles)
		r.Get("/vehicles/{id}", s.handleGetVehicle)
		r.Get("/vehicles/{id}/intercept/{target}", s.handleIntercept)

		// Protected routes (commander only)
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Use(requireCommander)

			r.Post("/vehicles/{id}/controls", s.handleSetControls)
			r.Post("/sim/pause", s.handlePause)
			r.Post("/sim/resume", s.handleResume)
		})
	})

	r.Get("/ws", s.handleWebSocket)
}

type ctxKey int

const claimsKey ctxKey = iota

// correlation tags the request context with the chi request ID so service
// logs can be joined with the access log.
func correlation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.WithCorrelationID(r.Context(), middleware.GetReqID(r.Context()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authMiddleware validates the bearer token and stores its claims in the context.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		// Extract token (format: "Bearer <token>")
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			respondError(w, http.StatusUnauthorized, "invalid authorization header format")
			return
		}

		claims, err := s.authSvc.ValidateToken(token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requireCommander(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := r.Context().Value(claimsKey).(*auth.Claims)
		if claims == nil || !auth.CanCommand(claims.Role) {
			respondError(w, http.StatusForbidden, "commander role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		return false
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
