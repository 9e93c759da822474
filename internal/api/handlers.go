package api

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unklstewy/shipcommand/internal/auth"
	"github.com/unklstewy/shipcommand/internal/sim"
	"github.com/unklstewy/shipcommand/pkg/geo"
	"github.com/unklstewy/shipcommand/pkg/kinematics"
	"github.com/unklstewy/shipcommand/pkg/tracking"
)

// handleHealth reports the loop state
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	f := s.world.Snapshot()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"tick":      f.Tick,
		"paused":    s.world.Paused(),
		"step_rate": s.world.StepRate(),
		"vessels":   len(f.Vehicles),
	})
}

// handleLogin handles operator login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, role, err := s.authSvc.Login(req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		s.log.Warn(r.Context(), "login rejected", "username", req.Username)
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		s.log.Error(r.Context(), "login failed", err, "username", req.Username)
		respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	s.log.Info(r.Context(), "operator logged in", "username", req.Username, "role", role)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token":    token,
		"username": req.Username,
		"role":     role,
	})
}

func (s *Server) handleGetVehicles(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, toFrame(s.world.Snapshot()))
}

func (s *Server) handleGetVehicle(w http.ResponseWriter, r *http.Request) {
	v, ok := s.world.Snapshot().Vehicle(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, http.StatusNotFound, "vehicle not found")
		return
	}
	respondJSON(w, http.StatusOK, toVessel(v))
}

// handleIntercept computes where the tracks of two vessels cross and how
// close they will pass.
func (s *Server) handleIntercept(w http.ResponseWriter, r *http.Request) {
	f := s.world.Snapshot()
	own, ok := f.Vehicle(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, http.StatusNotFound, "vehicle not found")
		return
	}
	target, ok := f.Vehicle(chi.URLParam(r, "target"))
	if !ok {
		respondError(w, http.StatusNotFound, "target not found")
		return
	}

	resp := map[string]interface{}{
		"closest_approach": toApproach(tracking.ClosestApproach(own.Snapshot, target.Snapshot)),
	}

	crossing, err := tracking.Intercept(own.Snapshot, target.Snapshot)
	switch {
	case errors.Is(err, geo.ErrInfiniteSolutions):
		resp["crossing_error"] = "tracks run along the same great circle"
	case errors.Is(err, geo.ErrAmbiguousSolution):
		resp["crossing_error"] = "tracks diverge"
	case err != nil:
		s.log.Error(r.Context(), "intercept failed", err)
		respondError(w, http.StatusInternalServerError, "intercept failed")
		return
	default:
		resp["crossing"] = toIntercept(crossing)
	}

	respondJSON(w, http.StatusOK, resp)
}

// handleSetControls queues a control change; it applies at the next tick.
func (s *Server) handleSetControls(w http.ResponseWriter, r *http.Request) {
	var in kinematics.ControlInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.world.SetControls(id, in); err != nil {
		if errors.Is(err, sim.ErrUnknownVehicle) {
			respondError(w, http.StatusNotFound, "vehicle not found")
			return
		}
		if errors.Is(err, sim.ErrNotSteerable) {
			respondError(w, http.StatusConflict, "vehicle cannot be steered")
			return
		}
		s.log.Error(r.Context(), "set controls failed", err, "vehicle", id)
		respondError(w, http.StatusInternalServerError, "failed to set controls")
		return
	}

	s.log.Debug(r.Context(), "controls queued", "vehicle", id)
	respondJSON(w, http.StatusAccepted, map[string]interface{}{"status": "accepted"})
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	s.world.Pause()
	respondJSON(w, http.StatusOK, map[string]interface{}{"paused": true})
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	s.world.Resume()
	respondJSON(w, http.StatusOK, map[string]interface{}{"paused": false})
}

func finite(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return -1
	}
	return v
}
