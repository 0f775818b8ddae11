package api

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"fake-auth/internal/storage"

	log "github.com/sirupsen/logrus"
)

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// IndexHandler serves the landing page rendered by the provisioning command.
func (s *Server) IndexHandler(w http.ResponseWriter, r *http.Request) {
	if s.pages == nil {
		http.NotFound(w, r)
		return
	}

	file, err := s.pages.Get(storage.IndexPage)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.Error(w, "Landing page not provisioned", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("failed to open landing page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		log.WithError(err).Error("failed to stat landing page")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeContent(w, r, storage.IndexPage, info.ModTime(), file)
}

// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /health [get]
func (s *Server) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		log.WithError(err).Warn("health check: database ping failed")
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
