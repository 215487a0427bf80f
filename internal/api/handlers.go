package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

const serviceName = "IGDB Game Service"

// Index lists the public endpoints.
func (s *Server) Index(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Paws Gameroom Backend API",
		"endpoints": map[string]string{
			"games":    "/api/games",
			"search":   "/api/games/search/:query",
			"platform": "/api/games/platform/:platform",
			"health":   "/api/health",
		},
	})
}

// Health reports liveness. It never touches upstream services.
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"service":   serviceName,
		"timestamp": s.now().UTC().Format("2006-01-02T15:04:05.000Z"),
	})
}

// GetGames returns the full aggregated catalog. Upstream failures show up
// as empty or fallback buckets, never as an error status.
func (s *Server) GetGames(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.catalog.Catalog(r.Context()))
}

// SearchGames runs a free-text search, optionally filtered by ?platform=.
func (s *Server) SearchGames(w http.ResponseWriter, r *http.Request) {
	query := mux.Vars(r)["query"]
	platform := r.URL.Query().Get("platform")

	games, err := s.catalog.Search(r.Context(), query, platform)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to search games", err)
		return
	}
	respondJSON(w, http.StatusOK, games)
}

// GetPlatformGames returns one platform bucket.
func (s *Server) GetPlatformGames(w http.ResponseWriter, r *http.Request) {
	platform := mux.Vars(r)["platform"]

	games, ok := s.catalog.Platform(r.Context(), platform)
	if !ok {
		respondError(w, http.StatusNotFound, "Platform not found", nil)
		return
	}
	respondJSON(w, http.StatusOK, games)
}

// respondJSON writes data as a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError writes {error, message}; message is omitted when err is nil.
func respondError(w http.ResponseWriter, status int, message string, err error) {
	body := map[string]string{"error": message}
	if err != nil {
		body["message"] = err.Error()
	}
	respondJSON(w, status, body)
}
