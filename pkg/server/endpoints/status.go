package endpoints

import (
	"net/http"
	"os"

	"reqwise/pkg/server"
	"reqwise/pkg/server/store"
)

// StatusResponse is the body of GET /status
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// RegisterStatusEndpoint registers the health endpoint. It is public so
// deploy tooling can poll it before any account exists.
func RegisterStatusEndpoint(s *server.Server) {
	s.Router.HandleFunc("/status", handleStatus(s.Health)).Methods("GET")
}

func handleStatus(health store.HealthStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := os.Getenv("REQWISE_VERSION")
		if version == "" {
			version = "0.1.0"
		}

		if err := health.CheckConnectivity(); err != nil {
			respondWithJSON(w, http.StatusServiceUnavailable, StatusResponse{
				Status:  "error",
				Version: version,
			})
			return
		}

		respondWithJSON(w, http.StatusOK, StatusResponse{
			Status:  "ok",
			Version: version,
		})
	}
}
