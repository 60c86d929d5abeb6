package endpoints

import (
	"net/http"

	"reqwise/pkg/identity"
	"reqwise/pkg/server"
	"reqwise/pkg/server/middleware"
)

// RegisterWhoamiEndpoint registers the /whoami endpoint
func RegisterWhoamiEndpoint(s *server.Server) {
	bearer := middleware.NewBearerAuthenticator(s.Resolver)

	whoamiRouter := s.Router.PathPrefix("/whoami").Subrouter()
	whoamiRouter.Use(bearer.Middleware)

	whoamiRouter.HandleFunc("", handleWhoami()).Methods("GET")
}

func handleWhoami() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		respondWithJSON(w, http.StatusOK, userResponse(user))
	}
}
