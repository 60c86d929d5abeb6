package endpoints

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"reqwise/pkg/authz"
	"reqwise/pkg/config"
	"reqwise/pkg/server/store"
)

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithAuthzError maps an error from the authorization gates onto an
// HTTP status. notFoundMsg covers the orphaned-resource case where the
// ownership walk hit a missing parent.
func respondWithAuthzError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, authz.ErrForbidden):
		respondWithError(w, http.StatusForbidden, forbiddenMessage(err))
	case errors.Is(err, store.ErrNotFound):
		respondWithError(w, http.StatusNotFound, notFoundMsg)
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// forbiddenMessage strips the sentinel prefix so clients see "Owner role
// required" rather than "forbidden: Owner role required".
func forbiddenMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), authz.ErrForbidden.Error())
	msg = strings.TrimPrefix(msg, ": ")
	if msg == "" {
		msg = "Forbidden"
	}
	return msg
}

// pagination reads the skip/limit query parameters. Missing or malformed
// values fall back to 0 and the configured maximum; limit is clamped so a
// client cannot request unbounded pages.
func pagination(r *http.Request, cfg *config.Config) (skip, limit int) {
	skip = 0
	limit = cfg.ListLimitMax

	if v := r.URL.Query().Get("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			skip = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= cfg.ListLimitMax {
			limit = n
		}
	}
	return skip, limit
}

// pathID extracts a numeric {id} path variable.
func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// clientIP extracts the caller's address for audit events.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
