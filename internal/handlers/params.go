package handlers

import (
	"net/http"
	"strconv"
)

// getParam returns a path or query parameter value regardless of whether
// the router stores it with a leading colon or not. It also supports the
// standard net/http PathValue API available in recent Go versions.
func getParam(r *http.Request, name string) string {
	if r == nil {
		return ""
	}

	if val := r.URL.Query().Get(":" + name); val != "" {
		return val
	}

	if val := r.URL.Query().Get(name); val != "" {
		return val
	}

	return r.PathValue(name)
}

func parseFloatQuery(r *http.Request, name string) float64 {
	val, err := strconv.ParseFloat(r.URL.Query().Get(name), 64)
	if err != nil {
		return 0
	}
	return val
}

func parseIntQuery(r *http.Request, name string) int {
	val, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return val
}

// currentUserID reads the authenticated user id placed in the request
// context by the JWT middleware.
func currentUserID(r *http.Request) (int, bool) {
	id, ok := r.Context().Value("user_id").(int)
	return id, ok
}
