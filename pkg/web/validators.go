package web

import (
	"net/http"
	"strconv"
)

// QueryInt returns the value of an integer query parameter. A missing,
// malformed or below-minimum value falls back to def rather than failing
// the request.
func QueryInt(r *http.Request, key string, def, min int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < min {
		return def
	}
	return value
}

// QueryString returns the value of a string query parameter, falling back
// to def when the parameter is absent.
func QueryString(r *http.Request, key, def string) string {
	if value := r.URL.Query().Get(key); value != "" {
		return value
	}
	return def
}
