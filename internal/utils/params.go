// Package utils holds small helpers shared by the API handlers.
package utils

import (
	"fmt"
	"net/http"
	"strconv"
)

// FloatParam parses a required float query parameter.
func FloatParam(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("missing parameter %q", name)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid parameter %q: %w", name, err)
	}
	return value, nil
}

// FloatParamOrDefault parses an optional float query parameter.
func FloatParamOrDefault(r *http.Request, name string, fallback float64) (float64, error) {
	if r.URL.Query().Get(name) == "" {
		return fallback, nil
	}
	return FloatParam(r, name)
}

// BoolParamOrDefault parses an optional bool query parameter.
func BoolParamOrDefault(r *http.Request, name string, fallback bool) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid parameter %q: %w", name, err)
	}
	return value, nil
}
