package http

import (
	"net/http"
	"strconv"
	"strings"

	apperrors "mentorbooking/pkg/errors"
)

// QueryInt returns nil when the parameter is absent.
func QueryInt(r *http.Request, name string) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperrors.InvalidInput("invalid " + name + " parameter: " + raw)
	}
	return &v, nil
}

// QueryList splits a comma-separated parameter, dropping empty items.
func QueryList(r *http.Request, name string) []string {
	raw := r.URL.Query().Get(name)
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
