package middleware

import (
	"net/http"
	"strings"

	"mentorbooking/pkg/logger"
)

const (
	contentTypeJSON      = "application/json"
	contentTypeMultipart = "multipart/form-data"
)

// ContentTypeValidation requires JSON bodies on write methods. Paths listed in
// multipartPaths accept multipart/form-data instead.
func ContentTypeValidation(log *logger.Logger, multipartPaths ...string) func(http.Handler) http.Handler {
	multipart := make(map[string]struct{}, len(multipartPaths))
	for _, p := range multipartPaths {
		multipart[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if requiresContentType(r) {
				contentType := extractContentType(r.Header.Get("Content-Type"))

				expected := contentTypeJSON
				if _, ok := multipart[r.URL.Path]; ok {
					expected = contentTypeMultipart
				}

				if contentType != expected {
					rejectInvalidContentType(w, log, r, contentType, expected)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func requiresContentType(r *http.Request) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

func extractContentType(header string) string {
	if header == "" {
		return ""
	}

	parts := strings.Split(header, ";")
	return strings.ToLower(strings.TrimSpace(parts[0]))
}

func rejectInvalidContentType(w http.ResponseWriter, log *logger.Logger, r *http.Request, contentType, expected string) {
	log.Warn("Invalid Content-Type header",
		"request_id", requestID(r),
		"content_type", contentType,
		"expected", expected,
		"path", r.URL.Path,
		"method", r.Method,
	)

	writeJSONError(w, http.StatusUnsupportedMediaType, `{"error":"Content-Type must be `+expected+`"}`)
}
