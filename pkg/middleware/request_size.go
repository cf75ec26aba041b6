package middleware

import (
	"net/http"
)

// MaxRequestSize caps request bodies. Paths listed in uploadPaths get the
// larger upload limit.
func MaxRequestSize(limit, uploadLimit int64, uploadPaths ...string) func(http.Handler) http.Handler {
	uploads := make(map[string]struct{}, len(uploadPaths))
	for _, p := range uploadPaths {
		uploads[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			maxBytes := limit
			if _, ok := uploads[r.URL.Path]; ok {
				maxBytes = uploadLimit
			}

			if r.ContentLength > maxBytes {
				writeJSONError(w, http.StatusRequestEntityTooLarge, `{"error":"Request body too large"}`)
				return
			}

			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
