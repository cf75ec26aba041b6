package errors

import (
	"encoding/json"
	"net/http"
)

// WriteProblem writes err as an ErrorResponse. Errors that are not AppErrors
// are reported as a bare internal error.
func WriteProblem(w http.ResponseWriter, err error) error {
	appErr := AsAppError(err)

	statusCode := appErr.StatusCode()
	if statusCode == 0 {
		statusCode = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(appErr.response())
}
