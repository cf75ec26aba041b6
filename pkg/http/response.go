package http

import (
	"encoding/json"
	"net/http"

	apperrors "mentorbooking/pkg/errors"
)

type ErrorResponse = apperrors.ErrorResponse

type SuccessResponse struct {
	Data any `json:"data"`
}

type ListResponse struct {
	Data  any `json:"data"`
	Count int `json:"count"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError maps err onto its status code. Anything that is not an AppError,
// and every INTERNAL_ERROR, is reported without its cause.
func WriteError(w http.ResponseWriter, err error) error {
	return apperrors.WriteProblem(w, err)
}

func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, SuccessResponse{Data: data})
}

func WriteCreated(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusCreated, SuccessResponse{Data: data})
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func WriteList(w http.ResponseWriter, data any, count int) error {
	return WriteJSON(w, http.StatusOK, ListResponse{
		Data:  data,
		Count: count,
	})
}
