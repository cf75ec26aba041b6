package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"mentorbooking/internal/bookings/service"
	apperrors "mentorbooking/pkg/errors"
	httputil "mentorbooking/pkg/http"
	"mentorbooking/pkg/logger"
	"mentorbooking/pkg/middleware"
	"mentorbooking/pkg/model"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, ok := h.claims(w, r, "Create")
	if !ok {
		return
	}

	var req model.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
			Code:  apperrors.CodeInvalidInput,
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	booking, err := h.service.Create(r.Context(), req.MentorID, req.TimeSlotID, claims.Email)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, ok := h.claims(w, r, "GetAll")
	if !ok {
		return
	}

	query := r.URL.Query()
	filter := model.BookingFilter{
		Period:       model.BookingPeriod(query.Get("date")),
		StudentEmail: query.Get("studentEmail"),
	}

	bookings, err := h.service.GetAll(r.Context(), filter, requester(claims))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteList(w, bookings, len(bookings)); err != nil {
		h.log.Error("failed to write list response", "handler", "GetAll", "operation", "WriteList", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims, ok := h.claims(w, r, "GetByID")
	if !ok {
		return
	}

	booking, err := h.service.GetByID(r.Context(), ps.ByName("bookingId"), requester(claims))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims, ok := h.claims(w, r, "Cancel")
	if !ok {
		return
	}

	if err := h.service.Cancel(r.Context(), ps.ByName("bookingId"), claims.Email); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Cancel", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) claims(w http.ResponseWriter, r *http.Request, handler string) (*middleware.Claims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if ok {
		return claims, true
	}
	if writeErr := httputil.WriteError(w, apperrors.Unauthorized("Authentication required")); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
	return nil, false
}

func requester(claims *middleware.Claims) service.Requester {
	return service.Requester{Email: claims.Email, Admin: claims.IsAdmin()}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", middleware.RequireRoleParams(middleware.RoleStudent, h.Create))
	router.GET("/api/v1/bookings", h.GetAll)
	router.GET("/api/v1/bookings/:bookingId", h.GetByID)
	router.DELETE("/api/v1/bookings/:bookingId", middleware.RequireRoleParams(middleware.RoleStudent, h.Cancel))
}
