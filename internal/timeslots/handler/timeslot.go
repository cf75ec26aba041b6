package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"mentorbooking/internal/timeslots/service"
	httputil "mentorbooking/pkg/http"
	"mentorbooking/pkg/logger"
)

type TimeSlotHandler struct {
	service service.TimeSlotService
	log     *logger.Logger
}

func NewTimeSlotHandler(service service.TimeSlotService, log *logger.Logger) *TimeSlotHandler {
	return &TimeSlotHandler{
		service: service,
		log:     log,
	}
}

func (h *TimeSlotHandler) GetActiveByMentorID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	slots, err := h.service.GetActiveByMentorID(r.Context(), ps.ByName("mentorId"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetActiveByMentorID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteList(w, slots, len(slots)); err != nil {
		h.log.Error("failed to write list response", "handler", "GetActiveByMentorID", "operation", "WriteList", "error", err)
	}
}

func (h *TimeSlotHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/mentors/:mentorId/timeslots", h.GetActiveByMentorID)
}
