package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"mentorbooking/internal/mentors/service"
	httputil "mentorbooking/pkg/http"
	"mentorbooking/pkg/logger"
	"mentorbooking/pkg/model"
)

type MentorHandler struct {
	service service.MentorService
	log     *logger.Logger
}

func NewMentorHandler(service service.MentorService, log *logger.Logger) *MentorHandler {
	return &MentorHandler{
		service: service,
		log:     log,
	}
}

func (h *MentorHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	experience, err := httputil.QueryInt(r, "experience")
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	filter := model.MentorFilter{
		Experience: experience,
		Skills:     httputil.QueryList(r, "skills"),
	}

	mentors, err := h.service.GetAll(r.Context(), filter)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteList(w, mentors, len(mentors)); err != nil {
		h.log.Error("failed to write list response", "handler", "GetAll", "operation", "WriteList", "error", err)
	}
}

func (h *MentorHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	mentor, err := h.service.GetByID(r.Context(), ps.ByName("mentorId"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, mentor); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *MentorHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/mentors", h.GetAll)
	router.GET("/api/v1/mentors/:mentorId", h.GetByID)
}
