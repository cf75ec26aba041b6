package handler

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"mentorbooking/internal/imports/service"
	apperrors "mentorbooking/pkg/errors"
	httputil "mentorbooking/pkg/http"
	"mentorbooking/pkg/logger"
	"mentorbooking/pkg/middleware"
)

const (
	ImportMentorsPath = "/api/v1/import/mentors"
	fileField         = "file"
	// Parts above this size spill to temporary files.
	multipartMemory = 8 << 20
)

type ImportHandler struct {
	service service.UploadService
	log     *logger.Logger
}

func NewImportHandler(service service.UploadService, log *logger.Logger) *ImportHandler {
	return &ImportHandler{
		service: service,
		log:     log,
	}
}

type importResponse struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

func (h *ImportHandler) ImportMentors(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		h.writeError(w, apperrors.InvalidInput("Request must be multipart/form-data with a file"))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile(fileField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			h.writeError(w, apperrors.InvalidInput("Missing file field "+fileField))
			return
		}
		h.writeError(w, apperrors.InvalidInput("Unreadable file upload"))
		return
	}
	defer file.Close()

	var requestedBy string
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		requestedBy = claims.Email
	}

	request, err := h.service.Upload(r.Context(), header.Filename, file, requestedBy)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if err := httputil.WriteSuccess(w, importResponse{Bucket: request.Bucket, Key: request.Key}); err != nil {
		h.log.Error("failed to write success response", "handler", "ImportMentors", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ImportHandler) writeError(w http.ResponseWriter, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", "ImportMentors", "operation", "WriteError", "error", writeErr)
	}
}

func (h *ImportHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST(ImportMentorsPath, middleware.RequireRoleParams(middleware.RoleAdmin, h.ImportMentors))
}
