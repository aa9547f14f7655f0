package handlers

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/upb/recruitment-platform/models"
	"github.com/upb/recruitment-platform/storage"
	"github.com/upb/recruitment-platform/utils"
	"go.uber.org/zap"
)

// UploadResponse acknowledges a stored CV
type UploadResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
}

// CVListResponse wraps the CV metadata list
type CVListResponse struct {
	CVs []*models.CV `json:"cvs"`
}

// CVService defines the CV operations the handler needs
type CVService interface {
	Upload(ctx context.Context, userID, filename string, r io.Reader) (*models.CV, error)
	Open(filename string) (storage.File, string, error)
	OpenByPrefix(prefix string) (storage.File, string, error)
	Delete(ctx context.Context, filename string) error
	List(ctx context.Context) ([]*models.CV, error)
	Get(ctx context.Context, id uuid.UUID) (*models.CV, error)
}

// CVHandler handles CV file HTTP requests
type CVHandler struct {
	cvs           CVService
	maxUploadSize int64
	logger        *zap.Logger
}

// NewCVHandler creates a new CVHandler
func NewCVHandler(cvs CVService, maxUploadSize int64, logger *zap.Logger) *CVHandler {
	return &CVHandler{
		cvs:           cvs,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

// HandleUpload handles POST /cv/upload
func (h *CVHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		h.logger.Warn("upload without file", zap.Error(err))
		_ = utils.WriteBadRequest(w, "No file uploaded", nil)
		return
	}
	defer file.Close()

	cv, err := h.cvs.Upload(r.Context(), r.FormValue("user_id"), header.Filename, file)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, UploadResponse{Message: "Upload successful", Filename: cv.SavedFilename})
}

// HandleDownload handles GET /cv/download/{filename}
func (h *CVHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	f, name, err := h.cvs.Open(chi.URLParam(r, "filename"))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	h.serve(w, r, f, name)
}

// HandleView handles GET /cv/view/{uuidPart}
func (h *CVHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	f, name, err := h.cvs.OpenByPrefix(chi.URLParam(r, "uuidPart"))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "inline")
	h.serve(w, r, f, name)
}

func (h *CVHandler) serve(w http.ResponseWriter, r *http.Request, f storage.File, name string) {
	info, err := f.Stat()
	if err != nil {
		HandleServiceError(w, fmt.Errorf("stat %s: %w", name, err), h.logger)
		return
	}
	http.ServeContent(w, r, name, info.ModTime(), f)
}

// HandleDelete handles DELETE /cv/delete/{filename}
func (h *CVHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.cvs.Delete(r.Context(), chi.URLParam(r, "filename")); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteMessage(w, http.StatusOK, "File deleted")
}

// HandleList handles GET /cv/list
func (h *CVHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.cvs.List(r.Context())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	if list == nil {
		list = []*models.CV{}
	}
	_ = utils.WriteOK(w, CVListResponse{CVs: list})
}

// HandleGet handles GET /cv/get/{cvID}
func (h *CVHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "cvID")
	if !ok {
		return
	}

	cv, err := h.cvs.Get(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, cv)
}
