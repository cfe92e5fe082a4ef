package submission

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gigante-rh/talent-intake/internal"
	"github.com/gigante-rh/talent-intake/internal/access"
	"github.com/gigante-rh/talent-intake/internal/filerelay"
	"github.com/gigante-rh/talent-intake/internal/sheets"
	"github.com/gigante-rh/talent-intake/internal/transport"

	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{BaseHandler: base, Service: service}
}

// Create godoc
// @Summary Submit a resume
// @Description Public endpoint: accepts a multipart form with candidate fields and a resume file
// @Tags submissions
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Candidate name"
// @Param email formData string true "Candidate email"
// @Param phone formData string true "Candidate phone"
// @Param city formData string true "City"
// @Param job_title formData string true "Desired job title"
// @Param pitch formData string false "Short pitch"
// @Param file formData file true "Resume file (PDF or Word)"
// @Success 201 {object} Submission
// @Failure 400 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /submissions [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFileSize + 1<<20); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	dto := CreateSubmissionDTO{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Phone:    r.FormValue("phone"),
		City:     r.FormValue("city"),
		JobTitle: r.FormValue("job_title"),
		Pitch:    r.FormValue("pitch"),
	}

	file, header, err := r.FormFile("file")
	if err == nil {
		defer file.Close()
		data, readErr := io.ReadAll(io.LimitReader(file, maxFileSize+1))
		if readErr != nil {
			h.WriteError(w, http.StatusBadRequest, "failed to read resume file")
			return
		}
		dto.FileName = header.Filename
		dto.MimeType = header.Header.Get("Content-Type")
		dto.FileData = data
	}

	sub, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		// the relay error carries an operator hint the submitter should see
		if errors.Is(err, filerelay.ErrRelayFailed) || errors.Is(err, filerelay.ErrNotConfigured) {
			h.Logger.Error("resume relay failed", "error", err)
			h.WriteError(w, http.StatusBadGateway, err.Error())
			return
		}
		if _, ok := internal.IsAppError(err); ok {
			h.HandleServiceError(w, err)
			return
		}
		// the file is already stored externally; surface the storage error
		h.Logger.Error("submission intake failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.WriteJSON(w, http.StatusCreated, sub)
}

// List godoc
// @Summary List visible submissions
// @Tags submissions
// @Produce json
// @Param city query string false "Filter by city"
// @Param job_title query string false "Filter by job title"
// @Param store query string false "Filter by store"
// @Security BearerAuth
// @Success 200 {array} Submission
// @Router /submissions [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	acc, ok := access.FromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	subs, err := h.Service.List(r.Context(), acc, filterFromQuery(r))
	if err != nil {
		h.Logger.Error("failed to list submissions", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to load submissions")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"submissions": subs,
	})
}

// Stats godoc
// @Summary Submission KPIs
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} KPIStats
// @Router /submissions/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	acc, ok := access.FromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	stats, err := h.Service.Stats(r.Context(), acc, filterFromQuery(r))
	if err != nil {
		h.Logger.Error("failed to compute stats", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to compute statistics")
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}

// Export godoc
// @Summary Export visible submissions as a spreadsheet
// @Tags submissions
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200
// @Router /submissions/export [get]
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	acc, ok := access.FromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	rows, err := h.Service.Export(r.Context(), acc, filterFromQuery(r))
	if err != nil {
		h.Logger.Error("failed to export submissions", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to export submissions")
		return
	}

	buf, err := sheets.BuildWorkbook(rows)
	if err != nil {
		h.Logger.Error("failed to build workbook", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to build the spreadsheet")
		return
	}

	filename := fmt.Sprintf("curriculos-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.Logger.Error("failed to stream workbook", "error", err)
	}
}

// Get godoc
// @Summary Submission detail
// @Tags submissions
// @Produce json
// @Param id path int true "Submission ID"
// @Security BearerAuth
// @Success 200 {object} Submission
// @Failure 404 {object} map[string]interface{}
// @Router /submissions/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	acc, user, id, ok := h.requireDetailContext(w, r)
	if !ok {
		return
	}

	sub, err := h.Service.Get(r.Context(), acc, user.ID, id)
	switch {
	case errors.Is(err, ErrNotFound):
		h.WriteError(w, http.StatusNotFound, "submission not found")
	case err != nil:
		h.Logger.Error("failed to load submission", "submission_id", id, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to load submission")
	default:
		h.WriteJSON(w, http.StatusOK, sub)
	}
}

// File godoc
// @Summary Resume file link
// @Description Returns the stored resume's URL and records a download audit entry
// @Tags submissions
// @Produce json
// @Param id path int true "Submission ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]interface{}
// @Router /submissions/{id}/file [get]
func (h *Handler) File(w http.ResponseWriter, r *http.Request) {
	acc, user, id, ok := h.requireDetailContext(w, r)
	if !ok {
		return
	}

	url, err := h.Service.FileURL(r.Context(), acc, user.ID, id)
	switch {
	case errors.Is(err, ErrNotFound):
		h.WriteError(w, http.StatusNotFound, "submission not found")
	case errors.Is(err, ErrNoFileURL):
		h.WriteError(w, http.StatusNotFound, "submission has no stored file")
	case err != nil:
		h.Logger.Error("failed to resolve file link", "submission_id", id, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to resolve file link")
	default:
		h.WriteJSON(w, http.StatusOK, map[string]string{"url": url})
	}
}

// Insights godoc
// @Summary Automatic pitch assessment
// @Tags submissions
// @Produce json
// @Param id path int true "Submission ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]interface{}
// @Router /submissions/{id}/insights [post]
func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	acc, _, id, ok := h.requireDetailContext(w, r)
	if !ok {
		return
	}

	assessment, err := h.Service.Insights(r.Context(), acc, id)
	switch {
	case errors.Is(err, ErrNotFound):
		h.WriteError(w, http.StatusNotFound, "submission not found")
	case err != nil:
		h.Logger.Error("failed to produce insights", "submission_id", id, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to produce insights")
	default:
		h.WriteJSON(w, http.StatusOK, map[string]string{"assessment": assessment})
	}
}

func (h *Handler) requireDetailContext(w http.ResponseWriter, r *http.Request) (*access.Access, *internal.SessionUser, int64, bool) {
	acc, ok := access.FromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return nil, nil, 0, false
	}
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return nil, nil, 0, false
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid submission id")
		return nil, nil, 0, false
	}

	return acc, user, id, true
}

func filterFromQuery(r *http.Request) Filter {
	q := r.URL.Query()
	return Filter{
		City:     q.Get("city"),
		JobTitle: q.Get("job_title"),
		Store:    q.Get("store"),
	}
}
