package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prasetyowira/kerjaku/constant"
	"github.com/prasetyowira/kerjaku/domain/apperror"
	"github.com/prasetyowira/kerjaku/domain/auth"
	"github.com/prasetyowira/kerjaku/domain/draft"
	"github.com/prasetyowira/kerjaku/domain/errhandler"
	"github.com/prasetyowira/kerjaku/domain/job"
	"github.com/prasetyowira/kerjaku/domain/location"
	"github.com/prasetyowira/kerjaku/domain/rating"
	"github.com/prasetyowira/kerjaku/domain/result"
	"github.com/prasetyowira/kerjaku/domain/stats"
	"github.com/prasetyowira/kerjaku/infrastructure/cachedb"
	"github.com/prasetyowira/kerjaku/infrastructure/qrcode"
)

// Handler contains the repositories and services the API exposes.
type Handler struct {
	jobs      *job.Repository
	locations *location.Repository
	ratings   *rating.Repository
	stats     *stats.Repository
	drafts    *draft.Repository
	auth      *auth.Service
	errs      *errhandler.Handler
	store     *cachedb.Store
	qr        *qrcode.Generator
}

// NewHandler creates the API handler.
func NewHandler(
	jobs *job.Repository,
	locations *location.Repository,
	ratings *rating.Repository,
	statistics *stats.Repository,
	drafts *draft.Repository,
	authSvc *auth.Service,
	errs *errhandler.Handler,
	store *cachedb.Store,
	qr *qrcode.Generator,
) *Handler {
	return &Handler{
		jobs:      jobs,
		locations: locations,
		ratings:   ratings,
		stats:     statistics,
		drafts:    drafts,
		auth:      authSvc,
		errs:      errs,
		store:     store,
		qr:        qr,
	}
}

// errorResponse renders a handled error to API clients.
type errorResponse struct {
	Code    string   `json:"code"`
	Title   string   `json:"title"`
	Message string   `json:"message"`
	Level   string   `json:"level"`
	Actions []string `json:"actions,omitempty"`
}

func (h *Handler) renderError(w http.ResponseWriter, ae apperror.AppError) {
	msg := h.errs.Handle(ae)
	writeJSON(w, statusFor(ae), errorResponse{
		Code:    ae.Code(),
		Title:   msg.Title,
		Message: msg.Text,
		Level:   msg.Level.String(),
		Actions: errhandler.Labels(msg.Action),
	})
}

// statusFor maps a classified error onto an HTTP status for API clients.
func statusFor(ae apperror.AppError) int {
	switch e := ae.(type) {
	case *apperror.ValidationError:
		return http.StatusBadRequest
	case *apperror.SecurityError:
		if e.Domain == constant.SecurityDomainAuthorization {
			return http.StatusForbidden
		}
		return http.StatusUnauthorized
	case *apperror.NetworkError:
		switch {
		case e.HTTPStatus == 404:
			return http.StatusNotFound
		case e.IsConnection:
			return http.StatusServiceUnavailable
		default:
			return http.StatusBadGateway
		}
	case *apperror.BusinessError:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// respond folds the final result of a repository stream into an HTTP
// response.
func respond[T any](h *Handler, w http.ResponseWriter, res result.Result[T]) {
	res.Fold(
		func(value T) { writeJSON(w, http.StatusOK, map[string]interface{}{"data": value}) },
		func(ae apperror.AppError) { h.renderError(w, ae) },
		func() { w.WriteHeader(http.StatusNoContent) },
	)
}

// ListJobs serves one page of jobs filtered by query parameters.
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	page := job.Page{Number: queryInt(r, "page", 1), Size: queryInt(r, "size", 20)}
	filter := job.Filter{
		State:    r.URL.Query().Get("state"),
		District: r.URL.Query().Get("district"),
		Search:   r.URL.Query().Get("q"),
	}
	if v, ok := queryFloat(r, "salary_min"); ok {
		filter.SalaryMin = &v
	}
	if v, ok := queryFloat(r, "salary_max"); ok {
		filter.SalaryMax = &v
	}

	respond(h, w, h.jobs.List(page, filter).Last(r.Context()))
}

// NearbyJobs serves the jobs within a radius of a coordinate.
func (h *Handler) NearbyJobs(w http.ResponseWriter, r *http.Request) {
	lat, latOK := queryFloat(r, "lat")
	lon, lonOK := queryFloat(r, "lon")
	if !latOK || !lonOK {
		h.renderError(w, apperror.NewValidation("lat", "lat and lon are required", r.URL.RawQuery))
		return
	}
	radius, ok := queryFloat(r, "radius_km")
	if !ok {
		radius = 25
	}

	respond(h, w, h.jobs.Nearby(lat, lon, radius).Last(r.Context()))
}

// GetJob serves one job by id.
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	respond(h, w, h.jobs.GetByID(jobID).Last(r.Context()))
}

// CreateJob posts a new job.
func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var j job.Job
	if err := json.NewDecoder(r.Body).Decode(&j); err != nil {
		h.renderError(w, apperror.NewValidation("body", "invalid request body", err.Error()))
		return
	}

	if ae := h.jobs.Create(r.Context(), &j); ae != nil {
		h.renderError(w, ae)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"data": j})
}

// UpdateJob rewrites an existing job.
func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	var j job.Job
	if err := json.NewDecoder(r.Body).Decode(&j); err != nil {
		h.renderError(w, apperror.NewValidation("body", "invalid request body", err.Error()))
		return
	}
	j.ID = chi.URLParam(r, "jobID")

	if ae := h.jobs.Update(r.Context(), &j); ae != nil {
		h.renderError(w, ae)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": j})
}

// DeleteJob removes a job.
func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	if ae := h.jobs.Delete(r.Context(), chi.URLParam(r, "jobID")); ae != nil {
		h.renderError(w, ae)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// JobQR renders a share QR code for a job's public page.
func (h *Handler) JobQR(w http.ResponseWriter, r *http.Request) {
	size := queryInt(r, "size", 256)
	png, err := h.qr.JobShareCode(chi.URLParam(r, "jobID"), size)
	if err != nil {
		h.renderError(w, apperror.Classify(err, "JobQR"))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// States serves the known state names.
func (h *Handler) States(w http.ResponseWriter, r *http.Request) {
	res := h.locations.All().Last(r.Context())
	respond(h, w, result.Map(res, location.States))
}

// Districts serves the district names of one state.
func (h *Handler) Districts(w http.ResponseWriter, r *http.Request) {
	state := chi.URLParam(r, "state")
	res := h.locations.ByState(state).Last(r.Context())
	respond(h, w, result.Map(res, func(rows []location.Location) []string {
		return location.Districts(rows, state)
	}))
}

// UserRatings serves the ratings left for one user plus their average.
func (h *Handler) UserRatings(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	res := h.ratings.ForUser(userID).Last(r.Context())
	respond(h, w, result.Map(res, func(rows []rating.Rating) map[string]interface{} {
		return map[string]interface{}{
			"ratings": rows,
			"average": rating.Average(rows),
		}
	}))
}

// EmployerStats serves one employer's dashboard statistics.
func (h *Handler) EmployerStats(w http.ResponseWriter, r *http.Request) {
	employerID := chi.URLParam(r, "employerID")
	respond(h, w, h.stats.ForEmployer(employerID).Last(r.Context()))
}

// SaveDraft creates or updates a job draft.
func (h *Handler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	var d draft.Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		h.renderError(w, apperror.NewValidation("body", "invalid request body", err.Error()))
		return
	}

	if ae := h.drafts.Save(r.Context(), &d); ae != nil {
		h.renderError(w, ae)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": d})
}

// ListDrafts serves the drafts of one owner.
func (h *Handler) ListDrafts(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("owner_id")
	if ownerID == "" {
		h.renderError(w, apperror.NewValidation("owner_id", constant.ErrEmptyOwner, ownerID))
		return
	}

	rows, ae := h.drafts.ListByOwner(r.Context(), ownerID)
	if ae != nil {
		h.renderError(w, ae)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": rows})
}

// GetDraft serves one draft.
func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	d, ae := h.drafts.Get(r.Context(), chi.URLParam(r, "draftID"))
	if ae != nil {
		h.renderError(w, ae)
		return
	}
	if d == nil {
		ne := apperror.NewNetwork(constant.ErrCodeNetNotFound, "draft not found", nil)
		ne.HTTPStatus = 404
		h.renderError(w, ne)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": d})
}

// DeleteDraft removes one draft.
func (h *Handler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	if ae := h.drafts.Delete(r.Context(), chi.URLParam(r, "draftID")); ae != nil {
		h.renderError(w, ae)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// sendOTPRequest is the request body for the OTP delivery endpoint.
type sendOTPRequest struct {
	Phone string `json:"phone"`
}

// SendOTP asks the provider to deliver a verification code.
func (h *Handler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req sendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.renderError(w, apperror.NewValidation("body", "invalid request body", err.Error()))
		return
	}

	if ae := h.auth.SendCode(r.Context(), req.Phone); ae != nil {
		h.renderError(w, ae)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]interface{}{"sent": true})
}

// verifyOTPRequest is the request body for the OTP verification endpoint.
type verifyOTPRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// VerifyOTP runs the phone-verification flow.
func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.renderError(w, apperror.NewValidation("body", "invalid request body", err.Error()))
		return
	}

	if ae := h.auth.VerifyPhone(r.Context(), req.Phone, req.Code); ae != nil {
		h.renderError(w, ae)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"verified": true})
}

// ClearCache empties one entity's cache table.
func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	entity := chi.URLParam(r, "entity")
	if err := h.store.Clear(r.Context(), entity); err != nil {
		h.renderError(w, apperror.NewDatabase(entity, constant.DBOpClear, err))
		return
	}

	count, err := h.store.Count(r.Context(), entity)
	if err != nil {
		h.renderError(w, apperror.NewDatabase(entity, constant.DBOpCount, err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entity": entity, "rows": count})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func queryFloat(r *http.Request, key string) (float64, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
