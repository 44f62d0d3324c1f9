package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/hireloop/hireloop/internal/grading"
	"github.com/hireloop/hireloop/pkg/models"
	"github.com/hireloop/hireloop/pkg/repository"
)

type ApplicationsHandler struct {
	appRepo repository.ApplicationRepo
	jobRepo repository.JobRepo
	engine  *grading.Engine
}

func NewApplicationsHandler(ar repository.ApplicationRepo, jr repository.JobRepo, engine *grading.Engine) *ApplicationsHandler {
	return &ApplicationsHandler{appRepo: ar, jobRepo: jr, engine: engine}
}

type applyResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

func (h *ApplicationsHandler) Apply(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := userFromContext(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	jobID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	ctx := r.Context()

	j, err := h.jobRepo.GetJob(ctx, jobID)
	if err != nil {
		http.Error(w, "failed to load job", http.StatusInternalServerError)
		return
	}
	if j == nil {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}

	a := &models.JobApplication{JobID: jobID, CandidateID: candidateID, Status: models.StatusApplied}
	id, err := h.appRepo.CreateApplication(ctx, a)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			http.Error(w, "already applied", http.StatusConflict)
			return
		}
		http.Error(w, "failed to store application", http.StatusInternalServerError)
		return
	}

	writeJSON(w, applyResponse{ID: id, Status: models.StatusApplied}, http.StatusCreated)
}

func (h *ApplicationsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := userFromContext(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	apps, err := h.appRepo.ListByCandidate(r.Context(), candidateID)
	if err != nil {
		http.Error(w, "failed to list applications", http.StatusInternalServerError)
		return
	}
	if apps == nil {
		apps = []models.JobApplication{}
	}

	writeJSON(w, apps, http.StatusOK)
}

// ListForJob returns the applications a recruiter may see for one of their
// jobs. The visibility gate is recomputed per application on every read: when
// the job carries a test, only applications with a passing submission pass
// through.
func (h *ApplicationsHandler) ListForJob(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := userFromContext(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	jobID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	ctx := r.Context()

	j, err := h.jobRepo.GetJob(ctx, jobID)
	if err != nil {
		http.Error(w, "failed to load job", http.StatusInternalServerError)
		return
	}
	if j == nil {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}
	if j.RecruiterID != recruiterID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	apps, err := h.appRepo.ListByJob(ctx, jobID)
	if err != nil {
		http.Error(w, "failed to list applications", http.StatusInternalServerError)
		return
	}

	visible := []models.JobApplication{}
	for i := range apps {
		ok, err := h.engine.VisibleToRecruiter(ctx, &apps[i])
		if err != nil {
			http.Error(w, "failed to filter applications", http.StatusInternalServerError)
			return
		}
		if ok {
			visible = append(visible, apps[i])
		}
	}

	writeJSON(w, visible, http.StatusOK)
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

// UpdateStatus is the explicit recruiter-driven transition (Interview, Offer,
// Rejected and so on), distinct from the automatic grading transition.
func (h *ApplicationsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := userFromContext(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	appID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if !models.ValidStatus(req.Status) {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	app, err := h.appRepo.GetApplication(ctx, appID)
	if err != nil {
		http.Error(w, "failed to load application", http.StatusInternalServerError)
		return
	}
	if app == nil {
		http.Error(w, "application not found", http.StatusNotFound)
		return
	}

	j, err := h.jobRepo.GetJob(ctx, app.JobID)
	if err != nil || j == nil {
		http.Error(w, "failed to load job", http.StatusInternalServerError)
		return
	}
	if j.RecruiterID != recruiterID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if err := h.appRepo.UpdateStatus(ctx, appID, req.Status); err != nil {
		http.Error(w, "failed to update status", http.StatusInternalServerError)
		return
	}

	app.Status = req.Status
	writeJSON(w, app, http.StatusOK)
}

// Dashboard aggregates the recruiter's jobs, per-status application counts,
// and the number of applications that currently pass the visibility gate.
func (h *ApplicationsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := userFromContext(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx := r.Context()

	jobCount, err := h.jobRepo.CountJobsByRecruiter(ctx, recruiterID)
	if err != nil {
		http.Error(w, "failed to count jobs", http.StatusInternalServerError)
		return
	}

	byStatus, err := h.appRepo.CountByStatusForRecruiter(ctx, recruiterID)
	if err != nil {
		http.Error(w, "failed to count applications", http.StatusInternalServerError)
		return
	}

	var total int64
	for _, n := range byStatus {
		total += n
	}

	apps, err := h.appRepo.ListByRecruiter(ctx, recruiterID)
	if err != nil {
		http.Error(w, "failed to list applications", http.StatusInternalServerError)
		return
	}

	var visible int64
	for i := range apps {
		ok, err := h.engine.VisibleToRecruiter(ctx, &apps[i])
		if err != nil {
			http.Error(w, "failed to filter applications", http.StatusInternalServerError)
			return
		}
		if ok {
			visible++
		}
	}

	resp := map[string]any{
		"jobs":                   jobCount,
		"applications":           total,
		"visible_applications":   visible,
		"applications_by_status": byStatus,
	}

	writeJSON(w, resp, http.StatusOK)
}

// pathID parses the {name} path variable as a positive int64, writing a 400
// and returning false when it is malformed.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	idStr := mux.Vars(r)[name]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid "+name, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
