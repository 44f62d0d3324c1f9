package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/hireloop/hireloop/internal/match"
	"github.com/hireloop/hireloop/pkg/models"
	"github.com/hireloop/hireloop/pkg/repository"
)

type JobsHandler struct {
	jobRepo   repository.JobRepo
	skillRepo repository.SkillRepo
	maxJobs   int
}

func NewJobsHandler(jr repository.JobRepo, sr repository.SkillRepo, maxJobs int) *JobsHandler {
	if maxJobs <= 0 {
		maxJobs = 200
	}
	return &JobsHandler{jobRepo: jr, skillRepo: sr, maxJobs: maxJobs}
}

type postJobRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Skills      []string `json:"skills"`
}

type postJobResponse struct {
	ID int64 `json:"id"`
}

func (h *JobsHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := userFromContext(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req postJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	j := &models.Job{
		RecruiterID: recruiterID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Skills:      req.Skills,
	}
	id, err := h.jobRepo.CreateJob(r.Context(), j)
	if err != nil {
		http.Error(w, "failed to store job", http.StatusInternalServerError)
		return
	}

	writeJSON(w, postJobResponse{ID: id}, http.StatusCreated)
}

func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 50
	if l := q.Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 500 {
			limit = v
		}
	}
	offset := 0
	if o := q.Get("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			offset = v
		}
	}

	jobs, err := h.jobRepo.ListJobs(r.Context(), limit, offset)
	if err != nil {
		http.Error(w, "failed to list jobs", http.StatusInternalServerError)
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}

	writeJSON(w, jobs, http.StatusOK)
}

func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid job id", http.StatusBadRequest)
		return
	}

	j, err := h.jobRepo.GetJob(r.Context(), id)
	if err != nil {
		http.Error(w, "failed to load job", http.StatusInternalServerError)
		return
	}
	if j == nil {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}

	writeJSON(w, j, http.StatusOK)
}

type recommendedJob struct {
	models.Job
	MatchScore    float64 `json:"match_score"`
	IsRecommended bool    `json:"is_recommended"`
}

// ListRecommended returns jobs ranked for the authenticated candidate:
// recommended jobs by descending match score, the rest by recency. A failure
// to load the candidate's skills degrades to "no profile" (everything scored
// zero, recency order) so the listing stays available.
func (h *JobsHandler) ListRecommended(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := userFromContext(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx := r.Context()

	jobs, err := h.jobRepo.ListJobs(ctx, h.maxJobs, 0)
	if err != nil {
		http.Error(w, "failed to list jobs", http.StatusInternalServerError)
		return
	}

	// candidate skills are fetched once per request, not per job
	var candidateSkills []string
	skills, err := h.skillRepo.FindSkillsByCandidate(ctx, candidateID)
	if err != nil {
		logger.Warn("skill lookup failed, ranking by recency", "candidate_id", candidateID, "err", err)
	} else {
		for _, s := range skills {
			candidateSkills = append(candidateSkills, s.Name)
		}
	}

	listings := make([]match.JobListing, 0, len(jobs))
	byID := make(map[int64]models.Job, len(jobs))
	for _, j := range jobs {
		listings = append(listings, match.JobListing{ID: j.ID, Skills: j.Skills, Created: j.Created})
		byID[j.ID] = j
	}

	ranked := match.Rank(candidateSkills, listings)

	out := make([]recommendedJob, 0, len(ranked))
	for _, rj := range ranked {
		out = append(out, recommendedJob{
			Job:           byID[rj.ID],
			MatchScore:    rj.MatchScore,
			IsRecommended: rj.IsRecommended,
		})
	}

	writeJSON(w, out, http.StatusOK)
}
