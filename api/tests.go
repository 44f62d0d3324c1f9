package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hireloop/hireloop/internal/grading"
	"github.com/hireloop/hireloop/pkg/models"
	"github.com/hireloop/hireloop/pkg/repository"
	"github.com/qri-io/jsonschema"
)

type TestsHandler struct {
	testRepo repository.TestRepo
	jobRepo  repository.JobRepo
	subRepo  repository.SubmissionRepo
	engine   *grading.Engine
}

func NewTestsHandler(tr repository.TestRepo, jr repository.JobRepo, sr repository.SubmissionRepo, engine *grading.Engine) *TestsHandler {
	return &TestsHandler{testRepo: tr, jobRepo: jr, subRepo: sr, engine: engine}
}

// answersSchema validates the wire shape of a submission: an object keyed by
// question id whose values are option indexes 0-3. Unknown question ids are
// accepted here and ignored by the grader.
var answersSchema = mustSchema(`{
	"type": "object",
	"minProperties": 1,
	"additionalProperties": {"type": "integer", "minimum": 0, "maximum": 3}
}`)

func mustSchema(raw string) *jsonschema.Schema {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(raw), rs); err != nil {
		panic(err)
	}
	return rs
}

type postQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Category      *string  `json:"category,omitempty"`
}

type postTestRequest struct {
	PassingPercentage *float64       `json:"passing_percentage,omitempty"`
	TimeLimitMinutes  *int64         `json:"time_limit_minutes,omitempty"`
	Questions         []postQuestion `json:"questions"`
}

type postTestResponse struct {
	ID int64 `json:"id"`
}

// CreateTest attaches an aptitude test to the recruiter's job. A job can carry
// at most one test; a second creation attempt is a Conflict.
func (h *TestsHandler) CreateTest(w http.ResponseWriter, r *http.Request) {
	recruiterID, ok := userFromContext(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	jobID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req postTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if len(req.Questions) == 0 {
		http.Error(w, "at least one question required", http.StatusBadRequest)
		return
	}
	if req.PassingPercentage != nil && (*req.PassingPercentage < 0 || *req.PassingPercentage > 100) {
		http.Error(w, "passing_percentage must be between 0 and 100", http.StatusBadRequest)
		return
	}

	questions := make([]models.AptitudeQuestion, 0, len(req.Questions))
	for _, q := range req.Questions {
		if q.Question == "" {
			http.Error(w, "question text required", http.StatusBadRequest)
			return
		}
		if len(q.Options) != 4 {
			http.Error(w, "each question needs exactly 4 options", http.StatusBadRequest)
			return
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer > 3 {
			http.Error(w, "correct_answer must be between 0 and 3", http.StatusBadRequest)
			return
		}
		questions = append(questions, models.AptitudeQuestion{
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Category:      q.Category,
		})
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

	t := &models.AptitudeTest{
		JobID:             jobID,
		PassingPercentage: req.PassingPercentage,
		TimeLimitMinutes:  req.TimeLimitMinutes,
	}
	id, err := h.testRepo.CreateTest(ctx, t, questions)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			http.Error(w, "job already has a test", http.StatusConflict)
			return
		}
		http.Error(w, "failed to store test", http.StatusInternalServerError)
		return
	}

	writeJSON(w, postTestResponse{ID: id}, http.StatusCreated)
}

type candidateQuestion struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Category *string  `json:"category,omitempty"`
}

type candidateTestView struct {
	ID                int64               `json:"id"`
	JobID             int64               `json:"job_id"`
	PassingPercentage *float64            `json:"passing_percentage,omitempty"`
	TimeLimitMinutes  *int64              `json:"time_limit_minutes,omitempty"`
	Questions         []candidateQuestion `json:"questions"`
}

// GetTest returns the job's test as a candidate sees it. The answer key is
// stripped; it must never reach a candidate before grading.
func (h *TestsHandler) GetTest(w http.ResponseWriter, r *http.Request) {
	jobID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	ctx := r.Context()

	t, err := h.testRepo.GetTestByJob(ctx, jobID)
	if err != nil {
		http.Error(w, "failed to load test", http.StatusInternalServerError)
		return
	}
	if t == nil {
		http.Error(w, "test not found", http.StatusNotFound)
		return
	}

	questions, err := h.testRepo.ListQuestions(ctx, t.ID)
	if err != nil {
		http.Error(w, "failed to load questions", http.StatusInternalServerError)
		return
	}

	view := candidateTestView{
		ID:                t.ID,
		JobID:             t.JobID,
		PassingPercentage: t.PassingPercentage,
		TimeLimitMinutes:  t.TimeLimitMinutes,
		Questions:         make([]candidateQuestion, 0, len(questions)),
	}
	for _, q := range questions {
		view.Questions = append(view.Questions, candidateQuestion{
			ID:       q.ID,
			Question: q.Question,
			Options:  q.Options,
			Category: q.Category,
		})
	}

	writeJSON(w, view, http.StatusOK)
}

func (h *TestsHandler) DeleteTest(w http.ResponseWriter, r *http.Request) {
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

	if err := h.testRepo.DeleteTest(ctx, jobID); err != nil {
		http.Error(w, "test not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type submitRequest struct {
	Answers json.RawMessage `json:"answers"`
}

type submitResponse struct {
	Score             float64  `json:"score"`
	CorrectAnswers    int      `json:"correct_answers"`
	TotalQuestions    int      `json:"total_questions"`
	IsPassed          *bool    `json:"is_passed"`
	PassingPercentage *float64 `json:"passing_percentage,omitempty"`
}

// Submit grades the candidate's answers for their application's test.
func (h *TestsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := userFromContext(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	appID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if len(req.Answers) == 0 {
		http.Error(w, "answers required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	if keyErrs, err := answersSchema.ValidateBytes(ctx, req.Answers); err != nil {
		http.Error(w, "invalid answers payload", http.StatusBadRequest)
		return
	} else if len(keyErrs) > 0 {
		http.Error(w, "answers must map question ids to option indexes 0-3", http.StatusBadRequest)
		return
	}

	var answers map[string]int
	if err := json.Unmarshal(req.Answers, &answers); err != nil {
		http.Error(w, "invalid answers payload", http.StatusBadRequest)
		return
	}

	sub, passing, err := h.engine.Submit(ctx, appID, candidateID, answers)
	if err != nil {
		switch {
		case errors.Is(err, grading.ErrApplicationNotFound):
			http.Error(w, "application not found", http.StatusNotFound)
		case errors.Is(err, grading.ErrTestNotFound):
			http.Error(w, "test not found", http.StatusNotFound)
		case errors.Is(err, grading.ErrAlreadySubmitted):
			http.Error(w, "already submitted", http.StatusConflict)
		default:
			http.Error(w, "failed to grade submission", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, submitResponse{
		Score:             sub.Score,
		CorrectAnswers:    sub.CorrectAnswers,
		TotalQuestions:    sub.TotalQuestions,
		IsPassed:          sub.IsPassed,
		PassingPercentage: passing,
	}, http.StatusCreated)
}

// GetResult returns the candidate's stored submission for an application.
func (h *TestsHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := userFromContext(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	appID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	sub, err := h.subRepo.GetByApplicationAndCandidate(r.Context(), appID, candidateID)
	if err != nil {
		http.Error(w, "failed to load submission", http.StatusInternalServerError)
		return
	}
	if sub == nil {
		http.Error(w, "submission not found", http.StatusNotFound)
		return
	}

	writeJSON(w, submitResponse{
		Score:          sub.Score,
		CorrectAnswers: sub.CorrectAnswers,
		TotalQuestions: sub.TotalQuestions,
		IsPassed:       sub.IsPassed,
	}, http.StatusOK)
}
