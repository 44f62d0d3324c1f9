package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/hireloop/hireloop/pkg/models"
	"github.com/hireloop/hireloop/pkg/repository"
)

type SkillsHandler struct {
	skillRepo repository.SkillRepo
}

func NewSkillsHandler(sr repository.SkillRepo) *SkillsHandler {
	return &SkillsHandler{skillRepo: sr}
}

type postSkillRequest struct {
	Name string `json:"name"`
}

type postSkillResponse struct {
	ID int64 `json:"id"`
}

func (h *SkillsHandler) CreateSkill(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := userFromContext(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req postSkillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if len(req.Name) > 100 {
		http.Error(w, "name too long", http.StatusBadRequest)
		return
	}

	s := &models.Skill{CandidateID: candidateID, Name: req.Name}
	id, err := h.skillRepo.CreateSkill(r.Context(), s)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			http.Error(w, "skill already added", http.StatusConflict)
			return
		}
		http.Error(w, "failed to store skill", http.StatusInternalServerError)
		return
	}

	writeJSON(w, postSkillResponse{ID: id}, http.StatusCreated)
}

func (h *SkillsHandler) ListSkills(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := userFromContext(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	skills, err := h.skillRepo.FindSkillsByCandidate(r.Context(), candidateID)
	if err != nil {
		http.Error(w, "failed to list skills", http.StatusInternalServerError)
		return
	}
	if skills == nil {
		skills = []models.Skill{}
	}

	writeJSON(w, skills, http.StatusOK)
}

func (h *SkillsHandler) DeleteSkill(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := userFromContext(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid skill id", http.StatusBadRequest)
		return
	}

	if err := h.skillRepo.DeleteSkill(r.Context(), candidateID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "skill not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to delete skill", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
