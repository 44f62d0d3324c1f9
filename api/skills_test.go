package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hireloop/hireloop/api"
	"github.com/hireloop/hireloop/pkg/models"
	"github.com/hireloop/hireloop/pkg/repository/mock"
)

func TestCreateSkill(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"valid skill", `{"name":"Go"}`, http.StatusCreated},
		{"trims whitespace", `{"name":"  SQL  "}`, http.StatusCreated},
		{"blank name", `{"name":"   "}`, http.StatusBadRequest},
		{"too long", `{"name":"` + strings.Repeat("x", 101) + `"}`, http.StatusBadRequest},
		{"malformed json", `{"name":`, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := mock.NewMocks()
			h := api.NewSkillsHandler(m.Skill)

			req := authedRequest(http.MethodPost, "/api/v1/skills", strings.NewReader(tc.body), 5, models.RoleCandidate)
			rr := httptest.NewRecorder()
			h.CreateSkill(rr, req)

			if rr.Code != tc.wantStatus {
				t.Fatalf("expected %d got %d: %s", tc.wantStatus, rr.Code, rr.Body.String())
			}
			if tc.wantStatus == http.StatusCreated {
				if len(m.Skill.Skills) != 1 || m.Skill.Skills[0].Name != strings.TrimSpace(jsonName(t, tc.body)) {
					t.Fatalf("skill not stored trimmed: %+v", m.Skill.Skills)
				}
			}
		})
	}
}

func jsonName(t *testing.T, body string) string {
	t.Helper()
	var req struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return req.Name
}

func TestCreateSkill_Duplicate(t *testing.T) {
	m := mock.NewMocks()
	h := api.NewSkillsHandler(m.Skill)

	add := func() *httptest.ResponseRecorder {
		req := authedRequest(http.MethodPost, "/api/v1/skills", strings.NewReader(`{"name":"Go"}`), 5, models.RoleCandidate)
		rr := httptest.NewRecorder()
		h.CreateSkill(rr, req)
		return rr
	}

	if rr := add(); rr.Code != http.StatusCreated {
		t.Fatalf("first add: expected 201 got %d", rr.Code)
	}
	if rr := add(); rr.Code != http.StatusConflict {
		t.Fatalf("second add: expected 409 got %d", rr.Code)
	}
}

func TestListSkills_ScopedToCandidate(t *testing.T) {
	m := mock.NewMocks()
	h := api.NewSkillsHandler(m.Skill)

	for _, fixture := range []struct {
		candidate int64
		name      string
	}{{5, "Go"}, {5, "SQL"}, {6, "Rust"}} {
		req := authedRequest(http.MethodPost, "/api/v1/skills",
			strings.NewReader(`{"name":"`+fixture.name+`"}`), fixture.candidate, models.RoleCandidate)
		rr := httptest.NewRecorder()
		h.CreateSkill(rr, req)
		if rr.Code != http.StatusCreated {
			t.Fatalf("seed %s: %d", fixture.name, rr.Code)
		}
	}

	req := authedRequest(http.MethodGet, "/api/v1/skills", nil, 5, models.RoleCandidate)
	rr := httptest.NewRecorder()
	h.ListSkills(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	var skills []models.Skill
	if err := json.Unmarshal(rr.Body.Bytes(), &skills); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(skills) != 2 {
		t.Fatalf("expected 2 skills got %+v", skills)
	}
}

func TestDeleteSkill(t *testing.T) {
	m := mock.NewMocks()
	h := api.NewSkillsHandler(m.Skill)

	req := authedRequest(http.MethodPost, "/api/v1/skills", strings.NewReader(`{"name":"Go"}`), 5, models.RoleCandidate)
	rr := httptest.NewRecorder()
	h.CreateSkill(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("seed: %d", rr.Code)
	}

	del := authedRequest(http.MethodDelete, "/api/v1/skills/1", nil, 5, models.RoleCandidate)
	del = withVars(del, map[string]string{"id": "1"})
	rr = httptest.NewRecorder()
	h.DeleteSkill(rr, del)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", rr.Code)
	}
	if len(m.Skill.Skills) != 0 {
		t.Fatalf("skill not removed: %+v", m.Skill.Skills)
	}

	// already gone
	again := authedRequest(http.MethodDelete, "/api/v1/skills/1", nil, 5, models.RoleCandidate)
	again = withVars(again, map[string]string{"id": "1"})
	rr = httptest.NewRecorder()
	h.DeleteSkill(rr, again)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("missing skill: expected 404 got %d", rr.Code)
	}

	bad := authedRequest(http.MethodDelete, "/api/v1/skills/abc", nil, 5, models.RoleCandidate)
	bad = withVars(bad, map[string]string{"id": "abc"})
	rr = httptest.NewRecorder()
	h.DeleteSkill(rr, bad)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("malformed id: expected 400 got %d", rr.Code)
	}
}

func TestDeleteSkill_OtherCandidate(t *testing.T) {
	m := mock.NewMocks()
	h := api.NewSkillsHandler(m.Skill)

	req := authedRequest(http.MethodPost, "/api/v1/skills", strings.NewReader(`{"name":"Go"}`), 5, models.RoleCandidate)
	rr := httptest.NewRecorder()
	h.CreateSkill(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("seed: %d", rr.Code)
	}

	// another candidate cannot delete it
	del := authedRequest(http.MethodDelete, "/api/v1/skills/1", nil, 6, models.RoleCandidate)
	del = withVars(del, map[string]string{"id": "1"})
	rr = httptest.NewRecorder()
	h.DeleteSkill(rr, del)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rr.Code)
	}
	if len(m.Skill.Skills) != 1 {
		t.Fatalf("skill must survive a foreign delete: %+v", m.Skill.Skills)
	}
}
