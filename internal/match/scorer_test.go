package match_test

import (
	"testing"

	"github.com/hireloop/hireloop/internal/match"
)

func TestScore_EmptyInputs(t *testing.T) {
	if got := match.Score(nil, []string{"go", "sql"}); got != 0 {
		t.Fatalf("empty candidate skills: expected 0 got %v", got)
	}
	if got := match.Score([]string{"go"}, nil); got != 0 {
		t.Fatalf("empty job skills: expected 0 got %v", got)
	}
	if got := match.Score([]string{"  ", ""}, []string{"go"}); got != 0 {
		t.Fatalf("whitespace-only candidate skills: expected 0 got %v", got)
	}
}

func TestScore_CaseInsensitive(t *testing.T) {
	if got := match.Score([]string{"React"}, []string{"react"}); got != 100 {
		t.Fatalf("expected 100 got %v", got)
	}
}

func TestScore_SubstringTolerance(t *testing.T) {
	// containment must work in both directions
	if got := match.Score([]string{"React"}, []string{"React.js"}); got != 100 {
		t.Fatalf("candidate substring of job: expected 100 got %v", got)
	}
	if got := match.Score([]string{"React.js"}, []string{"React"}); got != 100 {
		t.Fatalf("job substring of candidate: expected 100 got %v", got)
	}
}

func TestScore_PartialOverlap(t *testing.T) {
	got := match.Score([]string{"Go", "Docker"}, []string{"go", "kubernetes", "terraform"})
	if got != 33.33 {
		t.Fatalf("expected 33.33 got %v", got)
	}
}

func TestScore_CountsDistinctCandidateSkills(t *testing.T) {
	// one candidate skill matching several job skills still counts once
	got := match.Score([]string{"java"}, []string{"java", "javascript"})
	if got != 50 {
		t.Fatalf("expected 50 got %v", got)
	}
}

func TestScore_Bounds(t *testing.T) {
	cases := [][2][]string{
		{{"go"}, {"go"}},
		{{"go", "golang", "go lang"}, {"go"}},
		{{"a", "b", "c"}, {"x", "y"}},
		{{"React", "react.js", "REACT"}, {"react"}},
	}
	for _, c := range cases {
		got := match.Score(c[0], c[1])
		if got < 0 || got > 100 {
			t.Fatalf("score out of bounds for %v vs %v: %v", c[0], c[1], got)
		}
	}
}

func TestScore_CappedAt100(t *testing.T) {
	// three near-duplicate candidate skills all matching the single job skill
	got := match.Score([]string{"go", "golang", "django go"}, []string{"go"})
	if got != 100 {
		t.Fatalf("expected cap at 100 got %v", got)
	}
}

func TestMatchedJobSkills_ReverseDirection(t *testing.T) {
	// two job skills covered by one candidate skill count twice here,
	// unlike Score's candidate-side counting
	got := match.MatchedJobSkills([]string{"java"}, []string{"java", "javascript"})
	if got != 2 {
		t.Fatalf("expected 2 got %d", got)
	}

	if got := match.MatchedJobSkills(nil, []string{"go"}); got != 0 {
		t.Fatalf("no candidate skills: expected 0 got %d", got)
	}
}

func TestNormalize(t *testing.T) {
	got := match.Normalize([]string{"  Go ", "SQL", "", "  "})
	want := []string{"go", "sql"}
	if len(got) != len(want) {
		t.Fatalf("expected %v got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v got %v", want, got)
		}
	}
}
