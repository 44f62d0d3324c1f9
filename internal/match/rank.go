package match

import "sort"

// JobListing is the slice of a job the ranker needs: identity, required
// skills, and creation time for the recency fallback.
type JobListing struct {
	ID      int64
	Skills  []string
	Created int64
}

// RankedJob annotates a listing with its match score.
type RankedJob struct {
	JobListing
	MatchScore    float64
	IsRecommended bool
	MatchedSkills int
}

// Rank orders jobs for a candidate: recommended jobs (score > 0) first, by
// descending score with descending matched-skill count as tie-break, then the
// rest by recency. A candidate with no skills on record gets every job scored
// zero and ordered purely by recency. Rank never fails; callers that cannot
// load the candidate's skills pass nil and get the recency ordering.
func Rank(candidateSkills []string, jobs []JobListing) []RankedJob {
	ranked := make([]RankedJob, 0, len(jobs))
	for _, j := range jobs {
		score := Score(candidateSkills, j.Skills)
		ranked = append(ranked, RankedJob{
			JobListing:    j,
			MatchScore:    score,
			IsRecommended: score > 0,
			MatchedSkills: MatchedJobSkills(candidateSkills, j.Skills),
		})
	}

	var recommended, other []RankedJob
	for _, r := range ranked {
		if r.IsRecommended {
			recommended = append(recommended, r)
		} else {
			other = append(other, r)
		}
	}

	sort.SliceStable(recommended, func(i, k int) bool {
		if recommended[i].MatchScore != recommended[k].MatchScore {
			return recommended[i].MatchScore > recommended[k].MatchScore
		}
		return recommended[i].MatchedSkills > recommended[k].MatchedSkills
	})
	sort.SliceStable(other, func(i, k int) bool {
		return other[i].Created > other[k].Created
	})

	return append(recommended, other...)
}
