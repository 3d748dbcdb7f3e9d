package ranking

import (
	"sort"
	"strings"

	"github.com/learnify/backend/internal/classify"
	"github.com/learnify/backend/internal/storage/models"
)

const lengthScoreCap = 20

// Score computes the deterministic relevance score of candidate text against
// an inferred profile. Additive rules only; no randomness.
func Score(candidateText string, profile classify.Profile) int {
	text := strings.ToLower(candidateText)
	score := 0

	if profile.Intent == classify.IntentProjects && strings.Contains(text, "project") {
		score += 30
	}
	if profile.Intent == classify.IntentCourse && strings.Contains(text, "course") {
		score += 20
	}

	if strings.Contains(text, strings.ToLower(string(profile.Level))) {
		score += 20
	}

	words := len(strings.Fields(text))
	if words > lengthScoreCap {
		words = lengthScoreCap
	}

	return score + words
}

// Rank scores every candidate in place and orders the slice by descending
// score. The sort is stable so equal scores keep their original order.
func Rank(candidates []models.Candidate, profile classify.Profile) {
	for i := range candidates {
		text := candidates[i].Title + " " + candidates[i].Description
		candidates[i].Score = Score(text, profile)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
}
