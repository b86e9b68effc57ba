package domain

import "sort"

// ScoreWeights are the compatibility scoring knobs. All weights must be
// non-negative so the score stays monotonic in category overlap and
// verification status regardless of tuning.
type ScoreWeights struct {
	CategoryOverlap float64
	VerifiedBonus   float64
	Activity        float64
}

// SharedCategories returns the sorted intersection of two category lists.
func SharedCategories(a, b []string) []string {
	set := make(map[string]struct{}, len(a))
	for _, c := range a {
		set[c] = struct{}{}
	}
	var shared []string
	seen := make(map[string]struct{})
	for _, c := range b {
		if _, ok := set[c]; !ok {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		shared = append(shared, c)
	}
	sort.Strings(shared)
	return shared
}

// CompatibilityScore rates a candidate from the viewer's side: weighted
// category overlap, a bonus if the candidate is verified, and a bonus
// proportional to the candidate's normalized activity score.
func CompatibilityScore(viewer, candidate *Profile, w ScoreWeights) float64 {
	score := float64(len(SharedCategories(viewer.Categories, candidate.Categories))) * w.CategoryOverlap
	if candidate.IsVerified {
		score += w.VerifiedBonus
	}
	activity := candidate.ActivityScore
	if activity < 0 {
		activity = 0
	} else if activity > 1 {
		activity = 1
	}
	return score + activity*w.Activity
}

// MatchScore is the symmetric score stored on a match: the mean of both
// directional scores, so it does not depend on who liked last.
func MatchScore(a, b *Profile, w ScoreWeights) float64 {
	return (CompatibilityScore(a, b, w) + CompatibilityScore(b, a, w)) / 2
}
