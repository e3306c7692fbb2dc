package recommendations

import (
	"sort"
	"strings"

	"tripspark/internal/pkg/catalog"
	"tripspark/internal/pkg/userservice"
)

const (
	// maxResults caps the ranked output.
	maxResults = 5
	// maxCandidates caps the candidate list considered per scoring pass.
	maxCandidates = 50

	interestWeight  = 2.0
	requestWeight   = 1.0
	spendingBonus   = 3.0
	budgetBonus     = 2.0
	ratingBonusMax  = 2.0
	ratingScaleSpan = 5.0
)

// splitTags normalizes a comma-joined tag string into a list: values are
// trimmed and empty fragments discarded.
func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}

	var tags []string
	for _, fragment := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(fragment)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// collectTags merges a candidate's vibes, activities and food tag strings
// into one deduplicated list, preserving first-seen order.
func collectTags(poi catalog.POI) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, raw := range []string{poi.Vibes, poi.Activities, poi.Food} {
		for _, tag := range splitTags(raw) {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}

func toSet(tags []string) map[string]bool {
	set := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			set[tag] = true
		}
	}
	return set
}

// intersect returns the tags present in set, preserving the order of tags
func intersect(tags []string, set map[string]bool) []string {
	var matched []string
	for _, tag := range tags {
		if set[tag] {
			matched = append(matched, tag)
		}
	}
	return matched
}

// scoreCandidates computes the weighted composite score for every candidate,
// drops candidates that score zero or below, and returns the top results
// sorted by descending score. Ties keep the candidates' original order.
func scoreCandidates(candidates []catalog.POI, profile *userservice.Profile, requestVibes []string) []ScoredPOI {
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}

	interestSet := toSet(profile.Interests())
	vibeSet := toSet(requestVibes)

	var scored []ScoredPOI
	for _, poi := range candidates {
		tags := collectTags(poi)

		matchedInterests := intersect(tags, interestSet)
		matchedVibes := intersect(tags, vibeSet)

		score := interestWeight*float64(len(matchedInterests)) +
			requestWeight*float64(len(matchedVibes))

		if profile.SpendingPreference != "" && profile.SpendingPreference == poi.SpendingCategory {
			score += spendingBonus
		}

		if profile.DailyBudgetLimit != nil && poi.Budget != nil && *poi.Budget <= *profile.DailyBudgetLimit {
			score += budgetBonus
		}

		if poi.Rating != nil {
			score += (*poi.Rating / ratingScaleSpan) * ratingBonusMax
		}

		if score <= 0 {
			continue
		}

		scored = append(scored, ScoredPOI{
			POI:              poi,
			Score:            score,
			MatchedInterests: matchedInterests,
			MatchedVibes:     matchedVibes,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > maxResults {
		scored = scored[:maxResults]
	}
	return scored
}
