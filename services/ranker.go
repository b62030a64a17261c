package services

import (
	"math"
	"sort"

	"smartpick/models"
)

// Weight by priority rank position: the first priority dominates and the
// fifth contributes nothing.
var priorityWeights = [5]float64{0.40, 0.30, 0.20, 0.10, 0.0}

// defaultFeatureScore stands in for a missing feature score. Every ingested
// phone carries all five scores, so this is a robustness net for malformed
// persisted records only.
const defaultFeatureScore = 75

const maxRecommendations = 5

// BudgetWindow returns the inclusive price window around a budget (±10%).
func BudgetWindow(budget int) (minPrice, maxPrice float64) {
	return float64(budget) * 0.9, float64(budget) * 1.1
}

// MatchScore combines a phone's feature scores using the caller's priority
// order, rounded to the nearest integer on the 0-100 scale.
func MatchScore(phone *models.Phone, priorities []models.Feature) int {
	total := 0.0
	for i, feature := range priorities {
		if i >= len(priorityWeights) {
			break
		}
		score := phone.Scores.For(feature)
		if score == 0 {
			score = defaultFeatureScore
		}
		total += float64(score) * priorityWeights[i]
	}
	return int(math.Round(total))
}

// Rank filters the catalog to the budget window, scores every candidate
// against the priority order and returns the top entries sorted by match
// score descending. Ties keep catalog order (stable sort). An empty
// candidate set yields an empty result, not an error.
func Rank(catalog []models.Phone, priorities []models.Feature, budget int) []models.RankedPhone {
	minPrice, maxPrice := BudgetWindow(budget)

	ranked := make([]models.RankedPhone, 0, len(catalog))
	for _, phone := range catalog {
		price := float64(phone.Price)
		if price < minPrice || price > maxPrice {
			continue
		}
		ranked = append(ranked, models.RankedPhone{
			Phone:      phone,
			MatchScore: MatchScore(&phone, priorities),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchScore > ranked[j].MatchScore
	})

	if len(ranked) > maxRecommendations {
		ranked = ranked[:maxRecommendations]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return ranked
}
