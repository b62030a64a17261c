package services

import (
	"testing"

	"smartpick/models"
)

func allPriorities() []models.Feature {
	return []models.Feature{
		models.FeatureCamera,
		models.FeatureBattery,
		models.FeaturePerformance,
		models.FeaturePrivacy,
		models.FeatureDesign,
	}
}

func TestBudgetWindow(t *testing.T) {
	minPrice, maxPrice := BudgetWindow(60000)
	if minPrice != 54000 || maxPrice != 66000 {
		t.Errorf("BudgetWindow(60000) = (%.0f, %.0f); want (54000, 66000)", minPrice, maxPrice)
	}
}

func TestMatchScoreWeighted(t *testing.T) {
	// 90*0.40 + 80*0.30 + 70*0.20 + 60*0.10 + 50*0 = 80.
	phone := &models.Phone{
		Scores: models.FeatureScores{
			Camera:      90,
			Battery:     80,
			Performance: 70,
			Privacy:     60,
			Design:      50,
		},
	}

	got := MatchScore(phone, allPriorities())
	if got != 80 {
		t.Errorf("MatchScore = %d; want 80", got)
	}
}

func TestMatchScorePriorityOrderMatters(t *testing.T) {
	phone := &models.Phone{
		Scores: models.FeatureScores{
			Camera:      95,
			Battery:     70,
			Performance: 85,
			Privacy:     80,
			Design:      75,
		},
	}

	cameraFirst := MatchScore(phone, []models.Feature{
		models.FeatureCamera, models.FeatureBattery, models.FeaturePerformance,
		models.FeaturePrivacy, models.FeatureDesign,
	})
	batteryFirst := MatchScore(phone, []models.Feature{
		models.FeatureBattery, models.FeatureCamera, models.FeaturePerformance,
		models.FeaturePrivacy, models.FeatureDesign,
	})

	if cameraFirst <= batteryFirst {
		t.Errorf("camera-first %d should outrank battery-first %d for a camera-strong phone",
			cameraFirst, batteryFirst)
	}
}

func TestMatchScoreMissingFeatureDefaults(t *testing.T) {
	// A zero score reads as missing and falls back to 75.
	phone := &models.Phone{}

	got := MatchScore(phone, allPriorities())
	if got != 75 {
		t.Errorf("MatchScore with all-zero scores = %d; want 75", got)
	}
}

func TestRankFiltersBudgetWindow(t *testing.T) {
	catalog := []models.Phone{
		{ID: 1, Price: 53999}, // below window
		{ID: 2, Price: 54000}, // inclusive lower bound
		{ID: 3, Price: 60000},
		{ID: 4, Price: 66000}, // inclusive upper bound
		{ID: 5, Price: 66001}, // above window
	}

	ranked := Rank(catalog, allPriorities(), 60000)

	if len(ranked) != 3 {
		t.Fatalf("ranked %d phones; want 3", len(ranked))
	}
	for _, r := range ranked {
		if r.Phone.ID == 1 || r.Phone.ID == 5 {
			t.Errorf("phone %d is outside the budget window but was ranked", r.Phone.ID)
		}
	}
}

func TestRankOrdersByMatchScore(t *testing.T) {
	catalog := []models.Phone{
		{ID: 1, Price: 60000, Scores: models.FeatureScores{Camera: 70, Battery: 70, Performance: 70, Privacy: 70, Design: 70}},
		{ID: 2, Price: 60000, Scores: models.FeatureScores{Camera: 95, Battery: 90, Performance: 92, Privacy: 85, Design: 88}},
		{ID: 3, Price: 60000, Scores: models.FeatureScores{Camera: 82, Battery: 80, Performance: 85, Privacy: 75, Design: 78}},
	}

	ranked := Rank(catalog, allPriorities(), 60000)

	if ranked[0].Phone.ID != 2 || ranked[1].Phone.ID != 3 || ranked[2].Phone.ID != 1 {
		t.Errorf("order = [%d %d %d]; want [2 3 1]",
			ranked[0].Phone.ID, ranked[1].Phone.ID, ranked[2].Phone.ID)
	}
	for i, r := range ranked {
		if r.Rank != i+1 {
			t.Errorf("rank[%d] = %d; want %d", i, r.Rank, i+1)
		}
	}
}

func TestRankTiesKeepCatalogOrder(t *testing.T) {
	same := models.FeatureScores{Camera: 80, Battery: 80, Performance: 80, Privacy: 80, Design: 80}
	catalog := []models.Phone{
		{ID: 10, Price: 60000, Scores: same},
		{ID: 11, Price: 60000, Scores: same},
		{ID: 12, Price: 60000, Scores: same},
	}

	ranked := Rank(catalog, allPriorities(), 60000)

	for i, wantID := range []int64{10, 11, 12} {
		if ranked[i].Phone.ID != wantID {
			t.Errorf("tie order broken: position %d has phone %d; want %d", i, ranked[i].Phone.ID, wantID)
		}
	}
}

func TestRankCapsAtFive(t *testing.T) {
	catalog := make([]models.Phone, 8)
	for i := range catalog {
		catalog[i] = models.Phone{ID: int64(i + 1), Price: 60000}
	}

	ranked := Rank(catalog, allPriorities(), 60000)
	if len(ranked) != 5 {
		t.Errorf("ranked %d phones; want cap of 5", len(ranked))
	}
}

func TestRankEmptyCatalog(t *testing.T) {
	ranked := Rank(nil, allPriorities(), 60000)
	if len(ranked) != 0 {
		t.Errorf("ranked %d phones from empty catalog; want 0", len(ranked))
	}
}
