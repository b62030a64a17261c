package services

import (
	"strings"
	"testing"

	"smartpick/models"
)

func TestWhyPickedTopPriorityTiers(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{95, "Exceptional camera - one of the best in this range"},
		{90, "Exceptional camera - one of the best in this range"},
		{87, "Excellent camera performance"},
		{82, "Strong camera capabilities"},
		{75, ""},
	}

	for _, tt := range tests {
		phone := &models.Phone{
			Price:  40000,
			Scores: models.FeatureScores{Camera: tt.score},
		}
		got := WhyPicked(phone, models.FeatureCamera, nil)

		if tt.want == "" {
			if strings.Contains(got, "camera") {
				t.Errorf("score %d: unexpected camera phrase in %q", tt.score, got)
			}
			continue
		}
		if !strings.Contains(got, tt.want) {
			t.Errorf("score %d: WhyPicked = %q; want it to contain %q", tt.score, got, tt.want)
		}
	}
}

func TestWhyPickedReviewAndPricePhrases(t *testing.T) {
	phone := &models.Phone{
		Price:  25000,
		Scores: models.FeatureScores{Camera: 92},
	}
	reviews := []models.Review{
		{SentimentScore: 60},
		{SentimentScore: 55},
	}

	got := WhyPicked(phone, models.FeatureCamera, reviews)

	if !strings.Contains(got, "Highly praised by reviewers") {
		t.Errorf("WhyPicked = %q; want reviewer praise phrase", got)
	}
	if !strings.Contains(got, "Great value for money") {
		t.Errorf("WhyPicked = %q; want value phrase for sub-30k price", got)
	}
	if !strings.HasSuffix(got, ".") {
		t.Errorf("WhyPicked = %q; want trailing period", got)
	}
}

func TestWhyPickedCapsAtThreeReasons(t *testing.T) {
	phone := &models.Phone{
		Price:  70000,
		Scores: models.FeatureScores{Camera: 95},
	}
	reviews := []models.Review{{SentimentScore: 80}}

	got := WhyPicked(phone, models.FeatureCamera, reviews)

	if n := strings.Count(got, "."); n > 3 {
		t.Errorf("WhyPicked = %q; more than 3 sentences", got)
	}
}

func TestWhyPickedNoApplicableReasons(t *testing.T) {
	phone := &models.Phone{
		Price:  40000,
		Scores: models.FeatureScores{Camera: 75},
	}

	if got := WhyPicked(phone, models.FeatureCamera, nil); got != "" {
		t.Errorf("WhyPicked = %q; want empty string", got)
	}
}

func TestWhatToKnowWeakFeatures(t *testing.T) {
	phone := &models.Phone{
		Scores: models.FeatureScores{
			Camera: 70, Battery: 80, Performance: 85, Privacy: 72, Design: 80,
		},
	}

	got := WhatToKnow(phone, nil)

	if !strings.Contains(got, "Camera could be better") {
		t.Errorf("WhatToKnow = %q; want camera caveat", got)
	}
	if !strings.Contains(got, "Privacy could be better") {
		t.Errorf("WhatToKnow = %q; want privacy caveat", got)
	}
	if strings.Contains(got, "Battery could be better") {
		t.Errorf("WhatToKnow = %q; battery is not weak", got)
	}
}

func TestWhatToKnowIncludesReviewNegatives(t *testing.T) {
	phone := &models.Phone{
		Scores: models.FeatureScores{
			Camera: 85, Battery: 85, Performance: 85, Privacy: 85, Design: 85,
		},
	}
	reviews := []models.Review{
		{NegativePoints: []string{"Heating issues", "Battery life concerns", "Expensive for what it offers"}},
	}

	got := WhatToKnow(phone, reviews)

	if !strings.Contains(got, "Heating issues") || !strings.Contains(got, "Battery life concerns") {
		t.Errorf("WhatToKnow = %q; want first two negative points", got)
	}
	// Only 2 negatives per review survive.
	if strings.Contains(got, "Expensive for what it offers") {
		t.Errorf("WhatToKnow = %q; third negative point should be dropped", got)
	}
}

func TestWhatToKnowNoConcerns(t *testing.T) {
	phone := &models.Phone{
		Scores: models.FeatureScores{
			Camera: 85, Battery: 85, Performance: 85, Privacy: 85, Design: 85,
		},
	}

	if got := WhatToKnow(phone, nil); got != "No major concerns" {
		t.Errorf("WhatToKnow = %q; want %q", got, "No major concerns")
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price int
		want  string
	}{
		{999, "₹999"},
		{1000, "₹1,000"},
		{54999, "₹54,999"},
		{123456, "₹1,23,456"},
		{1234567, "₹12,34,567"},
		{12345678, "₹1,23,45,678"},
	}

	for _, tt := range tests {
		got := FormatPrice(tt.price)
		if got != tt.want {
			t.Errorf("FormatPrice(%d) = %q; want %q", tt.price, got, tt.want)
		}
	}
}

func TestBudgetRangeLabel(t *testing.T) {
	if got := BudgetRangeLabel(60000); got != "₹54,000 - ₹66,000" {
		t.Errorf("BudgetRangeLabel(60000) = %q; want %q", got, "₹54,000 - ₹66,000")
	}
}
