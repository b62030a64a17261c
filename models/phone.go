package models

import (
	"fmt"
	"strings"
	"time"
)

// Feature is one of the five scored phone capabilities. The same tag
// vocabulary is used everywhere: scoring, ranking, sync and the API.
type Feature string

const (
	FeatureCamera      Feature = "camera"
	FeatureBattery     Feature = "battery"
	FeaturePerformance Feature = "performance"
	FeaturePrivacy     Feature = "privacy"
	FeatureDesign      Feature = "design"
)

// AllFeatures returns the five feature tags in their canonical order.
func AllFeatures() []Feature {
	return []Feature{
		FeatureCamera,
		FeatureBattery,
		FeaturePerformance,
		FeaturePrivacy,
		FeatureDesign,
	}
}

// ParsePriorities parses a comma-separated priority list into a validated
// permutation of the five feature tags: exactly 5 entries, all known, no
// duplicates.
func ParsePriorities(raw string) ([]Feature, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 5 {
		return nil, fmt.Errorf("priorities must include all 5 features, got %d", len(parts))
	}

	known := make(map[Feature]bool, 5)
	for _, f := range AllFeatures() {
		known[f] = true
	}

	seen := make(map[Feature]bool, 5)
	priorities := make([]Feature, 0, 5)
	for _, p := range parts {
		f := Feature(strings.ToLower(strings.TrimSpace(p)))
		if !known[f] {
			return nil, fmt.Errorf("unknown feature %q", p)
		}
		if seen[f] {
			return nil, fmt.Errorf("duplicate feature %q", f)
		}
		seen[f] = true
		priorities = append(priorities, f)
	}

	return priorities, nil
}

// RawPhone holds one unprocessed catalog record, either a scraped listing
// card or a CSV import row. Free-text fields are kept exactly as found.
type RawPhone struct {
	Brand         string
	Model         string
	RawPrice      string
	MemoryStorage string
	Display       string
	Camera        string
	FrontCamera   string
	Processor     string
	Battery       string
	ImageURL      string
	ProductURL    string
	Source        string
	ScrapedAt     time.Time
}

// FeatureScores holds the five derived capability scores of a phone.
type FeatureScores struct {
	Camera      int
	Battery     int
	Performance int
	Privacy     int
	Design      int
}

// For returns the score for the given feature tag, or 0 for an unknown tag.
func (s FeatureScores) For(f Feature) int {
	switch f {
	case FeatureCamera:
		return s.Camera
	case FeatureBattery:
		return s.Battery
	case FeaturePerformance:
		return s.Performance
	case FeaturePrivacy:
		return s.Privacy
	case FeatureDesign:
		return s.Design
	}
	return 0
}

// Phone is one catalog entry with raw specs and derived scores, ready for
// ranking once all five scores are populated.
type Phone struct {
	ID          int64
	Brand       string
	Model       string
	Price       int
	Display     string
	Processor   string
	RAM         string
	Storage     string
	Battery     string
	Camera      string
	FrontCamera string
	ImageURL    string
	ProductURL  string
	Scores      FeatureScores
	CreatedAt   time.Time
}

// Review is one sentiment-analyzed trusted-channel video tied to a phone.
type Review struct {
	ID                  int64
	PhoneID             int64
	VideoID             string
	ChannelID           string
	ChannelName         string
	Title               string
	URL                 string
	ThumbnailURL        string
	ViewCount           int64
	LikeCount           int64
	PublishedAt         time.Time
	SentimentScore      int
	PositivePoints      []string
	NegativePoints      []string
	Summary             string
	Recommendation      string
	TranscriptAvailable bool
	LastUpdated         time.Time
}

// RankedPhone is a per-request ranking result. Never persisted.
type RankedPhone struct {
	Phone      Phone
	MatchScore int
	Rank       int
	WhyPicked  string
	WhatToKnow string
	Reviews    []Review
}
