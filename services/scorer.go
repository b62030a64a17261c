package services

import (
	"strings"

	"smartpick/models"
)

// The scoring tables are ordered: the first matching rule wins and the
// remaining tiers are not evaluated. Unmatched input falls through to the
// feature baseline, which is intentional graceful degradation rather than
// an error.

type substringRule struct {
	keywords []string
	brand    string // additional brand substring requirement, empty = none
	score    int
}

type capacityRule struct {
	minMah int
	score  int
}

var cameraRules = []substringRule{
	{keywords: []string{"200mp"}, score: 95},
	{keywords: []string{"108mp", "100mp"}, score: 92},
	{keywords: []string{"64mp", "50mp"}, score: 85},
	{keywords: []string{"48mp"}, score: 82},
	{keywords: []string{"12mp"}, brand: "apple", score: 90},
}

var batteryRules = []capacityRule{
	{7000, 98},
	{6500, 95},
	{6250, 92},
	{6000, 90},
	{5750, 88},
	{5500, 86},
	{5250, 84},
	{5000, 82},
	{4750, 80},
	{4500, 78},
	{4250, 76},
	{4000, 74},
	{3750, 72},
	{3500, 71},
}

// Chipset tiers for the two major SoC families plus MediaTek Dimensity.
// "a17 pro" must stay ahead of "a17", and "8 gen 3" ahead of "8 gen 1",
// since matching is first-win.
var processorRules = []substringRule{
	{keywords: []string{"a18", "a17 pro"}, score: 98},
	{keywords: []string{"a17", "a16"}, score: 95},
	{keywords: []string{"a15"}, score: 92},
	{keywords: []string{"a14"}, score: 88},
	{keywords: []string{"a13"}, score: 85},
	{keywords: []string{"8 gen 3"}, score: 95},
	{keywords: []string{"8 gen 2"}, score: 92},
	{keywords: []string{"8+ gen 1", "8 gen 1"}, score: 88},
	{keywords: []string{"dimensity 9300"}, score: 93},
	{keywords: []string{"dimensity 9200"}, score: 90},
	{keywords: []string{"dimensity 9000"}, score: 88},
	{keywords: []string{"dimensity 8"}, score: 85},
	{keywords: []string{"dimensity 7"}, score: 80},
}

var privacyRules = []substringRule{
	{keywords: []string{"apple"}, score: 95},
	{keywords: []string{"google"}, score: 88},
	{keywords: []string{"samsung"}, score: 82},
	{keywords: []string{"oneplus"}, score: 75},
}

var designRules = []substringRule{
	{keywords: []string{"apple"}, score: 92},
	{keywords: []string{"nothing"}, score: 90},
	{keywords: []string{"samsung"}, score: 85},
	{keywords: []string{"oneplus"}, score: 82},
}

func matchSubstring(rules []substringRule, text, brand string, baseline int) int {
	for _, rule := range rules {
		if rule.brand != "" && !strings.Contains(brand, rule.brand) {
			continue
		}
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.score
			}
		}
	}
	return baseline
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CameraScore rates the main camera from its free-text spec, 70-98.
func CameraScore(camera, brand string) int {
	score := matchSubstring(cameraRules, NormalizeKey(camera), NormalizeKey(brand), 70)
	return clamp(score, 70, 98)
}

// BatteryScore rates battery capacity in 250mAh buckets, 70-98. Battery
// text without a parseable mAh figure keeps the baseline 70.
func BatteryScore(battery string) int {
	score := 70
	if mah, ok := BatteryCapacity(battery); ok {
		for _, rule := range batteryRules {
			if mah >= rule.minMah {
				score = rule.score
				break
			}
		}
	}
	return clamp(score, 70, 98)
}

// PerformanceScore rates the chipset from its free-text spec, 70-98.
func PerformanceScore(processor string) int {
	score := matchSubstring(processorRules, NormalizeKey(processor), "", 75)
	return clamp(score, 70, 98)
}

// PrivacyScore rates the brand's privacy posture, 70-95.
func PrivacyScore(brand string) int {
	score := matchSubstring(privacyRules, NormalizeKey(brand), "", 70)
	return clamp(score, 70, 95)
}

// DesignScore rates design by brand with a premium-price boost, 70-95.
func DesignScore(brand string, price int) int {
	score := matchSubstring(designRules, NormalizeKey(brand), "", 75)

	if price > 80000 {
		score = min(95, score+5)
	} else if price > 50000 {
		score = min(90, score+3)
	}

	return clamp(score, 70, 95)
}

// Score derives all five capability scores from a raw catalog record.
// Deterministic: depends only on the spec strings and the parsed price.
func Score(raw *models.RawPhone, price int) models.FeatureScores {
	return models.FeatureScores{
		Camera:      CameraScore(raw.Camera, raw.Brand),
		Battery:     BatteryScore(raw.Battery),
		Performance: PerformanceScore(raw.Processor),
		Privacy:     PrivacyScore(raw.Brand),
		Design:      DesignScore(raw.Brand, price),
	}
}
