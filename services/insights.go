package services

import (
	"fmt"
	"strings"

	"smartpick/models"
)

// WhyPicked assembles up to 3 short reasons for recommending a phone:
// top-priority strength, reviewer sentiment, and value proposition.
// Conditions that do not hold are simply omitted.
func WhyPicked(phone *models.Phone, topPriority models.Feature, reviews []models.Review) string {
	var reasons []string

	topScore := phone.Scores.For(topPriority)
	switch {
	case topScore >= 90:
		reasons = append(reasons, fmt.Sprintf("Exceptional %s - one of the best in this range", topPriority))
	case topScore >= 85:
		reasons = append(reasons, fmt.Sprintf("Excellent %s performance", topPriority))
	case topScore >= 80:
		reasons = append(reasons, fmt.Sprintf("Strong %s capabilities", topPriority))
	}

	if len(reviews) > 0 {
		total := 0
		for _, r := range reviews {
			total += r.SentimentScore
		}
		avg := float64(total) / float64(len(reviews))
		if avg >= 50 {
			reasons = append(reasons, "Highly praised by reviewers")
		} else if avg >= 20 {
			reasons = append(reasons, "Positively reviewed overall")
		}
	}

	if phone.Price < 30000 {
		reasons = append(reasons, "Great value for money")
	} else if phone.Price >= 60000 {
		reasons = append(reasons, "Premium flagship experience")
	}

	if len(reasons) == 0 {
		return ""
	}
	if len(reasons) > 3 {
		reasons = reasons[:3]
	}
	return strings.Join(reasons, ". ") + "."
}

// WhatToKnow collects caveats: every feature scoring below 75, plus up to
// 2 negative review points per review, capped at 3 in total.
func WhatToKnow(phone *models.Phone, reviews []models.Review) string {
	var warnings []string

	for _, feature := range models.AllFeatures() {
		if phone.Scores.For(feature) < 75 {
			warnings = append(warnings, capitalize(string(feature))+" could be better")
		}
	}

	for _, review := range reviews {
		points := review.NegativePoints
		if len(points) > 2 {
			points = points[:2]
		}
		warnings = append(warnings, points...)
	}

	if len(warnings) == 0 {
		return "No major concerns"
	}
	if len(warnings) > 3 {
		warnings = warnings[:3]
	}
	return strings.Join(warnings, ". ") + "."
}

// FormatPrice renders a rupee amount with Indian digit grouping
// (₹12,34,567).
func FormatPrice(price int) string {
	if price < 0 {
		return "-" + FormatPrice(-price)
	}

	digits := fmt.Sprintf("%d", price)
	if len(digits) <= 3 {
		return "₹" + digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}

	return "₹" + strings.Join(groups, ",") + "," + tail
}

// BudgetRangeLabel renders the inclusive budget window as display text.
func BudgetRangeLabel(budget int) string {
	minPrice, maxPrice := BudgetWindow(budget)
	return FormatPrice(int(minPrice)) + " - " + FormatPrice(int(maxPrice))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
