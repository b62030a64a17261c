package services

import (
	"regexp"
	"strings"
)

// PolarityScorer turns cleaned text into a raw additive polarity value.
// The default is a word-weight lexicon; swapping the implementation does
// not affect insight extraction or downstream composition.
type PolarityScorer interface {
	Polarity(text string) int
}

// LexiconScorer sums per-word polarity weights over whitespace-separated
// tokens. Unknown words contribute nothing.
type LexiconScorer struct {
	weights map[string]int
}

// NewLexiconScorer returns a scorer backed by the built-in review lexicon.
func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{weights: reviewLexicon}
}

// Polarity implements PolarityScorer.
func (l *LexiconScorer) Polarity(text string) int {
	total := 0
	for _, token := range strings.Fields(text) {
		total += l.weights[token]
	}
	return total
}

// reviewLexicon holds AFINN-style word weights in the -5..5 range,
// trimmed to vocabulary that actually occurs in phone review transcripts.
var reviewLexicon = map[string]int{
	"amazing":       4,
	"awesome":       4,
	"best":          3,
	"better":        2,
	"brilliant":     4,
	"clear":         1,
	"comfortable":   2,
	"crisp":         2,
	"excellent":     3,
	"exceptional":   3,
	"fantastic":     4,
	"favorite":      2,
	"flagship":      1,
	"fluid":         2,
	"good":          3,
	"gorgeous":      3,
	"great":         3,
	"happy":         3,
	"impressed":     3,
	"impressive":    3,
	"incredible":    4,
	"love":          3,
	"loved":         3,
	"nice":          3,
	"outstanding":   5,
	"perfect":       3,
	"phenomenal":    4,
	"premium":       2,
	"powerful":      2,
	"recommend":     2,
	"recommended":   2,
	"reliable":      2,
	"responsive":    2,
	"sharp":         1,
	"smooth":        2,
	"snappy":        2,
	"solid":         2,
	"stunning":      4,
	"superb":        5,
	"superior":      2,
	"vibrant":       2,
	"win":           4,
	"wonderful":     4,
	"worth":         2,
	"annoying":      -2,
	"avoid":         -1,
	"awful":         -3,
	"bad":           -3,
	"bland":         -1,
	"broken":        -1,
	"buggy":         -3,
	"cheap":         -1,
	"choppy":        -2,
	"crap":          -3,
	"dead":          -3,
	"disappointed":  -2,
	"disappointing": -2,
	"dull":          -2,
	"expensive":     -2,
	"flaw":          -2,
	"flawed":        -3,
	"flimsy":        -2,
	"fragile":       -2,
	"frustrating":   -2,
	"hate":          -3,
	"horrible":      -3,
	"hot":           -1,
	"issue":         -2,
	"issues":        -2,
	"lag":           -1,
	"laggy":         -2,
	"lags":          -1,
	"mediocre":      -2,
	"overheating":   -2,
	"overpriced":    -2,
	"plasticky":     -2,
	"poor":          -2,
	"problem":       -2,
	"problems":      -2,
	"slow":          -2,
	"struggle":      -2,
	"struggles":     -2,
	"stutter":       -2,
	"stutters":      -2,
	"terrible":      -3,
	"ugly":          -3,
	"underwhelming": -2,
	"unreliable":    -2,
	"useless":       -2,
	"weak":          -2,
	"worse":         -3,
	"worst":         -3,
}

// SentimentResult carries everything derived from one transcript.
type SentimentResult struct {
	Score          int
	PositivePoints []string
	NegativePoints []string
	Summary        string
}

// Analyzer scores transcripts and extracts canned insight phrases.
type Analyzer struct {
	scorer PolarityScorer
}

// NewAnalyzer builds an Analyzer; a nil scorer selects the built-in lexicon.
func NewAnalyzer(scorer PolarityScorer) *Analyzer {
	if scorer == nil {
		scorer = NewLexiconScorer()
	}
	return &Analyzer{scorer: scorer}
}

var (
	punctuationRegexp = regexp.MustCompile(`[^\w\s]`)
	whitespaceRegexp  = regexp.MustCompile(`\s+`)
)

// cleanTranscript lower-cases, strips punctuation and collapses whitespace.
func cleanTranscript(text string) string {
	text = strings.ToLower(text)
	text = punctuationRegexp.ReplaceAllString(text, " ")
	text = whitespaceRegexp.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Analyze computes the bounded sentiment score and insight phrases for a
// transcript. Returns nil when the transcript is absent or empty.
//
// Raw lexicon sums for review-length transcripts cluster near zero, so the
// raw value is scaled x5 before clamping to [-100, 100].
func (a *Analyzer) Analyze(transcript string) *SentimentResult {
	if strings.TrimSpace(transcript) == "" {
		return nil
	}

	cleaned := cleanTranscript(transcript)
	score := clamp(a.scorer.Polarity(cleaned)*5, -100, 100)

	positive, negative, summary := extractInsights(transcript)

	return &SentimentResult{
		Score:          score,
		PositivePoints: positive,
		NegativePoints: negative,
		Summary:        summary,
	}
}

type insightRule struct {
	pattern *regexp.Regexp
	insight string
}

// Insight tables are ordered; matches are collected in table order, not in
// match position, capped at 5 per polarity.
var positiveInsightRules = []insightRule{
	{regexp.MustCompile(`great camera|excellent camera|amazing camera|camera is good|camera quality|superb camera`), "Great camera quality"},
	{regexp.MustCompile(`good battery|excellent battery|amazing battery|battery life is good|long battery`), "Excellent battery life"},
	{regexp.MustCompile(`fast performance|smooth performance|powerful|fast processor|snappy`), "Fast and smooth performance"},
	{regexp.MustCompile(`premium design|beautiful design|good build quality|premium feel|solid build`), "Premium design and build"},
	{regexp.MustCompile(`value for money|worth the price|good price|affordable|bang for buck`), "Good value for money"},
	{regexp.MustCompile(`great display|excellent screen|beautiful display|good screen|vibrant display`), "Excellent display quality"},
	{regexp.MustCompile(`fast charging|quick charging|charges fast|rapid charging`), "Fast charging support"},
	{regexp.MustCompile(`good speakers|great audio|excellent sound|loud speakers`), "Good audio quality"},
}

var negativeInsightRules = []insightRule{
	{regexp.MustCompile(`camera issues|camera problem|disappointing camera|average camera|weak camera`), "Camera could be better"},
	{regexp.MustCompile(`battery drain|poor battery|bad battery|battery life issues|short battery`), "Battery life concerns"},
	{regexp.MustCompile(`slow performance|laggy|stutters|performance issues|choppy`), "Performance issues reported"},
	{regexp.MustCompile(`overheating|heating issues|gets hot|thermal|too hot`), "Heating issues"},
	{regexp.MustCompile(`expensive|overpriced|too costly|not worth|pricey`), "Expensive for what it offers"},
	{regexp.MustCompile(`cheap build|plastic feel|poor build|feels cheap|flimsy`), "Build quality could be better"},
	{regexp.MustCompile(`bloatware|too many ads|ui issues|software bugs|buggy`), "Software needs improvement"},
	{regexp.MustCompile(`no headphone jack|no expandable storage|no wireless charging|missing features`), "Missing some features"},
}

const maxInsightsPerPolarity = 5

func extractInsights(transcript string) (positive, negative []string, summary string) {
	text := strings.ToLower(transcript)

	for _, rule := range positiveInsightRules {
		if len(positive) >= maxInsightsPerPolarity {
			break
		}
		if rule.pattern.MatchString(text) {
			positive = append(positive, rule.insight)
		}
	}

	for _, rule := range negativeInsightRules {
		if len(negative) >= maxInsightsPerPolarity {
			break
		}
		if rule.pattern.MatchString(text) {
			negative = append(negative, rule.insight)
		}
	}

	switch {
	case len(positive) > len(negative):
		summary = "Overall positive review with some minor concerns"
	case len(negative) > len(positive):
		summary = "Mixed review with several concerns raised"
	default:
		summary = "Balanced review highlighting both pros and cons"
	}

	return positive, negative, summary
}

// RecommendationLabel maps a sentiment score to one of five tiers.
// Boundaries are inclusive on the lower bound, evaluated top-down.
func RecommendationLabel(sentimentScore int) string {
	switch {
	case sentimentScore >= 50:
		return "Highly Recommended"
	case sentimentScore >= 20:
		return "Recommended"
	case sentimentScore >= -20:
		return "Mixed"
	case sentimentScore >= -50:
		return "Not Recommended"
	default:
		return "Strongly Not Recommended"
	}
}
