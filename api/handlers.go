package api

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"smartpick/models"
	"smartpick/services"
)

type errorResponse struct {
	Error string `json:"error"`
}

type reviewDTO struct {
	Channel        string   `json:"channel"`
	Title          string   `json:"title"`
	URL            string   `json:"url"`
	Thumbnail      string   `json:"thumbnail,omitempty"`
	Views          int64    `json:"views,omitempty"`
	Published      string   `json:"published,omitempty"`
	Sentiment      int      `json:"sentiment"`
	Recommendation string   `json:"recommendation"`
	Positive       []string `json:"positive"`
	Negative       []string `json:"negative"`
	Insights       string   `json:"insights"`
}

type recommendationDTO struct {
	ID       int64  `json:"id"`
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Price    string `json:"price"`
	PriceRaw int    `json:"priceRaw"`
	ImageURL string `json:"image_url"`

	Display   string `json:"display"`
	Processor string `json:"processor"`
	RAM       string `json:"ram"`
	Storage   string `json:"storage"`
	Battery   string `json:"battery"`
	Camera    string `json:"camera"`

	MatchPercentage  int `json:"match_percentage"`
	CameraScore      int `json:"camera_score"`
	BatteryScore     int `json:"battery_score"`
	PerformanceScore int `json:"performance_score"`
	PrivacyScore     int `json:"privacy_score"`
	DesignScore      int `json:"design_score"`

	WhyPicked  string `json:"why_picked"`
	WhatToKnow string `json:"what_to_know"`

	ReviewCount    int         `json:"review_count"`
	AvgReviewScore int         `json:"avg_review_score"`
	Reviews        []reviewDTO `json:"reviews"`
}

type recommendationsResponse struct {
	Budget          int                 `json:"budget"`
	BudgetRange     string              `json:"budget_range"`
	Priorities      []models.Feature    `json:"priorities"`
	TotalFound      int                 `json:"total_found"`
	Message         string              `json:"message,omitempty"`
	Recommendations []recommendationDTO `json:"recommendations"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "SmartPick Recommendation API",
		"endpoints": map[string]string{
			"recommendations": "GET /api/recommendations?budget=60000&priorities=camera,battery,performance,privacy,design",
			"phone":           "GET /api/phones/{id}",
			"reviews":         "GET /api/phones/{id}/reviews",
		},
	})
}

// handleRecommendations validates the ranking request, runs the engine and
// renders the ranked result. Validation failures never reach the engine.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	budgetRaw := query.Get("budget")
	prioritiesRaw := query.Get("priorities")

	if budgetRaw == "" || prioritiesRaw == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "Missing required parameters: budget and priorities",
		})
		return
	}

	budget, err := strconv.Atoi(budgetRaw)
	if err != nil || budget <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Budget must be a positive integer"})
		return
	}

	priorities, err := models.ParsePriorities(prioritiesRaw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	ranked, totalFound, err := s.recommender.Recommend(r.Context(), budget, priorities)
	if err != nil {
		s.logger.Error("[api] Recommendation failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
		return
	}

	resp := recommendationsResponse{
		Budget:          budget,
		BudgetRange:     services.BudgetRangeLabel(budget),
		Priorities:      priorities,
		TotalFound:      totalFound,
		Recommendations: make([]recommendationDTO, 0, len(ranked)),
	}
	if len(ranked) == 0 {
		resp.Message = "No phones found in this budget"
	}

	for _, rec := range ranked {
		resp.Recommendations = append(resp.Recommendations, toRecommendationDTO(rec))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePhone(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid phone id"})
		return
	}

	phone, err := s.phones.PhoneByID(r.Context(), id)
	if err != nil {
		s.logger.Error("[api] Phone lookup failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
		return
	}
	if phone == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Phone not found"})
		return
	}

	reviews, err := s.reviews.ReviewsByPhone(r.Context(), id, 0)
	if err != nil {
		s.logger.Warn("[api] Reviews unavailable for phone %d: %v", id, err)
		reviews = nil
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":                phone.ID,
		"brand":             phone.Brand,
		"model":             phone.Model,
		"price":             services.FormatPrice(phone.Price),
		"priceRaw":          phone.Price,
		"image_url":         phone.ImageURL,
		"display":           phone.Display,
		"processor":         phone.Processor,
		"ram":               phone.RAM,
		"storage":           phone.Storage,
		"battery":           phone.Battery,
		"camera":            phone.Camera,
		"camera_score":      phone.Scores.Camera,
		"battery_score":     phone.Scores.Battery,
		"performance_score": phone.Scores.Performance,
		"privacy_score":     phone.Scores.Privacy,
		"design_score":      phone.Scores.Design,
		"review_count":      len(reviews),
		"avg_review_score":  averageSentiment(reviews),
	})
}

func (s *Server) handlePhoneReviews(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid phone id"})
		return
	}

	reviews, err := s.reviews.ReviewsByPhone(r.Context(), id, 0)
	if err != nil {
		s.logger.Error("[api] Review lookup failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
		return
	}

	dtos := make([]reviewDTO, 0, len(reviews))
	for _, review := range reviews {
		dtos = append(dtos, toReviewDTO(review))
	}

	writeJSON(w, http.StatusOK, map[string]any{"reviews": dtos})
}

func toRecommendationDTO(rec models.RankedPhone) recommendationDTO {
	reviews := make([]reviewDTO, 0, len(rec.Reviews))
	for _, review := range rec.Reviews {
		reviews = append(reviews, toReviewDTO(review))
	}

	phone := rec.Phone
	return recommendationDTO{
		ID:       phone.ID,
		Brand:    phone.Brand,
		Model:    phone.Model,
		Price:    services.FormatPrice(phone.Price),
		PriceRaw: phone.Price,
		ImageURL: phone.ImageURL,

		Display:   phone.Display,
		Processor: phone.Processor,
		RAM:       phone.RAM,
		Storage:   phone.Storage,
		Battery:   phone.Battery,
		Camera:    phone.Camera,

		// The match score already lives on the 0-100 scale, so the
		// reported percentage is the weighted score itself.
		MatchPercentage:  rec.MatchScore,
		CameraScore:      phone.Scores.Camera,
		BatteryScore:     phone.Scores.Battery,
		PerformanceScore: phone.Scores.Performance,
		PrivacyScore:     phone.Scores.Privacy,
		DesignScore:      phone.Scores.Design,

		WhyPicked:  rec.WhyPicked,
		WhatToKnow: rec.WhatToKnow,

		ReviewCount:    len(rec.Reviews),
		AvgReviewScore: averageSentiment(rec.Reviews),
		Reviews:        reviews,
	}
}

func toReviewDTO(review models.Review) reviewDTO {
	published := ""
	if !review.PublishedAt.IsZero() {
		published = review.PublishedAt.Format("2006-01-02")
	}

	positive := review.PositivePoints
	if positive == nil {
		positive = []string{}
	}
	negative := review.NegativePoints
	if negative == nil {
		negative = []string{}
	}

	return reviewDTO{
		Channel:        review.ChannelName,
		Title:          review.Title,
		URL:            review.URL,
		Thumbnail:      review.ThumbnailURL,
		Views:          review.ViewCount,
		Published:      published,
		Sentiment:      review.SentimentScore,
		Recommendation: review.Recommendation,
		Positive:       positive,
		Negative:       negative,
		Insights:       review.Summary,
	}
}

func averageSentiment(reviews []models.Review) int {
	if len(reviews) == 0 {
		return 0
	}
	total := 0
	for _, r := range reviews {
		total += r.SentimentScore
	}
	return int(math.Round(float64(total) / float64(len(reviews))))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
