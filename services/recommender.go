package services

import (
	"context"
	"fmt"

	"smartpick/models"
	"smartpick/storage"
	"smartpick/utils"
)

// Recommender answers ranking requests from persisted phones and reviews.
// Each request reads its own snapshot and computes independently, so
// concurrent requests need no coordination.
type Recommender struct {
	phones          storage.PhoneStore
	reviews         storage.ReviewStore
	reviewsPerPhone int
	logger          *utils.Logger
}

// NewRecommender wires the stores into a request-time recommender.
func NewRecommender(phones storage.PhoneStore, reviews storage.ReviewStore, reviewsPerPhone int, logger *utils.Logger) *Recommender {
	return &Recommender{
		phones:          phones,
		reviews:         reviews,
		reviewsPerPhone: reviewsPerPhone,
		logger:          logger,
	}
}

// Recommend returns the top matches within the budget window, each with
// its reviews and composed explanation text, plus the total number of
// candidates found. An empty window yields an empty list, not an error.
func (r *Recommender) Recommend(ctx context.Context, budget int, priorities []models.Feature) ([]models.RankedPhone, int, error) {
	minPrice, maxPrice := BudgetWindow(budget)

	catalog, err := r.phones.PhonesInPriceRange(ctx, minPrice, maxPrice)
	if err != nil {
		return nil, 0, fmt.Errorf("recommend: load catalog: %w", err)
	}

	ranked := Rank(catalog, priorities, budget)

	for i := range ranked {
		reviews, err := r.reviews.ReviewsByPhone(ctx, ranked[i].Phone.ID, r.reviewsPerPhone)
		if err != nil {
			// Explanations degrade gracefully without review evidence.
			r.logger.Warn("[recommend] Reviews unavailable for phone %d: %v", ranked[i].Phone.ID, err)
			reviews = nil
		}

		ranked[i].Reviews = reviews
		ranked[i].WhyPicked = WhyPicked(&ranked[i].Phone, priorities[0], reviews)
		ranked[i].WhatToKnow = WhatToKnow(&ranked[i].Phone, reviews)
	}

	return ranked, len(catalog), nil
}
