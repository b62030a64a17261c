package storage

import (
	"context"

	"smartpick/models"
)

// PhoneStore is the catalog persistence boundary. Upserts are keyed by
// (brand, model) so re-ingesting the same record is idempotent.
type PhoneStore interface {
	UpsertPhone(ctx context.Context, phone *models.Phone) error
	PhonesInPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]models.Phone, error)
	PhoneByID(ctx context.Context, id int64) (*models.Phone, error)
	AllPhones(ctx context.Context) ([]models.Phone, error)
	UpdateBatteryScore(ctx context.Context, id int64, score int) error
}

// ReviewStore is the review persistence boundary. Upserts are keyed by
// (phone, video); re-syncing a video updates the sentiment fields in place.
type ReviewStore interface {
	UpsertReview(ctx context.Context, review *models.Review) error
	ReviewsByPhone(ctx context.Context, phoneID int64, limit int) ([]models.Review, error)
}

// RawPhoneWriter persists unprocessed scrape output before any cleaning.
type RawPhoneWriter interface {
	WriteRaw(phones []*models.RawPhone) error
	Close() error
}
