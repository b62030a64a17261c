package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"smartpick/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var phoneColumns = []string{
	"id", "brand", "model", "price",
	"display_info", "processor", "ram", "storage", "battery", "camera", "front_camera",
	"image_url", "product_url",
	"camera_score", "battery_score", "performance_score", "privacy_score", "design_score",
	"created_at",
}

var reviewColumns = []string{
	"id", "phone_id", "video_id", "channel_id", "channel_name",
	"video_title", "video_url", "thumbnail_url", "view_count", "like_count",
	"published_at", "sentiment_score", "positive_points", "negative_points",
	"key_insights", "recommendation", "transcript_available", "last_updated",
}

// PostgresStore persists phones and their reviews to PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

var (
	_ PhoneStore  = (*PostgresStore)(nil)
	_ ReviewStore = (*PostgresStore)(nil)
)

// NewPostgresStore opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use store.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return s, nil
}

func (s *PostgresStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS phones (
			id                SERIAL PRIMARY KEY,
			brand             TEXT        NOT NULL,
			model             TEXT        NOT NULL,
			price             INTEGER     NOT NULL,
			display_info      TEXT        NOT NULL DEFAULT '',
			processor         TEXT        NOT NULL DEFAULT '',
			ram               TEXT        NOT NULL DEFAULT '',
			storage           TEXT        NOT NULL DEFAULT '',
			battery           TEXT        NOT NULL DEFAULT '',
			camera            TEXT        NOT NULL DEFAULT '',
			front_camera      TEXT        NOT NULL DEFAULT '',
			image_url         TEXT        NOT NULL DEFAULT '',
			product_url       TEXT        NOT NULL DEFAULT '#',
			camera_score      INTEGER     NOT NULL DEFAULT 70,
			battery_score     INTEGER     NOT NULL DEFAULT 70,
			performance_score INTEGER     NOT NULL DEFAULT 75,
			privacy_score     INTEGER     NOT NULL DEFAULT 70,
			design_score      INTEGER     NOT NULL DEFAULT 75,
			created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (brand, model)
		);

		CREATE INDEX IF NOT EXISTS idx_phones_price ON phones(price);
		CREATE INDEX IF NOT EXISTS idx_phones_brand ON phones(brand);

		CREATE TABLE IF NOT EXISTS youtube_reviews (
			id                   SERIAL PRIMARY KEY,
			phone_id             INTEGER     NOT NULL REFERENCES phones(id) ON DELETE CASCADE,
			video_id             TEXT        NOT NULL,
			channel_id           TEXT        NOT NULL DEFAULT '',
			channel_name         TEXT        NOT NULL DEFAULT '',
			video_title          TEXT        NOT NULL DEFAULT '',
			video_url            TEXT        NOT NULL DEFAULT '',
			thumbnail_url        TEXT        NOT NULL DEFAULT '',
			view_count           BIGINT      NOT NULL DEFAULT 0,
			like_count           BIGINT      NOT NULL DEFAULT 0,
			published_at         TIMESTAMPTZ,
			sentiment_score      INTEGER     NOT NULL DEFAULT 0,
			positive_points      TEXT[]      NOT NULL DEFAULT '{}',
			negative_points      TEXT[]      NOT NULL DEFAULT '{}',
			key_insights         TEXT        NOT NULL DEFAULT '',
			recommendation       TEXT        NOT NULL DEFAULT '',
			transcript_available BOOLEAN     NOT NULL DEFAULT FALSE,
			last_updated         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (phone_id, video_id)
		);

		CREATE INDEX IF NOT EXISTS idx_reviews_phone     ON youtube_reviews(phone_id);
		CREATE INDEX IF NOT EXISTS idx_reviews_sentiment ON youtube_reviews(sentiment_score);
	`)
	return err
}

// UpsertPhone inserts or updates a catalog entry keyed by (brand, model).
// Re-running an import with identical rows leaves exactly one row per phone.
func (s *PostgresStore) UpsertPhone(ctx context.Context, phone *models.Phone) error {
	query := `
		INSERT INTO phones (
			brand, model, price,
			display_info, processor, ram, storage, battery, camera, front_camera,
			image_url, product_url,
			camera_score, battery_score, performance_score, privacy_score, design_score
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		ON CONFLICT (brand, model) DO UPDATE SET
			price             = EXCLUDED.price,
			display_info      = EXCLUDED.display_info,
			processor         = EXCLUDED.processor,
			ram               = EXCLUDED.ram,
			storage           = EXCLUDED.storage,
			battery           = EXCLUDED.battery,
			camera            = EXCLUDED.camera,
			front_camera      = EXCLUDED.front_camera,
			image_url         = EXCLUDED.image_url,
			product_url       = EXCLUDED.product_url,
			camera_score      = EXCLUDED.camera_score,
			battery_score     = EXCLUDED.battery_score,
			performance_score = EXCLUDED.performance_score,
			privacy_score     = EXCLUDED.privacy_score,
			design_score      = EXCLUDED.design_score
		RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		phone.Brand, phone.Model, phone.Price,
		phone.Display, phone.Processor, phone.RAM, phone.Storage,
		phone.Battery, phone.Camera, phone.FrontCamera,
		phone.ImageURL, phone.ProductURL,
		phone.Scores.Camera, phone.Scores.Battery, phone.Scores.Performance,
		phone.Scores.Privacy, phone.Scores.Design,
	).Scan(&phone.ID)
	if err != nil {
		return fmt.Errorf("postgres: upsert phone %s %s: %w", phone.Brand, phone.Model, err)
	}

	return nil
}

// PhonesInPriceRange returns all phones whose price falls inside the
// inclusive window.
func (s *PostgresStore) PhonesInPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]models.Phone, error) {
	query, args, err := psql.Select(phoneColumns...).
		From("phones").
		Where(sq.GtOrEq{"price": minPrice}).
		Where(sq.LtOrEq{"price": maxPrice}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("postgres: build range query: %w", err)
	}

	return s.queryPhones(ctx, query, args...)
}

// PhoneByID fetches one phone, or nil when it does not exist.
func (s *PostgresStore) PhoneByID(ctx context.Context, id int64) (*models.Phone, error) {
	query, args, err := psql.Select(phoneColumns...).
		From("phones").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("postgres: build lookup query: %w", err)
	}

	phones, err := s.queryPhones(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(phones) == 0 {
		return nil, nil
	}
	return &phones[0], nil
}

// AllPhones returns the full catalog ordered by brand and model.
func (s *PostgresStore) AllPhones(ctx context.Context) ([]models.Phone, error) {
	query, args, err := psql.Select(phoneColumns...).
		From("phones").
		OrderBy("brand", "model").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("postgres: build catalog query: %w", err)
	}

	return s.queryPhones(ctx, query, args...)
}

// UpdateBatteryScore rewrites a single phone's battery score in place,
// leaving every other field untouched.
func (s *PostgresStore) UpdateBatteryScore(ctx context.Context, id int64, score int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE phones SET battery_score = $1 WHERE id = $2`, score, id)
	if err != nil {
		return fmt.Errorf("postgres: update battery score for phone %d: %w", id, err)
	}
	return nil
}

func (s *PostgresStore) queryPhones(ctx context.Context, query string, args ...any) ([]models.Phone, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: query phones: %w", err)
	}
	defer rows.Close()

	var phones []models.Phone
	for rows.Next() {
		var p models.Phone
		err := rows.Scan(
			&p.ID, &p.Brand, &p.Model, &p.Price,
			&p.Display, &p.Processor, &p.RAM, &p.Storage, &p.Battery, &p.Camera, &p.FrontCamera,
			&p.ImageURL, &p.ProductURL,
			&p.Scores.Camera, &p.Scores.Battery, &p.Scores.Performance,
			&p.Scores.Privacy, &p.Scores.Design,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan phone: %w", err)
		}
		phones = append(phones, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: phone rows: %w", err)
	}

	return phones, nil
}

// UpsertReview inserts or updates a review keyed by (phone, video).
// Re-processing a video only refreshes its sentiment and insight fields.
func (s *PostgresStore) UpsertReview(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO youtube_reviews (
			phone_id, video_id, channel_id, channel_name, video_title, video_url,
			thumbnail_url, view_count, like_count, published_at,
			sentiment_score, positive_points, negative_points, key_insights,
			recommendation, transcript_available
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		ON CONFLICT (phone_id, video_id) DO UPDATE SET
			sentiment_score = EXCLUDED.sentiment_score,
			positive_points = EXCLUDED.positive_points,
			negative_points = EXCLUDED.negative_points,
			key_insights    = EXCLUDED.key_insights,
			recommendation  = EXCLUDED.recommendation,
			last_updated    = NOW()
		RETURNING id`

	var publishedAt any
	if !review.PublishedAt.IsZero() {
		publishedAt = review.PublishedAt
	}

	err := s.db.QueryRowContext(ctx, query,
		review.PhoneID, review.VideoID, review.ChannelID, review.ChannelName,
		review.Title, review.URL, review.ThumbnailURL,
		review.ViewCount, review.LikeCount, publishedAt,
		review.SentimentScore,
		pq.Array(review.PositivePoints), pq.Array(review.NegativePoints),
		review.Summary, review.Recommendation, review.TranscriptAvailable,
	).Scan(&review.ID)
	if err != nil {
		return fmt.Errorf("postgres: upsert review %s for phone %d: %w", review.VideoID, review.PhoneID, err)
	}

	return nil
}

// ReviewsByPhone returns a phone's reviews ordered by sentiment score,
// then view count, descending. A limit of 0 returns everything.
func (s *PostgresStore) ReviewsByPhone(ctx context.Context, phoneID int64, limit int) ([]models.Review, error) {
	builder := psql.Select(reviewColumns...).
		From("youtube_reviews").
		Where(sq.Eq{"phone_id": phoneID}).
		OrderBy("sentiment_score DESC", "view_count DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("postgres: build reviews query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var r models.Review
		var publishedAt sql.NullTime
		err := rows.Scan(
			&r.ID, &r.PhoneID, &r.VideoID, &r.ChannelID, &r.ChannelName,
			&r.Title, &r.URL, &r.ThumbnailURL, &r.ViewCount, &r.LikeCount,
			&publishedAt, &r.SentimentScore,
			pq.Array(&r.PositivePoints), pq.Array(&r.NegativePoints),
			&r.Summary, &r.Recommendation, &r.TranscriptAvailable, &r.LastUpdated,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan review: %w", err)
		}
		if publishedAt.Valid {
			r.PublishedAt = publishedAt.Time
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: review rows: %w", err)
	}

	return reviews, nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
