package services

import (
	"context"
	"errors"
	"time"

	"smartpick/models"
	"smartpick/storage"
	"smartpick/transcript"
	"smartpick/utils"
	"smartpick/youtube"
)

// VideoSearcher finds candidate review videos and their public counters.
type VideoSearcher interface {
	SearchReviews(ctx context.Context, brand, model string, maxResults int) ([]youtube.Video, error)
	VideoStats(ctx context.Context, videoID string) (youtube.Stats, error)
}

// TranscriptFetcher returns transcript text for a video, or "" when the
// video has no transcript.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string) (string, error)
}

// ReviewSyncer orchestrates the review pipeline: search trusted-channel
// videos per phone, fetch stats and transcript, analyze sentiment, and
// upsert the result. Failures are contained to the single video or phone
// they occur on.
type ReviewSyncer struct {
	phones      storage.PhoneStore
	reviews     storage.ReviewStore
	search      VideoSearcher
	transcripts TranscriptFetcher
	analyzer    *Analyzer
	logger      *utils.Logger

	// Minimum spacing between consecutive external calls; a throttling
	// contract with the upstream APIs, not a concurrency primitive.
	videoDelay time.Duration
	phoneDelay time.Duration

	maxVideosPerPhone int
	maxPhonesPerRun   int
}

// ReviewSyncerDeps wires the syncer's collaborators.
type ReviewSyncerDeps struct {
	Phones      storage.PhoneStore
	Reviews     storage.ReviewStore
	Search      VideoSearcher
	Transcripts TranscriptFetcher
	Analyzer    *Analyzer
	Logger      *utils.Logger

	VideoDelay        time.Duration
	PhoneDelay        time.Duration
	MaxVideosPerPhone int
	MaxPhonesPerRun   int
}

// NewReviewSyncer constructs the sync orchestrator.
func NewReviewSyncer(deps ReviewSyncerDeps) *ReviewSyncer {
	analyzer := deps.Analyzer
	if analyzer == nil {
		analyzer = NewAnalyzer(nil)
	}
	return &ReviewSyncer{
		phones:            deps.Phones,
		reviews:           deps.Reviews,
		search:            deps.Search,
		transcripts:       deps.Transcripts,
		analyzer:          analyzer,
		logger:            deps.Logger,
		videoDelay:        deps.VideoDelay,
		phoneDelay:        deps.PhoneDelay,
		maxVideosPerPhone: deps.MaxVideosPerPhone,
		maxPhonesPerRun:   deps.MaxPhonesPerRun,
	}
}

// SyncReport summarizes one sync run.
type SyncReport struct {
	Phones int
	Synced int
	Failed int
}

// SyncAll walks the catalog and syncs reviews phone by phone. A failure on
// one phone or one video never aborts the batch; previously committed
// reviews stay intact and the run is safely repeatable.
func (s *ReviewSyncer) SyncAll(ctx context.Context) (*SyncReport, error) {
	phones, err := s.phones.AllPhones(ctx)
	if err != nil {
		return nil, err
	}

	if s.maxPhonesPerRun > 0 && len(phones) > s.maxPhonesPerRun {
		phones = phones[:s.maxPhonesPerRun]
	}

	s.logger.Info("[sync] Syncing reviews for %d phones", len(phones))

	report := &SyncReport{Phones: len(phones)}
	for i, phone := range phones {
		synced, failed, abort := s.syncPhone(ctx, &phone)
		report.Synced += synced
		report.Failed += failed

		if abort {
			s.logger.Error("[sync] Transcript credits exhausted, stopping the run early")
			break
		}
		if i < len(phones)-1 {
			time.Sleep(s.phoneDelay)
		}
	}

	s.logger.Info("[sync] Done — synced: %d | failed: %d | phones: %d",
		report.Synced, report.Failed, report.Phones)
	return report, nil
}

func (s *ReviewSyncer) syncPhone(ctx context.Context, phone *models.Phone) (synced, failed int, abort bool) {
	s.logger.Info("[sync] %s %s", phone.Brand, phone.Model)

	videos, err := s.search.SearchReviews(ctx, phone.Brand, phone.Model, s.maxVideosPerPhone)
	if err != nil {
		s.logger.Error("[sync] Search failed for %s %s: %v", phone.Brand, phone.Model, err)
		return 0, 0, false
	}
	if len(videos) == 0 {
		s.logger.Warn("[sync] No trusted-channel videos for %s %s", phone.Brand, phone.Model)
		return 0, 0, false
	}

	for i, video := range videos {
		if err := s.processVideo(ctx, phone.ID, video); err != nil {
			s.logger.Error("[sync] Video %s failed: %v", video.VideoID, err)
			failed++
			if errors.Is(err, transcript.ErrQuotaExhausted) {
				return synced, failed, true
			}
		} else {
			synced++
		}

		if i < len(videos)-1 {
			time.Sleep(s.videoDelay)
		}
	}

	return synced, failed, false
}

var errNoTranscript = errors.New("no transcript available")

func (s *ReviewSyncer) processVideo(ctx context.Context, phoneID int64, video youtube.Video) error {
	s.logger.Debug("[sync] Processing %q (%s)", video.Title, video.ChannelName)

	stats, err := s.search.VideoStats(ctx, video.VideoID)
	if err != nil {
		// Counters are cosmetic; keep going with zeros.
		s.logger.Warn("[sync] Stats fetch failed for %s: %v", video.VideoID, err)
		stats = youtube.Stats{}
	}

	text, err := s.transcripts.Fetch(ctx, video.VideoID)
	if err != nil {
		var rateLimited *transcript.RateLimitError
		if errors.As(err, &rateLimited) {
			s.logger.Warn("[sync] Rate limited, provider suggests retry after %s", rateLimited.RetryAfter)
		}
		return err
	}

	result := s.analyzer.Analyze(text)
	if result == nil {
		s.logger.Warn("[sync] No transcript for %s, skipping", video.VideoID)
		return errNoTranscript
	}

	review := &models.Review{
		PhoneID:             phoneID,
		VideoID:             video.VideoID,
		ChannelID:           video.ChannelID,
		ChannelName:         video.ChannelName,
		Title:               video.Title,
		URL:                 youtube.WatchURL(video.VideoID),
		ThumbnailURL:        video.ThumbnailURL,
		ViewCount:           stats.ViewCount,
		LikeCount:           stats.LikeCount,
		PublishedAt:         video.PublishedAt,
		SentimentScore:      result.Score,
		PositivePoints:      result.PositivePoints,
		NegativePoints:      result.NegativePoints,
		Summary:             result.Summary,
		Recommendation:      RecommendationLabel(result.Score),
		TranscriptAvailable: true,
	}

	if err := s.reviews.UpsertReview(ctx, review); err != nil {
		return err
	}

	s.logger.Info("[sync] Stored %s (sentiment %d, %d positive, %d negative)",
		video.VideoID, result.Score, len(result.PositivePoints), len(result.NegativePoints))
	return nil
}
