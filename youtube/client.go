package youtube

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"smartpick/utils"
)

// Video is one candidate review video from a trusted channel.
type Video struct {
	VideoID      string
	ChannelID    string
	ChannelName  string
	Title        string
	ThumbnailURL string
	PublishedAt  time.Time
}

// Stats holds a video's public counters.
type Stats struct {
	ViewCount int64
	LikeCount int64
}

// Client searches YouTube for phone reviews, restricted to an injected
// allow-list of trusted channel IDs.
type Client struct {
	service *ytapi.Service
	trusted map[string]bool
	logger  *utils.Logger
}

// NewClient builds a Data API v3 client authenticated by API key.
func NewClient(ctx context.Context, apiKey string, trusted map[string]bool, logger *utils.Logger) (*Client, error) {
	svc, err := ytapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("youtube: create service: %w", err)
	}

	return &Client{service: svc, trusted: trusted, logger: logger}, nil
}

// SearchReviews looks up "<brand> <model> review" videos and keeps only
// those published by allow-listed channels. Zero results is not an error.
func (c *Client) SearchReviews(ctx context.Context, brand, model string, maxResults int) ([]Video, error) {
	query := fmt.Sprintf("%s %s review", brand, model)
	c.logger.Info("[youtube] Searching for: %q", query)

	resp, err := c.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(int64(maxResults)).
		Order("relevance").
		RelevanceLanguage("en").
		SafeSearch("none").
		VideoDuration("medium").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube: search %q: %w", query, err)
	}

	c.logger.Debug("[youtube] %d total results for %q", len(resp.Items), query)

	var videos []Video
	for _, item := range resp.Items {
		if item.Id == nil || item.Snippet == nil {
			continue
		}
		if !c.trusted[item.Snippet.ChannelId] {
			continue
		}

		video := Video{
			VideoID:     item.Id.VideoId,
			ChannelID:   item.Snippet.ChannelId,
			ChannelName: item.Snippet.ChannelTitle,
			Title:       item.Snippet.Title,
		}
		if t, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			video.PublishedAt = t
		}
		if thumbs := item.Snippet.Thumbnails; thumbs != nil {
			if thumbs.High != nil {
				video.ThumbnailURL = thumbs.High.Url
			} else if thumbs.Default != nil {
				video.ThumbnailURL = thumbs.Default.Url
			}
		}

		videos = append(videos, video)
	}

	c.logger.Info("[youtube] %d of %d results are from trusted channels", len(videos), len(resp.Items))
	return videos, nil
}

// VideoStats fetches view/like counters for one video. Missing statistics
// come back as zeros rather than an error.
func (c *Client) VideoStats(ctx context.Context, videoID string) (Stats, error) {
	resp, err := c.service.Videos.List([]string{"statistics"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return Stats{}, fmt.Errorf("youtube: stats for %s: %w", videoID, err)
	}

	if len(resp.Items) == 0 || resp.Items[0].Statistics == nil {
		return Stats{}, nil
	}

	st := resp.Items[0].Statistics
	return Stats{
		ViewCount: int64(st.ViewCount),
		LikeCount: int64(st.LikeCount),
	}, nil
}

// WatchURL returns the public watch page URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
