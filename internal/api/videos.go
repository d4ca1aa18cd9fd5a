package api

import (
	"context"
	"strings"
)

// Video is a recommended external video for a topic.
type Video struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Channel      string `json:"channel"`
	Duration     string `json:"duration"`
}

// VideoLinks fetches video recommendations for a topic.
func (c *Client) VideoLinks(ctx context.Context, topic string) ([]Video, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fieldError("topic", "a topic is required")
	}

	var out struct {
		Videos []Video `json:"videos"`
	}
	if err := c.post(ctx, "video-links/", true, map[string]any{"topic": topic}, &out); err != nil {
		return nil, err
	}
	return out.Videos, nil
}
