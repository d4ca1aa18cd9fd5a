package api

import (
	"context"
	"encoding/json"
	"strings"
)

// Difficulty levels accepted by the generation endpoints.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Difficulties lists the valid levels in ascending order.
var Difficulties = []string{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}

// ValidDifficulty reports whether level is one of the accepted values.
func ValidDifficulty(level string) bool {
	for _, d := range Difficulties {
		if d == strings.ToLower(level) {
			return true
		}
	}
	return false
}

// ContentSection is one ordered section of a lesson document.
type ContentSection struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	KeyPoints []string `json:"key_points"`
}

// ContentDocument is a generated lesson: topic, summary, ordered sections
// with key points, and references. Immutable once received.
type ContentDocument struct {
	Topic           string           `json:"topic"`
	Summary         string           `json:"summary"`
	Sections        []ContentSection `json:"sections"`
	References      []string         `json:"references"`
	DifficultyLevel string           `json:"difficulty_level"`
}

// GenerateContent asks the backend for a lesson document on topic at the
// given difficulty. The topic must be non-empty and the difficulty one of
// Difficulties; both are enforced locally. The response is validated
// against the document schema before it is returned.
func (c *Client) GenerateContent(ctx context.Context, topic, difficulty string) (*ContentDocument, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fieldError("topic", "a topic is required")
	}
	if !ValidDifficulty(difficulty) {
		return nil, fieldError("difficulty", "difficulty must be beginner, intermediate or advanced")
	}

	body := map[string]string{
		"topic":      topic,
		"difficulty": strings.ToLower(difficulty),
	}

	var raw []byte
	if err := c.post(ctx, "generate-content/", true, body, &raw); err != nil {
		return nil, err
	}
	if err := validatePayload("generate-content/", contentSchema, raw); err != nil {
		return nil, err
	}

	var doc ContentDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &PayloadError{Endpoint: "generate-content/", Content: raw, Err: err}
	}
	return &doc, nil
}

// UserContents returns the lesson documents previously generated for the
// authenticated user.
func (c *Client) UserContents(ctx context.Context) ([]ContentDocument, error) {
	var payload struct {
		Contents []ContentDocument `json:"contents"`
	}
	if err := c.get(ctx, "user-contents/", true, &payload); err != nil {
		return nil, err
	}
	return payload.Contents, nil
}
