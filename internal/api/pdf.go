package api

import "context"

// GenerateLessonPDF renders the lesson as a PDF on the backend and returns
// the raw document bytes.
func (c *Client) GenerateLessonPDF(ctx context.Context, content *ContentDocument) ([]byte, error) {
	if content == nil {
		return nil, fieldError("content", "a lesson is required")
	}

	var raw []byte
	if err := c.post(ctx, "generate-lesson-pdf/", true, map[string]any{"content": content}, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
