package api

import (
	"context"
	"strings"
)

// ChatRequest is one question for the study assistant. Content, when set,
// grounds the answer in the lesson currently on screen.
type ChatRequest struct {
	Question string
	Content  *ContentDocument
}

// Chat sends a question to the study assistant and returns its reply.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (string, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return "", fieldError("question", "a question is required")
	}

	body := map[string]any{"question": question}
	if req.Content != nil {
		body["content"] = req.Content
	}

	var out struct {
		Response string `json:"response"`
	}
	if err := c.post(ctx, "chatbot/", true, body, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}
