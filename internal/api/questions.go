package api

import (
	"context"
	"encoding/json"

	"github.com/abhisek/lernix/internal/quiz"
)

// DefaultQuestionCount is requested when the caller does not specify one.
const DefaultQuestionCount = 10

// QuestionRequest asks the backend to generate a quiz from a lesson.
type QuestionRequest struct {
	// Content is the lesson the questions are drawn from.
	Content *ContentDocument

	// NumQuestions is the desired count (DefaultQuestionCount when 0).
	NumQuestions int

	// Difficulty is one of Difficulties (the lesson's level when empty).
	Difficulty string
}

// QuestionGenerator is the interface screens use to fetch a quiz; it lets
// the retry decorator and test doubles stand in for the Client.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, req QuestionRequest) ([]quiz.Question, error)
}

// questionPayload is the wire form of one generated question. Two schema
// versions exist: the older one carries the correct answer as a bare
// "answer" text, the newer one as answer_option + answer_string.
type questionPayload struct {
	Question     string `json:"question"`
	OptionA      string `json:"option_a"`
	OptionB      string `json:"option_b"`
	OptionC      string `json:"option_c"`
	OptionD      string `json:"option_d"`
	Answer       string `json:"answer"`
	AnswerOption string `json:"answer_option"`
	AnswerString string `json:"answer_string"`
}

// GenerateQuestions fetches a question set for the lesson and normalizes
// every question into the canonical form — both correct-answer schemas
// collapse here, so the quiz controller never sees the difference. A
// question with no resolvable correct answer comes back unscorable rather
// than failing the whole set.
func (c *Client) GenerateQuestions(ctx context.Context, req QuestionRequest) ([]quiz.Question, error) {
	if req.Content == nil {
		return nil, fieldError("content", "a lesson is required to generate questions")
	}
	count := req.NumQuestions
	if count <= 0 {
		count = DefaultQuestionCount
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = req.Content.DifficultyLevel
	}
	if !ValidDifficulty(difficulty) {
		difficulty = DifficultyIntermediate
	}

	body := map[string]any{
		"content":       req.Content,
		"num_questions": count,
		"difficulty":    difficulty,
	}

	var raw []byte
	if err := c.post(ctx, "generate-questions/", true, body, &raw); err != nil {
		return nil, err
	}
	if err := validatePayload("generate-questions/", questionsSchema, raw); err != nil {
		return nil, err
	}

	var payload struct {
		Questions []questionPayload `json:"questions"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &PayloadError{Endpoint: "generate-questions/", Content: raw, Err: err}
	}

	questions := make([]quiz.Question, 0, len(payload.Questions))
	for _, p := range payload.Questions {
		answerText := p.AnswerString
		if answerText == "" {
			answerText = p.Answer
		}
		questions = append(questions, quiz.NewQuestion(
			p.Question,
			[quiz.OptionCount]string{p.OptionA, p.OptionB, p.OptionC, p.OptionD},
			p.AnswerOption,
			answerText,
		))
	}
	return questions, nil
}
