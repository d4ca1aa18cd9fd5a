package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func lessonDoc() *ContentDocument {
	return &ContentDocument{
		Topic:           "Photosynthesis",
		Summary:         "How plants make food.",
		Sections:        []ContentSection{{Title: "Overview", Content: "..."}},
		DifficultyLevel: DifficultyBeginner,
	}
}

func TestGenerateQuestions_NormalizesBothAnswerForms(t *testing.T) {
	c := testClient(t, "tok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["num_questions"] != float64(2) {
			t.Errorf("num_questions = %v, want 2", body["num_questions"])
		}
		if body["difficulty"] != "beginner" {
			t.Errorf("difficulty = %v, want beginner", body["difficulty"])
		}
		json.NewEncoder(w).Encode(map[string]any{
			"questions": []map[string]any{
				{
					"question": "What pigment absorbs light?",
					"option_a": "Chlorophyll", "option_b": "Keratin",
					"option_c": "Melanin", "option_d": "Hemoglobin",
					"answer": "Chlorophyll",
				},
				{
					"question": "Where does it happen?",
					"option_a": "Mitochondria", "option_b": "Chloroplast",
					"option_c": "Nucleus", "option_d": "Ribosome",
					"answer_option": "B", "answer_string": "Chloroplast",
				},
			},
		})
	}))

	questions, err := c.GenerateQuestions(context.Background(), QuestionRequest{
		Content:      lessonDoc(),
		NumQuestions: 2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}

	if questions[0].CorrectText != "Chlorophyll" || questions[0].CorrectLabel != "A" {
		t.Errorf("bare answer form: got label %q text %q", questions[0].CorrectLabel, questions[0].CorrectText)
	}
	if questions[1].CorrectText != "Chloroplast" || questions[1].CorrectLabel != "B" {
		t.Errorf("option form: got label %q text %q", questions[1].CorrectLabel, questions[1].CorrectText)
	}
	for i, q := range questions {
		if !q.Scorable() {
			t.Errorf("question %d should be scorable", i)
		}
	}
}

func TestGenerateQuestions_MissingAnswerIsUnscorable(t *testing.T) {
	c := testClient(t, "tok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"questions": []map[string]any{
				{
					"question": "No answer given?",
					"option_a": "A1", "option_b": "B1", "option_c": "C1", "option_d": "D1",
				},
			},
		})
	}))

	questions, err := c.GenerateQuestions(context.Background(), QuestionRequest{Content: lessonDoc()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if questions[0].Scorable() {
		t.Error("a question with no answer must be unscorable, not an error")
	}
}

func TestGenerateQuestions_MalformedPayload(t *testing.T) {
	c := testClient(t, "tok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Question objects missing required options.
		json.NewEncoder(w).Encode(map[string]any{
			"questions": []map[string]any{{"question": "Broken?"}},
		})
	}))

	_, err := c.GenerateQuestions(context.Background(), QuestionRequest{Content: lessonDoc()})
	var payloadErr *PayloadError
	if !errors.As(err, &payloadErr) {
		t.Fatalf("expected PayloadError, got %v", err)
	}
}

func TestGenerateQuestions_RequiresContent(t *testing.T) {
	c := testClient(t, "tok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent without a lesson")
	}))

	_, err := c.GenerateQuestions(context.Background(), QuestionRequest{})
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestGenerateQuestions_DefaultsFromLesson(t *testing.T) {
	c := testClient(t, "tok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["num_questions"] != float64(DefaultQuestionCount) {
			t.Errorf("num_questions = %v, want %d", body["num_questions"], DefaultQuestionCount)
		}
		if body["difficulty"] != DifficultyBeginner {
			t.Errorf("difficulty = %v, want the lesson's level", body["difficulty"])
		}
		json.NewEncoder(w).Encode(map[string]any{"questions": []any{}})
	}))

	questions, err := c.GenerateQuestions(context.Background(), QuestionRequest{Content: lessonDoc()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 0 {
		t.Fatalf("expected no questions, got %d", len(questions))
	}
}
