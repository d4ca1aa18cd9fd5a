package quiz

import (
	"errors"
	"testing"
)

func testQuestions() []Question {
	return []Question{
		NewQuestion("What is the capital of France?",
			[4]string{"Paris", "London", "Berlin", "Madrid"}, "", "Paris"),
		NewQuestion("What is the answer to life, the universe and everything?",
			[4]string{"41", "42", "43", "44"}, "B", ""),
		NewQuestion("What color is the sky on a clear day?",
			[4]string{"Blue", "Green", "Red", "Yellow"}, "A", "Blue"),
	}
}

func TestLoadQuestions_ResetsSelectionsAndResult(t *testing.T) {
	c := NewController()
	c.LoadQuestions(testQuestions())
	if err := c.SelectAnswer(0, "Paris"); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}
	if _, err := c.Submit(); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	c.LoadQuestions(testQuestions())

	if c.State() != StateInProgress {
		t.Errorf("State = %v, want %v", c.State(), StateInProgress)
	}
	if c.Answered() != 0 {
		t.Errorf("Answered = %d, want 0", c.Answered())
	}
	if c.Result() != nil {
		t.Error("expected Result to be nil after reload")
	}
}

func TestLoadQuestions_EmptySetIsDistinct(t *testing.T) {
	c := NewController()
	c.LoadQuestions(nil)

	if c.State() != StateEmpty {
		t.Errorf("State = %v, want %v", c.State(), StateEmpty)
	}
	if err := c.SelectAnswer(0, "anything"); err == nil {
		t.Error("expected SelectAnswer to fail with no questions loaded")
	}
	if _, err := c.Submit(); err == nil {
		t.Error("expected Submit to fail with no questions loaded")
	}

	// Re-entry after a failed fetch: loading again must work.
	c.LoadQuestions(testQuestions())
	if c.State() != StateInProgress {
		t.Errorf("State after reload = %v, want %v", c.State(), StateInProgress)
	}
}

func TestSelectAnswer_LastWriteWins(t *testing.T) {
	c := NewController()
	c.LoadQuestions(testQuestions())

	if err := c.SelectAnswer(1, "41"); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}
	if err := c.SelectAnswer(1, "42"); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}

	sel, ok := c.Selection(1)
	if !ok || sel != "42" {
		t.Errorf("Selection(1) = %q, %v, want \"42\", true", sel, ok)
	}
	if c.Answered() != 1 {
		t.Errorf("Answered = %d, want 1", c.Answered())
	}
}

func TestSelectAnswer_OutOfRange(t *testing.T) {
	c := NewController()
	c.LoadQuestions(testQuestions())

	var idxErr *IndexError
	if err := c.SelectAnswer(3, "x"); !errors.As(err, &idxErr) {
		t.Errorf("SelectAnswer(3) = %v, want IndexError", err)
	}
	if err := c.SelectAnswer(-1, "x"); !errors.As(err, &idxErr) {
		t.Errorf("SelectAnswer(-1) = %v, want IndexError", err)
	}
}

func TestSelectAnswer_FrozenAfterSubmit(t *testing.T) {
	c := NewController()
	c.LoadQuestions(testQuestions())
	if _, err := c.Submit(); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	var stateErr *StateError
	if err := c.SelectAnswer(0, "Paris"); !errors.As(err, &stateErr) {
		t.Errorf("SelectAnswer after submit = %v, want StateError", err)
	}
	if _, err := c.Submit(); !errors.As(err, &stateErr) {
		t.Errorf("second Submit = %v, want StateError", err)
	}
}

func TestSubmit_AllCorrect(t *testing.T) {
	c := NewController()
	qs := testQuestions()
	c.LoadQuestions(qs)
	for i, q := range qs {
		// Case and whitespace differences must not matter.
		if err := c.SelectAnswer(i, "  "+q.CorrectText+" "); err != nil {
			t.Fatalf("SelectAnswer(%d): %v", i, err)
		}
	}

	res, err := c.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Score != len(qs) {
		t.Errorf("Score = %d, want %d", res.Score, len(qs))
	}
	for i := range qs {
		if !res.Correct[i] {
			t.Errorf("Correct[%d] = false, want true", i)
		}
	}
}

func TestSubmit_AllWrong(t *testing.T) {
	c := NewController()
	c.LoadQuestions(testQuestions())
	c.SelectAnswer(0, "London")
	c.SelectAnswer(1, "41")
	c.SelectAnswer(2, "Red")

	res, err := c.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Score != 0 {
		t.Errorf("Score = %d, want 0", res.Score)
	}
	for i := 0; i < res.Total; i++ {
		if res.Correct[i] {
			t.Errorf("Correct[%d] = true, want false", i)
		}
	}
}

func TestSubmit_PartialScoresUnansweredIncorrect(t *testing.T) {
	c := NewController()
	c.LoadQuestions(testQuestions())
	c.SelectAnswer(0, "Paris")

	res, err := c.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Score != 1 {
		t.Errorf("Score = %d, want 1", res.Score)
	}
	if res.Correct[1] || res.Correct[2] {
		t.Error("expected unanswered questions to grade incorrect")
	}
	if res.Total != 3 {
		t.Errorf("Total = %d, want 3", res.Total)
	}
}

func TestSubmit_GradingIsDeterministic(t *testing.T) {
	build := func() *Controller {
		c := NewController()
		c.LoadQuestions(testQuestions())
		c.SelectAnswer(0, "Paris")
		c.SelectAnswer(1, "41")
		c.SelectAnswer(2, "Blue")
		return c
	}

	r1, err := build().Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	r2, err := build().Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if r1.Score != r2.Score || r1.Total != r2.Total {
		t.Errorf("results differ: %+v vs %+v", r1, r2)
	}
	for i := 0; i < r1.Total; i++ {
		if r1.Correct[i] != r2.Correct[i] {
			t.Errorf("Correct[%d] differs between identical inputs", i)
		}
	}
}

func TestSubmit_UnscorableQuestionNeverCorrect(t *testing.T) {
	qs := []Question{
		// No correct-answer field at all in the payload.
		NewQuestion("Broken question", [4]string{"w", "x", "y", "z"}, "", ""),
		NewQuestion("Good question", [4]string{"yes", "no", "maybe", "never"}, "A", ""),
	}
	c := NewController()
	c.LoadQuestions(qs)
	c.SelectAnswer(0, "w")
	c.SelectAnswer(1, "yes")

	res, err := c.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.Correct[0] {
		t.Error("unscorable question graded correct")
	}
	if !res.Correct[1] {
		t.Error("scorable question graded incorrect")
	}
	if res.Score != 1 {
		t.Errorf("Score = %d, want 1", res.Score)
	}
	if res.Unscorable != 1 {
		t.Errorf("Unscorable = %d, want 1", res.Unscorable)
	}
}

func TestReset_KeepsQuestionsClearsEverythingElse(t *testing.T) {
	c := NewController()
	qs := testQuestions()
	c.LoadQuestions(qs)
	c.SelectAnswer(0, "Paris")
	c.SelectAnswer(1, "41")
	c.SelectAnswer(2, "Blue")
	first, err := c.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	c.Reset()

	if c.State() != StateInProgress {
		t.Errorf("State = %v, want %v", c.State(), StateInProgress)
	}
	if c.Len() != len(qs) {
		t.Errorf("Len = %d, want %d", c.Len(), len(qs))
	}
	if c.Answered() != 0 {
		t.Errorf("Answered = %d, want 0", c.Answered())
	}
	if c.Result() != nil {
		t.Error("expected Result to be nil after reset")
	}

	// A second attempt with different answers can yield a different score.
	c.SelectAnswer(0, "London")
	c.SelectAnswer(1, "42")
	c.SelectAnswer(2, "Blue")
	second, err := c.Submit()
	if err != nil {
		t.Fatalf("Submit after reset: %v", err)
	}
	if second.Score == first.Score {
		t.Errorf("expected different score after reset, both = %d", second.Score)
	}
}

// End-to-end scenario from the product contract: load three questions,
// answer two correctly, submit, then reset.
func TestQuizAttempt_EndToEnd(t *testing.T) {
	c := NewController()
	c.LoadQuestions(testQuestions())

	if c.Answered() != 0 || c.Result() != nil {
		t.Fatal("fresh load must start with no selections and no result")
	}

	c.SelectAnswer(0, "Paris")
	c.SelectAnswer(1, "41")
	c.SelectAnswer(2, "Blue")

	res, err := c.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	want := map[int]bool{0: true, 1: false, 2: true}
	for i, w := range want {
		if res.Correct[i] != w {
			t.Errorf("Correct[%d] = %v, want %v", i, res.Correct[i], w)
		}
	}
	if res.Score != 2 {
		t.Errorf("Score = %d, want 2", res.Score)
	}

	c.Reset()
	if c.Answered() != 0 || c.Result() != nil || c.Len() != 3 {
		t.Error("Reset must clear selections and result but keep questions")
	}
}
