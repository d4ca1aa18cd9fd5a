package score

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	qz "github.com/abhisek/lernix/internal/quiz"
	"github.com/abhisek/lernix/internal/router"
	"github.com/abhisek/lernix/internal/screen"
)

func submittedController(t *testing.T) *qz.Controller {
	t.Helper()
	c := qz.NewController()
	c.LoadQuestions([]qz.Question{
		qz.NewQuestion("What is the capital of France?",
			[qz.OptionCount]string{"Paris", "London", "Berlin", "Madrid"}, "A", "Paris"),
		qz.NewQuestion("What is 2 + 2?",
			[qz.OptionCount]string{"3", "4", "5", "6"}, "B", "4"),
	})
	if err := c.SelectAnswer(0, "Paris"); err != nil {
		t.Fatal(err)
	}
	if err := c.SelectAnswer(1, "3"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Submit(); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestScoreScreen_Title(t *testing.T) {
	s := New("Geography", submittedController(t), time.Minute, nil)
	if s.Title() != "Score: Geography" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestScoreScreen_ShowsScoreAndMisses(t *testing.T) {
	s := New("Geography", submittedController(t), 90*time.Second, nil)
	view := s.View(80, 24)

	if !strings.Contains(view, "1 / 2") {
		t.Errorf("view should show the score, got:\n%s", view)
	}
	if !strings.Contains(view, "Time: 1:30") {
		t.Error("view should show the duration")
	}
	if !strings.Contains(view, "correct: 4") {
		t.Error("review should show the correct answer for a miss")
	}
}

func TestScoreScreen_RetakeReplaces(t *testing.T) {
	retakeCalled := false
	retake := func() screen.Screen {
		retakeCalled = true
		return New("Geography", submittedController(t), 0, nil)
	}
	s := New("Geography", submittedController(t), time.Minute, retake)

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected a command on R")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("expected a replace message")
	}
	if !retakeCalled {
		t.Error("expected the retake factory to be called")
	}
}

func TestScoreScreen_EnterPops(t *testing.T) {
	s := New("Geography", submittedController(t), time.Minute, nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected a pop message")
	}
}
