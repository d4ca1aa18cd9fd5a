package quiz

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	qz "github.com/abhisek/lernix/internal/quiz"
	"github.com/abhisek/lernix/internal/router"
	"github.com/abhisek/lernix/internal/screen"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testQuestions() []qz.Question {
	return []qz.Question{
		qz.NewQuestion("What is the capital of France?",
			[qz.OptionCount]string{"Paris", "London", "Berlin", "Madrid"}, "A", "Paris"),
		qz.NewQuestion("What is 2 + 2?",
			[qz.OptionCount]string{"3", "4", "5", "6"}, "B", "4"),
	}
}

func testQuizScreen() *QuizScreen {
	return New(nil, "Geography", testQuestions())
}

func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return cmd()
}

func TestQuizScreen_Title(t *testing.T) {
	s := testQuizScreen()
	if s.Title() != "Quiz: Geography" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestQuizScreen_SelectionRecorded(t *testing.T) {
	s := testQuizScreen()

	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('a'))
	qs := scr.(*QuizScreen)

	if got, ok := qs.controller.Selection(0); !ok || got != "Paris" {
		t.Errorf("Selection(0) = %q, %v", got, ok)
	}
}

func TestQuizScreen_PagingRestoresSelection(t *testing.T) {
	s := testQuizScreen()

	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('a'))
	scr, _ = scr.Update(specialKey(tea.KeyRight))
	scr, _ = scr.Update(specialKey(tea.KeyLeft))
	qs := scr.(*QuizScreen)

	if qs.current != 0 {
		t.Fatalf("current = %d, want 0", qs.current)
	}
	if qs.choice.ChosenOption() != "Paris" {
		t.Errorf("restored choice = %q, want Paris", qs.choice.ChosenOption())
	}
}

func TestQuizScreen_PartialSubmitConfirms(t *testing.T) {
	s := testQuizScreen()

	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('s'))
	qs := scr.(*QuizScreen)

	if !qs.confirmSubmit {
		t.Fatal("expected submit confirmation for a partial quiz")
	}
	if !strings.Contains(qs.View(80, 24), "unanswered") {
		t.Error("confirmation should mention unanswered questions")
	}

	// N dismisses without grading.
	scr, _ = qs.Update(keyPress('n'))
	qs = scr.(*QuizScreen)
	if qs.confirmSubmit {
		t.Error("expected confirmation dismissed")
	}
	if qs.controller.State() == qz.StateSubmitted {
		t.Error("quiz should not be submitted after N")
	}
}

func TestQuizScreen_CompleteSubmitGoesToScore(t *testing.T) {
	s := testQuizScreen()

	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('a'))
	scr, _ = scr.Update(specialKey(tea.KeyRight))
	scr, _ = scr.Update(keyPress('b'))
	qs := scr.(*QuizScreen)

	if !qs.controller.Complete() {
		t.Fatal("expected all questions answered")
	}

	_, cmd := qs.Update(keyPress('s'))
	msg := runCmd(t, cmd)

	// Batched command: walk it for the replace message.
	found := false
	var walk func(tea.Msg)
	walk = func(m tea.Msg) {
		switch m := m.(type) {
		case tea.BatchMsg:
			for _, c := range m {
				if c != nil {
					walk(c())
				}
			}
		case router.ReplaceScreenMsg:
			found = true
		}
	}
	walk(msg)
	if !found {
		t.Error("expected a replace with the score screen after submit")
	}
	if qs.controller.State() != qz.StateSubmitted {
		t.Errorf("state = %v, want Submitted", qs.controller.State())
	}
}

func TestQuizScreen_EscConfirmsAbandon(t *testing.T) {
	s := testQuizScreen()

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	qs := scr.(*QuizScreen)
	if !qs.confirmQuit {
		t.Fatal("expected abandon confirmation on esc")
	}

	_, cmd := qs.Update(keyPress('y'))
	msg := runCmd(t, cmd)
	if _, ok := msg.(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", msg)
	}
}

func TestQuizScreen_KeyHintsSwitchInConfirm(t *testing.T) {
	s := testQuizScreen()
	if len(s.KeyHints()) != 4 {
		t.Errorf("KeyHints length = %d, want 4", len(s.KeyHints()))
	}
	s.confirmQuit = true
	if len(s.KeyHints()) != 2 {
		t.Errorf("confirm KeyHints length = %d, want 2", len(s.KeyHints()))
	}
}
