package quiz

import "testing"

func TestNewQuestion_LabelForm(t *testing.T) {
	q := NewQuestion("prompt", [4]string{"one", "two", "three", "four"}, "c", "")

	if q.CorrectLabel != "C" {
		t.Errorf("CorrectLabel = %q, want \"C\"", q.CorrectLabel)
	}
	if q.CorrectText != "three" {
		t.Errorf("CorrectText = %q, want \"three\"", q.CorrectText)
	}
	if !q.Scorable() {
		t.Error("expected question to be scorable")
	}
}

func TestNewQuestion_TextForm(t *testing.T) {
	q := NewQuestion("prompt", [4]string{"one", "two", "three", "four"}, "", " Two ")

	if q.CorrectLabel != "B" {
		t.Errorf("CorrectLabel = %q, want \"B\"", q.CorrectLabel)
	}
	if q.CorrectText != "two" {
		t.Errorf("CorrectText = %q, want \"two\"", q.CorrectText)
	}
}

func TestNewQuestion_LabelWinsOverText(t *testing.T) {
	// The backend derives answer_string from answer_option; when they
	// disagree the label is authoritative.
	q := NewQuestion("prompt", [4]string{"one", "two", "three", "four"}, "A", "four")

	if q.CorrectLabel != "A" || q.CorrectText != "one" {
		t.Errorf("got %q/%q, want A/one", q.CorrectLabel, q.CorrectText)
	}
}

func TestNewQuestion_MissingAnswerIsUnscorable(t *testing.T) {
	q := NewQuestion("prompt", [4]string{"one", "two", "three", "four"}, "", "")

	if q.Scorable() {
		t.Error("expected question without an answer to be unscorable")
	}
}

func TestNewQuestion_UnmatchedTextIsUnscorable(t *testing.T) {
	q := NewQuestion("prompt", [4]string{"one", "two", "three", "four"}, "E", "five")

	if q.Scorable() {
		t.Error("expected unresolvable answer to be unscorable")
	}
}

func TestNewQuestion_DuplicateOptionTextFirstWins(t *testing.T) {
	q := NewQuestion("prompt", [4]string{"same", "same", "other", "else"}, "", "same")

	if q.CorrectLabel != "A" {
		t.Errorf("CorrectLabel = %q, want \"A\" (first match)", q.CorrectLabel)
	}
}

func TestOptionByLabel(t *testing.T) {
	q := NewQuestion("prompt", [4]string{"one", "two", "three", "four"}, "A", "")

	if opt, ok := q.OptionByLabel("d"); !ok || opt != "four" {
		t.Errorf("OptionByLabel(d) = %q, %v", opt, ok)
	}
	if _, ok := q.OptionByLabel("x"); ok {
		t.Error("expected unknown label to report false")
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"  Paris ": "paris",
		"BLUE":     "blue",
		"42":       "42",
		"":         "",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}
