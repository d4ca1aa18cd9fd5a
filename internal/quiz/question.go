package quiz

import "strings"

// OptionCount is the number of options every generated question carries.
const OptionCount = 4

// OptionLabels are the display labels for the four options, in order.
var OptionLabels = [OptionCount]string{"A", "B", "C", "D"}

// Question is one quiz item in canonical form. The correct answer is
// resolved to both its option label and its literal text when the question
// is built, so grading never branches on which wire schema delivered it.
// Questions are immutable once built.
type Question struct {
	// Prompt is the question text shown to the learner.
	Prompt string

	// Options are the four candidate answers, indexed A through D.
	Options [OptionCount]string

	// CorrectLabel is "A".."D". Empty when the question is unscorable.
	CorrectLabel string

	// CorrectText is the literal text of the correct option. Empty when
	// the question is unscorable.
	CorrectText string
}

// Scorable reports whether the question carries a resolvable correct
// answer. Unscorable questions are displayed but never counted correct.
func (q Question) Scorable() bool {
	return q.CorrectLabel != ""
}

// OptionByLabel returns the option text for a label ("A".."D", any case).
// The second return is false for an unknown label.
func (q Question) OptionByLabel(label string) (string, bool) {
	idx := labelIndex(label)
	if idx < 0 {
		return "", false
	}
	return q.Options[idx], true
}

// NewQuestion builds a canonical Question from a prompt, four options, and
// the correct answer in whichever representation the generation API
// delivered: an option label ("A".."D"), the literal option text, or both.
// The label takes precedence when both are present, matching how the
// backend derives the answer text from the chosen option. When neither
// representation resolves against the options, the question is returned
// unscorable rather than rejected.
func NewQuestion(prompt string, options [OptionCount]string, answerLabel, answerText string) Question {
	q := Question{Prompt: prompt, Options: options}

	if idx := labelIndex(answerLabel); idx >= 0 {
		q.CorrectLabel = OptionLabels[idx]
		q.CorrectText = options[idx]
		return q
	}

	// Fall back to matching the literal answer text against the options.
	// With duplicate option text the first match wins; grading compares
	// text so either duplicate is accepted as correct.
	want := Normalize(answerText)
	if want == "" {
		return q
	}
	for i, opt := range options {
		if Normalize(opt) == want {
			q.CorrectLabel = OptionLabels[i]
			q.CorrectText = opt
			return q
		}
	}

	return q
}

// Normalize is the canonical comparison form for answers: trimmed and
// lowercased. Applied uniformly to selections and correct answers.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func labelIndex(label string) int {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "A":
		return 0
	case "B":
		return 1
	case "C":
		return 2
	case "D":
		return 3
	}
	return -1
}
