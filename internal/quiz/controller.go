package quiz

import "fmt"

// State is the controller's position in the quiz lifecycle.
type State int

const (
	// StateEmpty means no questions are loaded.
	StateEmpty State = iota

	// StateInProgress means questions are loaded and selections are open.
	StateInProgress

	// StateSubmitted means a result has been computed and selections are
	// frozen until Reset or a fresh LoadQuestions.
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateInProgress:
		return "in-progress"
	case StateSubmitted:
		return "submitted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// StateError reports an operation invoked in a state where it is illegal,
// e.g. selecting an answer after submission.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("quiz: %s is not valid in %s state", e.Op, e.State)
}

// IndexError reports a question index outside [0, question count).
type IndexError struct {
	Index int
	Count int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("quiz: question index %d out of range [0,%d)", e.Index, e.Count)
}

// Result is the graded outcome of one quiz attempt. It is computed once at
// submission and never mutated afterwards.
type Result struct {
	// Correct maps question index to whether the selection was correct.
	// Every question index has an entry.
	Correct map[int]bool

	// Score is the count of correct answers.
	Score int

	// Total is the number of questions graded.
	Total int

	// Unscorable is the number of questions that arrived without a
	// resolvable correct answer. They count in Total, never in Score.
	Unscorable int
}

// Controller manages one quiz attempt from question-set arrival through a
// graded result, for one topic at a time. It performs no I/O; question
// fetching and retries belong to the generation client. All methods are
// synchronous and intended for a single event loop.
type Controller struct {
	state      State
	questions  []Question
	selections map[int]string
	result     *Result
}

// NewController returns an empty Controller.
func NewController() *Controller {
	return &Controller{
		state:      StateEmpty,
		selections: make(map[int]string),
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Questions returns the loaded question set. Callers must not mutate it.
func (c *Controller) Questions() []Question {
	return c.questions
}

// Len returns the number of loaded questions.
func (c *Controller) Len() int {
	return len(c.questions)
}

// Selection returns the recorded answer text for a question index.
func (c *Controller) Selection(i int) (string, bool) {
	v, ok := c.selections[i]
	return v, ok
}

// Answered returns how many questions have a recorded selection.
func (c *Controller) Answered() int {
	return len(c.selections)
}

// Complete reports whether every question has a recorded selection.
func (c *Controller) Complete() bool {
	return len(c.questions) > 0 && len(c.selections) == len(c.questions)
}

// Result returns the graded result, or nil before submission.
func (c *Controller) Result() *Result {
	return c.result
}

// LoadQuestions replaces the question set wholesale, clearing all
// selections and any prior result. An empty (or nil) set leaves the
// controller in the empty state, which screens can distinguish from
// "still generating" on their side. Safe to call again after a failed
// fetch or from any state.
func (c *Controller) LoadQuestions(questions []Question) {
	c.questions = make([]Question, len(questions))
	copy(c.questions, questions)
	c.selections = make(map[int]string)
	c.result = nil
	if len(c.questions) == 0 {
		c.state = StateEmpty
	} else {
		c.state = StateInProgress
	}
}

// SelectAnswer records the literal option text chosen for question i,
// overwriting any earlier choice for that index. Selections are only legal
// while in progress; after submission they are frozen.
func (c *Controller) SelectAnswer(i int, text string) error {
	if c.state != StateInProgress {
		return &StateError{Op: "select answer", State: c.state}
	}
	if i < 0 || i >= len(c.questions) {
		return &IndexError{Index: i, Count: len(c.questions)}
	}
	c.selections[i] = text
	return nil
}

// Submit grades the attempt and freezes selections. Partial submission is
// allowed: every unanswered question is graded incorrect, the same as a
// wrong answer. Grading compares the selection's literal text against the
// question's correct text, trimmed and case-insensitive, uniformly for
// every question. One-way transition; call Reset to try again.
func (c *Controller) Submit() (*Result, error) {
	if c.state != StateInProgress {
		return nil, &StateError{Op: "submit", State: c.state}
	}
	c.result = c.grade()
	c.state = StateSubmitted
	return c.result, nil
}

// Reset clears selections and the result while keeping the same question
// set, returning to the in-progress state for a retry. A no-op when no
// questions are loaded.
func (c *Controller) Reset() {
	c.selections = make(map[int]string)
	c.result = nil
	if len(c.questions) > 0 {
		c.state = StateInProgress
	}
}

// grade computes the result from the question set and selections. Pure
// with respect to its inputs: identical inputs yield identical results.
func (c *Controller) grade() *Result {
	r := &Result{
		Correct: make(map[int]bool, len(c.questions)),
		Total:   len(c.questions),
	}
	for i, q := range c.questions {
		if !q.Scorable() {
			r.Unscorable++
			r.Correct[i] = false
			continue
		}
		sel, ok := c.selections[i]
		correct := ok && Normalize(sel) == Normalize(q.CorrectText)
		r.Correct[i] = correct
		if correct {
			r.Score++
		}
	}
	return r
}
