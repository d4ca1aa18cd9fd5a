package api

import (
	"context"
	"sync"

	"github.com/abhisek/lernix/internal/quiz"
)

// MockResult is a canned result for the MockGenerator.
type MockResult struct {
	Questions []quiz.Question
	Err       error
}

// MockGenerator is a deterministic QuestionGenerator for testing.
// It returns canned results in FIFO order and records all requests.
type MockGenerator struct {
	mu      sync.Mutex
	results []MockResult
	Calls   []QuestionRequest
}

// NewMockGenerator creates a MockGenerator with the given canned results.
func NewMockGenerator(results ...MockResult) *MockGenerator {
	return &MockGenerator{results: results}
}

// GenerateQuestions returns the next canned result or an APIError if the
// queue is empty.
func (m *MockGenerator) GenerateQuestions(_ context.Context, req QuestionRequest) ([]quiz.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.results) == 0 {
		return nil, &APIError{Endpoint: "generate-questions/", Status: 503, Message: "mock queue empty"}
	}

	res := m.results[0]
	m.results = m.results[1:]

	if res.Err != nil {
		return nil, res.Err
	}
	return res.Questions, nil
}

// AddResult appends a canned result to the queue.
func (m *MockGenerator) AddResult(res MockResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, res)
}

// CallCount returns the number of GenerateQuestions calls made.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
