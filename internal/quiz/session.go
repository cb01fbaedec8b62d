package quiz

import (
	"fmt"

	"github.com/p-n-ai/studymate/internal/study"
)

// Session is an ordered set of quiz items for one generated result.
type Session struct {
	items []*Item
}

// NewSession builds a fresh, fully unanswered session.
func NewSession(questions []study.Question) *Session {
	items := make([]*Item, len(questions))
	for i, q := range questions {
		items[i] = NewItem(q)
	}
	return &Session{items: items}
}

// Len returns the number of items.
func (s *Session) Len() int {
	return len(s.items)
}

// Items returns the items in order.
func (s *Session) Items() []*Item {
	return s.items
}

// Item returns the item at index.
func (s *Session) Item(index int) (*Item, error) {
	if index < 0 || index >= len(s.items) {
		return nil, fmt.Errorf("question %d out of range [0,%d)", index, len(s.items))
	}
	return s.items[index], nil
}

// Score is the running tally shown above a quiz.
type Score struct {
	Answered int `json:"answered"`
	Correct  int `json:"correct"`
	Total    int `json:"total"`
}

// Score counts answered and correct items.
func (s *Session) Score() Score {
	sc := Score{Total: len(s.items)}
	for _, it := range s.items {
		if it.Answered() {
			sc.Answered++
		}
		if it.Correct() {
			sc.Correct++
		}
	}
	return sc
}
