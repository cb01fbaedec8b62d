// Package quiz holds the per-question interaction state of a multiple-choice
// session. An item moves one way from unanswered to answered.
package quiz

import (
	"errors"
	"slices"

	"github.com/p-n-ai/studymate/internal/study"
)

var (
	ErrAnswered      = errors.New("question already answered")
	ErrNoSelection   = errors.New("no option selected")
	ErrUnknownOption = errors.New("option is not one of the choices")
)

// Mark is how an option is displayed.
type Mark int

const (
	MarkNone Mark = iota
	MarkSelected
	MarkCorrect
	MarkIncorrect
	MarkDimmed
)

func (m Mark) String() string {
	switch m {
	case MarkSelected:
		return "selected"
	case MarkCorrect:
		return "correct"
	case MarkIncorrect:
		return "incorrect"
	case MarkDimmed:
		return "dimmed"
	default:
		return "none"
	}
}

// State is the transient answer state of one question.
type State struct {
	Selected *string `json:"selected,omitempty"`
	Revealed bool    `json:"revealed"`
}

// Item is a question together with its answer state.
type Item struct {
	Question study.Question
	state    State
}

// NewItem creates an unanswered item.
func NewItem(q study.Question) *Item {
	return &Item{Question: q}
}

// State returns a copy of the current state.
func (it *Item) State() State {
	s := it.state
	if s.Selected != nil {
		v := *s.Selected
		s.Selected = &v
	}
	return s
}

// Answered reports whether the answer has been revealed.
func (it *Item) Answered() bool {
	return it.state.Revealed
}

// Select chooses an option. Choosing again replaces the previous choice.
func (it *Item) Select(option string) error {
	if it.state.Revealed {
		return ErrAnswered
	}
	if !slices.Contains(it.Question.Options, option) {
		return ErrUnknownOption
	}
	it.state.Selected = &option
	return nil
}

// Reveal checks the selected option and locks the item.
func (it *Item) Reveal() error {
	if it.state.Revealed {
		return ErrAnswered
	}
	if it.state.Selected == nil {
		return ErrNoSelection
	}
	it.state.Revealed = true
	return nil
}

// Correct reports whether the item is answered with the right option.
func (it *Item) Correct() bool {
	return it.state.Revealed && it.state.Selected != nil && *it.state.Selected == it.Question.Answer
}

// Mark returns the display mark for option.
func (it *Item) Mark(option string) Mark {
	selected := it.state.Selected != nil && *it.state.Selected == option
	if !it.state.Revealed {
		if selected {
			return MarkSelected
		}
		return MarkNone
	}
	switch {
	case option == it.Question.Answer:
		return MarkCorrect
	case selected:
		return MarkIncorrect
	default:
		return MarkDimmed
	}
}

// ShowExplanation reports whether the explanation should be displayed.
func (it *Item) ShowExplanation() bool {
	return it.state.Revealed && it.Question.Explanation != ""
}
