package quiz_test

import (
	"errors"
	"testing"

	"github.com/p-n-ai/studymate/internal/quiz"
	"github.com/p-n-ai/studymate/internal/study"
)

func meanQuestion() study.Question {
	return study.Question{
		Question:    "What is the mean of 2, 4 and 6?",
		Options:     []string{"3", "4", "5", "6"},
		Answer:      "4",
		Explanation: "(2+4+6)/3 = 4",
	}
}

func TestItem_RevealBeforeSelect(t *testing.T) {
	it := quiz.NewItem(meanQuestion())

	if err := it.Reveal(); !errors.Is(err, quiz.ErrNoSelection) {
		t.Fatalf("Reveal() error = %v, want ErrNoSelection", err)
	}
	if it.Answered() {
		t.Error("item should stay unanswered")
	}
}

func TestItem_SelectAfterReveal(t *testing.T) {
	it := quiz.NewItem(meanQuestion())

	if err := it.Select("3"); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if err := it.Reveal(); err != nil {
		t.Fatalf("Reveal() error = %v", err)
	}
	if err := it.Select("4"); !errors.Is(err, quiz.ErrAnswered) {
		t.Fatalf("Select() after reveal error = %v, want ErrAnswered", err)
	}
	if err := it.Reveal(); !errors.Is(err, quiz.ErrAnswered) {
		t.Fatalf("second Reveal() error = %v, want ErrAnswered", err)
	}
	if got := *it.State().Selected; got != "3" {
		t.Errorf("Selected = %q, want 3", got)
	}
}

func TestItem_SelectUnknownOption(t *testing.T) {
	it := quiz.NewItem(meanQuestion())

	if err := it.Select("7"); !errors.Is(err, quiz.ErrUnknownOption) {
		t.Fatalf("Select() error = %v, want ErrUnknownOption", err)
	}
	if it.State().Selected != nil {
		t.Error("Selected should remain empty")
	}
}

func TestItem_Marks(t *testing.T) {
	tests := []struct {
		name     string
		selected string
		reveal   bool
		want     map[string]quiz.Mark
	}{
		{
			name: "untouched",
			want: map[string]quiz.Mark{"3": quiz.MarkNone, "4": quiz.MarkNone, "5": quiz.MarkNone, "6": quiz.MarkNone},
		},
		{
			name:     "selected only",
			selected: "5",
			want:     map[string]quiz.Mark{"3": quiz.MarkNone, "4": quiz.MarkNone, "5": quiz.MarkSelected, "6": quiz.MarkNone},
		},
		{
			name:     "revealed wrong",
			selected: "5",
			reveal:   true,
			want:     map[string]quiz.Mark{"3": quiz.MarkDimmed, "4": quiz.MarkCorrect, "5": quiz.MarkIncorrect, "6": quiz.MarkDimmed},
		},
		{
			name:     "revealed right",
			selected: "4",
			reveal:   true,
			want:     map[string]quiz.Mark{"3": quiz.MarkDimmed, "4": quiz.MarkCorrect, "5": quiz.MarkDimmed, "6": quiz.MarkDimmed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := quiz.NewItem(meanQuestion())
			if tt.selected != "" {
				if err := it.Select(tt.selected); err != nil {
					t.Fatalf("Select() error = %v", err)
				}
			}
			if tt.reveal {
				if err := it.Reveal(); err != nil {
					t.Fatalf("Reveal() error = %v", err)
				}
			}
			for opt, want := range tt.want {
				if got := it.Mark(opt); got != want {
					t.Errorf("Mark(%q) = %v, want %v", opt, got, want)
				}
			}
		})
	}
}

func TestItem_ShowExplanation(t *testing.T) {
	it := quiz.NewItem(meanQuestion())
	_ = it.Select("4")
	if it.ShowExplanation() {
		t.Error("explanation shown before reveal")
	}
	_ = it.Reveal()
	if !it.ShowExplanation() {
		t.Error("explanation hidden after reveal")
	}

	q := meanQuestion()
	q.Explanation = ""
	bare := quiz.NewItem(q)
	_ = bare.Select("3")
	_ = bare.Reveal()
	if bare.ShowExplanation() {
		t.Error("empty explanation should not be shown")
	}
}

func TestItem_StateIsCopy(t *testing.T) {
	it := quiz.NewItem(meanQuestion())
	_ = it.Select("3")

	s := it.State()
	*s.Selected = "6"
	if got := *it.State().Selected; got != "3" {
		t.Errorf("Selected = %q after mutating copy, want 3", got)
	}
}

func TestSession_Score(t *testing.T) {
	s := quiz.NewSession([]study.Question{meanQuestion(), meanQuestion(), meanQuestion()})

	first, _ := s.Item(0)
	_ = first.Select("4")
	_ = first.Reveal()
	second, _ := s.Item(1)
	_ = second.Select("6")
	_ = second.Reveal()
	third, _ := s.Item(2)
	_ = third.Select("4")

	got := s.Score()
	want := quiz.Score{Answered: 2, Correct: 1, Total: 3}
	if got != want {
		t.Errorf("Score() = %+v, want %+v", got, want)
	}

	if _, err := s.Item(3); err == nil {
		t.Error("Item(3) should be out of range")
	}
	if _, err := s.Item(-1); err == nil {
		t.Error("Item(-1) should be out of range")
	}
}
