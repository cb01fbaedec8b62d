package app

import (
	"github.com/p-n-ai/studymate/internal/markup"
	"github.com/p-n-ai/studymate/internal/quiz"
	"github.com/p-n-ai/studymate/internal/study"
	"github.com/p-n-ai/studymate/internal/syllabus"
)

// SectionSummary is a sidebar entry.
type SectionSummary struct {
	Title    string `json:"title"`
	Done     int    `json:"done"`
	Total    int    `json:"total"`
	Selected bool   `json:"selected"`
}

// OptionView is one quiz option with its display mark.
type OptionView struct {
	Text string `json:"text"`
	Mark string `json:"mark"`
}

// QuestionView is one quiz question as displayed.
type QuestionView struct {
	Index       int          `json:"index"`
	Question    string       `json:"question"`
	Options     []OptionView `json:"options"`
	Selected    bool         `json:"selected"`
	Revealed    bool         `json:"revealed"`
	Explanation string       `json:"explanation,omitempty"`
}

// View is an immutable copy of everything the page renders.
type View struct {
	Sections  []SectionSummary `json:"sections"`
	Section   syllabus.Section `json:"section"`
	Completed map[string]bool  `json:"completed"`
	Topic     string           `json:"topic,omitempty"`
	Kind      study.Kind       `json:"kind"`
	Loading   bool             `json:"loading"`
	Error     string           `json:"error,omitempty"`
	Result    *study.Result    `json:"result,omitempty"`
	Blocks    []markup.Block   `json:"blocks,omitempty"`
	Links     []study.Link     `json:"links,omitempty"`
	Quiz      []QuestionView   `json:"quiz,omitempty"`
	Score     quiz.Score       `json:"score"`
	Progress  float64          `json:"progress"`
	Seq       uint64           `json:"seq"`
	RequestID string           `json:"request_id,omitempty"`
	SettleMS  int64            `json:"settle_ms"`
}

// Snapshot copies the current state for rendering.
func (c *Controller) Snapshot() View {
	completed := c.store.Completion()

	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Completed: completed,
		Topic:     c.topic,
		Kind:      c.kind,
		Loading:   c.loading,
		Error:     c.errMsg,
		Blocks:    append([]markup.Block(nil), c.blocks...),
		Progress:  c.progress,
		Seq:       c.seq,
		RequestID: c.requestID,
		SettleMS:  c.settle.Milliseconds(),
	}

	for _, sec := range c.syllabus.Sections() {
		done, total := sec.Counts(completed)
		selected := sec.Title == c.section
		if selected {
			v.Section = sec
		}
		v.Sections = append(v.Sections, SectionSummary{Title: sec.Title, Done: done, Total: total, Selected: selected})
	}

	if c.result != nil {
		r := *c.result
		v.Result = &r
		if r.Resources != nil {
			v.Links = append([]study.Link(nil), r.Resources.Links...)
		}
	}

	if c.quiz != nil {
		v.Score = c.quiz.Score()
		for i, it := range c.quiz.Items() {
			v.Quiz = append(v.Quiz, questionView(i, it))
		}
	}
	return v
}

func questionView(index int, it *quiz.Item) QuestionView {
	st := it.State()
	qv := QuestionView{
		Index:    index,
		Question: it.Question.Question,
		Selected: st.Selected != nil,
		Revealed: st.Revealed,
	}
	for _, opt := range it.Question.Options {
		qv.Options = append(qv.Options, OptionView{Text: opt, Mark: it.Mark(opt).String()})
	}
	if it.ShowExplanation() {
		qv.Explanation = it.Question.Explanation
	}
	return qv
}
