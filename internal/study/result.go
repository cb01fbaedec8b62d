package study

// Question is one multiple-choice item. Answer equals one of Options.
type Question struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

// Link is a web resource reference, unique by URI within a Resources value.
type Link struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Resources is the payload of the resources kind.
type Resources struct {
	Summary string `json:"summary"`
	Links   []Link `json:"links"`
}

// Result is generated material tagged by kind. Exactly one payload field is
// meaningful: Text for notes and summary, Questions for mcq, Resources for
// resources.
type Result struct {
	Kind      Kind       `json:"kind"`
	Text      string     `json:"text,omitempty"`
	Questions []Question `json:"questions,omitempty"`
	Resources *Resources `json:"resources,omitempty"`
}

// Markup returns the markdown-subset text to render for text-bearing kinds.
func (r Result) Markup() (string, bool) {
	switch r.Kind {
	case KindNotes, KindSummary:
		return r.Text, true
	case KindResources:
		if r.Resources == nil {
			return "", false
		}
		return r.Resources.Summary, true
	default:
		return "", false
	}
}
