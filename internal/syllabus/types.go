package syllabus

// Section is a top-level syllabus heading (e.g. Statistics).
type Section struct {
	Title  string  `yaml:"title" json:"title"`
	Topics []Topic `yaml:"topics" json:"topics"`
}

// Topic groups sub-topics under a title. A topic without sub-topics is
// itself a leaf topic.
type Topic struct {
	Title     string   `yaml:"title" json:"title"`
	SubTopics []string `yaml:"sub_topics" json:"sub_topics"`
}

// Leaves returns the addressable units of the topic.
func (t Topic) Leaves() []string {
	if len(t.SubTopics) == 0 {
		return []string{t.Title}
	}
	return t.SubTopics
}

// Leaves returns every leaf topic of the section in syllabus order.
func (s Section) Leaves() []string {
	var leaves []string
	for _, t := range s.Topics {
		leaves = append(leaves, t.Leaves()...)
	}
	return leaves
}

// Counts reports how many of the section's leaf topics are marked complete.
func (s Section) Counts(completed map[string]bool) (done, total int) {
	for _, leaf := range s.Leaves() {
		total++
		if completed[leaf] {
			done++
		}
	}
	return done, total
}
