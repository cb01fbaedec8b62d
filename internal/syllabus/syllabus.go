// Package syllabus holds the immutable exam syllabus: an ordered list of
// sections, each with ordered topics and sub-topics.
package syllabus

import (
	_ "embed"
	"fmt"
	"log/slog"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed syllabus.yaml
var embedded []byte

// Syllabus is the loaded, validated syllabus. It is safe for concurrent use
// because it is never mutated after Parse returns.
type Syllabus struct {
	sections []Section
	leaves   map[string]int // normalized leaf -> section index
	order    []string
}

// Load parses the syllabus embedded in the binary.
func Load() (*Syllabus, error) {
	s, err := Parse(embedded)
	if err != nil {
		return nil, fmt.Errorf("loading syllabus: %w", err)
	}
	slog.Info("syllabus loaded", "sections", len(s.sections), "leaf_topics", len(s.order))
	return s, nil
}

// Parse decodes and validates a syllabus document. Leaf topic names are
// NFC-normalized and must be unique across the whole syllabus, since they
// key the persisted progress records.
func Parse(data []byte) (*Syllabus, error) {
	var doc struct {
		Sections []Section `yaml:"sections"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode syllabus: %w", err)
	}
	if len(doc.Sections) == 0 {
		return nil, fmt.Errorf("syllabus has no sections")
	}

	s := &Syllabus{leaves: make(map[string]int)}
	for i, sec := range doc.Sections {
		if sec.Title == "" {
			return nil, fmt.Errorf("section %d has no title", i)
		}
		sec.Title = Normalize(sec.Title)
		for j, t := range sec.Topics {
			if t.Title == "" {
				return nil, fmt.Errorf("section %q: topic %d has no title", sec.Title, j)
			}
			t.Title = Normalize(t.Title)
			for k := range t.SubTopics {
				t.SubTopics[k] = Normalize(t.SubTopics[k])
			}
			sec.Topics[j] = t

			for _, leaf := range t.Leaves() {
				if leaf == "" {
					return nil, fmt.Errorf("section %q: topic %q has an empty sub-topic", sec.Title, t.Title)
				}
				if _, dup := s.leaves[leaf]; dup {
					return nil, fmt.Errorf("duplicate leaf topic %q", leaf)
				}
				s.leaves[leaf] = i
				s.order = append(s.order, leaf)
			}
		}
		s.sections = append(s.sections, sec)
	}
	return s, nil
}

// Normalize returns the canonical (NFC) form of a topic or section name.
func Normalize(name string) string {
	return norm.NFC.String(name)
}

// Sections returns all sections in syllabus order.
func (s *Syllabus) Sections() []Section {
	return append([]Section(nil), s.sections...)
}

// First returns the first section, the default selection.
func (s *Syllabus) First() Section {
	return s.sections[0]
}

// Section looks a section up by title.
func (s *Syllabus) Section(title string) (Section, bool) {
	title = Normalize(title)
	for _, sec := range s.sections {
		if sec.Title == title {
			return sec, true
		}
	}
	return Section{}, false
}

// HasLeaf reports whether topic is an addressable leaf topic.
func (s *Syllabus) HasLeaf(topic string) bool {
	_, ok := s.leaves[Normalize(topic)]
	return ok
}

// SectionOf returns the section containing the leaf topic.
func (s *Syllabus) SectionOf(leaf string) (Section, bool) {
	i, ok := s.leaves[Normalize(leaf)]
	if !ok {
		return Section{}, false
	}
	return s.sections[i], true
}

// Leaves returns every leaf topic in syllabus order.
func (s *Syllabus) Leaves() []string {
	return append([]string(nil), s.order...)
}
