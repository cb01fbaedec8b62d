package markup_test

import (
	"reflect"
	"testing"

	"github.com/p-n-ai/studymate/internal/markup"
)

func TestInline(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []markup.Segment
	}{
		{"plain", "just text", []markup.Segment{{Type: markup.Text, Text: "just text"}}},
		{"empty", "", nil},
		{"bold", "the **mean** value", []markup.Segment{
			{Type: markup.Text, Text: "the "},
			{Type: markup.Bold, Text: "mean"},
			{Type: markup.Text, Text: " value"},
		}},
		{"code", "use `AVERAGE()` in Excel", []markup.Segment{
			{Type: markup.Text, Text: "use "},
			{Type: markup.InlineCode, Text: "AVERAGE()"},
			{Type: markup.Text, Text: " in Excel"},
		}},
		{"adjacent spans", "**a**`b`", []markup.Segment{
			{Type: markup.Bold, Text: "a"},
			{Type: markup.InlineCode, Text: "b"},
		}},
		{"no nesting inside code", "`**x**`", []markup.Segment{
			{Type: markup.InlineCode, Text: "**x**"},
		}},
		{"unbalanced markers stay literal", "2 ** 3 and `open", []markup.Segment{
			{Type: markup.Text, Text: "2 ** 3 and `open"},
		}},
		{"empty code span is literal", "``", []markup.Segment{
			{Type: markup.Text, Text: "``"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := markup.Inline(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Inline(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}
