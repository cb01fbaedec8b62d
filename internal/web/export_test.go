package web_test

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/p-n-ai/studymate/internal/syllabus"
	"github.com/p-n-ai/studymate/internal/web"
)

func TestProgressWorkbook(t *testing.T) {
	syl, err := syllabus.Load()
	if err != nil {
		t.Fatal(err)
	}

	f, err := web.ProgressWorkbook(syl,
		map[string]bool{"Mean": true},
		map[string]float64{"Mean-notes": 40, "Mean-summary": 75},
	)
	if err != nil {
		t.Fatalf("ProgressWorkbook() error = %v", err)
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	f.Close()

	book, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer book.Close()

	rows, err := book.GetRows("Progress")
	if err != nil {
		t.Fatalf("GetRows(Progress) error = %v", err)
	}
	if len(rows) != len(syl.Leaves())+1 {
		t.Errorf("Progress rows = %d, want %d", len(rows), len(syl.Leaves())+1)
	}
	if rows[0][2] != "Leaf Topic" {
		t.Errorf("header = %v", rows[0])
	}

	var mean []string
	for _, r := range rows {
		if len(r) > 2 && r[2] == "Mean" {
			mean = r
		}
	}
	if len(mean) != 6 || mean[0] != "Statistics" || mean[3] != "TRUE" || mean[4] != "40" || mean[5] != "75" {
		t.Errorf("Mean row = %v", mean)
	}

	sections, err := book.GetRows("Sections")
	if err != nil {
		t.Fatalf("GetRows(Sections) error = %v", err)
	}
	if len(sections) != len(syl.Sections())+1 {
		t.Errorf("Sections rows = %d, want %d", len(sections), len(syl.Sections())+1)
	}
}
