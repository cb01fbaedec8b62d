package web

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/xuri/excelize/v2"

	"github.com/p-n-ai/studymate/internal/progress"
	"github.com/p-n-ai/studymate/internal/study"
	"github.com/p-n-ai/studymate/internal/syllabus"
)

const (
	progressSheet = "Progress"
	sectionsSheet = "Sections"
	xlsxMIME      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ProgressWorkbook builds a spreadsheet with one row per leaf topic and a
// per-section summary.
func ProgressWorkbook(syl *syllabus.Syllabus, completed map[string]bool, scroll map[string]float64) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", progressSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(sectionsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}

	rows := [][]any{{"Section", "Topic", "Leaf Topic", "Completed", "Notes %", "Summary %"}}
	summary := [][]any{{"Section", "Completed", "Total"}}
	for _, sec := range syl.Sections() {
		for _, topic := range sec.Topics {
			for _, leaf := range topic.Leaves() {
				rows = append(rows, []any{
					sec.Title,
					topic.Title,
					leaf,
					completed[leaf],
					percentCell(scroll, leaf, study.KindNotes),
					percentCell(scroll, leaf, study.KindSummary),
				})
			}
		}
		done, total := sec.Counts(completed)
		summary = append(summary, []any{sec.Title, done, total})
	}

	if err := writeRows(f, progressSheet, rows); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeRows(f, sectionsSheet, summary); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func percentCell(scroll map[string]float64, leaf string, kind study.Kind) any {
	pct, ok := scroll[progress.ScrollKey(leaf, kind)]
	if !ok {
		return ""
	}
	return pct
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func (s *server) handleExport(w http.ResponseWriter, r *http.Request) {
	f, err := ProgressWorkbook(s.syllabus, s.ctrl.Completion(), s.ctrl.ScrollPositions())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", xlsxMIME)
	w.Header().Set("Content-Disposition", `attachment; filename="progress.xlsx"`)
	if err := f.Write(w); err != nil {
		slog.Error("failed to write progress workbook", "error", err)
	}
}
