package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/spigell/resume-analyzer/internal/projection"
	"github.com/spigell/resume-analyzer/internal/report"
	"github.com/spigell/resume-analyzer/internal/scoring"
)

const (
	SheetScores     = "Scores"
	SheetSkills     = "Skills"
	SheetComponents = "Missing Components"
	SheetSuggestion = "Suggestions"
)

var bandFills = map[scoring.Band]string{
	scoring.Excellent: "C6EFCE",
	scoring.Good:      "FFEB9C",
	scoring.Fair:      "FFC7CE",
	scoring.Poor:      "FF9999",
}

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

type styles struct {
	header int
	wrap   int
	bands  map[scoring.Band]int
}

// Excel writes the report as a workbook. The .xlsx extension is added when
// missing; an empty path goes to a new file in dir (the system temp dir when
// empty). The final path is returned.
func Excel(r *report.Report, path, dir string) (string, error) {
	if r == nil {
		return "", errNoReport
	}

	path, err := excelPath(path, dir)
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	st, err := newStyles(f)
	if err != nil {
		return "", fmt.Errorf("creating styles: %w", err)
	}

	v := projection.Project(r)

	if err := f.SetSheetName("Sheet1", SheetScores); err != nil {
		return "", err
	}
	for _, name := range []string{SheetSkills, SheetComponents, SheetSuggestion} {
		if _, err := f.NewSheet(name); err != nil {
			return "", fmt.Errorf("creating sheet %q: %w", name, err)
		}
	}

	writers := []struct {
		sheet string
		write func(*excelize.File, string, *projection.View, *styles) error
	}{
		{SheetScores, writeScores},
		{SheetSkills, writeSkills},
		{SheetComponents, writeComponents},
		{SheetSuggestion, writeSuggestions},
	}
	for _, w := range writers {
		if err := w.write(f, w.sheet, v, st); err != nil {
			return "", fmt.Errorf("writing %s sheet: %w", w.sheet, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("saving workbook: %w", err)
	}

	return path, nil
}

func excelPath(path, dir string) (string, error) {
	if path == "" {
		if dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return "", fmt.Errorf("creating export dir: %w", err)
			}
		}
		file, err := os.CreateTemp(dir, "resume_report_*.xlsx")
		if err != nil {
			return "", err
		}
		path = file.Name()
		file.Close()
	}

	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}

	return filepath.Clean(path), nil
}

func newStyles(f *excelize.File) (*styles, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
	if err != nil {
		return nil, err
	}

	wrap, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		Border:    thinBorder,
	})
	if err != nil {
		return nil, err
	}

	st := &styles{header: header, wrap: wrap, bands: make(map[scoring.Band]int, len(bandFills))}
	for band, color := range bandFills {
		id, err := f.NewStyle(&excelize.Style{
			Fill:   excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Border: thinBorder,
		})
		if err != nil {
			return nil, err
		}
		st.bands[band] = id
	}

	return st, nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func writeRow(f *excelize.File, sheet string, row int, values ...any) error {
	start := cell("A", row)
	return f.SetSheetRow(sheet, start, &values)
}

func writeHeader(f *excelize.File, sheet string, st *styles, widths []float64, headers ...any) error {
	if err := writeRow(f, sheet, 1, headers...); err != nil {
		return err
	}

	last, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", cell(last, 1), st.header); err != nil {
		return err
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeScores(f *excelize.File, sheet string, v *projection.View, st *styles) error {
	if err := writeHeader(f, sheet, st, []float64{22, 10, 18, 55}, "Score", "Value", "Rating", "Description"); err != nil {
		return err
	}

	cards := append([]projection.ScoreCard{v.Overall}, v.Details...)
	for i, card := range cards {
		row := i + 2
		if err := writeRow(f, sheet, row, card.Title, card.Score, card.Treatment.Label, card.Description); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell("A", row), cell("D", row), st.bands[card.Band]); err != nil {
			return err
		}
	}

	return nil
}

func writeSkills(f *excelize.File, sheet string, v *projection.View, st *styles) error {
	if err := writeHeader(f, sheet, st, []float64{25, 70}, "Category", "Skills"); err != nil {
		return err
	}

	row := 2
	for _, group := range v.Skills {
		if err := writeRow(f, sheet, row, group.Category, strings.Join(group.Skills, ", ")); err != nil {
			return err
		}
		row++
	}

	if len(v.MissingSkills) > 0 {
		if err := writeRow(f, sheet, row, "Suggested Skills to Add", strings.Join(v.MissingSkills, ", ")); err != nil {
			return err
		}
		row++
	}

	if row > 2 {
		return f.SetCellStyle(sheet, "A2", cell("B", row-1), st.wrap)
	}
	return nil
}

func writeComponents(f *excelize.File, sheet string, v *projection.View, st *styles) error {
	if err := writeHeader(f, sheet, st, []float64{25, 18, 50, 50}, "Component", "Importance", "Description", "Suggestion"); err != nil {
		return err
	}

	if v.MissingComponents.AllPresent {
		return writeRow(f, sheet, 2, v.MissingComponents.Message)
	}

	for i, entry := range v.MissingComponents.Entries {
		if err := writeRow(f, sheet, i+2, entry.Component, entry.Tag.Label, entry.Description, entry.Suggestion); err != nil {
			return err
		}
	}

	return f.SetCellStyle(sheet, "A2", cell("D", len(v.MissingComponents.Entries)+1), st.wrap)
}

func writeSuggestions(f *excelize.File, sheet string, v *projection.View, st *styles) error {
	if err := writeHeader(f, sheet, st, []float64{20, 18, 50, 40, 50}, "Category", "Priority", "Suggestion", "Impact", "Examples"); err != nil {
		return err
	}

	for i, entry := range v.Suggestions {
		examples := strings.Join(entry.Examples, "\n")
		if err := writeRow(f, sheet, i+2, entry.Category, entry.Tag.Label, entry.Suggestion, entry.Impact, examples); err != nil {
			return err
		}
	}

	if len(v.Suggestions) == 0 {
		return nil
	}
	return f.SetCellStyle(sheet, "A2", cell("E", len(v.Suggestions)+1), st.wrap)
}
