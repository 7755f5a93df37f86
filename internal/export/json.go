// Package export writes a finished analysis to files the user can keep.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spigell/resume-analyzer/internal/report"
)

var errNoReport = errors.New("no report to export")

// JSON dumps the report as indented JSON into dir (the system temp dir when
// empty) and returns the file name.
func JSON(r *report.Report, dir string) (string, error) {
	if r == nil {
		return "", errNoReport
	}

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating export dir: %w", err)
		}
	}

	file, err := os.CreateTemp(dir, "resume_report_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}

	return file.Name(), nil
}
