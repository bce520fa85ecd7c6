package report

import (
	"fmt"
	"os"
	"path/filepath"

	apperrors "github.com/agbru/resmon/internal/errors"
)

// PrepareOutputFile creates (or truncates) the report file before a run
// starts. An unwritable destination should fail the run up front rather
// than after minutes of sampling.
func PrepareOutputFile(path string) error {
	if path == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return apperrors.ReportError{Path: path, Cause: fmt.Errorf("failed to create directory: %w", err)}
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.ReportError{Path: path, Cause: fmt.Errorf("failed to create output file: %w", err)}
	}
	return file.Close()
}

// WriteReportToFile writes a rendered report document to path.
func WriteReportToFile(path, content string) error {
	if path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return apperrors.ReportError{Path: path, Cause: fmt.Errorf("failed to create directory: %w", err)}
		}
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return apperrors.ReportError{Path: path, Cause: fmt.Errorf("failed to write output file: %w", err)}
	}
	return nil
}
