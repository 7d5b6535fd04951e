package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/syncopasoft/webserver/internal/config"
	"github.com/syncopasoft/webserver/internal/httpd"
)

func handleReportOutput(report *httpd.Report, s config.Settings, stdout io.Writer) error {
	if report == nil {
		return fmt.Errorf("nil report")
	}
	if s.LogLevel == "debug" {
		fmt.Fprintln(stdout, report.VerboseReport())
	} else {
		fmt.Fprintln(stdout, report.ShortSummary())
	}
	if err := writeReportFile(s.ReportCSV, report.WriteCSV); err != nil {
		return fmt.Errorf("failed to write CSV report: %w", err)
	}
	return nil
}

func writeReportFile(path string, writer func(io.Writer) error) error {
	if path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := writer(f); err != nil {
		return err
	}
	return f.Sync()
}
