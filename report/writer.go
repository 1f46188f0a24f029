package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/arcana-cloud/api-contract-tests/harness"
)

// TargetFiles lists the report files written for one target.
type TargetFiles struct {
	Label    string
	Markdown string
	JSON     string
}

// Manifest lists everything a WriteAll call produced, for display to the
// operator.
type Manifest struct {
	TargetFiles []TargetFiles
	HTML        string
}

// Writer renders and writes all reports for a run under one output
// directory: <dir>/<label>/ for the per-target files, <dir>/ for the
// combined dashboard.
type Writer struct {
	OutputDir string
}

// WriteAll writes Markdown and JSON reports for every available target and
// the combined HTML dashboard. Unavailable targets get no per-target files
// but still appear in the dashboard.
func (w Writer) WriteAll(aggregate *harness.AggregateResult, generatedAt time.Time) (Manifest, error) {
	var manifest Manifest
	stamp := generatedAt.Format(fileTimeLayout)

	for _, result := range aggregate.Targets {
		if result.Unavailable {
			continue
		}

		dir := filepath.Join(w.OutputDir, result.Label)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return manifest, fmt.Errorf("creating report directory: %w", err)
		}

		md, err := RenderMarkdown(result, generatedAt)
		if err != nil {
			return manifest, err
		}
		mdPath := filepath.Join(dir, fmt.Sprintf("api-test-report-%s.md", stamp))
		if err := os.WriteFile(mdPath, md, 0o644); err != nil {
			return manifest, fmt.Errorf("writing markdown report: %w", err)
		}

		data, err := RenderJSON(result, generatedAt)
		if err != nil {
			return manifest, err
		}
		jsonPath := filepath.Join(dir, fmt.Sprintf("api-test-results-%s.json", stamp))
		if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
			return manifest, fmt.Errorf("writing JSON report: %w", err)
		}

		manifest.TargetFiles = append(manifest.TargetFiles, TargetFiles{
			Label:    result.Label,
			Markdown: mdPath,
			JSON:     jsonPath,
		})
	}

	if err := os.MkdirAll(w.OutputDir, 0o755); err != nil {
		return manifest, fmt.Errorf("creating report directory: %w", err)
	}
	html, err := RenderHTML(aggregate, generatedAt)
	if err != nil {
		return manifest, err
	}
	htmlPath := filepath.Join(w.OutputDir, fmt.Sprintf("api-test-report-%s.html", stamp))
	if err := os.WriteFile(htmlPath, html, 0o644); err != nil {
		return manifest, fmt.Errorf("writing HTML report: %w", err)
	}
	manifest.HTML = htmlPath

	return manifest, nil
}
