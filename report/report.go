// Package report renders run results into the three report formats: a
// Markdown report and a JSON result file per target, and a combined HTML
// dashboard for the whole run. Renderers are pure functions over the result
// model; the Writer owns file naming and directory layout.
package report

import (
	"embed"

	"github.com/arcana-cloud/api-contract-tests/harness"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Timestamp layouts: one for human-readable metadata, one for file names.
const (
	metadataTimeLayout = "2006-01-02 15:04:05"
	fileTimeLayout     = "20060102_150405"
)

func verdictIcon(v harness.Verdict) string {
	switch v {
	case harness.Pass:
		return "✅"
	case harness.Skip:
		return "⏭️"
	default:
		return "❌"
	}
}

func verdictClass(v harness.Verdict) string {
	switch v {
	case harness.Pass:
		return "pass"
	case harness.Skip:
		return "skip"
	default:
		return "fail"
	}
}

func verdictMark(v harness.Verdict) string {
	switch v {
	case harness.Pass:
		return "✓"
	case harness.Skip:
		return "⏭"
	default:
		return "✗"
	}
}

func targetIcon(label string) string {
	switch label {
	case "monolithic":
		return "🏢"
	case "layered":
		return "📡"
	case "microservices":
		return "☸️"
	default:
		return "🔧"
	}
}
