package report

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"

	"github.com/arcana-cloud/api-contract-tests/harness"
)

type markdownData struct {
	Result      *harness.TargetResult
	GeneratedAt string
}

// RenderMarkdown produces the per-target Markdown report.
func RenderMarkdown(result *harness.TargetResult, generatedAt time.Time) ([]byte, error) {
	funcs := sprig.TxtFuncMap()
	funcs["verdictIcon"] = verdictIcon

	tmpl, err := template.New("report.md.tmpl").Funcs(funcs).ParseFS(templatesFS, "templates/report.md.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing markdown template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, markdownData{
		Result:      result,
		GeneratedAt: generatedAt.Format(metadataTimeLayout),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering markdown report: %w", err)
	}
	return buf.Bytes(), nil
}
