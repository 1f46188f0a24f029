package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/Masterminds/sprig/v3"

	"github.com/arcana-cloud/api-contract-tests/harness"
)

type htmlData struct {
	Aggregate   *harness.AggregateResult
	GeneratedAt string
}

// RenderHTML produces the combined dashboard covering every target in the
// run, including sections for targets that were unavailable.
func RenderHTML(aggregate *harness.AggregateResult, generatedAt time.Time) ([]byte, error) {
	funcs := sprig.HtmlFuncMap()
	funcs["targetIcon"] = targetIcon
	funcs["verdictClass"] = verdictClass
	funcs["verdictMark"] = verdictMark

	tmpl, err := template.New("dashboard.html.tmpl").Funcs(funcs).ParseFS(templatesFS, "templates/dashboard.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing dashboard template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, htmlData{
		Aggregate:   aggregate,
		GeneratedAt: generatedAt.Format(metadataTimeLayout),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering dashboard: %w", err)
	}
	return buf.Bytes(), nil
}
