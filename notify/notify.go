// Package notify pushes a run summary to operator channels through Shoutrrr
// service URLs. Notification failures are reported back as errors for the
// caller to surface as warnings; they never affect the run's outcome.
package notify

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/nicholas-fedor/shoutrrr"

	"github.com/arcana-cloud/api-contract-tests/config"
	"github.com/arcana-cloud/api-contract-tests/harness"
)

const defaultTemplate = `{{ if .OK }}{{ "✅" }}{{ else }}{{ "❌" }}{{ end }} API conformance run: {{ .Passed }}/{{ .TotalTests }} passed ({{ .PassRate }}%)
{{- if .FailedTargets }}
Failing targets: {{ join ", " .FailedTargets }}
{{- end }}
{{- if .UnavailableTargets }}
Unavailable targets: {{ join ", " .UnavailableTargets }}
{{- end }}`

// Summary is the data available to notification message templates.
type Summary struct {
	TotalTests         int
	Passed             int
	Failed             int
	Skipped            int
	PassRate           float64
	OK                 bool
	FailedTargets      []string
	UnavailableTargets []string
}

func BuildSummary(aggregate *harness.AggregateResult) Summary {
	s := Summary{
		TotalTests: aggregate.TotalTests(),
		Passed:     aggregate.TotalPassed(),
		Failed:     aggregate.TotalFailed(),
		Skipped:    aggregate.TotalSkipped(),
		PassRate:   aggregate.OverallPassRate(),
		OK:         aggregate.OK(),
	}
	for _, t := range aggregate.Targets {
		if t.Unavailable {
			s.UnavailableTargets = append(s.UnavailableTargets, t.Label)
		} else if t.Failed() > 0 {
			s.FailedTargets = append(s.FailedTargets, t.Label)
		}
	}
	return s
}

// ShouldNotify reports whether the run's outcome calls for a notification:
// always when on_success is set, otherwise only when something went wrong.
func ShouldNotify(cfg *config.Notify, s Summary) bool {
	if cfg == nil || len(cfg.URLs) == 0 {
		return false
	}
	if cfg.OnSuccess {
		return true
	}
	return !s.OK || len(s.UnavailableTargets) > 0
}

// Render executes the message template, which may use Sprig functions, with
// the run summary as its data.
func Render(tmplStr string, s Summary) (string, error) {
	if tmplStr == "" {
		tmplStr = defaultTemplate
	}
	t, err := template.New("notify").Funcs(sprig.TxtFuncMap()).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing notify template: %w", err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, s); err != nil {
		return "", fmt.Errorf("executing notify template: %w", err)
	}
	return buf.String(), nil
}

// Send renders the message and delivers it to every configured URL,
// collecting per-URL errors.
func Send(cfg *config.Notify, s Summary) []error {
	message, err := Render(cfg.Template, s)
	if err != nil {
		return []error{err}
	}

	var errs []error
	for _, url := range cfg.URLs {
		sender, err := shoutrrr.CreateSender(url)
		if err != nil {
			errs = append(errs, fmt.Errorf("creating sender: %w", err))
			continue
		}
		for _, e := range sender.Send(message, nil) {
			if e != nil {
				errs = append(errs, fmt.Errorf("sending notification: %w", e))
			}
		}
	}
	return errs
}
