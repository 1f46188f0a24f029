package report

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/arcana-cloud/api-contract-tests/harness"
)

// The JSON report is consumed by downstream tooling; its key names are a
// compatibility contract.
type jsonReport struct {
	ReportMetadata jsonMetadata          `json:"reportMetadata"`
	Summary        jsonSummary           `json:"summary"`
	Results        []harness.TestOutcome `json:"results"`
}

type jsonMetadata struct {
	GeneratedAt string `json:"generatedAt"`
	BaseURL     string `json:"baseUrl"`
	Mode        string `json:"mode"`
}

type jsonSummary struct {
	TotalTests int     `json:"totalTests"`
	Passed     int     `json:"passed"`
	Failed     int     `json:"failed"`
	Skipped    int     `json:"skipped"`
	PassRate   float64 `json:"passRate"`
}

// RenderJSON produces the per-target JSON result file.
func RenderJSON(result *harness.TargetResult, generatedAt time.Time) ([]byte, error) {
	outcomes := result.Outcomes
	if outcomes == nil {
		outcomes = []harness.TestOutcome{}
	}

	data, err := sonic.MarshalIndent(jsonReport{
		ReportMetadata: jsonMetadata{
			GeneratedAt: generatedAt.Format(metadataTimeLayout),
			BaseURL:     result.BaseURL,
			Mode:        result.Label,
		},
		Summary: jsonSummary{
			TotalTests: result.Total(),
			Passed:     result.Passed(),
			Failed:     result.Failed(),
			Skipped:    result.Skipped(),
			PassRate:   result.PassRate(),
		},
		Results: outcomes,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("rendering JSON report: %w", err)
	}
	return data, nil
}
