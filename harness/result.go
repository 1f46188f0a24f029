package harness

import (
	"math"
	"time"
)

// Verdict is the recorded status of a single step.
type Verdict string

const (
	Pass Verdict = "PASS"
	Fail Verdict = "FAIL"
	Skip Verdict = "SKIP"
)

// TestOutcome is the immutable record of one executed (or skipped) step. The
// JSON field names are part of the report format consumed by downstream
// tooling, so they must not change.
type TestOutcome struct {
	Name           string  `json:"name"`
	Method         string  `json:"method"`
	Endpoint       string  `json:"endpoint"`
	Verdict        Verdict `json:"status"`
	ExpectedStatus int     `json:"expected_status"`
	ActualStatus   int     `json:"actual_status"`
	DurationMS     float64 `json:"duration_ms"`
	ResponseBody   string  `json:"response_body"`
	ErrorMessage   string  `json:"error_message"`
}

// TargetResult accumulates the outcomes for one target. All counts and rates
// are derived from the outcome list when asked for, so they can never drift
// out of sync with it.
type TargetResult struct {
	Label       string
	BaseURL     string
	StartedAt   time.Time
	Unavailable bool
	Outcomes    []TestOutcome
}

func NewTargetResult(label, baseURL string) *TargetResult {
	return &TargetResult{
		Label:     label,
		BaseURL:   baseURL,
		StartedAt: time.Now(),
	}
}

func (r *TargetResult) Total() int { return len(r.Outcomes) }

func (r *TargetResult) Passed() int { return r.countWhere(Pass) }

func (r *TargetResult) Failed() int { return r.countWhere(Fail) }

func (r *TargetResult) Skipped() int { return r.countWhere(Skip) }

func (r *TargetResult) countWhere(v Verdict) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Verdict == v {
			n++
		}
	}
	return n
}

// PassRate is the percentage of passed steps out of all recorded steps,
// rounded to one decimal place. An empty result reports 0.
func (r *TargetResult) PassRate() float64 {
	if len(r.Outcomes) == 0 {
		return 0
	}
	return round1(float64(r.Passed()) / float64(len(r.Outcomes)) * 100)
}

func (r *TargetResult) OK() bool { return r.Failed() == 0 }

// AggregateResult is the outcome of a whole run, one TargetResult per
// configured target in configuration order.
type AggregateResult struct {
	Targets []*TargetResult
}

func (a *AggregateResult) TotalTests() int {
	n := 0
	for _, t := range a.Targets {
		n += t.Total()
	}
	return n
}

func (a *AggregateResult) TotalPassed() int {
	n := 0
	for _, t := range a.Targets {
		n += t.Passed()
	}
	return n
}

func (a *AggregateResult) TotalFailed() int {
	n := 0
	for _, t := range a.Targets {
		n += t.Failed()
	}
	return n
}

func (a *AggregateResult) TotalSkipped() int {
	n := 0
	for _, t := range a.Targets {
		n += t.Skipped()
	}
	return n
}

func (a *AggregateResult) OverallPassRate() float64 {
	total := a.TotalTests()
	if total == 0 {
		return 0
	}
	return round1(float64(a.TotalPassed()) / float64(total) * 100)
}

// OK reports whether the run as a whole succeeded: no step failed anywhere.
// Targets that were unavailable contribute no outcomes and do not by
// themselves make the run fail.
func (a *AggregateResult) OK() bool {
	return a.TotalFailed() == 0
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
