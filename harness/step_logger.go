package harness

import "github.com/arcana-cloud/api-contract-tests/logging"

// StepLogger receives progress events as a run executes, for operator-facing
// output. Implementations must not mutate the outcomes they are given.
type StepLogger interface {
	TargetStarted(label, baseURL string)
	TargetAvailable(label string)
	TargetUnavailable(label, baseURL, detail string)
	GroupStarted(name string)
	GroupSkipped(name, reason string)
	StepFinished(outcome TestOutcome, debugOutput logging.CapturedOutput)
	Warning(message string)
}

type nullStepLogger struct{}

func (n nullStepLogger) TargetStarted(string, string)                     {}
func (n nullStepLogger) TargetAvailable(string)                           {}
func (n nullStepLogger) TargetUnavailable(string, string, string)         {}
func (n nullStepLogger) GroupStarted(string)                              {}
func (n nullStepLogger) GroupSkipped(string, string)                      {}
func (n nullStepLogger) StepFinished(TestOutcome, logging.CapturedOutput) {}
func (n nullStepLogger) Warning(string)                                   {}

func NullStepLogger() StepLogger { return nullStepLogger{} }
