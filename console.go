package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/arcana-cloud/api-contract-tests/harness"
	"github.com/arcana-cloud/api-contract-tests/logging"
	"github.com/arcana-cloud/api-contract-tests/report"
)

var (
	infoColor    = color.New(color.FgHiBlue)
	passColor    = color.New(color.FgHiGreen)
	failColor    = color.New(color.FgHiRed)
	warnColor    = color.New(color.FgHiYellow)
	sectionColor = color.New(color.FgHiCyan)
)

const sectionRule = 60

// ConsoleStepLogger prints run progress with a colored level tag per line,
// and optionally replays a step's captured debug output after its result
// line.
type ConsoleStepLogger struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleStepLogger) TargetStarted(label, baseURL string) {
	rule := strings.Repeat("=", sectionRule)
	logLine(sectionColor, "SECTION", rule)
	logLine(sectionColor, "SECTION", fmt.Sprintf("  Testing %s Mode - %s", label, baseURL))
	logLine(sectionColor, "SECTION", rule)
	logLine(infoColor, "INFO", "Checking service availability...")
}

func (c *ConsoleStepLogger) TargetAvailable(label string) {
	logLine(passColor, "PASS", "Service is available")
}

func (c *ConsoleStepLogger) TargetUnavailable(label, baseURL, detail string) {
	logLine(failColor, "FAIL", fmt.Sprintf("Service at %s is not available (%s)", baseURL, detail))
}

func (c *ConsoleStepLogger) GroupStarted(name string) {
	logLine(infoColor, "INFO", fmt.Sprintf("Running %s Tests...", name))
}

func (c *ConsoleStepLogger) GroupSkipped(name, reason string) {
	logLine(warnColor, "WARN", fmt.Sprintf("Skipping %s tests - %s", name, reason))
}

func (c *ConsoleStepLogger) StepFinished(outcome harness.TestOutcome, debugOutput logging.CapturedOutput) {
	switch outcome.Verdict {
	case harness.Pass:
		logLine(passColor, "PASS", fmt.Sprintf("%s (%vms) - Status: %d",
			outcome.Name, outcome.DurationMS, outcome.ActualStatus))
	case harness.Skip:
		logLine(warnColor, "WARN", fmt.Sprintf("%s - Skipped: %s", outcome.Name, outcome.ErrorMessage))
	default:
		logLine(failColor, "FAIL", fmt.Sprintf("%s (%vms) - Expected: %d, Got: %d",
			outcome.Name, outcome.DurationMS, outcome.ExpectedStatus, outcome.ActualStatus))
		if outcome.ErrorMessage != "" {
			logLine(failColor, "FAIL", fmt.Sprintf("  %s", outcome.ErrorMessage))
		}
	}

	failed := outcome.Verdict == harness.Fail
	if (failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess) {
		debugOutput.Dump(os.Stdout, "    ")
	}
}

func (c *ConsoleStepLogger) Warning(message string) {
	logLine(warnColor, "WARN", message)
}

func logLine(col *color.Color, level, message string) {
	fmt.Printf("%s %s\n", col.Sprintf("[%s]", level), message)
}

func printBanner() {
	rule := strings.Repeat("=", sectionRule)
	fmt.Println()
	fmt.Println(rule)
	fmt.Println("  Arcana Cloud API Test Suite")
	fmt.Println(rule)
	fmt.Println()
}

func printReportFiles(results *harness.AggregateResult, manifest report.Manifest) {
	written := make(map[string]report.TargetFiles, len(manifest.TargetFiles))
	for _, tf := range manifest.TargetFiles {
		written[tf.Label] = tf
	}

	for _, target := range results.Targets {
		if tf, ok := written[target.Label]; ok {
			fmt.Println()
			logLine(infoColor, "INFO", fmt.Sprintf("Reports generated for %s:", target.Label))
			fmt.Printf("  - Markdown: %s\n", tf.Markdown)
			fmt.Printf("  - JSON: %s\n", tf.JSON)
		} else {
			fmt.Println()
			logLine(warnColor, "WARN", fmt.Sprintf("%s service not available, skipping detailed reports...", target.Label))
		}
	}

	fmt.Println()
	logLine(infoColor, "INFO", fmt.Sprintf("Combined HTML Report: %s", manifest.HTML))
}

func printSummary(results *harness.AggregateResult) {
	rule := strings.Repeat("=", sectionRule)
	fmt.Println()
	fmt.Println(rule)
	fmt.Println("  Test Suite Complete")
	fmt.Println(rule)

	fmt.Println("\nOverall Summary:")
	fmt.Printf("  Total Tests: %d\n", results.TotalTests())
	fmt.Printf("  Passed: %d\n", results.TotalPassed())
	fmt.Printf("  Failed: %d\n", results.TotalFailed())
	if results.TotalSkipped() > 0 {
		fmt.Printf("  Skipped: %d\n", results.TotalSkipped())
	}
	if results.TotalTests() > 0 {
		fmt.Printf("  Pass Rate: %v%%\n", results.OverallPassRate())
	}
}
