package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arcana-cloud/api-contract-tests/config"
	"github.com/arcana-cloud/api-contract-tests/logging"
	"github.com/arcana-cloud/api-contract-tests/notify"
	"github.com/arcana-cloud/api-contract-tests/report"
	"github.com/arcana-cloud/api-contract-tests/scenario"
)

var (
	cfgFile      string
	outputDir    string
	targetLabels []string
	debugFailed  bool
	debugAll     bool
	noColor      bool
	noReports    bool
)

var rootCmd = &cobra.Command{
	Use:   "api-contract-tests",
	Short: "Black-box conformance suite for the Arcana Cloud user service API",
	Long: "Runs a fixed scenario of dependent API calls (register, login, authenticated\n" +
		"operations, cleanup) against each configured deployment of the service,\n" +
		"records every outcome, and writes Markdown, JSON, and HTML reports.\n" +
		"Exits non-zero when any step fails.",
	SilenceUsage: true,
	RunE:         runSuite,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default ./conformance.yaml if present)")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "report output directory (overrides config)")
	rootCmd.Flags().StringSliceVar(&targetLabels, "target", nil, "run only the named target(s)")
	rootCmd.Flags().BoolVar(&debugFailed, "debug", false, "dump debug output for failed steps")
	rootCmd.Flags().BoolVar(&debugAll, "debug-all", false, "dump debug output for every step")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.Flags().BoolVar(&noReports, "no-reports", false, "do not write report files")
}

func runSuite(cmd *cobra.Command, args []string) error {
	if noColor {
		color.NoColor = true
	}

	cfg, err := config.Resolve(cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.SelectTargets(targetLabels); err != nil {
		return err
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}

	debugLogger := logging.NullLogger()
	if debugAll {
		debugLogger = newDebugLogger()
	}

	printBanner()

	stepLogger := &ConsoleStepLogger{
		DebugOutputOnFailure: debugFailed || debugAll,
		DebugOutputOnSuccess: debugAll,
	}

	results := scenario.RunSuite(cfg, stepLogger, debugLogger)

	if !noReports {
		manifest, err := report.Writer{OutputDir: cfg.OutputDir}.WriteAll(results, time.Now())
		if err != nil {
			return err
		}
		printReportFiles(results, manifest)
	}

	printSummary(results)
	if !noReports {
		fmt.Printf("\nReports saved to: %s\n", cfg.OutputDir)
	}

	if s := notify.BuildSummary(results); notify.ShouldNotify(cfg.Notify, s) {
		for _, err := range notify.Send(cfg.Notify, s) {
			stepLogger.Warning(fmt.Sprintf("Notification failed: %s", err))
		}
	}

	if !results.OK() {
		os.Exit(1)
	}
	return nil
}

// newDebugLogger builds the process-wide debug logger used with --debug-all
// for traffic that is not tied to a single step, such as pre-flight checks.
func newDebugLogger() logging.Logger {
	zl := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		NoColor:    noColor || !isatty.IsTerminal(os.Stdout.Fd()),
		TimeFormat: "15:04:05.000",
	}).With().Timestamp().Logger()
	return &zl
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
