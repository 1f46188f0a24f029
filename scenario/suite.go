package scenario

import (
	"fmt"
	"strings"
	"time"

	"github.com/arcana-cloud/api-contract-tests/config"
	"github.com/arcana-cloud/api-contract-tests/harness"
	"github.com/arcana-cloud/api-contract-tests/logging"
	"github.com/arcana-cloud/api-contract-tests/probe"
	"github.com/arcana-cloud/api-contract-tests/servicedef"
)

// RunSuite runs the full scenario against every configured target, one at a
// time in configuration order, and returns the aggregated results. A target
// that fails its pre-flight health check is marked unavailable and recorded
// with zero outcomes; the remaining targets still run.
func RunSuite(cfg *config.Config, stepLogger harness.StepLogger, debugLogger logging.Logger) *harness.AggregateResult {
	if stepLogger == nil {
		stepLogger = harness.NullStepLogger()
	}
	if debugLogger == nil {
		debugLogger = logging.NullLogger()
	}

	aggregate := &harness.AggregateResult{}
	for _, target := range cfg.Targets {
		aggregate.Targets = append(aggregate.Targets, runTarget(cfg, target, stepLogger, debugLogger))
	}
	return aggregate
}

func runTarget(
	cfg *config.Config,
	target config.Target,
	stepLogger harness.StepLogger,
	debugLogger logging.Logger,
) *harness.TargetResult {
	result := harness.NewTargetResult(target.Label, target.BaseURL)
	stepLogger.TargetStarted(target.Label, target.BaseURL)

	if detail, ok := preflight(target.BaseURL, cfg.PreflightTimeout.Value(), debugLogger); !ok {
		result.Unavailable = true
		stepLogger.TargetUnavailable(target.Label, target.BaseURL, detail)
		return result
	}
	stepLogger.TargetAvailable(target.Label)

	client := probe.NewClient(cfg.ProbeTimeout.Value(), debugLogger)
	exec := harness.NewExecutor(target.BaseURL, client, result, stepLogger, cfg.MaxBodyBytes)
	newRunner(exec, cfg.AdminAccounts, stepLogger).RunGroups()

	return result
}

// preflight checks that the target answers its health endpoint before any
// outcome is recorded against it.
func preflight(baseURL string, timeout time.Duration, debugLogger logging.Logger) (string, bool) {
	client := probe.NewClient(timeout, debugLogger)
	res, err := client.Do(probe.Request{
		Method: "GET",
		URL:    strings.TrimRight(baseURL, "/") + servicedef.EndpointHealth,
	}, nil)
	if err != nil {
		return err.Error(), false
	}
	if res.StatusCode != 200 {
		return fmt.Sprintf("health endpoint returned status %d", res.StatusCode), false
	}
	return "", true
}
