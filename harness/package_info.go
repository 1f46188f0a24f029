// Package harness contains the low-level test harness infrastructure that is
// not specific to any particular API surface.
//
// The general model is:
//
// 1. A step is a single HTTP request with an expected status code. The
// Executor performs steps against one target and records a TestOutcome for
// each, applying the pass/fail rule uniformly.
//
// 2. Outcomes accumulate in a TargetResult; an AggregateResult collects the
// per-target results for a whole run. Counts and pass rates are always
// derived from the recorded outcomes rather than kept as separate state.
//
// 3. A StepLogger receives progress events for operator-facing output, with
// per-step captured debug output available for replay on failure.
//
// The domain-specific code that knows which endpoints to call, in what
// order, and with what payloads lives in the scenario package.
package harness
