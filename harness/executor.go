package harness

import (
	"math"
	"strings"
	"time"

	"github.com/arcana-cloud/api-contract-tests/logging"
	"github.com/arcana-cloud/api-contract-tests/probe"
)

// DefaultMaxBodyBytes bounds how much of a response body is kept in an
// outcome when no explicit limit is configured.
const DefaultMaxBodyBytes = 2000

// StepRequest describes one step to execute and record: the request to make
// and the status code that counts as a pass.
type StepRequest struct {
	Name           string
	Method         string
	Endpoint       string
	ExpectedStatus int
	Body           interface{}
	Headers        map[string]string
}

// Executor runs steps against a single target and records their outcomes.
// It applies exactly one rule: a step passes when the actual status equals
// the expected status. Anything smarter (retries, fallbacks, conditional
// steps) belongs to the caller, which can use Attempt and RecordOutcome to
// build such policies without bypassing the record.
type Executor struct {
	baseURL      string
	client       *probe.Client
	result       *TargetResult
	stepLogger   StepLogger
	maxBodyBytes int
}

func NewExecutor(
	baseURL string,
	client *probe.Client,
	result *TargetResult,
	stepLogger StepLogger,
	maxBodyBytes int,
) *Executor {
	if stepLogger == nil {
		stepLogger = nullStepLogger{}
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &Executor{
		baseURL:      strings.TrimRight(baseURL, "/"),
		client:       client,
		result:       result,
		stepLogger:   stepLogger,
		maxBodyBytes: maxBodyBytes,
	}
}

// Execute performs the step's request, records the outcome, and returns it.
// Transport failures become failed outcomes with status 0 and the error text
// in ErrorMessage; they are never propagated as errors.
func (e *Executor) Execute(req StepRequest) TestOutcome {
	var capture logging.CapturingLogger
	res, err := e.Attempt(req.Method, req.Endpoint, req.Body, req.Headers, &capture)
	return e.RecordOutcome(OutcomeFor(req, res, err), capture.Output())
}

// OutcomeFor builds the outcome of a step from the probe result or transport
// error of the request that settled it.
func OutcomeFor(req StepRequest, res probe.Result, err error) TestOutcome {
	outcome := TestOutcome{
		Name:           req.Name,
		Method:         req.Method,
		Endpoint:       req.Endpoint,
		ExpectedStatus: req.ExpectedStatus,
		ActualStatus:   res.StatusCode,
		DurationMS:     DurationMS(res.Elapsed),
		ResponseBody:   res.Body,
	}
	switch {
	case err != nil:
		outcome.Verdict = Fail
		outcome.ErrorMessage = err.Error()
	case res.StatusCode == req.ExpectedStatus:
		outcome.Verdict = Pass
	default:
		outcome.Verdict = Fail
	}
	return outcome
}

// Attempt performs a request without recording anything. Callers that build
// multi-request policies record the outcome they settle on via
// RecordOutcome. The logger receives the exchange's debug output; pass nil
// to discard it.
func (e *Executor) Attempt(
	method, endpoint string,
	body interface{},
	headers map[string]string,
	logger logging.Logger,
) (probe.Result, error) {
	return e.client.Do(probe.Request{
		Method:  method,
		URL:     e.baseURL + endpoint,
		Body:    body,
		Headers: headers,
	}, logger)
}

// RecordOutcome appends an externally built outcome, truncating its stored
// body, and notifies the step logger.
func (e *Executor) RecordOutcome(outcome TestOutcome, debugOutput logging.CapturedOutput) TestOutcome {
	outcome.ResponseBody = truncate(outcome.ResponseBody, e.maxBodyBytes)
	e.result.Outcomes = append(e.result.Outcomes, outcome)
	e.stepLogger.StepFinished(outcome, debugOutput)
	return outcome
}

// Skip records a skipped outcome for a step that could not run, with the
// reason in ErrorMessage.
func (e *Executor) Skip(name, method, endpoint string, expectedStatus int, reason string) TestOutcome {
	outcome := TestOutcome{
		Name:           name,
		Method:         method,
		Endpoint:       endpoint,
		Verdict:        Skip,
		ExpectedStatus: expectedStatus,
		ErrorMessage:   reason,
	}
	return e.RecordOutcome(outcome, nil)
}

// DurationMS converts an elapsed time to milliseconds rounded to two
// decimal places, the precision the reports use.
func DurationMS(d time.Duration) float64 {
	return math.Round(float64(d)/float64(time.Millisecond)*100) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
