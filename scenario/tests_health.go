package scenario

import (
	"github.com/arcana-cloud/api-contract-tests/harness"
	"github.com/arcana-cloud/api-contract-tests/servicedef"
)

func doHealthCheckTests(r *Runner) {
	r.exec.Execute(harness.StepRequest{
		Name:           "Health Check",
		Method:         "GET",
		Endpoint:       servicedef.EndpointHealth,
		ExpectedStatus: 200,
	})
}
