package scenario

import (
	"github.com/arcana-cloud/api-contract-tests/harness"
	"github.com/arcana-cloud/api-contract-tests/servicedef"
)

func doCurrentUserTests(r *Runner) {
	r.exec.Execute(harness.StepRequest{
		Name:           "Get Current User Profile",
		Method:         "GET",
		Endpoint:       servicedef.EndpointMe,
		ExpectedStatus: 200,
		Headers:        bearer(r.state.UserToken),
	})
}
