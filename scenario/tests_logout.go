package scenario

import (
	"github.com/arcana-cloud/api-contract-tests/harness"
	"github.com/arcana-cloud/api-contract-tests/servicedef"
)

func doLogoutTests(r *Runner) {
	r.exec.Execute(harness.StepRequest{
		Name:           "Logout",
		Method:         "POST",
		Endpoint:       servicedef.EndpointLogout,
		ExpectedStatus: 200,
		Headers:        bearer(r.state.UserToken),
	})
}
