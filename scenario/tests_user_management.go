package scenario

import (
	"github.com/arcana-cloud/api-contract-tests/envelope"
	"github.com/arcana-cloud/api-contract-tests/harness"
	"github.com/arcana-cloud/api-contract-tests/servicedef"
)

func doUserManagementTests(r *Runner) {
	headers := bearer(r.state.AdminToken)

	r.exec.Execute(harness.StepRequest{
		Name:           "Get All Users (Admin)",
		Method:         "GET",
		Endpoint:       servicedef.EndpointUsers,
		ExpectedStatus: 200,
		Headers:        headers,
	})

	if r.state.HasUserID() {
		r.exec.Execute(harness.StepRequest{
			Name:           "Get User By ID (Admin)",
			Method:         "GET",
			Endpoint:       servicedef.EndpointUserByID(r.state.UserID.IntValue()),
			ExpectedStatus: 200,
			Headers:        headers,
		})
	} else {
		r.exec.Skip("Get User By ID (Admin)", "GET", servicedef.EndpointUsers+"/{id}", 200,
			"no user ID was captured during registration")
	}

	outcome := r.exec.Execute(harness.StepRequest{
		Name:           "Create User (Admin)",
		Method:         "POST",
		Endpoint:       servicedef.EndpointUsers,
		ExpectedStatus: 201,
		Headers:        headers,
		Body: servicedef.CreateUserParams{
			Username:  "adminuser" + r.suffix,
			Email:     "admin" + r.suffix + "@example.com",
			Password:  testPassword,
			FirstName: "Admin",
			LastName:  "Created",
			Roles:     []string{"USER"},
		},
	})
	if outcome.Verdict == harness.Pass {
		r.state.CreatedUserID = envelope.EntityID(outcome.ResponseBody)
		if !r.state.HasCreatedUserID() {
			r.logger.Warning("Failed to extract the created user's ID")
		}
	}

	if r.state.HasCreatedUserID() {
		id := r.state.CreatedUserID.IntValue()
		r.exec.Execute(harness.StepRequest{
			Name:           "Update User (Admin)",
			Method:         "PUT",
			Endpoint:       servicedef.EndpointUserByID(id),
			ExpectedStatus: 200,
			Headers:        headers,
			Body:           servicedef.UpdateUserParams{FirstName: "Updated", LastName: "Name"},
		})
		r.exec.Execute(harness.StepRequest{
			Name:           "Delete User (Admin)",
			Method:         "DELETE",
			Endpoint:       servicedef.EndpointUserByID(id),
			ExpectedStatus: 200,
			Headers:        headers,
		})
	} else {
		r.exec.Skip("Update User (Admin)", "PUT", servicedef.EndpointUsers+"/{id}", 200,
			"no created user ID available")
		r.exec.Skip("Delete User (Admin)", "DELETE", servicedef.EndpointUsers+"/{id}", 200,
			"no created user ID available")
	}

	r.exec.Execute(harness.StepRequest{
		Name:           "Get Users Without Auth (should fail)",
		Method:         "GET",
		Endpoint:       servicedef.EndpointUsers,
		ExpectedStatus: 403,
	})
}
