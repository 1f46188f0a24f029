// Package servicedef defines the request payloads and endpoint paths of the
// user service API surface that the conformance suite exercises.
package servicedef

import "fmt"

const (
	EndpointHealth   = "/actuator/health"
	EndpointRegister = "/api/v1/auth/register"
	EndpointLogin    = "/api/v1/auth/login"
	EndpointRefresh  = "/api/v1/auth/refresh"
	EndpointLogout   = "/api/v1/auth/logout"
	EndpointMe       = "/api/v1/me"
	EndpointUsers    = "/api/v1/users"
)

func EndpointUserByID(id int) string {
	return fmt.Sprintf("%s/%d", EndpointUsers, id)
}

type RegisterParams struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
}

type LoginParams struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

type RefreshParams struct {
	RefreshToken string `json:"refreshToken"`
}

type CreateUserParams struct {
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Roles     []string `json:"roles"`
}

type UpdateUserParams struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
