package scenario

import (
	"math/rand"

	"github.com/arcana-cloud/api-contract-tests/config"
	"github.com/arcana-cloud/api-contract-tests/harness"
)

const testPassword = "Password123"

// Runner executes the scenario groups against one target, threading captured
// state from earlier steps into later ones. A Runner is used for exactly one
// target and then discarded; state never leaks across targets.
type Runner struct {
	exec   *harness.Executor
	state  *SessionState
	admins []config.Credentials
	logger harness.StepLogger
	suffix string
}

func newRunner(exec *harness.Executor, admins []config.Credentials, logger harness.StepLogger) *Runner {
	return &Runner{
		exec:   exec,
		state:  &SessionState{},
		admins: admins,
		logger: logger,
		suffix: randomSuffix(6),
	}
}

type group struct {
	name  string
	guard func(*SessionState) bool
	skip  string
	run   func(*Runner)
}

// groups lists the capability groups in their required execution order. A
// group with a guard records no outcomes when the guard is false; its skip
// text tells the operator why.
func groups() []group {
	return []group{
		{name: "Health Check", run: doHealthCheckTests},
		{name: "Authentication", run: doAuthenticationTests},
		{
			name:  "Current User",
			guard: (*SessionState).HasUserToken,
			skip:  "no user token available",
			run:   doCurrentUserTests,
		},
		{
			name:  "User Management",
			guard: (*SessionState).HasAdminToken,
			skip:  "no admin token available",
			run:   doUserManagementTests,
		},
		{
			name:  "Logout",
			guard: (*SessionState).HasUserToken,
			skip:  "no user token available",
			run:   doLogoutTests,
		},
	}
}

func (r *Runner) RunGroups() {
	for _, g := range groups() {
		if g.guard != nil && !g.guard(r.state) {
			r.logger.GroupSkipped(g.name, g.skip)
			continue
		}
		r.logger.GroupStarted(g.name)
		g.run(r)
	}
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

const suffixChars = "abcdefghijklmnopqrstuvwxyz0123456789"

// randomSuffix makes usernames and emails unique per run so repeated runs
// against the same deployment do not collide on registration.
func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixChars[rand.Intn(len(suffixChars))]
	}
	return string(b)
}
