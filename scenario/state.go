package scenario

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

// SessionState holds the credentials and identifiers captured while a
// target's scenario progresses. All fields start unset and are filled in
// opportunistically as steps succeed; later steps consult them through the
// named predicates below rather than ad hoc emptiness checks, so every skip
// condition in the scenario has a name.
type SessionState struct {
	AdminToken       string
	UserToken        string
	UserRefreshToken string
	UserID           ldvalue.OptionalInt
	CreatedUserID    ldvalue.OptionalInt
}

func (s *SessionState) HasAdminToken() bool { return s.AdminToken != "" }

func (s *SessionState) HasUserToken() bool { return s.UserToken != "" }

func (s *SessionState) HasUserID() bool { return s.UserID.IsDefined() }

func (s *SessionState) HasCreatedUserID() bool { return s.CreatedUserID.IsDefined() }
