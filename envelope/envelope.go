// Package envelope reads values out of the service's standard response
// envelope, in which payloads are wrapped in a top-level "data" object.
// Extraction is deliberately tolerant: responses that are not JSON, or that
// lack the expected fields, yield empty values rather than errors, because a
// malformed body has already been judged by the step's status check.
package envelope

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Session holds the credentials found in an authentication response.
type Session struct {
	AccessToken  string
	RefreshToken string
	UserID       ldvalue.OptionalInt
}

// Tokens extracts the access token, refresh token, and user ID from a
// register or login response body. Missing fields come back as zero values.
func Tokens(body string) Session {
	data := ldvalue.Parse([]byte(body)).GetByKey("data")
	return Session{
		AccessToken:  data.GetByKey("accessToken").StringValue(),
		RefreshToken: data.GetByKey("refreshToken").StringValue(),
		UserID:       optionalInt(data.GetByKey("user").GetByKey("id")),
	}
}

// EntityID extracts the numeric id field of an entity response body, such as
// the response to creating a user.
func EntityID(body string) ldvalue.OptionalInt {
	return optionalInt(ldvalue.Parse([]byte(body)).GetByKey("data").GetByKey("id"))
}

func optionalInt(v ldvalue.Value) ldvalue.OptionalInt {
	if !v.IsNumber() {
		return ldvalue.OptionalInt{}
	}
	return ldvalue.NewOptionalInt(v.IntValue())
}
