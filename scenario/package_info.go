// Package scenario contains the conformance scenario itself: the ordered
// capability groups, the steps within them, and the state threaded between
// steps, such as tokens captured at login and used for authenticated calls
// later.
//
// Harness infrastructure that is not specific to this API surface, such as
// executing a step and recording its outcome, is in the lower-level harness
// package.
package scenario
