// Package auth holds the token verifier and the identity claim it produces.
// The claim is extracted once at the edge and propagated as a typed value;
// downstream code never re-derives identity from arbitrary headers.
package auth

// Propagation header names used between the gateway and backend services.
// These are internal-only: the gateway strips any client-supplied values
// before forwarding.
const (
	HeaderUserID   = "x-user-id"
	HeaderUserRole = "x-user-role"
	HeaderUserName = "x-user-name"
)

// Identity is the verified claim set carried per-request: who is calling,
// in which role, and under what display name. Once attached to a request it
// is treated as ground truth by every downstream component.
type Identity struct {
	SubjectID string
	Role      string
	Name      string
}
