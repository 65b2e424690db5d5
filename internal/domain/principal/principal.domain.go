package principal

import "github.com/google/uuid"

type Role string

const (
	RoleClient  Role = "client"
	RoleCompany Role = "company"
	RoleDriver  Role = "driver"
)

// Principal is the authenticated caller for one request: who they are
// and what role scopes their visibility. Derived from the bearer
// credential per request, never persisted by this service.
type Principal struct {
	ID   uuid.UUID
	Role Role
}
