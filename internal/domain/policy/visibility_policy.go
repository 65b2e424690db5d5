// internal/domain/policy/visibility_policy.go
package policy

import (
	"github.com/TradeLite0/logistics-v2-api/internal/domain/principal"
	"github.com/TradeLite0/logistics-v2-api/internal/ports/repository"
)

// VisibilityFor maps a principal's role to the list predicate it is
// allowed to see:
//
//	company -> only shipments it owns (company_id = principal id)
//	driver  -> only shipments assigned to it (driver_id = principal id)
//	client and anything else -> the full table
//
// The permissive client default is inherited behavior, kept on purpose
// rather than silently tightened. A stricter policy would scope client
// reads to shipments carrying that client's own phone/email; tracked
// as an open question, not fixed here.
//
// Single-shipment fetches (by id or tracking number) carry no
// ownership check at all; tracking lookups are public.
func VisibilityFor(p principal.Principal) repository.ShipmentFilter {
	switch p.Role {
	case principal.RoleCompany:
		id := p.ID
		return repository.ShipmentFilter{CompanyID: &id}
	case principal.RoleDriver:
		id := p.ID
		return repository.ShipmentFilter{DriverID: &id}
	default:
		return repository.ShipmentFilter{}
	}
}
