package model

// System role keys. The set is closed: every user carries exactly one of
// these, and authorization is a membership check against per-operation
// capability sets rather than a permission hierarchy.
const (
	RoleHLM       = "High-Level Manager"
	RoleMLM       = "Middle-Level Manager"
	RoleEM        = "Employee Manager"
	RoleSalesRep  = "Sales Rep"
	RoleFrontDesk = "Front Desk"
	RoleStore     = "Store Personnel"
	RoleLab       = "Lab Personnel"
	RoleDelivery  = "Delivery Personnel"
)

// AllRoles lists every assignable role key.
var AllRoles = []string{
	RoleHLM,
	RoleMLM,
	RoleEM,
	RoleSalesRep,
	RoleFrontDesk,
	RoleStore,
	RoleLab,
	RoleDelivery,
}

// Capability sets for the gated operations. Superusers bypass these checks
// entirely (see HasCapability).
var (
	// ManagerRoles may register users and view the employee directory.
	ManagerRoles = []string{RoleHLM, RoleMLM}
	// OverrideRoles may force an employee's attendance status.
	OverrideRoles = []string{RoleEM, RoleMLM, RoleHLM}
	// FrontDeskRoles may update order status and assign dispatch.
	FrontDeskRoles = []string{RoleFrontDesk}
	// QCProofRoles may upload QC photos.
	QCProofRoles = []string{RoleStore, RoleLab}
	// PODProofRoles may upload proof-of-delivery photos.
	PODProofRoles = []string{RoleDelivery}
)

// ValidRole reports whether role is one of the assignable role keys.
func ValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// RoleIn reports whether role is a member of the allowed set.
func RoleIn(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
