package auth

// Roles within a company. There is no cross-tenant superuser; a company
// admin's authority ends at the company boundary.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Actor identifies who is performing a request: user, tenant, and role.
// It is threaded explicitly through every service call that needs
// authorization; nothing reads tenant state from globals.
type Actor struct {
	UserID    string
	CompanyID string
	Role      string
}

// CanManage reports whether the actor may administer resources belonging to
// the given company. This is the single authorization predicate applied at
// the handler boundary; core validation logic never checks roles.
func CanManage(actor Actor, companyID string) bool {
	if actor.UserID == "" || companyID == "" {
		return false
	}
	return actor.Role == RoleAdmin && actor.CompanyID == companyID
}

// SameCompany reports whether the actor belongs to the given company.
func SameCompany(actor Actor, companyID string) bool {
	return companyID != "" && actor.CompanyID == companyID
}
