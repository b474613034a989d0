package enums

// Role is the authorization role carried by a logged-in session. The wire
// values match the upstream Usuario records.
type Role string

const (
	RoleCustomer Role = "cliente"
	RoleAdmin    Role = "admin"
)

// Valid reports whether the value is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleAdmin:
		return true
	}
	return false
}
