package employee

// Role code values used by the staff directory.
const (
	RoleCodeDirector = 1
	RoleCodeStaff    = 2
	RoleCodeManager  = 3
)

// Role is the tagged variant derived from the directory's role code plus the
// position discriminator. Authorization predicates work against this, never
// against raw code/position comparisons.
type Role string

const (
	RoleStaff    Role = "staff"
	RoleManager  Role = "manager"
	RoleHRTeam   Role = "hr_team"
	RoleMD       Role = "md"
	RoleDirector Role = "director"
)

// RoleOf maps a directory role code and position to a Role. Code 1 covers
// directors, with "HR Team" and "MD" positions carrying wider scopes.
func RoleOf(code int, position string) Role {
	switch code {
	case RoleCodeStaff:
		return RoleStaff
	case RoleCodeManager:
		return RoleManager
	case RoleCodeDirector:
		switch position {
		case "HR Team":
			return RoleHRTeam
		case "MD":
			return RoleMD
		default:
			return RoleDirector
		}
	}
	return RoleStaff
}

// CompanyWideScope reports whether the role may read requests across the
// whole organisation.
func (r Role) CompanyWideScope() bool {
	return r == RoleHRTeam || r == RoleMD
}

// Employee is a staff directory record. The lifecycle engine treats it as
// immutable for the duration of a request; it is owned by the directory.
type Employee struct {
	StaffID          int64
	FirstName        string
	LastName         string
	Dept             string
	Position         string
	Country          string
	Email            string
	ReportingManager int64
	RoleCode         int
}

// Actor is the identity an operation is performed as, extracted from the
// caller's token and passed explicitly into every engine call.
type Actor struct {
	StaffID int64
	Role    Role
}
