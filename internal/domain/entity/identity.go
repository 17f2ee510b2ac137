package entity

// Role is one of the three fixed account kinds.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleDoctor || r == RolePatient
}

// Identity is the resolved account behind a verified token. Exactly one of
// the three pointers is set, matching Role. It is produced once per request
// by token verification and passed explicitly instead of re-deriving the
// role in every component.
type Identity struct {
	Role    Role
	Admin   *Admin
	Doctor  *Doctor
	Patient *Patient
}
