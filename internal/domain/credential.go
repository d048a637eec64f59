package domain

// Role enumerates the roles a credential may carry.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleOwner
}

// CredentialRecord is one entry of the static credential table.
// SecretHash holds a bcrypt hash of the login secret; records are
// immutable after startup.
type CredentialRecord struct {
	Username   string
	SecretHash string
	Role       Role
}
