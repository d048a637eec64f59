package domain

// Claim is the identity embedded in an issued token.
type Claim struct {
	Subject string
	Role    Role
}
