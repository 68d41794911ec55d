package auth

// Identity holds the claims describing who is making a request. It is
// constructed from the persisted account record at login/registration time
// and re-materialized from token claims on every authenticated request; it
// is never mutated in place.
type Identity struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Banned bool   `json:"banned"`
}

// IsZero reports whether the identity carries no subject
func (i Identity) IsZero() bool {
	return i.ID == ""
}

// ActiveUser checks if this is an ordinary customer in good standing
func (i Identity) ActiveUser() bool {
	return i.Role == RoleUser && !i.Banned
}
