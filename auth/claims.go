package auth

import (
	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// TokenClaims is the identity snapshot embedded in every issued token.
// Access and refresh tokens for a given pair carry the same snapshot.
type TokenClaims struct {
	jwt.RegisteredClaims
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	UserRole Role   `json:"role,omitempty"`
	Banned   bool   `json:"banned,omitempty"`
}

// Identity materializes the claims back into an Identity, rejecting
// snapshots whose role is outside the known set.
func (c *TokenClaims) Identity() (Identity, error) {
	if c.Subject == "" {
		return Identity{}, goerrors.New("token claims missing subject", goerrors.CategoryAuth)
	}

	if !c.UserRole.IsValid() {
		return Identity{}, goerrors.New("token claims carry unknown role", goerrors.CategoryAuth).
			WithMetadata(map[string]any{"role": string(c.UserRole)})
	}

	return Identity{
		ID:     c.Subject,
		Name:   c.Name,
		Email:  c.Email,
		Role:   c.UserRole,
		Banned: c.Banned,
	}, nil
}
