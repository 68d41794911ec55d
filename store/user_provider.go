package store

import (
	"context"

	"github.com/ayodele/storefront/auth"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
)

// UserProvider backs auth.IdentityProvider with the users repository
type UserProvider struct {
	users  Users
	logger auth.Logger
}

var _ auth.IdentityProvider = (*UserProvider)(nil)

// NewUserProvider will create a new UserProvider
func NewUserProvider(users Users) *UserProvider {
	return &UserProvider{
		users: users,
	}
}

func (u *UserProvider) WithLogger(l auth.Logger) *UserProvider {
	u.logger = l
	return u
}

// VerifyIdentity will find the user, compare the password, and return
// the identity snapshot
func (u *UserProvider) VerifyIdentity(ctx context.Context, identifier, password string) (auth.Identity, error) {
	user, err := u.users.GetByEmail(ctx, identifier)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return auth.Identity{}, auth.ErrMismatchedHashAndPassword
		}
		return auth.Identity{}, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user during verification")
	}

	if err := auth.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return auth.Identity{}, auth.ErrMismatchedHashAndPassword
	}

	return user.Identity(), nil
}

func (u *UserProvider) FindIdentityByEmail(ctx context.Context, email string) (auth.Identity, error) {
	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		return auth.Identity{}, err
	}
	return user.Identity(), nil
}

// CreateIdentity registers a new shopper account
func (u *UserProvider) CreateIdentity(ctx context.Context, msg auth.RegisterUserMessage) (auth.Identity, error) {
	hash, err := auth.HashPassword(msg.Password)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return auth.Identity{}, goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid password provided")
		}
		return auth.Identity{}, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	user := &User{
		Name:         msg.Name,
		Email:        msg.Email,
		Phone:        msg.Phone,
		PasswordHash: hash,
		Role:         auth.RoleUser,
	}

	if id, err := hashid.NewUUID(msg.Email); err == nil {
		user.ID = id
	}

	user, err = u.users.Register(ctx, user)
	if err != nil {
		return auth.Identity{}, goerrors.Wrap(err, goerrors.CategoryConflict, "could not create user")
	}

	return user.Identity(), nil
}
