package auth

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/nyaruka/phonenumbers"
)

// RegisterUserMessage carries a signup request
type RegisterUserMessage struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (m RegisterUserMessage) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&m.Email, validation.Required, is.EmailFormat),
		validation.Field(&m.Phone, validation.By(optionalPhone)),
		validation.Field(&m.Password, validation.Required, validation.Length(8, 72)),
	)
}

// optionalPhone accepts empty values and otherwise requires a parseable
// number in international format
func optionalPhone(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	parsed, err := phonenumbers.Parse(s, "")
	if err != nil {
		return fmt.Errorf("must be a phone number in international format")
	}

	if !phonenumbers.IsValidNumber(parsed) {
		return fmt.Errorf("must be a valid phone number")
	}

	return nil
}

// Auther turns credentials into issued token pairs
type Auther struct {
	provider IdentityProvider
	tokens   *TokenService
	logger   Logger
}

// NewAuthenticator returns a new Auther
func NewAuthenticator(provider IdentityProvider, tokens *TokenService) *Auther {
	return &Auther{
		provider: provider,
		tokens:   tokens,
		logger:   defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// TokenService returns the TokenService instance used by this Auther
func (s *Auther) TokenService() *TokenService {
	return s.tokens
}

// Login verifies credentials and issues a fresh token pair. Unknown
// accounts, wrong passwords and banned users all surface as
// ErrInvalidCredentials.
func (s *Auther) Login(ctx context.Context, identifier, password string) (Identity, TokenPair, error) {
	identity, err := s.provider.VerifyIdentity(ctx, identifier, password)
	if err != nil {
		s.logger.Info("Login verify identity failed", "identifier", identifier, "error", err)
		return Identity{}, TokenPair{}, ErrInvalidCredentials
	}

	if identity.IsZero() {
		s.logger.Error("Login identity is zero value", "identifier", identifier)
		return Identity{}, TokenPair{}, ErrInvalidCredentials
	}

	if identity.Banned {
		s.logger.Warn("Login blocked for banned identity", "subject", identity.ID)
		return Identity{}, TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(identity)
	if err != nil {
		s.logger.Error("Login failed to issue token pair", "error", err)
		return Identity{}, TokenPair{}, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to issue tokens")
	}

	return identity, pair, nil
}

// Register creates a new account and issues its first token pair
func (s *Auther) Register(ctx context.Context, msg RegisterUserMessage) (Identity, TokenPair, error) {
	if err := msg.Validate(); err != nil {
		return Identity{}, TokenPair{}, err
	}

	existing, err := s.provider.FindIdentityByEmail(ctx, msg.Email)
	if err == nil && !existing.IsZero() {
		return Identity{}, TokenPair{}, ErrAccountExists
	}
	if err != nil && !goerrors.IsNotFound(err) {
		s.logger.Error("Register lookup failed", "email", msg.Email, "error", err)
		return Identity{}, TokenPair{}, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check account")
	}

	identity, err := s.provider.CreateIdentity(ctx, msg)
	if err != nil {
		s.logger.Error("Register create identity failed", "email", msg.Email, "error", err)
		return Identity{}, TokenPair{}, err
	}

	pair, err := s.tokens.IssuePair(identity)
	if err != nil {
		s.logger.Error("Register failed to issue token pair", "error", err)
		return Identity{}, TokenPair{}, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to issue tokens")
	}

	return identity, pair, nil
}
