package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// Kind selects which secret and lifetime a token is bound to. A token
// signed as one kind never verifies as the other.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// TokenPair is the unit of issuance: a short lived access token and a
// long lived refresh token minted from the same identity snapshot.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenConfig holds the two signing secrets and their lifetimes
type TokenConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
}

func (c TokenConfig) Validate() error {
	if len(c.AccessSecret) == 0 {
		return goerrors.New("access token secret must not be empty", goerrors.CategoryBadInput)
	}
	if len(c.RefreshSecret) == 0 {
		return goerrors.New("refresh token secret must not be empty", goerrors.CategoryBadInput)
	}
	if c.AccessTTL <= 0 {
		return goerrors.New("access token TTL must be positive", goerrors.CategoryBadInput)
	}
	if c.RefreshTTL <= 0 {
		return goerrors.New("refresh token TTL must be positive", goerrors.CategoryBadInput)
	}
	return nil
}

// TokenService signs and verifies the two token kinds
type TokenService struct {
	config TokenConfig
	logger Logger
	now    func() time.Time
}

// NewTokenService creates a TokenService from a validated config
func NewTokenService(config TokenConfig, logger Logger) (*TokenService, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = defLogger{}
	}

	return &TokenService{
		config: config,
		logger: logger,
		now:    time.Now,
	}, nil
}

// WithClock overrides the time source, mostly for tests
func (ts *TokenService) WithClock(now func() time.Time) *TokenService {
	if now != nil {
		ts.now = now
	}
	return ts
}

func (ts *TokenService) secretFor(kind Kind) ([]byte, time.Duration, error) {
	switch kind {
	case KindAccess:
		return ts.config.AccessSecret, ts.config.AccessTTL, nil
	case KindRefresh:
		return ts.config.RefreshSecret, ts.config.RefreshTTL, nil
	}
	return nil, 0, goerrors.New("unknown token kind", goerrors.CategoryInternal).
		WithMetadata(map[string]any{"kind": string(kind)})
}

// Sign mints a single token of the given kind for the identity
func (ts *TokenService) Sign(identity Identity, kind Kind) (string, error) {
	secret, ttl, err := ts.secretFor(kind)
	if err != nil {
		return "", err
	}

	if identity.IsZero() {
		return "", goerrors.New("cannot sign token for empty identity", goerrors.CategoryInternal)
	}

	now := ts.now()
	claims := &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.config.Issuer,
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Name:     identity.Name,
		Email:    identity.Email,
		UserRole: identity.Role,
		Banned:   identity.Banned,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign JWT")
	}

	return signed, nil
}

// IssuePair mints an access and a refresh token from the same snapshot
func (ts *TokenService) IssuePair(identity Identity) (TokenPair, error) {
	access, err := ts.Sign(identity, KindAccess)
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := ts.Sign(identity, KindRefresh)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Validate parses and verifies a token string against the secret for the
// given kind, returning the embedded claims
func (ts *TokenService) Validate(tokenString string, kind Kind) (*TokenClaims, error) {
	secret, _, err := ts.secretFor(kind)
	if err != nil {
		return nil, err
	}

	parserOptions := []jwt.ParserOption{
		jwt.WithTimeFunc(ts.now),
	}
	if ts.config.Issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.config.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, parserOptions...)

	if err != nil {
		if goerrors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		ts.logger.Error("TokenService validate could not decode claims")
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
