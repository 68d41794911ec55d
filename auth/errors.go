package auth

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// ErrAccessDenied is the single error surfaced for every authentication
// failure: missing carrier, expired or forged tokens, banned identity. The
// root cause stays in the logs, never in the response.
var ErrAccessDenied = goerrors.New("Error: Access denied", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("ACCESS_DENIED")

// ErrForbidden is returned when a valid identity fails a role gate
var ErrForbidden = goerrors.New("Error: Forbidden", goerrors.CategoryAuthz).
	WithCode(goerrors.CodeForbidden).
	WithTextCode("FORBIDDEN")

// ErrTokenExpired signals a structurally valid token past its expiry.
// Internal to the codec/guard; absorbed into ErrAccessDenied.
var ErrTokenExpired = goerrors.New("authentication token expired", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("TOKEN_EXPIRED")

// ErrTokenMalformed signals a token that fails signature or structural
// verification. Internal to the codec/guard; absorbed into ErrAccessDenied.
var ErrTokenMalformed = goerrors.New("invalid authentication token", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("TOKEN_MALFORMED")

// ErrInvalidCredentials is the uniform login failure: unknown account,
// wrong password, or banned user all read the same to the caller.
var ErrInvalidCredentials = goerrors.New("Error: Invalid username or password", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized).
	WithTextCode("INVALID_CREDENTIALS")

// ErrAccountExists is returned when registering an email that is taken
var ErrAccountExists = goerrors.New("Error: Account already exists", goerrors.CategoryConflict).
	WithTextCode("ACCOUNT_EXISTS")

// ErrIdentityNotFound is the error we return for non found identities
var ErrIdentityNotFound = goerrors.New("identity not found", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound)

// ErrEmptyPassword rejects empty cleartext passwords before hashing
var ErrEmptyPassword = goerrors.New("password must not be empty", goerrors.CategoryValidation)

// ErrMismatchedHashAndPassword is the bcrypt comparison failure
var ErrMismatchedHashAndPassword = goerrors.New("password does not match", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized)

// IsInvalidTokenError will check for codec verification failures,
// expiry included
func IsInvalidTokenError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrTokenExpired) || errors.Is(err, ErrTokenMalformed)
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrTokenExpired)
}
