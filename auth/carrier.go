package auth

import (
	"encoding/base64"
	"encoding/json"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// DefaultCarrierCookie is the cookie name holding the encoded token pair
const DefaultCarrierCookie = "tokens"

// Carrier moves a TokenPair in and out of a single HTTP cookie. The
// cookie value is the base64url encoding of the pair's JSON form.
type Carrier struct {
	CookieName string
	Secure     bool
	TTL        time.Duration
}

// NewCarrier builds a Carrier with the given cookie lifetime. The TTL
// should match the refresh token lifetime so the cookie outlives the
// access token.
func NewCarrier(cookieName string, secure bool, ttl time.Duration) *Carrier {
	if cookieName == "" {
		cookieName = DefaultCarrierCookie
	}
	return &Carrier{
		CookieName: cookieName,
		Secure:     secure,
		TTL:        ttl,
	}
}

// EncodePair serializes a pair into the cookie wire form
func EncodePair(pair TokenPair) (string, error) {
	raw, err := json.Marshal(pair)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to encode token pair")
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// DecodePair parses the cookie wire form back into a pair. Any decoding
// failure reads as absent credentials.
func DecodePair(value string) (TokenPair, error) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return TokenPair{}, goerrors.Wrap(err, goerrors.CategoryAuth, "token carrier is not valid base64")
	}

	var pair TokenPair
	if err := json.Unmarshal(raw, &pair); err != nil {
		return TokenPair{}, goerrors.Wrap(err, goerrors.CategoryAuth, "token carrier is not valid JSON")
	}

	return pair, nil
}

// Read extracts the token pair from the request cookie. A missing or
// undecodable cookie returns ok false, never an error to the client.
func (cr *Carrier) Read(ctx router.Context) (TokenPair, bool) {
	value := ctx.Cookies(cr.CookieName)
	if value == "" {
		return TokenPair{}, false
	}

	pair, err := DecodePair(value)
	if err != nil {
		return TokenPair{}, false
	}

	if pair.AccessToken == "" && pair.RefreshToken == "" {
		return TokenPair{}, false
	}

	return pair, true
}

// Write stores the pair in the response cookie
func (cr *Carrier) Write(ctx router.Context, pair TokenPair) error {
	value, err := EncodePair(pair)
	if err != nil {
		return err
	}

	ctx.Cookie(&router.Cookie{
		Name:     cr.CookieName,
		Value:    value,
		Expires:  time.Now().Add(cr.TTL),
		HTTPOnly: true,
		Secure:   cr.Secure,
		SameSite: "Lax",
	})
	return nil
}

// Clear expires the carrier cookie
func (cr *Carrier) Clear(ctx router.Context) {
	ctx.Cookie(&router.Cookie{
		Name:     cr.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   cr.Secure,
		SameSite: "Lax",
	})
}
