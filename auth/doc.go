// Package auth implements the request authentication and authorization
// subsystem: a two-token (access/refresh) JWT codec and issuer, the cookie
// carrier that transports both tokens, the guard middleware that resolves an
// identity for every non-public request and silently rotates credentials,
// and the role gates evaluated after authentication.
//
// Token model:
//   - Every issuance produces an access/refresh pair encoding the same
//     identity snapshot, signed with two independent secrets and lifetimes.
//   - The guard tries the access token first; only when it fails does the
//     refresh token get a chance, and a successful refresh re-issues a fresh
//     pair on the outgoing response.
//   - All rejection paths collapse into a single access-denied error so the
//     response never reveals which verification step failed.
//
// Secrets are injected through Config at construction time and never read
// from ambient process state, which keeps the codec testable with throwaway
// keys.
package auth
