package auth

import (
	"github.com/goliatone/go-router"
)

// GateErrorHandler renders role gate rejections
type GateErrorHandler func(router.Context, error) error

// RequireActiveUser admits identities holding the base user role that
// are not banned. Elevated roles do not pass; the storefront belongs
// to shoppers.
func RequireActiveUser(onError GateErrorHandler) router.MiddlewareFunc {
	return requireRole(onError, func(identity Identity) bool {
		return identity.ActiveUser()
	})
}

// RequireAdmin admits admin and superadmin identities
func RequireAdmin(onError GateErrorHandler) router.MiddlewareFunc {
	return requireRole(onError, func(identity Identity) bool {
		return identity.Role.IsElevated()
	})
}

// RequireSuperAdmin admits only the superadmin role
func RequireSuperAdmin(onError GateErrorHandler) router.MiddlewareFunc {
	return requireRole(onError, func(identity Identity) bool {
		return identity.Role.IsSuperAdmin()
	})
}

// requireRole fails closed: a missing identity rejects the same as an
// insufficient one
func requireRole(onError GateErrorHandler, allowed func(Identity) bool) router.MiddlewareFunc {
	if onError == nil {
		onError = defaultGateError
	}
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			identity, ok := RouterIdentity(ctx, "")
			if !ok || !allowed(identity) {
				return onError(ctx, ErrForbidden)
			}
			return next(ctx)
		}
	}
}

func defaultGateError(ctx router.Context, err error) error {
	richErr := ErrForbidden
	return ctx.JSON(richErr.Code, map[string]any{
		"data":       nil,
		"message":    richErr.Message,
		"statusCode": richErr.Code,
		"success":    false,
	})
}
