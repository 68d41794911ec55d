package auth_test

import (
	"testing"

	"github.com/ayodele/storefront/auth"
	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func gateContext(identity any) *MockContext {
	ctx := &MockContext{}
	ctx.On("Locals", auth.DefaultContextKey).Return(identity)
	return ctx
}

func expectForbidden(t *testing.T, ctx *MockContext) {
	t.Helper()
	ctx.On("JSON", 403, mock.Anything).Run(func(args mock.Arguments) {
		body := args.Get(1).(map[string]any)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, 403, body["statusCode"])
	}).Return(nil)
}

func runGate(t *testing.T, gate router.MiddlewareFunc, ctx *MockContext) {
	t.Helper()
	handler := gate(func(c router.Context) error {
		return c.Next()
	})
	require.NoError(t, handler(ctx))
}

func TestRequireActiveUser(t *testing.T) {
	gate := auth.RequireActiveUser(nil)

	t.Run("admits active user", func(t *testing.T) {
		ctx := gateContext(auth.Identity{ID: "1", Role: auth.RoleUser})
		runGate(t, gate, ctx)
		assert.True(t, ctx.NextCalled)
	})

	t.Run("rejects banned user", func(t *testing.T) {
		ctx := gateContext(auth.Identity{ID: "1", Role: auth.RoleUser, Banned: true})
		expectForbidden(t, ctx)
		runGate(t, gate, ctx)
		assert.False(t, ctx.NextCalled)
	})

	t.Run("rejects elevated roles", func(t *testing.T) {
		for _, role := range []auth.Role{auth.RoleAdmin, auth.RoleSuperAdmin} {
			ctx := gateContext(auth.Identity{ID: "1", Role: role})
			expectForbidden(t, ctx)
			runGate(t, gate, ctx)
			assert.False(t, ctx.NextCalled)
		}
	})

	t.Run("fails closed without identity", func(t *testing.T) {
		ctx := gateContext(nil)
		expectForbidden(t, ctx)
		runGate(t, gate, ctx)
		assert.False(t, ctx.NextCalled)
	})
}

func TestRequireAdmin(t *testing.T) {
	gate := auth.RequireAdmin(nil)

	t.Run("admits admin and superadmin", func(t *testing.T) {
		for _, role := range []auth.Role{auth.RoleAdmin, auth.RoleSuperAdmin} {
			ctx := gateContext(auth.Identity{ID: "1", Role: role})
			runGate(t, gate, ctx)
			assert.True(t, ctx.NextCalled)
		}
	})

	t.Run("rejects base user", func(t *testing.T) {
		ctx := gateContext(auth.Identity{ID: "1", Role: auth.RoleUser})
		expectForbidden(t, ctx)
		runGate(t, gate, ctx)
		assert.False(t, ctx.NextCalled)
	})
}

func TestRequireSuperAdmin(t *testing.T) {
	gate := auth.RequireSuperAdmin(nil)

	t.Run("admits superadmin only", func(t *testing.T) {
		ctx := gateContext(auth.Identity{ID: "1", Role: auth.RoleSuperAdmin})
		runGate(t, gate, ctx)
		assert.True(t, ctx.NextCalled)
	})

	t.Run("rejects admin", func(t *testing.T) {
		ctx := gateContext(auth.Identity{ID: "1", Role: auth.RoleAdmin})
		expectForbidden(t, ctx)
		runGate(t, gate, ctx)
		assert.False(t, ctx.NextCalled)
	})
}

func TestGates_CustomErrorHandler(t *testing.T) {
	var handled error
	gate := auth.RequireAdmin(func(ctx router.Context, err error) error {
		handled = err
		return nil
	})

	ctx := gateContext(auth.Identity{ID: "1", Role: auth.RoleUser})
	runGate(t, gate, ctx)

	assert.False(t, ctx.NextCalled)
	assert.ErrorIs(t, handled, auth.ErrForbidden)
}
