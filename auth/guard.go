package auth

import (
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// GuardConfig wires the guard middleware
type GuardConfig struct {
	Tokens *TokenService
	// Carrier reads and writes the token cookie. Required.
	Carrier *Carrier
	// Public marks routes that skip the guard entirely
	Public *PublicRoutes
	// ContextKey is the locals key the identity is stored under
	ContextKey string
	Logger     Logger
	// ErrorHandler renders rejections. Every rejection reaches it as
	// ErrAccessDenied regardless of cause.
	ErrorHandler func(router.Context, error) error
}

// Guard authenticates every request that is not marked public. It tries
// the access token first; when that fails verification it falls back to
// the refresh token and, on success, silently re-issues a fresh pair
// before letting the request through.
type Guard struct {
	tokens       *TokenService
	carrier      *Carrier
	public       *PublicRoutes
	contextKey   string
	logger       Logger
	errorHandler func(router.Context, error) error
}

// NewGuard validates the config and builds a Guard
func NewGuard(cfg GuardConfig) (*Guard, error) {
	if cfg.Tokens == nil {
		return nil, goerrors.New("guard requires a token service", goerrors.CategoryBadInput)
	}
	if cfg.Carrier == nil {
		return nil, goerrors.New("guard requires a token carrier", goerrors.CategoryBadInput)
	}

	g := &Guard{
		tokens:       cfg.Tokens,
		carrier:      cfg.Carrier,
		public:       cfg.Public,
		contextKey:   cfg.ContextKey,
		logger:       cfg.Logger,
		errorHandler: cfg.ErrorHandler,
	}

	if g.public == nil {
		g.public = NewPublicRoutes()
	}
	if g.contextKey == "" {
		g.contextKey = DefaultContextKey
	}
	if g.logger == nil {
		g.logger = defLogger{}
	}
	if g.errorHandler == nil {
		g.errorHandler = g.defaultErrorHandler
	}

	return g, nil
}

// Middleware returns the guard as router middleware
func (g *Guard) Middleware() router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			if g.public.IsPublic(ctx.Method(), ctx.Path()) {
				return next(ctx)
			}

			pair, ok := g.carrier.Read(ctx)
			if !ok {
				return g.reject(ctx, goerrors.New("no token carrier on request", goerrors.CategoryAuth))
			}

			identity, err := g.authenticate(ctx, pair)
			if err != nil {
				return g.reject(ctx, err)
			}

			ctx.Locals(g.contextKey, identity)
			ctx.SetContext(WithIdentity(ctx.Context(), identity))

			return next(ctx)
		}
	}
}

// authenticate runs the access-then-refresh verification chain
func (g *Guard) authenticate(ctx router.Context, pair TokenPair) (Identity, error) {
	if pair.AccessToken != "" {
		claims, err := g.tokens.Validate(pair.AccessToken, KindAccess)
		if err == nil {
			return g.admit(claims)
		}
		if !IsTokenExpiredError(err) {
			g.logger.Debug("Guard access token failed verification", "error", err)
		}
	}

	if pair.RefreshToken == "" {
		return Identity{}, goerrors.New("no refresh token to fall back to", goerrors.CategoryAuth)
	}

	claims, err := g.tokens.Validate(pair.RefreshToken, KindRefresh)
	if err != nil {
		return Identity{}, err
	}

	identity, err := g.admit(claims)
	if err != nil {
		return Identity{}, err
	}

	fresh, err := g.tokens.IssuePair(identity)
	if err != nil {
		g.logger.Error("Guard failed to rotate token pair", "error", err)
		return Identity{}, err
	}

	// a canceled request gets no cookie write
	if ctx.Context().Err() == nil {
		if err := g.carrier.Write(ctx, fresh); err != nil {
			g.logger.Error("Guard failed to write rotated carrier", "error", err)
			return Identity{}, err
		}
		g.logger.Debug("Guard rotated token pair", "subject", identity.ID)
	}

	return identity, nil
}

// admit converts verified claims into an identity and applies the ban
// check, which short-circuits both token paths
func (g *Guard) admit(claims *TokenClaims) (Identity, error) {
	identity, err := claims.Identity()
	if err != nil {
		return Identity{}, err
	}

	if identity.Banned {
		return Identity{}, goerrors.New("identity is banned", goerrors.CategoryAuth).
			WithMetadata(map[string]any{"subject": identity.ID})
	}

	return identity, nil
}

func (g *Guard) reject(ctx router.Context, cause error) error {
	g.logger.Info(
		"Guard rejected request",
		"method", ctx.Method(),
		"path", ctx.Path(),
		"cause", cause.Error(),
	)
	return g.errorHandler(ctx, ErrAccessDenied)
}

func (g *Guard) defaultErrorHandler(ctx router.Context, err error) error {
	richErr := ErrAccessDenied
	return ctx.JSON(richErr.Code, map[string]any{
		"data":       nil,
		"message":    richErr.Message,
		"statusCode": richErr.Code,
		"success":    false,
	})
}
