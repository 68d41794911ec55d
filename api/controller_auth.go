package api

import (
	"net/http"

	"github.com/ayodele/storefront/auth"
	"github.com/goliatone/go-router"
)

// AuthController exposes register, login and logout
type AuthController struct {
	Auther  *auth.Auther
	Carrier *auth.Carrier
	Logger  auth.Logger
}

// Register creates an account and signs the caller in
func (a *AuthController) Register(ctx router.Context) error {
	payload := new(auth.RegisterUserMessage)
	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("register parse payload", "error", err)
		return Failure(ctx, err)
	}

	identity, pair, err := a.Auther.Register(ctx.Context(), *payload)
	if err != nil {
		a.Logger.Info("register failed", "email", payload.Email, "error", err)
		return Failure(ctx, err)
	}

	if err := a.Carrier.Write(ctx, pair); err != nil {
		a.Logger.Error("register carrier write", "error", err)
		return Failure(ctx, err)
	}

	return Success(ctx, http.StatusCreated, identity, "User created")
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and sets the token cookie
func (a *AuthController) Login(ctx router.Context) error {
	payload := new(LoginRequest)
	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return Failure(ctx, err)
	}

	identity, pair, err := a.Auther.Login(ctx.Context(), payload.Email, payload.Password)
	if err != nil {
		a.Logger.Info("login failed", "email", payload.Email)
		return Failure(ctx, err)
	}

	if err := a.Carrier.Write(ctx, pair); err != nil {
		a.Logger.Error("login carrier write", "error", err)
		return Failure(ctx, err)
	}

	return Success(ctx, http.StatusCreated, identity, "Logged in")
}

// Logout clears the token cookie
func (a *AuthController) Logout(ctx router.Context) error {
	a.Carrier.Clear(ctx)
	return Success(ctx, http.StatusOK, nil, "Logged out")
}
