package api

import (
	"net/http"

	"github.com/ayodele/storefront/auth"
	"github.com/ayodele/storefront/store"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// ErrUserNotFound is the client-facing miss for account moderation
var ErrUserNotFound = goerrors.New("Error: User not found", goerrors.CategoryBadInput).
	WithTextCode("USER_NOT_FOUND")

// ErrBadDecision rejects unknown moderation decisions
var ErrBadDecision = goerrors.New("Error: Invalid decision", goerrors.CategoryBadInput).
	WithTextCode("INVALID_DECISION")

// AdminController covers account and listing moderation
type AdminController struct {
	Repo   store.RepositoryManager
	Auther *auth.Auther
	Logger auth.Logger
}

// CreateAdmin registers an elevated account. Superadmin only.
func (a *AdminController) CreateAdmin(ctx router.Context) error {
	payload := new(auth.RegisterUserMessage)
	if err := ctx.Bind(payload); err != nil {
		return Failure(ctx, err)
	}

	if err := payload.Validate(); err != nil {
		return Failure(ctx, err)
	}

	if _, err := a.Repo.Users().GetByEmail(ctx.Context(), payload.Email); err == nil {
		return Failure(ctx, auth.ErrAccountExists)
	} else if !goerrors.IsNotFound(err) {
		a.Logger.Error("create admin lookup", "error", err)
		return Failure(ctx, err)
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		return Failure(ctx, err)
	}

	user, err := a.Repo.Users().Register(ctx.Context(), &store.User{
		Name:         payload.Name,
		Email:        payload.Email,
		Phone:        payload.Phone,
		PasswordHash: hash,
		Role:         auth.RoleAdmin,
	})
	if err != nil {
		a.Logger.Error("create admin register", "error", err)
		return Failure(ctx, err)
	}

	return Success(ctx, http.StatusCreated, user.Identity(), "Admin created")
}

// parseAccountFilter maps banned|active|all onto the repository filter
func parseAccountFilter(value string) (*bool, bool) {
	switch value {
	case "banned":
		banned := true
		return &banned, true
	case "active":
		banned := false
		return &banned, true
	case "all", "":
		return nil, true
	}
	return nil, false
}

// ListUsers returns shopper accounts, filtered banned|active|all
func (a *AdminController) ListUsers(ctx router.Context) error {
	banned, ok := parseAccountFilter(ctx.Query("filter", "all"))
	if !ok {
		return Failure(ctx, goerrors.New("Error: Invalid filter", goerrors.CategoryBadInput))
	}

	page, err := a.Repo.Users().List(ctx.Context(), store.UsersFilter{
		Page:   ctx.QueryInt("page", 1),
		Limit:  ctx.QueryInt("limit", store.DefaultFetchLimit),
		Banned: banned,
		Role:   auth.RoleUser,
	})
	if err != nil {
		a.Logger.Error("admin list users", "error", err)
		return Failure(ctx, err)
	}

	return Success(ctx, http.StatusOK, page, "Users fetched")
}

// ModerateUser bans or unbans an account via ?_id=&decision=
func (a *AdminController) ModerateUser(ctx router.Context) error {
	id, err := uuid.Parse(ctx.Query("_id", ""))
	if err != nil {
		return Failure(ctx, ErrUserNotFound)
	}

	var banned bool
	var message string
	switch ctx.Query("decision", "") {
	case "ban":
		banned, message = true, "User banned"
	case "unban":
		banned, message = false, "User unbanned"
	default:
		return Failure(ctx, ErrBadDecision)
	}

	user, err := a.Repo.Users().SetBanned(ctx.Context(), id, banned)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return Failure(ctx, ErrUserNotFound)
		}
		a.Logger.Error("admin moderate user", "error", err)
		return Failure(ctx, err)
	}

	return Success(ctx, http.StatusOK, map[string]string{"name": user.Name}, message)
}

// ListProducts returns listings filtered pending|approved|rejected|all
func (a *AdminController) ListProducts(ctx router.Context) error {
	filter := store.ApprovalFilter(ctx.Query("filter", string(store.ApprovalAny)))
	if !filter.IsValid() {
		return Failure(ctx, goerrors.New("Error: Invalid filter", goerrors.CategoryBadInput))
	}

	page, err := a.Repo.Products().List(ctx.Context(), store.ProductsFilter{
		Page:     ctx.QueryInt("page", 1),
		Limit:    ctx.QueryInt("limit", store.DefaultFetchLimit),
		Approval: filter,
	})
	if err != nil {
		a.Logger.Error("admin list products", "error", err)
		return Failure(ctx, err)
	}

	return Success(ctx, http.StatusOK, page, "Products fetched")
}

// ModerateProduct approves or rejects a listing via ?_id=&decision=
func (a *AdminController) ModerateProduct(ctx router.Context) error {
	id, err := uuid.Parse(ctx.Query("_id", ""))
	if err != nil {
		return Failure(ctx, ErrProductNotFound)
	}

	var approved bool
	var message string
	switch ctx.Query("decision", "") {
	case "approve":
		approved, message = true, "Product approved"
	case "reject":
		approved, message = false, "Product rejected"
	default:
		return Failure(ctx, ErrBadDecision)
	}

	product, err := a.Repo.Products().SetApproval(ctx.Context(), id, approved)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return Failure(ctx, ErrProductNotFound)
		}
		a.Logger.Error("admin moderate product", "error", err)
		return Failure(ctx, err)
	}

	return Success(ctx, http.StatusOK, product, message)
}
