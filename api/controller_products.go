package api

import (
	"net/http"

	"github.com/ayodele/storefront/auth"
	"github.com/ayodele/storefront/store"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// ErrProductNotFound is the client-facing miss for owned listings
var ErrProductNotFound = goerrors.New("Error: Product not found", goerrors.CategoryBadInput).
	WithTextCode("PRODUCT_NOT_FOUND")

// ProductController handles a seller's own listings
type ProductController struct {
	Products store.Products
	Logger   auth.Logger
}

// CreateProductPayload is the new listing body. Approval state is not
// part of the payload; every listing starts pending.
type CreateProductPayload struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Quantity    int      `json:"quantity"`
	Price       int64    `json:"price"`
	MediaURLs   []string `json:"media_urls"`
}

func (p CreateProductPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(2, 200)),
		validation.Field(&p.Quantity, validation.Min(0)),
		validation.Field(&p.Price, validation.Min(int64(0))),
	)
}

// Create adds a listing for the authenticated seller
func (c *ProductController) Create(ctx router.Context) error {
	identity, ok := auth.RouterIdentity(ctx, "")
	if !ok {
		return Failure(ctx, auth.ErrAccessDenied)
	}

	payload := new(CreateProductPayload)
	if err := ctx.Bind(payload); err != nil {
		return Failure(ctx, err)
	}

	if err := payload.Validate(); err != nil {
		return Failure(ctx, err)
	}

	ownerID, err := uuid.Parse(identity.ID)
	if err != nil {
		c.Logger.Error("product create bad subject", "subject", identity.ID)
		return Failure(ctx, goerrors.New("invalid identity subject", goerrors.CategoryInternal))
	}

	product, err := c.Products.Add(ctx.Context(), &store.Product{
		UserID:      ownerID,
		Name:        payload.Name,
		Description: payload.Description,
		Quantity:    payload.Quantity,
		Price:       payload.Price,
		MediaURLs:   payload.MediaURLs,
	})
	if err != nil {
		c.Logger.Error("product create", "error", err)
		return Failure(ctx, err)
	}

	return Success(ctx, http.StatusCreated, product, "Product created")
}

// ListOwn returns the seller's listings in every moderation state
func (c *ProductController) ListOwn(ctx router.Context) error {
	identity, ok := auth.RouterIdentity(ctx, "")
	if !ok {
		return Failure(ctx, auth.ErrAccessDenied)
	}

	ownerID, err := uuid.Parse(identity.ID)
	if err != nil {
		return Failure(ctx, goerrors.New("invalid identity subject", goerrors.CategoryInternal))
	}

	page, err := c.Products.List(ctx.Context(), store.ProductsFilter{
		Page:     ctx.QueryInt("page", 1),
		Limit:    ctx.QueryInt("limit", store.DefaultFetchLimit),
		Approval: store.ApprovalAny,
		UserID:   ownerID,
	})
	if err != nil {
		c.Logger.Error("product list own", "error", err)
		return Failure(ctx, err)
	}

	return Success(ctx, http.StatusOK, page, "Products fetched")
}

// UpdateProductPayload carries the listing id plus the patch fields
type UpdateProductPayload struct {
	ID string `json:"_id"`
	store.ProductPatch
}

func (p UpdateProductPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required, is.UUID),
	)
}

// Update patches one of the seller's listings
func (c *ProductController) Update(ctx router.Context) error {
	identity, ok := auth.RouterIdentity(ctx, "")
	if !ok {
		return Failure(ctx, auth.ErrAccessDenied)
	}

	payload := new(UpdateProductPayload)
	if err := ctx.Bind(payload); err != nil {
		return Failure(ctx, err)
	}

	if err := payload.Validate(); err != nil {
		return Failure(ctx, err)
	}

	ownerID, err := uuid.Parse(identity.ID)
	if err != nil {
		return Failure(ctx, goerrors.New("invalid identity subject", goerrors.CategoryInternal))
	}

	productID, err := uuid.Parse(payload.ID)
	if err != nil {
		return Failure(ctx, ErrProductNotFound)
	}

	product, err := c.Products.UpdateOwned(ctx.Context(), ownerID, productID, payload.ProductPatch)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return Failure(ctx, ErrProductNotFound)
		}
		c.Logger.Error("product update", "error", err)
		return Failure(ctx, err)
	}

	return Success(ctx, http.StatusOK, product, "Product updated")
}

// Delete removes one of the seller's listings
func (c *ProductController) Delete(ctx router.Context) error {
	identity, ok := auth.RouterIdentity(ctx, "")
	if !ok {
		return Failure(ctx, auth.ErrAccessDenied)
	}

	ownerID, err := uuid.Parse(identity.ID)
	if err != nil {
		return Failure(ctx, goerrors.New("invalid identity subject", goerrors.CategoryInternal))
	}

	productID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return Failure(ctx, ErrProductNotFound)
	}

	if err := c.Products.DeleteOwned(ctx.Context(), ownerID, productID); err != nil {
		if goerrors.IsNotFound(err) {
			return Failure(ctx, ErrProductNotFound)
		}
		c.Logger.Error("product delete", "error", err)
		return Failure(ctx, err)
	}

	return Success(ctx, http.StatusOK, nil, "Product deleted")
}
