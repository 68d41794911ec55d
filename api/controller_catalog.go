package api

import (
	"net/http"

	"github.com/ayodele/storefront/auth"
	"github.com/ayodele/storefront/store"
	"github.com/goliatone/go-router"
)

// CatalogController serves the public storefront
type CatalogController struct {
	Products store.Products
	Logger   auth.Logger
}

// Browse lists approved products, paginated
func (c *CatalogController) Browse(ctx router.Context) error {
	page, err := c.Products.List(ctx.Context(), store.ProductsFilter{
		Page:     ctx.QueryInt("page", 1),
		Limit:    ctx.QueryInt("limit", store.DefaultFetchLimit),
		Approval: store.ApprovalApproved,
	})
	if err != nil {
		c.Logger.Error("catalog browse", "error", err)
		return Failure(ctx, err)
	}

	return Success(ctx, http.StatusOK, page, "Products fetched")
}
