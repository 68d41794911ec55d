package api

import (
	"github.com/ayodele/storefront/auth"
	"github.com/ayodele/storefront/store"
	"github.com/goliatone/go-router"
)

// Deps is everything route registration needs
type Deps struct {
	Repo    store.RepositoryManager
	Auther  *auth.Auther
	Carrier *auth.Carrier
	Guard   *auth.Guard
	Logger  auth.Logger
}

// PublicEndpoints is the publicity marker for the whole API: the
// storefront catalog group plus the two credential endpoints. Everything
// else goes through the guard.
func PublicEndpoints() *auth.PublicRoutes {
	return auth.NewPublicRoutes().
		Group("/products").
		Route("POST", "/auth/register").
		Route("POST", "/auth/login")
}

// Register wires every controller into the router. The guard runs on
// all routes; the publicity marker decides which ones it skips.
func Register[T any](app router.Router[T], deps Deps) {
	if deps.Logger == nil {
		deps.Logger = auth.DefaultLogger()
	}

	app.Use(deps.Guard.Middleware())

	authCtrl := &AuthController{
		Auther:  deps.Auther,
		Carrier: deps.Carrier,
		Logger:  deps.Logger,
	}
	catalog := &CatalogController{
		Products: deps.Repo.Products(),
		Logger:   deps.Logger,
	}
	products := &ProductController{
		Products: deps.Repo.Products(),
		Logger:   deps.Logger,
	}
	admin := &AdminController{
		Repo:   deps.Repo,
		Auther: deps.Auther,
		Logger: deps.Logger,
	}

	app.Post("/auth/register", authCtrl.Register).SetName("auth.register")
	app.Post("/auth/login", authCtrl.Login).SetName("auth.login")
	app.Get("/auth/logout", authCtrl.Logout).SetName("auth.logout")

	app.Get("/products", catalog.Browse).SetName("catalog.browse")

	activeUser := auth.RequireActiveUser(failureHandler)
	app.Post("/user/product", products.Create, activeUser).SetName("user.product.create")
	app.Get("/user/products", products.ListOwn, activeUser).SetName("user.product.list")
	app.Patch("/user/product", products.Update, activeUser).SetName("user.product.update")
	app.Delete("/user/product/:id", products.Delete, activeUser).SetName("user.product.delete")

	elevated := auth.RequireAdmin(failureHandler)
	app.Get("/admin/users", admin.ListUsers, elevated).SetName("admin.users.list")
	app.Patch("/admin/user", admin.ModerateUser, elevated).SetName("admin.users.moderate")
	app.Get("/admin/products", admin.ListProducts, elevated).SetName("admin.products.list")
	app.Patch("/admin/product", admin.ModerateProduct, elevated).SetName("admin.products.moderate")

	superadmin := auth.RequireSuperAdmin(failureHandler)
	app.Post("/admin", admin.CreateAdmin, superadmin).SetName("admin.create")
}

// failureHandler renders guard and gate rejections with the envelope
func failureHandler(ctx router.Context, err error) error {
	return Failure(ctx, err)
}
