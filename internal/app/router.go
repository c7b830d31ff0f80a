package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/kasira-pos/kasira-pos/internal/auth"
	"github.com/kasira-pos/kasira-pos/internal/catalog/categories"
	"github.com/kasira-pos/kasira-pos/internal/catalog/products"
	"github.com/kasira-pos/kasira-pos/internal/catalog/promotions"
	"github.com/kasira-pos/kasira-pos/internal/catalog/stores"
	"github.com/kasira-pos/kasira-pos/internal/catalog/suppliers"
	"github.com/kasira-pos/kasira-pos/internal/pos"
	"github.com/kasira-pos/kasira-pos/internal/report"
	"github.com/kasira-pos/kasira-pos/internal/shared"
	"github.com/kasira-pos/kasira-pos/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager

	AuthHandler       *auth.Handler
	POSHandler        *pos.Handler
	ReportHandler     *report.Handler
	ProductsHandler   *products.Handler
	CategoriesHandler *categories.Handler
	SuppliersHandler  *suppliers.Handler
	PromotionsHandler *promotions.Handler
	StoresHandler     *stores.Handler
	UsersHandler      *users.Handler
}

// NewRouter constructs the chi.Router with Kasira defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	// Cashier surface: any logged-in role.
	r.Group(func(r chi.Router) {
		r.Use(RequireAuthenticated)
		r.Route("/pos", params.POSHandler.MountRoutes)
	})

	// Back-office surface: admin only.
	r.Group(func(r chi.Router) {
		r.Use(RequireAdmin)
		r.Route("/catalog/products", params.ProductsHandler.MountRoutes)
		r.Route("/catalog/categories", params.CategoriesHandler.MountRoutes)
		r.Route("/catalog/suppliers", params.SuppliersHandler.MountRoutes)
		r.Route("/catalog/promotions", params.PromotionsHandler.MountRoutes)
		r.Route("/store", params.StoresHandler.MountRoutes)
		r.Route("/users", params.UsersHandler.MountRoutes)
		r.Route("/report", params.ReportHandler.MountRoutes)
	})

	return r
}
