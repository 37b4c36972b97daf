package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/levkatan/lending-management/internal/auth"
	"github.com/levkatan/lending-management/internal/donation"
	"github.com/levkatan/lending-management/internal/loan"
	"github.com/levkatan/lending-management/internal/product"
	"github.com/levkatan/lending-management/internal/settings"
	"github.com/levkatan/lending-management/internal/transport/middleware"
	"github.com/levkatan/lending-management/internal/transport/swagger"
	"github.com/levkatan/lending-management/internal/user"
)

// RegisterAllRoutes wires every handler onto the mux. Role gating happens in
// exactly one place per group: AuthMiddleware establishes the principal, and
// RequireRoles guards the staff and admin groups.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	productHandler *product.Handler,
	loanHandler *loan.Handler,
	donationHandler *donation.Handler,
	settingsHandler *settings.Handler,
	userHandler *user.Handler,
	allowedOrigins string,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.Metrics)

	// Operational endpoints outside the API prefix.
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", authHandler.Register)
			sr.Post("/login", authHandler.Login)
			sr.Post("/refresh", authHandler.RefreshToken)
			sr.Post("/logout", authHandler.Logout)
		})

		// Catalog browsing is public.
		r.Get("/products", productHandler.ListProducts)
		r.Get("/products/{id}", productHandler.GetProduct)

		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Route("/loans", func(lr chi.Router) {
				lr.Post("/", loanHandler.CreateBorrow)
				lr.Get("/mine", loanHandler.ListMyBorrows)
				lr.Post("/{id}/return", loanHandler.ReturnBorrow)
				lr.Post("/{id}/extensions", loanHandler.RequestExtension)

				lr.Group(func(sr chi.Router) {
					sr.Use(authHandler.RequireRoles(auth.StaffRoles...))
					sr.Get("/pending", loanHandler.ListPendingBorrows)
					sr.Patch("/{id}/approve", loanHandler.ApproveBorrow)
					sr.Patch("/{id}/reject", loanHandler.RejectBorrow)
				})
			})

			pr.Route("/extensions", func(er chi.Router) {
				er.Use(authHandler.RequireRoles(auth.StaffRoles...))
				er.Get("/pending", loanHandler.ListPendingExtensions)
				er.Patch("/{id}/approve", loanHandler.ApproveExtension)
				er.Patch("/{id}/reject", loanHandler.RejectExtension)
			})

			pr.Route("/donations", func(dr chi.Router) {
				dr.Post("/", donationHandler.CreateDonation)
				dr.Get("/mine", donationHandler.ListMyDonations)

				dr.Group(func(sr chi.Router) {
					sr.Use(authHandler.RequireRoles(auth.StaffRoles...))
					sr.Get("/pending", donationHandler.ListPendingDonations)
					sr.Patch("/{id}/approve", donationHandler.ApproveDonation)
					sr.Patch("/{id}/reject", donationHandler.RejectDonation)
				})
			})

			// Inventory management is staff only.
			pr.Group(func(sr chi.Router) {
				sr.Use(authHandler.RequireRoles(auth.StaffRoles...))
				sr.Post("/products", productHandler.CreateProduct)
				sr.Patch("/products/{id}", productHandler.UpdateProduct)
				sr.Delete("/products/{id}", productHandler.DeleteProduct)
			})

			pr.Get("/settings", settingsHandler.GetSettings)

			// Administration.
			pr.Group(func(ar chi.Router) {
				ar.Use(authHandler.RequireRoles(auth.RoleAdmin))
				ar.Patch("/settings", settingsHandler.UpdateSetting)
				ar.Get("/users", userHandler.ListUsers)
				ar.Patch("/users/{id}/role", userHandler.UpdateUserRole)
				ar.Delete("/users/{id}", userHandler.DeleteUser)
			})
		})
	})
}
