package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vgc-store/internal/application/auth"
	"github.com/jhoicas/vgc-store/internal/application/cart"
	"github.com/jhoicas/vgc-store/internal/application/catalog"
	"github.com/jhoicas/vgc-store/internal/application/checkout"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Catalog   *catalog.UseCase
	Carts     *cart.Manager
	OTP       *auth.OTPAuthenticator
	AdminGate *auth.AdminGate
	Checkout  *checkout.Composer
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	optional := OptionalAuth(deps.JWTSecret)

	// Catálogo (público)
	productHandler := NewProductHandler(deps.Catalog)
	api.Get("/products", productHandler.List)

	// Carrito (por cliente, sin sesión)
	cartGroup := api.Group("/cart", RequireClientID())
	cartHandler := NewCartHandler(deps.Carts, deps.Catalog)
	cartGroup.Get("/", cartHandler.Get)
	cartGroup.Post("/items", cartHandler.Add)
	cartGroup.Put("/items/:id", cartHandler.SetQuantity)
	cartGroup.Delete("/items/:id", cartHandler.Remove)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.OTP, deps.AdminGate)
	authGroup.Get("/challenge-token", authHandler.ChallengeToken)
	authGroup.Post("/otp/request", authHandler.RequestCode)
	authGroup.Post("/otp/verify", authHandler.VerifyCode)
	authGroup.Post("/otp/reset", authHandler.ResetChallenge)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Checkout: la identidad es opcional en el middleware para que el caso de uso
	// guarde la ruta de retorno antes de responder 401.
	checkoutGroup := api.Group("/checkout", RequireClientID(), optional)
	checkoutHandler := NewCheckoutHandler(deps.Checkout)
	checkoutGroup.Get("/profile", checkoutHandler.Profile)
	checkoutGroup.Post("/", checkoutHandler.Submit)
	checkoutGroup.Post("/confirm", checkoutHandler.Confirm)
	checkoutGroup.Get("/summary.pdf", checkoutHandler.SummaryPDF)

	// Panel de administración (solo el teléfono configurado)
	admin := api.Group("/admin", optional, RequireAdmin(deps.AdminGate))
	adminHandler := NewAdminHandler()
	admin.Get("/access", adminHandler.Access)
	admin.Post("/products", productHandler.Create)
	admin.Put("/products/:id", productHandler.Update)
	admin.Delete("/products/:id", productHandler.Delete)
}
