package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/vgc-store/internal/application/auth"
	"github.com/jhoicas/vgc-store/internal/application/cart"
	"github.com/jhoicas/vgc-store/internal/application/catalog"
	"github.com/jhoicas/vgc-store/internal/application/checkout"
	"github.com/jhoicas/vgc-store/internal/domain/message"
	"github.com/jhoicas/vgc-store/internal/infrastructure/bootstrap"
	infrapdf "github.com/jhoicas/vgc-store/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/vgc-store/internal/interfaces/http"
	"github.com/jhoicas/vgc-store/pkg/config"
	"github.com/jhoicas/vgc-store/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("document_store", cfg.App.DocumentStore).
		Str("cart_backend", cfg.Cart.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()
	adapters, err := bootstrap.Build(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar adaptadores")
	}
	defer adapters.Close()

	gate := auth.NewAdminGate(cfg.Store.AdminPhone)
	if cfg.Store.AdminPhone == "" {
		log.Warn().Msg("ADMIN_PHONE_NUMBER vacío: el panel de administración queda cerrado")
	}
	catalogUC := catalog.NewUseCase(adapters.Products, adapters.Blobs, gate, log)
	carts := cart.NewManager(adapters.KV, log)
	returns := auth.NewReturnURLStore(adapters.KV, log)
	otp := auth.NewOTPAuthenticator(adapters.Identity, returns, auth.Config{
		CountryCode: cfg.Store.CountryCode,
		JWT: auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
	}, log)

	// PDF: resumen del pedido descargable desde el checkout
	summaryPDF := infrapdf.NewOrderSummaryGenerator()
	composer := checkout.NewComposer(carts, adapters.Profiles, returns, adapters.Dispatcher, summaryPDF, checkout.Config{
		Template: message.Template{
			Icon:     cfg.Store.Icon,
			ShopName: cfg.Store.ShopName,
			Currency: cfg.Store.Currency,
		},
		MessagingHost: cfg.Store.MessagingHost,
		Recipient:     cfg.Store.SellerNumber,
		CurrencyCode:  cfg.Store.CurrencyCode,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    httpRouter.MaxImageBytes + 1<<20,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + httpRouter.HeaderClientID,
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Vels Grace Crochet API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	// Imágenes subidas al almacén local
	if cfg.Blob.Backend != "s3" {
		app.Static(cfg.Blob.PublicBaseURL, cfg.Blob.Dir)
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Catalog:   catalogUC,
		Carts:     carts,
		OTP:       otp,
		AdminGate: gate,
		Checkout:  composer,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
