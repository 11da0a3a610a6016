// Package bootstrap elige e inicializa los adaptadores de infraestructura según la configuración.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/vgc-store/internal/application/ports"
	"github.com/jhoicas/vgc-store/internal/domain/repository"
	"github.com/jhoicas/vgc-store/internal/infrastructure/blob"
	"github.com/jhoicas/vgc-store/internal/infrastructure/dynamo"
	"github.com/jhoicas/vgc-store/internal/infrastructure/identity"
	"github.com/jhoicas/vgc-store/internal/infrastructure/memory"
	"github.com/jhoicas/vgc-store/internal/infrastructure/messaging"
	"github.com/jhoicas/vgc-store/internal/infrastructure/mongo"
	"github.com/jhoicas/vgc-store/internal/infrastructure/postgres"
	"github.com/jhoicas/vgc-store/pkg/config"
	"github.com/jhoicas/vgc-store/pkg/logger"
)

// Adapters puertos ya resueltos para construir los casos de uso.
type Adapters struct {
	Products   repository.ProductRepository
	Profiles   repository.ProfileRepository
	KV         ports.KeyValueStore
	Blobs      ports.BlobStore
	Identity   ports.IdentityProvider
	Dispatcher ports.OrderDispatcher

	// Pool solo existe si algún almacén usa PostgreSQL.
	Pool *pgxpool.Pool

	closers []func()
}

// Close libera conexiones en orden inverso de apertura.
func (a *Adapters) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// Build abre las conexiones necesarias y arma todos los adaptadores.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Adapters, error) {
	a := &Adapters{}
	ok := false
	defer func() {
		if !ok {
			a.Close()
		}
	}()

	if err := a.documentStore(ctx, cfg, log); err != nil {
		return nil, err
	}
	if err := a.kvStore(ctx, cfg); err != nil {
		return nil, err
	}
	if err := a.blobStore(ctx, cfg); err != nil {
		return nil, err
	}
	if err := a.identityProvider(cfg, log); err != nil {
		return nil, err
	}
	if err := a.dispatcher(cfg, log); err != nil {
		return nil, err
	}
	ok = true
	return a, nil
}

// DocumentStore solo el almacén de productos y perfiles (carga inicial del catálogo).
func DocumentStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Adapters, error) {
	a := &Adapters{}
	if err := a.documentStore(ctx, cfg, log); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *Adapters) postgresPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	if a.Pool != nil {
		return a.Pool, nil
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	a.closers = append(a.closers, pool.Close)
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		return nil, fmt.Errorf("esquema PostgreSQL: %w", err)
	}
	a.Pool = pool
	return pool, nil
}

func (a *Adapters) documentStore(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	switch cfg.App.DocumentStore {
	case "postgres", "":
		pool, err := a.postgresPool(ctx, cfg)
		if err != nil {
			return err
		}
		a.Products = postgres.NewProductRepository(pool)
		a.Profiles = postgres.NewProfileRepository(pool)
	case "mongo":
		client, db, err := mongo.Connect(ctx, cfg.Mongo)
		if err != nil {
			return fmt.Errorf("conexión a MongoDB: %w", err)
		}
		a.closers = append(a.closers, func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Warn().Err(err).Msg("desconexión de MongoDB")
			}
		})
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			return fmt.Errorf("índices MongoDB: %w", err)
		}
		a.Products = mongo.NewProductRepository(db)
		a.Profiles = mongo.NewProfileRepository(db)
	case "memory":
		a.Products = memory.NewProductRepository()
		a.Profiles = memory.NewProfileRepository()
	default:
		return fmt.Errorf("DOCUMENT_STORE desconocido %q", cfg.App.DocumentStore)
	}
	return nil
}

func (a *Adapters) kvStore(ctx context.Context, cfg *config.Config) error {
	switch cfg.Cart.Backend {
	case "postgres", "":
		pool, err := a.postgresPool(ctx, cfg)
		if err != nil {
			return err
		}
		a.KV = postgres.NewKVStore(pool)
	case "dynamodb":
		client, err := dynamo.NewClient(ctx, cfg.Cart)
		if err != nil {
			return fmt.Errorf("cliente DynamoDB: %w", err)
		}
		a.KV = dynamo.NewKVStore(client, cfg.Cart.DynamoTable)
	case "memory":
		a.KV = memory.NewKVStore()
	default:
		return fmt.Errorf("CART_BACKEND desconocido %q", cfg.Cart.Backend)
	}
	return nil
}

func (a *Adapters) blobStore(ctx context.Context, cfg *config.Config) error {
	switch cfg.Blob.Backend {
	case "local", "":
		a.Blobs = blob.NewLocalStore(cfg.Blob.Dir, cfg.Blob.PublicBaseURL)
	case "s3":
		if cfg.Blob.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET es obligatorio con BLOB_BACKEND=s3")
		}
		client, err := blob.NewS3Client(ctx, cfg.Blob)
		if err != nil {
			return fmt.Errorf("cliente S3: %w", err)
		}
		a.Blobs = blob.NewS3Store(client, cfg.Blob.S3Bucket, cfg.Blob.S3Region, cfg.Blob.PublicBaseURL)
	default:
		return fmt.Errorf("BLOB_BACKEND desconocido %q", cfg.Blob.Backend)
	}
	return nil
}

func (a *Adapters) identityProvider(cfg *config.Config, log *logger.Logger) error {
	var sender identity.SMSSender
	switch cfg.OTP.SMSProvider {
	case "log", "":
		sender = identity.NewLogSender(log)
	case "twilio":
		if cfg.OTP.TwilioAccountSID == "" || cfg.OTP.TwilioAuthToken == "" || cfg.OTP.TwilioFrom == "" {
			return fmt.Errorf("credenciales de Twilio incompletas")
		}
		sender = identity.NewTwilioSender(cfg.OTP.TwilioAccountSID, cfg.OTP.TwilioAuthToken, cfg.OTP.TwilioFrom, cfg.OTP.TwilioBaseURL)
	default:
		return fmt.Errorf("SMS_PROVIDER desconocido %q", cfg.OTP.SMSProvider)
	}
	a.Identity = identity.NewOTPProvider(sender, identity.Config{
		Secret:       cfg.JWT.Secret,
		Issuer:       cfg.JWT.Issuer,
		CodeTTL:      cfg.OTP.CodeTTL,
		ChallengeTTL: cfg.OTP.ChallengeTTL,
		MaxAttempts:  cfg.OTP.MaxAttempts,
		BcryptCost:   cfg.OTP.BcryptCost,
		ShopName:     cfg.Store.ShopName,
	}, log)
	return nil
}

func (a *Adapters) dispatcher(cfg *config.Config, log *logger.Logger) error {
	switch cfg.Dispatch.Mode {
	case "link", "":
		a.Dispatcher = messaging.NewLinkDispatcher(log)
	case "cloud_api":
		if cfg.Dispatch.WhatsAppToken == "" || cfg.Dispatch.WhatsAppPhoneNumberID == "" {
			return fmt.Errorf("WHATSAPP_TOKEN y WHATSAPP_PHONE_NUMBER_ID son obligatorios con DISPATCH_MODE=cloud_api")
		}
		a.Dispatcher = messaging.NewWhatsAppCloudDispatcher(
			cfg.Dispatch.WhatsAppAPIBaseURL, cfg.Dispatch.WhatsAppPhoneNumberID, cfg.Dispatch.WhatsAppToken, log)
	default:
		return fmt.Errorf("DISPATCH_MODE desconocido %q", cfg.Dispatch.Mode)
	}
	return nil
}
