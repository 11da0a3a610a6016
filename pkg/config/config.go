package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	DB       DBConfig
	Mongo    MongoConfig
	JWT      JWTConfig
	HTTP     HTTPConfig
	Store    StoreConfig
	OTP      OTPConfig
	Blob     BlobConfig
	Cart     CartConfig
	Dispatch DispatchConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env           string // development, staging, production
	Name          string
	DocumentStore string // postgres | mongo | memory
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// MongoConfig almacén documental alternativo para productos y perfiles.
type MongoConfig struct {
	URI      string
	Database string
}

// JWTConfig configuración de JWT (sesión verificada y tokens de desafío).
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StoreConfig datos de la tienda usados en el mensaje de pedido y el control de acceso admin.
type StoreConfig struct {
	ShopName      string
	Icon          string
	Currency      string
	CurrencyCode  string // para el PDF (las fuentes base no tienen el símbolo de la moneda)
	MessagingHost string
	SellerNumber  string
	AdminPhone    string // E.164 exacto, ej. +919876543210
	CountryCode   string
}

// OTPConfig proveedor de identidad por teléfono.
type OTPConfig struct {
	CodeTTL          time.Duration
	ChallengeTTL     time.Duration
	MaxAttempts      int
	BcryptCost       int
	SMSProvider      string // log | twilio
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFrom       string
	TwilioBaseURL    string
}

// BlobConfig almacén de imágenes de producto.
type BlobConfig struct {
	Backend       string // local | s3
	Dir           string
	PublicBaseURL string
	S3Bucket      string
	S3Region      string
	S3Endpoint    string
}

// CartConfig almacén clave-valor del carrito.
type CartConfig struct {
	Backend     string // postgres | dynamodb | memory
	DynamoTable string
	AWSRegion   string
	DynamoURL   string
}

// DispatchConfig canal de envío del pedido.
type DispatchConfig struct {
	Mode                  string // link | cloud_api
	WhatsAppToken         string
	WhatsAppPhoneNumberID string
	WhatsAppAPIBaseURL    string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, ADMIN_PHONE_NUMBER, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:           getString(v, "APP_ENV", "development"),
			Name:          getString(v, "APP_NAME", "vgc-store"),
			DocumentStore: getString(v, "DOCUMENT_STORE", "postgres"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "vgc_store"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Mongo: MongoConfig{
			URI:      getString(v, "MONGO_URI", "mongodb://localhost:27017"),
			Database: getString(v, "MONGO_DATABASE", "vgc_store"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60*24*7),
			Issuer:     getString(v, "JWT_ISSUER", "vgc-store"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			CORSOrigins: getString(v, "CORS_ORIGINS", "*"),
		},
		Store: StoreConfig{
			ShopName:      getString(v, "SHOP_NAME", "Vels Grace Crochet"),
			Icon:          getString(v, "SHOP_ICON", "🧶"),
			Currency:      getString(v, "SHOP_CURRENCY", "₹"),
			CurrencyCode:  getString(v, "SHOP_CURRENCY_CODE", "INR"),
			MessagingHost: getString(v, "MESSAGING_HOST", "wa.me"),
			SellerNumber:  getString(v, "SELLER_WHATSAPP_NUMBER", "919876543210"),
			AdminPhone:    getString(v, "ADMIN_PHONE_NUMBER", ""),
			CountryCode:   getString(v, "PHONE_COUNTRY_CODE", "+91"),
		},
		OTP: OTPConfig{
			CodeTTL:          getDuration(v, "OTP_CODE_TTL", 5*time.Minute),
			ChallengeTTL:     getDuration(v, "OTP_CHALLENGE_TTL", 10*time.Minute),
			MaxAttempts:      getInt(v, "OTP_MAX_ATTEMPTS", 5),
			BcryptCost:       getInt(v, "OTP_BCRYPT_COST", 10),
			SMSProvider:      getString(v, "SMS_PROVIDER", "log"),
			TwilioAccountSID: getString(v, "TWILIO_ACCOUNT_SID", ""),
			TwilioAuthToken:  getString(v, "TWILIO_AUTH_TOKEN", ""),
			TwilioFrom:       getString(v, "TWILIO_FROM", ""),
			TwilioBaseURL:    getString(v, "TWILIO_BASE_URL", "https://api.twilio.com"),
		},
		Blob: BlobConfig{
			Backend:       getString(v, "BLOB_BACKEND", "local"),
			Dir:           getString(v, "BLOB_DIR", "./media"),
			PublicBaseURL: getString(v, "BLOB_PUBLIC_BASE_URL", "/media"),
			S3Bucket:      getString(v, "S3_BUCKET", ""),
			S3Region:      getString(v, "S3_REGION", "ap-south-1"),
			S3Endpoint:    getString(v, "S3_ENDPOINT", ""),
		},
		Cart: CartConfig{
			Backend:     getString(v, "CART_BACKEND", "postgres"),
			DynamoTable: getString(v, "CART_DYNAMO_TABLE", "vgc_kv"),
			AWSRegion:   getString(v, "AWS_REGION", "ap-south-1"),
			DynamoURL:   getString(v, "DYNAMODB_ENDPOINT", ""),
		},
		Dispatch: DispatchConfig{
			Mode:                  getString(v, "DISPATCH_MODE", "link"),
			WhatsAppToken:         getString(v, "WHATSAPP_TOKEN", ""),
			WhatsAppPhoneNumberID: getString(v, "WHATSAPP_PHONE_NUMBER_ID", ""),
			WhatsAppAPIBaseURL:    getString(v, "WHATSAPP_API_BASE_URL", "https://graph.facebook.com/v21.0"),
		},
	}

	if cfg.JWT.Secret == "" && cfg.App.Env == "production" {
		return nil, fmt.Errorf("config: JWT_SECRET es obligatorio en producción")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

// getDuration acepta "5m", "90s" o un número de segundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(v.GetString(key))
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}
