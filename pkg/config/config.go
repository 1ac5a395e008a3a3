package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Stripe    StripeConfig
	Storage   StorageConfig
	Replicate ReplicateConfig
	Email     EmailConfig
}

type ServerConfig struct {
	Port    string
	BaseURL string // Checkout sonrası dönülecek frontend adresi
}

type DatabaseConfig struct {
	URL string
}

type JWTConfig struct {
	Secret string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	PriceID       string // Tek abonelik ürünü
}

type StorageConfig struct {
	AccessKey string
	SecretKey string
	AccountID string
	Bucket    string
	CDNDomain string
}

type ReplicateConfig struct {
	APIToken string
	Model    string
}

type EmailConfig struct {
	APIKey string
	From   string
}

func Load() *Config {
	godotenv.Load() // .env dosyasını yükle

	return &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "3000"),
			BaseURL: getEnv("BASE_URL", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key"),
		},
		Stripe: StripeConfig{
			SecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
			PriceID:       getEnv("STRIPE_PRICE_ID", "price_1RN6vQGtOjTLFsRIpyTBDti2"),
		},
		Storage: StorageConfig{
			AccessKey: getEnv("R2_ACCESS_KEY", ""),
			SecretKey: getEnv("R2_SECRET_KEY", ""),
			AccountID: getEnv("R2_ACCOUNT_ID", ""),
			Bucket:    getEnv("R2_BUCKET_NAME", "ghiblify-images"),
			CDNDomain: getEnv("CDN_DOMAIN", "cdn.ghiblify.app"),
		},
		Replicate: ReplicateConfig{
			APIToken: getEnv("REPLICATE_API_TOKEN", ""),
			Model:    getEnv("REPLICATE_MODEL", "black-forest-labs/flux-kontext-pro"),
		},
		Email: EmailConfig{
			APIKey: getEnv("RESEND_API_KEY", ""),
			From:   getEnv("EMAIL_FROM", "Ghiblify <noreply@ghiblify.app>"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
