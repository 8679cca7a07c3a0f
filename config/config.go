package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Stripe   StripeConfig
	HTTP     HTTPConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Observ   ObservabilityConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	URL string
}

type StripeConfig struct {
	SecretKey      string
	PublishableKey string
	// WebhookSecret may be empty at startup; the webhook endpoint rejects
	// deliveries until it is configured.
	WebhookSecret string
}

type HTTPConfig struct {
	AllowedOrigin string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type ObservabilityConfig struct {
	JaegerEndpoint string
}

func Load() *Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "5000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Stripe: StripeConfig{
			SecretKey:      os.Getenv("STRIPE_SECRET_KEY"),
			PublishableKey: os.Getenv("STRIPE_PUBLISHABLE_KEY"),
			WebhookSecret:  os.Getenv("STRIPE_WEBHOOK_SECRET"),
		},
		HTTP: HTTPConfig{
			AllowedOrigin: getEnv("FRONTEND_URL", "http://localhost:5000"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers: splitNonEmpty(os.Getenv("KAFKA_BROKERS")),
			Topic:   getEnv("KAFKA_TOPIC_EVENTS", "storefront-events"),
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		},
	}

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is required in environment variables")
	}
	if cfg.Stripe.SecretKey == "" {
		log.Fatal("STRIPE_SECRET_KEY is required in environment variables")
	}
	if cfg.Stripe.PublishableKey == "" {
		log.Fatal("STRIPE_PUBLISHABLE_KEY is required in environment variables")
	}

	log.Printf("Config loaded: env=%s, port=%s", cfg.Server.Env, cfg.Server.Port)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func splitNonEmpty(val string) []string {
	if val == "" {
		return nil
	}
	return strings.Split(val, ",")
}
