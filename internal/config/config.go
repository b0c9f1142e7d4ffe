package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	// Формат ответа GET /v1/products
	ProductsResponseAuto     = "auto"
	ProductsResponseEnvelope = "envelope"
	ProductsResponseList     = "list"
)

const (
	defaultEnv              = EnvLocal
	defaultRunAddress       = ":8080"
	defaultStorageDriver    = DriverSQLite
	defaultSQLitePath       = "siigosync.db"
	defaultMigrationsPath   = "migrations"
	defaultProductsResponse = ProductsResponseAuto
)

type Config struct {
	Env     string
	Logger  logger
	Server  server
	Siigo   Siigo
	Storage storage
	Redis   redis
}

// Siigo учетные данные и параметры удаленного API.
// Заполняются один раз при старте и дальше не меняются.
type Siigo struct {
	BaseURL          string
	ClientID         string
	ClientSecret     string
	PartnerID        string
	ProductsResponse string
	HTTPTimeout      time.Duration
	// Запросов в секунду к API, 0 - без ограничения
	RateLimit float64
}

type logger struct {
	LogLevel string `env:"LOG_LEVEL"`
}

type server struct {
	RunAddress   string   `env:"RUN_ADDRESS"`
	APITokenHash string   `env:"API_TOKEN_HASH"`
	CORSOrigins  []string `env:"CORS_ORIGINS"`
}

type storage struct {
	Driver      string `env:"STORAGE_DRIVER"`
	SQLitePath  string `env:"SQLITE_PATH"`
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type redis struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB"`
}

// Load собирает конфигурацию из .env, переменных окружения и (если задан)
// YAML файла, прочитанного viper до вызова.
func Load() (*Config, error) {
	loadDotEnv()

	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("RUN_ADDRESS", defaultRunAddress)
	viper.SetDefault("STORAGE_DRIVER", defaultStorageDriver)
	viper.SetDefault("SQLITE_PATH", defaultSQLitePath)
	viper.SetDefault("MIGRATIONS_PATH", defaultMigrationsPath)
	viper.SetDefault("SIIGO_PRODUCTS_RESPONSE", defaultProductsResponse)

	cfg := &Config{
		Env:    viper.GetString("APP_ENV"),
		Logger: logger{LogLevel: viper.GetString("LOG_LEVEL")},
		Server: server{
			RunAddress:   viper.GetString("RUN_ADDRESS"),
			APITokenHash: viper.GetString("API_TOKEN_HASH"),
			CORSOrigins:  splitList(viper.GetString("CORS_ORIGINS")),
		},
		Siigo: Siigo{
			BaseURL:          strings.TrimRight(viper.GetString("SIIGO_BASE_URL"), "/"),
			ClientID:         viper.GetString("SIIGO_CLIENT_ID"),
			ClientSecret:     viper.GetString("SIIGO_CLIENT_SECRET"),
			PartnerID:        viper.GetString("SIIGO_PARTNER_ID"),
			ProductsResponse: strings.ToLower(viper.GetString("SIIGO_PRODUCTS_RESPONSE")),
			HTTPTimeout:      viper.GetDuration("SIIGO_HTTP_TIMEOUT"),
			RateLimit:        viper.GetFloat64("SIIGO_RATE_LIMIT"),
		},
		Storage: storage{
			Driver:      strings.ToLower(viper.GetString("STORAGE_DRIVER")),
			SQLitePath:  viper.GetString("SQLITE_PATH"),
			DatabaseURI: viper.GetString("DATABASE_URI"),
			Migrations:  viper.GetString("MIGRATIONS_PATH"),
		},
		Redis: redis{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Siigo.BaseURL == "" {
		return fmt.Errorf("siigo_base_url must not be empty")
	}
	if c.Siigo.ClientID == "" || c.Siigo.ClientSecret == "" {
		return fmt.Errorf("siigo_client_id and siigo_client_secret are required")
	}

	if c.Siigo.RateLimit < 0 {
		return fmt.Errorf("siigo_rate_limit must not be negative")
	}

	switch c.Siigo.ProductsResponse {
	case ProductsResponseAuto, ProductsResponseEnvelope, ProductsResponseList:
	default:
		return fmt.Errorf("unknown siigo_products_response %q", c.Siigo.ProductsResponse)
	}

	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("sqlite_path must not be empty")
		}
	case DriverPostgres:
		if c.Storage.DatabaseURI == "" {
			return fmt.Errorf("database_uri is required for postgres storage")
		}
	default:
		return fmt.Errorf("unknown storage_driver %q", c.Storage.Driver)
	}

	return nil
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == EnvLocal || c.Env == ""
}

func loadDotEnv() {
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}
	if _, err := os.Stat(envPath); err != nil {
		return
	}
	if err := godotenv.Load(envPath); err != nil {
		log.Printf("failed to load %s: %v", envPath, err)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
