package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Mail channel
	RedisURL  string
	MailQueue string

	// User API
	UsuarioAPIURL string

	// Report rendering
	ReportDir string

	// Rate limiting, e.g. "100-M" for 100 requests per minute.
	RateLimit string

	// Optional report retention in object storage.
	ArchiveEnabled   bool
	ArchiveEndpoint  string
	ArchiveAccessKey string
	ArchiveSecretKey string
	ArchiveRegion    string
	ArchiveBucket    string
	ArchiveUseSSL    bool
}

// LoadConfig loads configuration from environment variables and a .env file
// if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "3005")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("MAIL_QUEUE", "enviar-email")
	viper.SetDefault("USUARIO_API_URL", "http://localhost:3004/api/v1/usuario")
	viper.SetDefault("REPORT_DIR", "")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("ARCHIVE_ENABLED", false)
	viper.SetDefault("ARCHIVE_ENDPOINT", "")
	viper.SetDefault("ARCHIVE_ACCESS_KEY", "")
	viper.SetDefault("ARCHIVE_SECRET_KEY", "")
	viper.SetDefault("ARCHIVE_REGION", "")
	viper.SetDefault("ARCHIVE_BUCKET", "relatorios")
	viper.SetDefault("ARCHIVE_USE_SSL", false)

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:      viper.GetString("PGSQL_URL"),
		Port:             viper.GetString("PORT"),
		IsProduction:     viper.GetBool("IS_PRODUCTION"),
		RedisURL:         viper.GetString("REDIS_URL"),
		MailQueue:        viper.GetString("MAIL_QUEUE"),
		UsuarioAPIURL:    viper.GetString("USUARIO_API_URL"),
		ReportDir:        viper.GetString("REPORT_DIR"),
		RateLimit:        viper.GetString("RATE_LIMIT"),
		ArchiveEnabled:   viper.GetBool("ARCHIVE_ENABLED"),
		ArchiveEndpoint:  viper.GetString("ARCHIVE_ENDPOINT"),
		ArchiveAccessKey: viper.GetString("ARCHIVE_ACCESS_KEY"),
		ArchiveSecretKey: viper.GetString("ARCHIVE_SECRET_KEY"),
		ArchiveRegion:    viper.GetString("ARCHIVE_REGION"),
		ArchiveBucket:    viper.GetString("ARCHIVE_BUCKET"),
		ArchiveUseSSL:    viper.GetBool("ARCHIVE_USE_SSL"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	return cfg, nil
}
