package utils

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Email     EmailConfig
	Token     TokenConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Redis     RedisConfig
	Jobs      JobsConfig
	Admin     AdminConfig
}

type AppConfig struct {
	Name                   string
	Port                   string
	Debug                  bool
	LogPath                string
	BaseURL                string
	ShutdownTimeoutSeconds int
}

type DatabaseConfig struct {
	Host        string
	Port        string
	Name        string
	User        string
	Password    string
	MaxConns    int32
	AutoMigrate bool
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
	Issuer      string
}

type EmailConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	From      string
	Workers   int
	QueueSize int
}

type TokenConfig struct {
	ResetExpiryMinutes        int
	VerificationExpiryMinutes int
}

type RateLimitConfig struct {
	GlobalRPS      float64
	GlobalBurst    int
	ClientRPS      float64
	ClientBurst    int
	CleanupCron    string
	ClientIdleMins int
}

// CORSConfig maps a path prefix to the origins allowed to call it.
type CORSConfig struct {
	Origins map[string][]string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JobsConfig struct {
	TokenCleanupCron string
}

type AdminConfig struct {
	Email    string
	Password string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "wedding-marketplace")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("BASE_URL", "http://localhost:3000")
	viper.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 15)
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("JWT_ISSUER", "wedding-marketplace")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("EMAIL_WORKERS", 4)
	viper.SetDefault("EMAIL_QUEUE_SIZE", 100)
	viper.SetDefault("RESET_TOKEN_EXPIRY_MINUTES", 30)
	viper.SetDefault("VERIFICATION_TOKEN_EXPIRY_MINUTES", 1440)
	viper.SetDefault("RATE_LIMIT_GLOBAL_RPS", 200)
	viper.SetDefault("RATE_LIMIT_GLOBAL_BURST", 400)
	viper.SetDefault("RATE_LIMIT_CLIENT_RPS", 10)
	viper.SetDefault("RATE_LIMIT_CLIENT_BURST", 20)
	viper.SetDefault("RATE_LIMIT_CLEANUP_CRON", "@every 10m")
	viper.SetDefault("RATE_LIMIT_CLIENT_IDLE_MINUTES", 30)
	viper.SetDefault("CORS_ORIGINS", "/api=http://localhost:3000,http://localhost:4200")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("TOKEN_CLEANUP_CRON", "@hourly")

	// .env is optional; plain environment variables are enough in containers
	if err := viper.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:                   viper.GetString("APP_NAME"),
			Port:                   viper.GetString("PORT"),
			Debug:                  viper.GetBool("DEBUG"),
			LogPath:                viper.GetString("LOG_PATH"),
			BaseURL:                strings.TrimRight(viper.GetString("BASE_URL"), "/"),
			ShutdownTimeoutSeconds: viper.GetInt("SHUTDOWN_TIMEOUT_SECONDS"),
		},
		Database: DatabaseConfig{
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetString("DB_PORT"),
			Name:        viper.GetString("DB_NAME"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASS"),
			MaxConns:    viper.GetInt32("DB_MAX_CONNS"),
			AutoMigrate: viper.GetBool("DB_AUTO_MIGRATE"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
			Issuer:      viper.GetString("JWT_ISSUER"),
		},
		Email: EmailConfig{
			Host:      viper.GetString("SMTP_HOST"),
			Port:      viper.GetInt("SMTP_PORT"),
			User:      viper.GetString("SMTP_USER"),
			Password:  viper.GetString("SMTP_PASS"),
			From:      viper.GetString("EMAIL_FROM"),
			Workers:   viper.GetInt("EMAIL_WORKERS"),
			QueueSize: viper.GetInt("EMAIL_QUEUE_SIZE"),
		},
		Token: TokenConfig{
			ResetExpiryMinutes:        viper.GetInt("RESET_TOKEN_EXPIRY_MINUTES"),
			VerificationExpiryMinutes: viper.GetInt("VERIFICATION_TOKEN_EXPIRY_MINUTES"),
		},
		RateLimit: RateLimitConfig{
			GlobalRPS:      viper.GetFloat64("RATE_LIMIT_GLOBAL_RPS"),
			GlobalBurst:    viper.GetInt("RATE_LIMIT_GLOBAL_BURST"),
			ClientRPS:      viper.GetFloat64("RATE_LIMIT_CLIENT_RPS"),
			ClientBurst:    viper.GetInt("RATE_LIMIT_CLIENT_BURST"),
			CleanupCron:    viper.GetString("RATE_LIMIT_CLEANUP_CRON"),
			ClientIdleMins: viper.GetInt("RATE_LIMIT_CLIENT_IDLE_MINUTES"),
		},
		CORS: CORSConfig{
			Origins: ParseCORSOrigins(viper.GetString("CORS_ORIGINS")),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Jobs: JobsConfig{
			TokenCleanupCron: viper.GetString("TOKEN_CLEANUP_CRON"),
		},
		Admin: AdminConfig{
			Email:    viper.GetString("ADMIN_EMAIL"),
			Password: viper.GetString("ADMIN_PASSWORD"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return config, nil
}

// ParseCORSOrigins reads "prefix=origin,origin;prefix2=origin" into a map.
func ParseCORSOrigins(raw string) map[string][]string {
	result := make(map[string][]string)
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		prefix, origins, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}

		for _, origin := range strings.Split(origins, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				result[strings.TrimSpace(prefix)] = append(result[strings.TrimSpace(prefix)], origin)
			}
		}
	}
	return result
}
