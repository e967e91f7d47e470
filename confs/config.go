package confs

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config is the process configuration, decoded from the environment.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	AI       AIConfig
	QR       QRConfig
	Log      LogConfig
}

type ServerConfig struct {
	Addr               string        `env:"SERVER_ADDR,default=0.0.0.0:8000"`
	ShutdownTimeout    time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT,default=5s"`
	CORSAllowedOrigins string        `env:"CORS_ALLOWED_ORIGINS,default=*"`
	SummaryRateRPS     float64       `env:"SUMMARY_RATE_LIMIT_RPS,default=1"`
	SummaryRateBurst   int           `env:"SUMMARY_RATE_LIMIT_BURST,default=5"`
}

type DatabaseConfig struct {
	URL          string `env:"DB_URL"`
	Host         string `env:"DB_HOST"`
	Port         string `env:"DB_PORT"`
	User         string `env:"DB_USER"`
	Password     string `env:"DB_PASSWORD"`
	Name         string `env:"DB_NAME"`
	MaxIdleConns int    `env:"DB_MAX_IDLE_CONNS,default=10"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS,default=100"`
	LogLevel     string `env:"DB_LOG_LEVEL,default=warn"`
}

// AIConfig configures the language-model client used for health summaries.
type AIConfig struct {
	APIKey  string        `env:"GEMINI_API_KEY"`
	Model   string        `env:"GEMINI_MODEL,default=gemini-1.5-flash"`
	Timeout time.Duration `env:"AI_TIMEOUT,default=60s"`
}

type QRConfig struct {
	Size int `env:"QR_SIZE,default=512"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL,default=info"`
	Format string `env:"LOG_FORMAT,default=text"`
}

// LoadConfig loads environment variables from a .env file if present
// and decodes them into a Config.
func LoadConfig(log logrus.FieldLogger) (*Config, error) {
	// Load .env if it exists; ignore error if file not found
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.WithError(err).Warn("could not load .env")
		}
	}
	return Decode()
}

// Decode reads the current environment into a Config without touching .env.
func Decode() (*Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	return &cfg, nil
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (s ServerConfig) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(s.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// DSN builds the Postgres connection string. DB_URL wins over the
// individual parameters.
func (d DatabaseConfig) DSN() (string, error) {
	if d.URL != "" {
		dsn := d.URL
		// hosted databases expect TLS
		if !strings.Contains(dsn, "sslmode=") {
			if strings.Contains(dsn, "?") {
				dsn += "&sslmode=require"
			} else {
				dsn += "?sslmode=require"
			}
		}
		return dsn, nil
	}

	if d.Host == "" || d.Port == "" || d.User == "" || d.Password == "" || d.Name == "" {
		return "", errors.New("missing required database configuration: DB_URL or (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	sslMode := "require"
	if d.Host == "localhost" || d.Host == "127.0.0.1" {
		sslMode = "disable"
	}

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		d.Host, d.User, d.Password, d.Name, d.Port, sslMode), nil
}
