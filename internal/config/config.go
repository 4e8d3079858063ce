package config

import "github.com/caarlos0/env/v10"

// Store drivers soportados para el log de respuestas.
const (
	StoreDriverFile     = "file"
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort            string   `env:"HTTP_PORT" envDefault:"8080"`
	ContentPath         string   `env:"CONTENT_PATH" envDefault:"data/quiz.yaml"`
	StoreDriver         string   `env:"STORE_DRIVER" envDefault:"file"`
	ResponsesPath       string   `env:"RESPONSES_PATH" envDefault:"data/responses.jsonl"`
	SQLiteDSN           string   `env:"SQLITE_DSN" envDefault:"file:data/responses.db?_pragma=busy_timeout(5000)"`
	DatabaseURL         string   `env:"DATABASE_URL"`
	RedisAddr           string   `env:"REDIS_ADDR"`
	RedisPassword       string   `env:"REDIS_PASSWORD"`
	RedisDB             int      `env:"REDIS_DB" envDefault:"0"`
	SubmitRateLimit     int      `env:"SUBMIT_RATE_LIMIT" envDefault:"20"`
	SubmitRateWindow    int      `env:"SUBMIT_RATE_WINDOW_SECONDS" envDefault:"60"`
	SubmitRateKeyPrefix string   `env:"SUBMIT_RATE_KEY_PREFIX" envDefault:"quiz:submit:rl:"`
	ReportTokenSecret   string   `env:"REPORT_TOKEN_SECRET"`
	ReportTokenTTLMins  int      `env:"REPORT_TOKEN_TTL_MINUTES" envDefault:"1440"`
	CORSAllowedOrigins  []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
