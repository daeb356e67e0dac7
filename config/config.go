package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const devJWTSecret = "insecure-dev-secret-change-me"

type Config struct {
	Server   Server
	Database Database
	JWT      JWT
	LLM      LLM
	Redis    Redis
	CORS     CORS
	LogLevel string
}

type Server struct {
	Port string
	Mode string // gin mode: debug, release, test
}

type Database struct {
	Driver     string // postgres or sqlite
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
}

type JWT struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type LLM struct {
	Provider      string // openai or gemini
	Model         string
	Timeout       time.Duration
	MaxRetries    int
	OpenAIApiKey  string
	OpenAIBaseURL string
	GeminiApiKey  string
	GeminiModel   string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type CORS struct {
	AllowedOrigins []string
}

func NewConfig() (*Config, error) {
	return Load(".")
}

// Load reads <dir>/.env when present and lets process environment variables
// override it.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(dir)
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file, falling back to environment")
	}

	var config Config

	config.Server.Port = v.GetString("SERVER_PORT")
	config.Server.Mode = strings.ToLower(v.GetString("GIN_MODE"))
	config.LogLevel = v.GetString("LOG_LEVEL")

	config.Database.Driver = strings.ToLower(v.GetString("DATABASE_DRIVER"))
	config.Database.Host = v.GetString("DATABASE_HOST")
	config.Database.Port = v.GetString("DATABASE_PORT")
	config.Database.User = v.GetString("DATABASE_USER")
	config.Database.Password = v.GetString("DATABASE_PASSWORD")
	config.Database.Name = v.GetString("DATABASE_NAME")
	config.Database.SSLMode = v.GetString("DATABASE_SSLMODE")
	config.Database.SQLitePath = v.GetString("SQLITE_PATH")

	config.JWT.Secret = v.GetString("JWT_SECRET")
	config.JWT.AccessTTL = v.GetDuration("JWT_ACCESS_TTL")
	config.JWT.RefreshTTL = v.GetDuration("JWT_REFRESH_TTL")

	config.LLM.Provider = strings.ToLower(v.GetString("LLM_PROVIDER"))
	config.LLM.Model = v.GetString("LLM_MODEL")
	config.LLM.Timeout = time.Duration(v.GetInt("LLM_TIMEOUT_SECONDS")) * time.Second
	config.LLM.MaxRetries = v.GetInt("LLM_MAX_RETRIES")
	config.LLM.OpenAIApiKey = v.GetString("OPENAI_API_KEY")
	config.LLM.OpenAIBaseURL = strings.TrimRight(v.GetString("OPENAI_API_BASE_URL"), "/")
	config.LLM.GeminiApiKey = v.GetString("GEMINI_API_KEY")
	config.LLM.GeminiModel = v.GetString("GEMINI_MODEL")

	config.Redis.Addr = v.GetString("REDIS_ADDR")
	config.Redis.Password = v.GetString("REDIS_PASSWORD")
	config.Redis.DB = v.GetInt("REDIS_DB")

	config.CORS.AllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	if err := config.validate(); err != nil {
		return nil, err
	}

	log.Info().
		Str("port", config.Server.Port).
		Str("mode", config.Server.Mode).
		Str("dbDriver", config.Database.Driver).
		Str("llmProvider", config.LLM.Provider).
		Str("llmModel", config.LLM.Model).
		Bool("redis", config.Redis.Addr != "").
		Msg("Config loaded")
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("SQLITE_PATH", "interview.db")
	v.SetDefault("JWT_ACCESS_TTL", "5m")
	v.SetDefault("JWT_REFRESH_TTL", "24h")
	v.SetDefault("LLM_PROVIDER", "openai")
	v.SetDefault("LLM_MODEL", "gpt-4o-mini")
	v.SetDefault("LLM_TIMEOUT_SECONDS", 60)
	v.SetDefault("LLM_MAX_RETRIES", 2)
	v.SetDefault("OPENAI_API_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver)
	}
	switch c.LLM.Provider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.LLM.Provider)
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL and JWT_REFRESH_TTL must be positive")
	}
	if c.LLM.MaxRetries < 0 {
		return fmt.Errorf("LLM_MAX_RETRIES must not be negative")
	}
	if c.JWT.Secret == "" {
		if c.Server.Mode == "release" {
			return fmt.Errorf("JWT_SECRET is required in release mode")
		}
		log.Warn().Msg("JWT_SECRET is not set, using an insecure development secret")
		c.JWT.Secret = devJWTSecret
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
