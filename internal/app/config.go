package app

import (
	"errors"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"45s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"40s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	SessionCookie string        `envconfig:"SESSION_COOKIE" default:"vagas_session"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"720h"`

	CSRFSecret string `envconfig:"CSRF_SECRET"`

	BackendURL          string        `envconfig:"BACKEND_URL" default:"http://localhost:3000"`
	BackendRegisterPath string        `envconfig:"BACKEND_REGISTER_PATH" default:"/usuarios/cadastrar"`
	BackendTimeout      time.Duration `envconfig:"BACKEND_TIMEOUT" default:"30s"`

	RegistrationRedirectPath  string        `envconfig:"REGISTRATION_REDIRECT_PATH" default:"/"`
	RegistrationRedirectDelay time.Duration `envconfig:"REGISTRATION_REDIRECT_DELAY" default:"1s"`
	UploadMaxBytes            int64         `envconfig:"UPLOAD_MAX_BYTES" default:"8388608"`

	RateLimitPerMinute int `envconfig:"RATE_LIMIT_PER_MINUTE" default:"60"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.BackendURL == "" {
		return nil, errors.New("backend url must be provided")
	}
	if cfg.UploadMaxBytes <= 0 {
		return nil, errors.New("upload max bytes must be positive")
	}
	return &cfg, nil
}

// ValidateServer checks the settings only the HTTP server needs.
func (c *Config) ValidateServer() error {
	if c.SessionCookie == "" {
		return errors.New("session cookie name must be provided")
	}
	if c.CSRFSecret == "" {
		return errors.New("csrf secret must be provided")
	}
	return nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// TestModeEnv disables runtime startup in binaries when set to "1".
const TestModeEnv = "VAGAS_TEST_MODE"

// InTestMode reports whether binaries should skip listeners and Redis.
func InTestMode() bool {
	return os.Getenv(TestModeEnv) == "1"
}
