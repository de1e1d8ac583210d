package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port        string `env:"PORT" env-default:"8080"`
	Env         string `env:"ENV" env-default:"production"`
	MetricsPort string `env:"METRICS_PORT" env-default:"9090"`
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`

	PostgresConnStr string `env:"POSTGRES_CONN_STR" env-required:"true"`
	MongoURI        string `env:"MONGO_URI"`
	MongoDatabase   string `env:"MONGO_DATABASE" env-default:"socialmedia"`

	FirebaseCredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH"`

	JWTSecret string        `env:"JWT_SECRET" env-default:"supersecretjwtkey"`
	JWTTTL    time.Duration `env:"JWT_TTL" env-default:"72h"`

	NatsURL string `env:"NATS_URL"`

	StoryTTL             time.Duration `env:"STORY_TTL" env-default:"24h"`
	StrictPostValidation bool          `env:"STRICT_POST_VALIDATION" env-default:"false"`

	// DevTokens mounts the credential-less token endpoint. Honoured only
	// when ENV=development.
	DevTokens bool `env:"DEV_TOKENS" env-default:"false"`
}

// IsDevelopment reports whether the service runs in the development env.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// DevTokensEnabled reports whether POST /auth/dev-token may be mounted.
func (c *Config) DevTokensEnabled() bool {
	return c.DevTokens && c.IsDevelopment()
}

// Load reads a .env file when present, then the environment.
func Load(log *logrus.Entry) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, assuming environment variables are set.")
	}

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		help, _ := cleanenv.GetDescription(cfg, nil)
		return nil, fmt.Errorf("failed to read configuration: %w\n%s", err, help)
	}
	if cfg.StoryTTL <= 0 {
		return nil, fmt.Errorf("STORY_TTL must be positive, got %s", cfg.StoryTTL)
	}
	return cfg, nil
}
