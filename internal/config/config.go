package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded from the environment.
type Config struct {
	Environment string

	Server    ServerConfig
	Logging   LoggingConfig
	Redis     RedisConfig
	AWS       AWSConfig
	Cognito   CognitoConfig
	SES       SESConfig
	Challenge ChallengeConfig
	Accounts  AccountsConfig
	Kafka     KafkaConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string
}

type RedisConfig struct {
	URL      string
	DB       int
	PoolSize int
}

type AWSConfig struct {
	Region string
}

type CognitoConfig struct {
	UserPoolID string
	ClientID   string
}

type SESConfig struct {
	SenderAddress string
}

// ChallengeConfig controls the one-time-code flow. CodeTTL is the expiry
// the identity backend enforces on a challenge session; the service only
// states it in the delivery message.
type ChallengeConfig struct {
	MaxAttempts int
	CodeTTL     time.Duration
}

type AccountsConfig struct {
	// Store selects the account record backend: "redis" or "dynamodb".
	Store     string
	TableName string
}

type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

// LoadConfig reads configuration from the environment, after loading a
// .env file if one is present.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			DB:       getEnvInt("REDIS_DB", 0),
			PoolSize: getEnvInt("REDIS_POOL_SIZE", 50),
		},
		AWS: AWSConfig{
			Region: getEnv("AWS_REGION", "us-east-2"),
		},
		Cognito: CognitoConfig{
			UserPoolID: getEnv("COGNITO_USER_POOL_ID", ""),
			ClientID:   getEnv("COGNITO_CLIENT_ID", ""),
		},
		SES: SESConfig{
			SenderAddress: getEnv("SES_SENDER_ADDRESS", ""),
		},
		Challenge: ChallengeConfig{
			MaxAttempts: getEnvInt("CHALLENGE_MAX_ATTEMPTS", 3),
			CodeTTL:     getEnvDuration("CHALLENGE_CODE_TTL", 3*time.Minute),
		},
		Accounts: AccountsConfig{
			Store:     getEnv("ACCOUNT_STORE", "redis"),
			TableName: getEnv("ACCOUNT_TABLE_NAME", "accounts"),
		},
		Kafka: KafkaConfig{
			Enabled: getEnvBool("KAFKA_ENABLED", false),
			Brokers: getEnvList("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:   getEnv("KAFKA_TOPIC", "auth-events"),
		},
	}
}

// Validate reports configuration that cannot work at all.
func (c *Config) Validate() error {
	if c.Challenge.MaxAttempts <= 0 {
		return fmt.Errorf("challenge max attempts must be positive, got %d", c.Challenge.MaxAttempts)
	}
	switch c.Accounts.Store {
	case "redis", "dynamodb":
	default:
		return fmt.Errorf("unknown account store %q", c.Accounts.Store)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) GetServerAddress() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallback
}
