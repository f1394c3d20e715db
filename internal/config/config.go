package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port            string
	MongoURI        string
	MongoDBName     string
	RedisAddr       string
	RedisPassword   string
	KafkaBrokers    []string
	StripeSecretKey string
	CORSOrigins     []string
	LogLevel        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

var defaultCORSOrigins = []string{
	"http://localhost:5173",
	"https://project-petverse.netlify.app",
	"https://petverse-8f5b7.web.app",
}

// Load reads configuration from the optional file at path, then lets
// environment variables such as MONGO_URI override it.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("port", "5000")
	v.SetDefault("mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("mongo_db_name", "petVerse")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("kafka_brokers", "")
	v.SetDefault("stripe_secret_key", "")
	v.SetDefault("cors_origins", strings.Join(defaultCORSOrigins, ","))
	v.SetDefault("log_level", "info")
	v.SetDefault("request_timeout", "15s")
	v.SetDefault("shutdown_timeout", "10s")

	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config failed: %w", err)
		}
	}

	cfg := &Config{
		Port:            v.GetString("port"),
		MongoURI:        v.GetString("mongo_uri"),
		MongoDBName:     v.GetString("mongo_db_name"),
		RedisAddr:       v.GetString("redis_addr"),
		RedisPassword:   v.GetString("redis_password"),
		KafkaBrokers:    splitList(v.GetString("kafka_brokers")),
		StripeSecretKey: v.GetString("stripe_secret_key"),
		CORSOrigins:     splitList(v.GetString("cors_origins")),
		LogLevel:        v.GetString("log_level"),
		RequestTimeout:  v.GetDuration("request_timeout"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if strings.TrimSpace(c.Port) == "" {
		errs = append(errs, errors.New("port is required"))
	}
	if strings.TrimSpace(c.MongoURI) == "" {
		errs = append(errs, errors.New("mongo_uri is required"))
	}
	if strings.TrimSpace(c.MongoDBName) == "" {
		errs = append(errs, errors.New("mongo_db_name is required"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request_timeout must be positive"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown_timeout must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
