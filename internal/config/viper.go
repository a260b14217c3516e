package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func NewViper() *viper.Viper {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	config := viper.New()

	if os.Getenv("ENV") == "production" {
		config.SetConfigName("config.prod")
	} else {
		config.SetConfigName("config")
	}

	config.SetConfigType("yaml")
	config.AddConfigPath(".")

	SetDefaults(config)

	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()

	if err := config.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	return config
}

// SetDefaults registers a value for every key the service reads, so it can
// run from environment variables alone.
func SetDefaults(config *viper.Viper) {
	config.SetDefault("app.name", "numeracy-tutor")

	config.SetDefault("api.port", 8080)
	config.SetDefault("api.prefork", false)
	config.SetDefault("api.access_log", true)
	config.SetDefault("api.cors.origins", "*")
	config.SetDefault("api.body_limit", 1024*1024)
	config.SetDefault("api.read_timeout", "15s")
	config.SetDefault("api.write_timeout", "60s")

	config.SetDefault("log.level", "info")
	config.SetDefault("log.format", "text")

	config.SetDefault("database.driver", "sqlite")
	config.SetDefault("database.sqlite.path", "tutoring.db")
	config.SetDefault("database.host", "localhost")
	config.SetDefault("database.port", 5432)
	config.SetDefault("database.username", "postgres")
	config.SetDefault("database.password", "")
	config.SetDefault("database.dbname", "numeracy_tutor")
	config.SetDefault("database.sslmode", "disable")
	config.SetDefault("database.timezone", "UTC")
	config.SetDefault("database.debug", false)
	config.SetDefault("database.seed_demo", true)

	config.SetDefault("llm.retry.max_attempts", 3)
	config.SetDefault("llm.retry.initial_wait", "500ms")
	config.SetDefault("llm.retry.max_wait", "5s")
	config.SetDefault("llm.openai.api_key", "")
	config.SetDefault("llm.openai.model", "gpt-4o-mini")
	config.SetDefault("llm.openai.base_url", "")
	config.SetDefault("llm.gemini.api_key", "")
	config.SetDefault("llm.gemini.model", "gemini-2.0-flash")

	config.SetDefault("cache.ttl", "5m")
	config.SetDefault("cache.prefix", "numeracy:")
	config.SetDefault("cache.redis.addr", "")
	config.SetDefault("cache.redis.password", "")
	config.SetDefault("cache.redis.db", 0)

	rules := DefaultRulesConfig()
	config.SetDefault("rules.window", rules.Window)
	config.SetDefault("rules.increase_threshold", rules.IncreaseThreshold)
	config.SetDefault("rules.maintain_threshold", rules.MaintainThreshold)
	config.SetDefault("rules.gap_threshold", rules.GapThreshold)
	config.SetDefault("rules.severe_gap_threshold", rules.SevereGapThreshold)
	config.SetDefault("rules.streak_length", rules.StreakLength)
}
