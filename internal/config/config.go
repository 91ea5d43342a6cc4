package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`

	DBConnectionString string `envconfig:"DATABASE_URL" required:"true"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	// Redis settings (leaderboard cache). Leave REDIS_ADDR empty to disable caching.
	RedisAddr     string `envconfig:"REDIS_ADDR" default:""`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Pub/Sub settings (change-event fanout). Leave GCP_PROJECT_ID empty to disable publishing.
	GCPProjectID       string `envconfig:"GCP_PROJECT_ID" default:""`
	PubSubEmulatorHost string `envconfig:"PUBSUB_EMULATOR_HOST" default:""`
	EventsTopic        string `envconfig:"EVENTS_TOPIC" default:"zenflow_events"`

	// Leaderboard settings
	LeaderboardSize        int `envconfig:"LEADERBOARD_SIZE" default:"10"`
	LeaderboardCacheTTLSec int `envconfig:"LEADERBOARD_CACHE_TTL_SEC" default:"30"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
