package config

import (
	"fmt"
	"log"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
		Simulate  bool   `env:"SIMULATE" env-default:"false"`
	}
	Archive struct {
		Folder  string `env:"ARCHIVE_FOLDER" env-default:"./archive"`
		MinDate string `env:"MIN_DATE"`
		MaxDate string `env:"MAX_DATE"`
	}
	Bluesky struct {
		PdsURL        string `env:"BLUESKY_PDS_URL" env-default:"https://bsky.social"`
		Handle        string `env:"BLUESKY_USERNAME"`
		Password      string `env:"BLUESKY_PASSWORD"`
		VideoUpload   bool   `env:"BLUESKY_VIDEO_UPLOAD" env-default:"true"`
		MaxImageBytes int64  `env:"BLUESKY_MAX_IMAGE_BYTES" env-default:"1000000"`
		MaxVideoBytes int64  `env:"BLUESKY_MAX_VIDEO_BYTES" env-default:"104857600"`
		WriteDelayMs  int    `env:"BLUESKY_WRITE_DELAY_MS" env-default:"3000"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Telegram struct {
		User  int64  `env:"TELEGRAM_USER"`
		Token string `env:"TELEGRAM_TOKEN"`
	}
	Migrator struct {
		WatchCron string `env:"MIGRATOR_WATCH_CRON"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}

// GetDSN builds the Postgres connection string for database/sql consumers.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("dbname=%s user=%s password=%s host=%s port=%d sslmode=%s",
		c.Postgres.Name, c.Postgres.User, c.Postgres.Pass, c.Postgres.Host, c.Postgres.Port, c.Postgres.SslMode)
}

// PostgresEnabled reports whether a ledger database was configured.
func (c *Config) PostgresEnabled() bool {
	return c.Postgres.Host != ""
}
