package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env    string `yaml:"env" env:"ENV" env-default:"local"`
	API    API    `yaml:"api"`
	Cache  Cache  `yaml:"cache"`
	Search Search `yaml:"search"`
}

type API struct {
	BaseURL        string        `yaml:"base_url" env:"VENUELINK_API_BASE_URL" env-required:"true"`
	RequestTimeout time.Duration `yaml:"request_timeout" env-default:"10s"`
	MaxRetries     int           `yaml:"max_retries" env-default:"3"`
	RetryBaseDelay time.Duration `yaml:"retry_base_delay" env-default:"1s"`
}

type Cache struct {
	VenueStaleAfter   time.Duration `yaml:"venue_stale_after" env-default:"10m"`
	BookingStaleAfter time.Duration `yaml:"booking_stale_after" env-default:"2m"`
	StatsStaleAfter   time.Duration `yaml:"stats_stale_after" env-default:"1m"`
	StatsPollInterval time.Duration `yaml:"stats_poll_interval" env-default:"60s"`
	GCWindow          time.Duration `yaml:"gc_window" env-default:"30m"`
}

type Search struct {
	DebounceWindow time.Duration `yaml:"debounce_window" env-default:"500ms"`
	PageSize       int           `yaml:"page_size" env-default:"20"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/local.yaml"
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return &cfg
}
