package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/ykvlv/hydration-bot/internal/domain"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken  string `envconfig:"BOT_TOKEN" required:"true"`
	DBPath    string `envconfig:"DB_PATH" default:"./data/hydration.db"`
	DefaultTZ string `envconfig:"DEFAULT_TZ" default:"UTC"`
	HTTPAddr  string `envconfig:"HTTP_ADDR" default:":8080"` // healthz/readyz

	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
	LogFile       string `envconfig:"LOG_FILE"`                 // empty: stdout only
	LogMaxSizeMB  int    `envconfig:"LOG_MAX_SIZE_MB" default:"100"`
	LogMaxBackups int    `envconfig:"LOG_MAX_BACKUPS" default:"3"`
	LogMaxAgeDays int    `envconfig:"LOG_MAX_AGE_DAYS" default:"28"`

	TickInterval    time.Duration `envconfig:"TICK_INTERVAL" default:"60s"`
	DueTolerance    time.Duration `envconfig:"DUE_TOLERANCE" default:"3m"`
	DispatchWorkers int           `envconfig:"DISPATCH_WORKERS" default:"8"`
	SendTimeout     time.Duration `envconfig:"SEND_TIMEOUT" default:"10s"`
	SendRatePerSec  float64       `envconfig:"SEND_RATE_PER_SEC" default:"25"`
	SendBurst       int           `envconfig:"SEND_BURST" default:"5"`
	RetentionDays   int           `envconfig:"RETENTION_DAYS" default:"14"`

	GoalDisplayPolicy string `envconfig:"GOAL_DISPLAY_POLICY" default:"round250"` // round250|clamp
	GoalMinML         int    `envconfig:"GOAL_MIN_ML" default:"1000"`
	GoalMaxML         int    `envconfig:"GOAL_MAX_ML" default:"5000"`

	WeatherAPIKey   string        `envconfig:"OPENWEATHER_API_KEY"` // empty: weather disabled
	WeatherURL      string        `envconfig:"WEATHER_URL" default:"https://api.openweathermap.org/data/2.5/weather"`
	WeatherTimeout  time.Duration `envconfig:"WEATHER_TIMEOUT" default:"5s"`
	WeatherCacheTTL time.Duration `envconfig:"WEATHER_CACHE_TTL" default:"1h"`

	RedisAddr     string `envconfig:"REDIS_ADDR"` // empty: no weather cache
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	MetricsEndpoint string        `envconfig:"METRICS_OTLP_ENDPOINT"` // e.g. http://collector:4318; empty: not exported
	MetricsInterval time.Duration `envconfig:"METRICS_INTERVAL" default:"30s"`
}

// Load reads an optional .env file, then environment variables into Config.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the scheduler cannot work with.
func (c Config) Validate() error {
	if _, err := c.DisplayGoal(); err != nil {
		return err
	}
	if c.GoalMinML <= 0 || c.GoalMaxML < c.GoalMinML {
		return fmt.Errorf("goal band %d..%d is invalid", c.GoalMinML, c.GoalMaxML)
	}
	if c.TickInterval <= 0 || c.DueTolerance <= 0 || c.SendTimeout <= 0 {
		return errors.New("TICK_INTERVAL, DUE_TOLERANCE and SEND_TIMEOUT must be positive")
	}
	if c.DispatchWorkers < 1 {
		return errors.New("DISPATCH_WORKERS must be at least 1")
	}
	if c.SendRatePerSec <= 0 {
		return errors.New("SEND_RATE_PER_SEC must be positive")
	}
	if c.MetricsEndpoint != "" && c.MetricsInterval <= 0 {
		return errors.New("METRICS_INTERVAL must be positive")
	}
	if _, err := domain.ValidateTZ(c.DefaultTZ); err != nil {
		return fmt.Errorf("DEFAULT_TZ: %w", err)
	}
	return nil
}

// DisplayGoal returns the calculator used to show the goal to users.
func (c Config) DisplayGoal() (domain.GoalCalculator, error) {
	policy, err := domain.ParseGoalPolicy(c.GoalDisplayPolicy)
	if err != nil {
		return domain.GoalCalculator{}, err
	}
	return domain.GoalCalculator{Policy: policy, MinML: c.GoalMinML, MaxML: c.GoalMaxML}, nil
}
