package app

import (
	"github.com/capframe/capframe-backend/internal/platform/envutil"
	"github.com/capframe/capframe-backend/internal/platform/logger"
)

type Config struct {
	Env     string
	Version string

	HTTPAddr    string
	MetricsAddr string
	RedisAddr   string

	SeedCapabilities bool
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Env:              envutil.Str("APP_ENV", "development"),
		Version:          envutil.Str("APP_VERSION", "dev"),
		HTTPAddr:         ":" + envutil.Str("PORT", "8080"),
		MetricsAddr:      envutil.Str("METRICS_ADDR", ""),
		RedisAddr:        envutil.Str("REDIS_ADDR", ""),
		SeedCapabilities: envutil.Bool("SEED_CAPABILITIES", false),
	}
	log.Info("Config loaded",
		"env", cfg.Env,
		"http_addr", cfg.HTTPAddr,
		"metrics_addr", cfg.MetricsAddr,
		"seed_capabilities", cfg.SeedCapabilities)
	return cfg
}
