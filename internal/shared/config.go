package shared

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	APIBase     string
	TokenPath   string
	MetricsAddr string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	CacheTTL    time.Duration
	NearbyQuiet time.Duration
	CallbackURL string
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		APIBase:     env("API_BASE_URL", "https://hotel-booking-api-r5dd.onrender.com"),
		TokenPath:   env("TOKEN_PATH", defaultTokenPath()),
		MetricsAddr: env("METRICS_ADDR", ""),
		RedisAddr:   env("REDIS_ADDR", ""),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		NearbyQuiet: time.Duration(atoi("NEARBY_QUIET_MS", 800)) * time.Millisecond,
		CallbackURL: env("PAYMENT_CALLBACK_URL", "app://payment-callback"),
	}
	if c.APIBase == "" {
		log.Warn().Msg("API_BASE_URL is empty")
	}
	return c
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".staysync_token"
	}
	return filepath.Join(home, ".staysync", "token")
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
