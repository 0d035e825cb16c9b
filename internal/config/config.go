package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	TelegramBotToken string
	RedisURL         string
	HTTPPort         int
	MoversPerPage    int
	ReportCacheSecs  int
}

func Load() *Config {
	cfg := &Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		RedisURL:         os.Getenv("REDIS_URL"),
	}

	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, report caching disabled")
	}

	cfg.HTTPPort = 8080
	if v := os.Getenv("HTTP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPPort = n
		}
	}

	cfg.MoversPerPage = 50
	if v := os.Getenv("MOVERS_PER_PAGE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MoversPerPage = n
		}
	}

	cfg.ReportCacheSecs = 60
	if v := os.Getenv("REPORT_CACHE_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.ReportCacheSecs = n
		}
	}

	return cfg
}
