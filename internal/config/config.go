// Package config は環境変数によるアプリケーション設定を提供する。
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Database
	DatabaseURL string

	// Server
	ServerPort string

	// Catalog
	DefaultPageSize int // sort/page/limit未指定時の1ページあたり件数
	MaxPageSize     int // limitパラメータの上限

	// Rate Limit
	RateLimitPerMin int // IPごとのリクエスト数/分

	// Collector
	ScrapeInterval       time.Duration
	ScrapeTimeout        time.Duration
	ScrapeDelay          time.Duration
	ScrapeParallelism    int
	ScrapeUserAgent      string
	ProductRetentionDays int // この日数を超えて再収集されない商品は削除する
}

// Load は環境変数からConfigを読み込む。
// カレントディレクトリに.envがあれば先に読み込む（開発用、無ければ無視）。
// 必須環境変数が未設定の場合はエラーを返す。
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.DefaultPageSize = getEnvInt("DEFAULT_PAGE_SIZE", 20)
	cfg.MaxPageSize = getEnvInt("MAX_PAGE_SIZE", 100)
	cfg.RateLimitPerMin = getEnvInt("RATE_LIMIT_PER_MIN", 120)
	cfg.ScrapeInterval = getEnvDuration("SCRAPE_INTERVAL", 6*time.Hour)
	cfg.ScrapeTimeout = getEnvDuration("SCRAPE_TIMEOUT", 30*time.Second)
	cfg.ScrapeDelay = getEnvDuration("SCRAPE_DELAY", 2*time.Second)
	cfg.ScrapeParallelism = getEnvInt("SCRAPE_PARALLELISM", 2)
	cfg.ScrapeUserAgent = getEnvString("SCRAPE_USER_AGENT", "komeprice-bot/1.0")
	cfg.ProductRetentionDays = getEnvInt("PRODUCT_RETENTION_DAYS", 14)

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
