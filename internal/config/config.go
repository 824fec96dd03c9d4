package config

import (
	"os"
	"time"
)

type Config struct {
	ListenAddr     string
	DBPath         string
	StoragePath    string
	BaseURL        string
	FetchTimeout   time.Duration
	MaxSourceBytes int64
}

func Load() *Config {
	return &Config{
		ListenAddr:     getEnv("IMG_LISTEN_ADDR", ":8080"),
		DBPath:         getEnv("IMG_DB_PATH", "/data/db/images.db"),
		StoragePath:    getEnv("IMG_STORAGE_PATH", "/data/objects"),
		BaseURL:        getEnv("IMG_BASE_URL", "http://localhost:8080"),
		FetchTimeout:   time.Duration(getEnvInt("IMG_FETCH_TIMEOUT", 30)) * time.Second,
		MaxSourceBytes: int64(getEnvInt("IMG_MAX_SOURCE_BYTES", 20<<20)),
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	var result int
	for _, c := range v {
		if c < '0' || c > '9' {
			return defaultValue
		}
		result = result*10 + int(c-'0')
	}
	return result
}
