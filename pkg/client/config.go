package client

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config хранит настройки клиента REST API линий
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	SnapshotPath string
	LogLevel     string
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	baseURL := strings.TrimRight(os.Getenv("LGN_API"), "/")
	if baseURL == "" {
		baseURL = "http://127.0.0.1:5000/api"
	}

	timeoutStr := os.Getenv("LGN_API_TIMEOUT_MS")
	timeout, err := strconv.Atoi(timeoutStr)
	if err != nil || timeout <= 0 {
		timeout = 3000
	}

	snapshot := os.Getenv("LGN_CACHE")
	if snapshot == "" {
		snapshot = "/tmp/of_cache.json"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		BaseURL:      baseURL,
		Timeout:      time.Duration(timeout) * time.Millisecond,
		SnapshotPath: snapshot,
		LogLevel:     logLevel,
	}
}
