package configs

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Режимы загрузки списка в терминальном клиенте
const (
	ListModeServer = "server" // страницы, фильтры и сортировка на сервере
	ListModeLoaded = "loaded" // весь список загружается один раз
)

// ClientConfig - настройки терминального клиента
type ClientConfig struct {
	APIBaseURL string
	Timeout    time.Duration
	Mode       string
	PageSize   int
	Email      string
	Password   string
}

// LoadClientConfig читает настройки клиента. Флаги командной строки применяются поверх.
func LoadClientConfig(envPath ...string) *ClientConfig {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath...)
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: could not load .env file (path: %v): %v. Using process environment.\n", envPath, err)
	}

	cfg := &ClientConfig{}
	cfg.APIBaseURL = strings.TrimRight(getEnvAsString("API_BASE_URL", "http://localhost:8080"), "/")
	cfg.Timeout = getEnvAsDuration("API_TIMEOUT", 15*time.Second)
	cfg.Mode = strings.ToLower(getEnvAsString("LIST_MODE", ListModeServer))
	if cfg.Mode != ListModeLoaded {
		cfg.Mode = ListModeServer
	}
	cfg.PageSize = getEnvAsInt("LIST_PAGE_SIZE", 0)
	cfg.Email = getEnvAsString("BACKOFFICE_EMAIL", "")
	cfg.Password = getEnvAsString("BACKOFFICE_PASSWORD", "")
	return cfg
}
