package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Имена провайдеров, которые можно выбрать через WEATHER_PROVIDER
const (
	ProviderOpenWeather = "openweather"
	ProviderWeatherAPI  = "weatherapi"
	ProviderMock        = "mock"
)

type Config struct {
	OpenWeatherAPIKey string
	WeatherAPIKey     string
	Provider          string
	Lang              string
	MockDelay         time.Duration
	ServerPort        string
	CacheDuration     int // минуты, 0 - кеш выключен
	LogLevel          string
}

func Load() (*Config, error) {
	// Загружаем .env файл если существует
	godotenv.Load()

	config := &Config{
		OpenWeatherAPIKey: getEnv("OPENWEATHER_API_KEY", ""),
		WeatherAPIKey:     getEnv("WEATHERAPI_API_KEY", ""),
		Provider:          strings.ToLower(getEnv("WEATHER_PROVIDER", ProviderOpenWeather)),
		Lang:              getEnv("WEATHER_LANG", "en"),
		MockDelay:         time.Duration(getEnvAsInt("MOCK_DELAY_MS", 1500)) * time.Millisecond,
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		CacheDuration:     getEnvAsInt("CACHE_DURATION", 0),
		LogLevel:          strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}

	switch config.Provider {
	case ProviderOpenWeather, ProviderWeatherAPI, ProviderMock:
	default:
		return nil, fmt.Errorf("неизвестный провайдер %q (openweather, weatherapi, mock)", config.Provider)
	}

	// Отсутствие ключа не ошибка: запрос просто отклонит сам провайдер
	if config.APIKey() == "" && config.Provider != ProviderMock {
		log.Printf("Внимание: API ключ для провайдера %s не задан", config.Provider)
	}

	return config, nil
}

// APIKey возвращает ключ выбранного провайдера
func (c *Config) APIKey() string {
	switch c.Provider {
	case ProviderOpenWeather:
		return c.OpenWeatherAPIKey
	case ProviderWeatherAPI:
		return c.WeatherAPIKey
	}
	return ""
}

func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil || intValue < 0 {
		return defaultValue
	}
	return intValue
}
