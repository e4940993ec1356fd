package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"weather-lookup/models"
)

// fakeData ответы в формате OpenWeatherMap для режима без сети
const fakeData = `{
  "paris": {
    "name": "Paris",
    "main": {"temp": 18.4},
    "weather": [{"main": "Clouds", "description": "overcast clouds"}]
  },
  "london": {
    "name": "London",
    "main": {"temp": 12.5},
    "weather": [{"main": "Drizzle", "description": "light intensity drizzle"}]
  },
  "moscow": {
    "name": "Moscow",
    "main": {"temp": -2.5},
    "weather": [{"main": "Snow", "description": "light snow"}]
  },
  "cairo": {
    "name": "Cairo",
    "main": {"temp": 31.6},
    "weather": [{"main": "Clear", "description": "clear sky"}]
  },
  "tokyo": {
    "name": "Tokyo",
    "main": {"temp": 21.6},
    "weather": [{"main": "Rain", "description": "moderate rain"}]
  },
  "miami": {
    "name": "Miami",
    "main": {"temp": 27.2},
    "weather": [{"main": "Thunderstorm", "description": "thunderstorm with heavy rain"}]
  },
  "reykjavik": {
    "name": "Reykjavik",
    "main": {"temp": 4.1},
    "weather": [{"main": "Mist", "description": "mist"}]
  }
}`

// MockProvider имитирует запрос: ждет фиксированную задержку
// и отвечает из fakeData.
type MockProvider struct {
	delay time.Duration
	data  map[string]json.RawMessage
}

func NewMockProvider(delay time.Duration) *MockProvider {
	data := make(map[string]json.RawMessage)
	if err := json.Unmarshal([]byte(fakeData), &data); err != nil {
		panic(fmt.Sprintf("fakeData: %v", err))
	}
	return &MockProvider{delay: delay, data: data}
}

func (p *MockProvider) Name() string {
	return "Mock"
}

func (p *MockProvider) IsAvailable() bool {
	return true
}

func (p *MockProvider) Lookup(ctx context.Context, city string) (*models.WeatherSummary, error) {
	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, models.NewTransportError(0, ctx.Err())
		case <-timer.C:
		}
	}

	raw, ok := p.data[strings.ToLower(strings.TrimSpace(city))]
	if !ok {
		return nil, &models.NotFoundError{City: city}
	}

	var result owmResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, models.NewTransportError(0, fmt.Errorf("ошибка парсинга JSON: %w", err))
	}

	summary, err := result.summary()
	if err != nil {
		return nil, models.NewTransportError(0, err)
	}
	return summary, nil
}
