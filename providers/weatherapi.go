package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"weather-lookup/models"
)

// Код WeatherAPI для "No matching location found"
const weatherAPINoLocation = 1006

type WeatherAPIProvider struct {
	apiKey  string
	lang    string
	client  *http.Client
	baseURL string
}

func NewWeatherAPIProvider(apiKey, lang string) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		apiKey: apiKey,
		lang:   lang,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: "https://api.weatherapi.com/v1/current.json",
	}
}

func (p *WeatherAPIProvider) Name() string {
	return "WeatherAPI"
}

func (p *WeatherAPIProvider) IsAvailable() bool {
	return p.apiKey != ""
}

func (p *WeatherAPIProvider) Lookup(ctx context.Context, city string) (*models.WeatherSummary, error) {
	// Формируем запрос
	query := url.Values{}
	query.Set("key", p.apiKey)
	query.Set("q", city)
	query.Set("lang", p.lang)

	reqURL := fmt.Sprintf("%s?%s", p.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, models.NewTransportError(0, fmt.Errorf("ошибка создания запроса: %w", err))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, models.NewTransportError(0, fmt.Errorf("ошибка HTTP запроса: %w", redactURL(err)))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusNotFound {
			return nil, &models.NotFoundError{City: city}
		}

		var apiError struct {
			Error struct {
				Code    int    `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}

		if err := json.NewDecoder(resp.Body).Decode(&apiError); err == nil && apiError.Error.Message != "" {
			if apiError.Error.Code == weatherAPINoLocation {
				return nil, &models.NotFoundError{City: city}
			}
			return nil, models.NewTransportError(resp.StatusCode, fmt.Errorf("ошибка WeatherAPI: %s", apiError.Error.Message))
		}

		return nil, models.NewTransportError(resp.StatusCode, fmt.Errorf("ошибка API: статус %d", resp.StatusCode))
	}

	// Парсим ответ
	var result struct {
		Location struct {
			Name string `json:"name"`
		} `json:"location"`
		Current *struct {
			TempC     *float64 `json:"temp_c"`
			Condition struct {
				Text string `json:"text"`
			} `json:"condition"`
		} `json:"current"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, models.NewTransportError(resp.StatusCode, fmt.Errorf("ошибка парсинга JSON: %w", err))
	}

	if result.Location.Name == "" || result.Current == nil || result.Current.Condition.Text == "" {
		return nil, models.NewTransportError(resp.StatusCode, errors.New("неполный ответ WeatherAPI"))
	}

	temp := result.Current.TempC
	if temp == nil {
		return nil, models.NewTransportError(resp.StatusCode, errors.New("в ответе нет температуры"))
	}

	// У WeatherAPI нет отдельной категории, берем текст условия
	return &models.WeatherSummary{
		LocationName:       result.Location.Name,
		TemperatureCelsius: roundTemp(*temp),
		ConditionText:      result.Current.Condition.Text,
		ConditionMain:      result.Current.Condition.Text,
	}, nil
}
