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

type OpenWeatherProvider struct {
	apiKey  string
	lang    string
	client  *http.Client
	baseURL string
}

func NewOpenWeatherProvider(apiKey, lang string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		apiKey: apiKey,
		lang:   lang,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: "https://api.openweathermap.org/data/2.5/weather",
	}
}

func (p *OpenWeatherProvider) Name() string {
	return "OpenWeatherMap"
}

func (p *OpenWeatherProvider) IsAvailable() bool {
	return p.apiKey != ""
}

func (p *OpenWeatherProvider) Lookup(ctx context.Context, city string) (*models.WeatherSummary, error) {
	// Формируем запрос
	query := url.Values{}
	query.Set("q", city)
	query.Set("appid", p.apiKey)
	query.Set("units", "metric") // WeatherSummary хранит градусы Цельсия
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
		return nil, models.NewTransportError(resp.StatusCode, fmt.Errorf("ошибка API: статус %d", resp.StatusCode))
	}

	var result owmResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, models.NewTransportError(resp.StatusCode, fmt.Errorf("ошибка парсинга JSON: %w", err))
	}

	summary, err := result.summary()
	if err != nil {
		return nil, models.NewTransportError(resp.StatusCode, err)
	}
	return summary, nil
}

// owmResponse схема ответа /data/2.5/weather, только нужные поля.
// Указатели отличают отсутствующее поле от нулевого значения.
type owmResponse struct {
	Name string `json:"name"`
	Main *struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

func (r *owmResponse) summary() (*models.WeatherSummary, error) {
	if r.Name == "" {
		return nil, errors.New("в ответе нет названия города")
	}
	if r.Main == nil || r.Main.Temp == nil {
		return nil, errors.New("в ответе нет температуры")
	}
	if len(r.Weather) == 0 {
		return nil, errors.New("нет данных о погоде")
	}

	current := r.Weather[0]
	if current.Main == "" || current.Description == "" {
		return nil, errors.New("неполное описание погоды")
	}

	return &models.WeatherSummary{
		LocationName:       r.Name,
		TemperatureCelsius: roundTemp(*r.Main.Temp),
		ConditionText:      current.Description,
		ConditionMain:      current.Main,
	}, nil
}

// redactURL убирает URL (с ключом) из ошибки http.Client
func redactURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
