package models

// WeatherSummary готовый к показу результат успешного запроса
type WeatherSummary struct {
	LocationName       string `json:"name"`
	TemperatureCelsius int    `json:"temp"`        // округлено до целого
	ConditionText      string `json:"description"` // описание от провайдера
	ConditionMain      string `json:"main"`        // категория (Clear, Clouds, Rain...)
}

// WeatherResponse ответ HTTP API
type WeatherResponse struct {
	WeatherSummary
	Icon     string `json:"icon"`
	Provider string `json:"provider"`
}

// ErrorResponse структура для ошибок
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
