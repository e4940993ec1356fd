package providers

import (
	"context"
	"math"

	"weather-lookup/models"
)

// Provider интерфейс для всех погодных провайдеров
type Provider interface {
	Name() string
	Lookup(ctx context.Context, city string) (*models.WeatherSummary, error)
	IsAvailable() bool
}

// roundTemp округляет до ближайшего целого, половины вверх (21.5 -> 22, -2.5 -> -2)
func roundTemp(t float64) int {
	return int(math.Floor(t + 0.5))
}
