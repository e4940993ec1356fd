package screen

import (
	"context"

	"weather-lookup/models"
)

// Lookuper выполняет поиск погоды (lookup.Service, провайдер, заглушка в тестах)
type Lookuper interface {
	Lookup(ctx context.Context, query string) (*models.WeatherSummary, error)
}

// Perform выполняет запрос и возвращает событие завершения
func Perform(ctx context.Context, l Lookuper, req Request) Event {
	summary, err := l.Lookup(ctx, req.Query)
	if err != nil {
		return Failed{Seq: req.Seq, Err: err}
	}
	if summary == nil {
		return Failed{Seq: req.Seq, Err: models.NewTransportError(0, nil)}
	}
	return Succeeded{Seq: req.Seq, Summary: *summary}
}

// Submit проходит весь цикл поиска синхронно:
// проверка ввода, один запрос, успех или ошибка.
func Submit(ctx context.Context, l Lookuper, s State) State {
	next, req := Reduce(s, Submitted{})
	if req == nil {
		return next
	}

	next, _ = Reduce(next, Perform(ctx, l, *req))
	return next
}
