package lookup

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"weather-lookup/models"
	"weather-lookup/providers"
)

// Service выполняет запрос к выбранному провайдеру, по желанию кеширует ответы
type Service struct {
	provider providers.Provider
	cache    map[string]cacheEntry
	cacheMu  sync.RWMutex
	cacheTTL time.Duration
	debug    bool
	now      func() time.Time
}

type cacheEntry struct {
	data      models.WeatherSummary
	timestamp time.Time
}

// NewService создает сервис; cacheDurationMinutes == 0 выключает кеш
func NewService(provider providers.Provider, cacheDurationMinutes int, debug bool) *Service {
	return &Service{
		provider: provider,
		cache:    make(map[string]cacheEntry),
		cacheTTL: time.Duration(cacheDurationMinutes) * time.Minute,
		debug:    debug,
		now:      time.Now,
	}
}

// Lookup получает погоду для города. Один вызов - не больше одного запроса к провайдеру.
func (s *Service) Lookup(ctx context.Context, query string) (*models.WeatherSummary, error) {
	city := strings.TrimSpace(query)
	if city == "" {
		return nil, models.ValidationError{}
	}

	cacheKey := strings.ToLower(city)

	// Пробуем получить из кеша
	if cached, found := s.getFromCache(cacheKey); found {
		if s.debug {
			log.Printf("[%s] %q из кеша", s.provider.Name(), city)
		}
		return cached, nil
	}

	// без ключа запрос все равно уходит, отказ вернет сам провайдер
	if !s.provider.IsAvailable() {
		log.Printf("[%s] API ключ не задан", s.provider.Name())
	}

	start := s.now()
	summary, err := s.provider.Lookup(ctx, city)
	if err != nil {
		log.Printf("[%s] %q: %v", s.provider.Name(), city, err)
		return nil, err
	}

	if s.debug {
		log.Printf("[%s] %q: %d°, %s (%v)", s.provider.Name(), city,
			summary.TemperatureCelsius, summary.ConditionMain, s.now().Sub(start))
	}

	s.saveToCache(cacheKey, summary)

	return summary, nil
}

func (s *Service) ProviderName() string {
	return s.provider.Name()
}

// getFromCache получает данные из кеша
func (s *Service) getFromCache(key string) (*models.WeatherSummary, bool) {
	if s.cacheTTL <= 0 {
		return nil, false
	}

	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()

	entry, found := s.cache[key]
	if !found {
		return nil, false
	}

	// Проверяем TTL
	if s.now().Sub(entry.timestamp) > s.cacheTTL {
		return nil, false
	}

	// копия, чтобы вызывающий не испортил кеш
	data := entry.data
	return &data, true
}

// saveToCache сохраняет данные в кеш
func (s *Service) saveToCache(key string, data *models.WeatherSummary) {
	if s.cacheTTL <= 0 {
		return
	}

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.cache[key] = cacheEntry{
		data:      *data,
		timestamp: s.now(),
	}
}

// ClearCache очищает кеш
func (s *Service) ClearCache() {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.cache = make(map[string]cacheEntry)
}
