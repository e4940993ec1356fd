package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"weather-lookup/models"
	"weather-lookup/screen"
)

type ctxKey struct{}

// cacheClearer реализует lookup.Service
type cacheClearer interface {
	ClearCache()
}

// Server HTTP API поверх того же цикла поиска, что и экран
type Server struct {
	lookup   screen.Lookuper
	provider string
	port     string
	started  time.Time
}

func NewServer(l screen.Lookuper, provider, port string) *Server {
	return &Server{
		lookup:   l,
		provider: provider,
		port:     port,
		started:  time.Now(),
	}
}

// Router собирает маршруты
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestID, accessLog)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/weather", s.weatherHandler).Methods(http.MethodGet)
	api.HandleFunc("/health", s.healthHandler).Methods(http.MethodGet)
	api.HandleFunc("/cache", s.clearCacheHandler).Methods(http.MethodDelete)

	r.HandleFunc("/", s.homeHandler).Methods(http.MethodGet)

	return r
}

// weatherHandler обработчик запроса погоды
func (s *Server) weatherHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	state, req := screen.Reduce(screen.State{Query: r.URL.Query().Get("city")}, screen.Submitted{})
	if req == nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: state.Err})
		return
	}

	event := screen.Perform(ctx, s.lookup, *req)
	state, _ = screen.Reduce(state, event)

	if failed, ok := event.(screen.Failed); ok {
		resp := models.ErrorResponse{Error: state.Err}
		var transport *models.TransportError
		if errors.As(failed.Err, &transport) && transport.StatusCode != 0 {
			resp.Details = fmt.Sprintf("upstream status %d", transport.StatusCode)
		}
		writeJSON(w, statusFor(failed.Err), resp)
		return
	}

	writeJSON(w, http.StatusOK, models.WeatherResponse{
		WeatherSummary: *state.Summary,
		Icon:           screen.ConditionToIcon(state.Summary.ConditionMain),
		Provider:       s.provider,
	})
}

// statusFor переводит ошибку поиска в HTTP статус
func statusFor(err error) int {
	var notFound *models.NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound
	}
	var validation models.ValidationError
	if errors.As(err, &validation) {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

// healthHandler проверка здоровья сервиса
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
		"provider":  s.provider,
	})
}

// clearCacheHandler очищает кеш поиска
func (s *Server) clearCacheHandler(w http.ResponseWriter, r *http.Request) {
	c, ok := s.lookup.(cacheClearer)
	if !ok {
		writeJSON(w, http.StatusNotImplemented, models.ErrorResponse{Error: "cache is not supported"})
		return
	}

	c.ClearCache()
	log.Printf("[%s] кеш очищен", RequestIDFrom(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

// homeHandler главная страница
func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `
    <!DOCTYPE html>
    <html>
    <head>
        <title>Weather App</title>
        <style>
            body { font-family: Arial, sans-serif; margin: 40px; }
            .container { max-width: 800px; margin: 0 auto; }
            code { background: #eee; padding: 2px 4px; }
        </style>
    </head>
    <body>
        <div class="container">
            <h1>🌤️ Weather App</h1>
            <ul>
                <li><code>GET /api/weather?city=Paris</code></li>
                <li><code>GET /api/health</code></li>
                <li><code>DELETE /api/cache</code></li>
            </ul>
            <pre><code>curl "http://localhost:%s/api/weather?city=Paris"</code></pre>
        </div>
    </body>
    </html>
    `, s.port)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ошибка записи ответа: %v", err)
	}
}

// requestID проставляет X-Request-ID, если клиент его не прислал
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// RequestIDFrom достает id запроса из контекста
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("[%s] %s %s %d %v", RequestIDFrom(r.Context()), r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

// ListenAndServe запускает сервер и ждет отмены ctx для graceful shutdown
func (s *Server) ListenAndServe(ctx context.Context) error {
	server := &http.Server{
		Addr:         ":" + s.port,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Сервер запущен на порту %s", s.port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Завершение работы сервера...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ошибка при завершении работы сервера: %w", err)
	}

	log.Println("Сервер остановлен")
	return nil
}
