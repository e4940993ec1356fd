package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"weather-lookup/config"
	"weather-lookup/lookup"
	"weather-lookup/models"
	"weather-lookup/providers"
	"weather-lookup/screen"
	"weather-lookup/server"
	"weather-lookup/tui"
)

var (
	cfg     *config.Config
	svc     *lookup.Service
	useMock bool
)

func main() {
	// Загружаем конфигурацию
	var err error
	cfg, err = config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Создаем CLI команды
	var rootCmd = &cobra.Command{
		Use:   "weather",
		Short: "Погода по названию города",
		Long:  "Ищет текущую погоду для города: в терминале, одной командой или через HTTP API",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			svc = lookup.NewService(newProvider(), cfg.CacheDuration, cfg.Debug())
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVar(&useMock, "mock", false, "Использовать тестовые данные вместо API")

	// Интерактивный экран
	var tuiCmd = &cobra.Command{
		Use:   "tui",
		Short: "Интерактивный экран поиска",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Debug() {
				f, err := tea.LogToFile("weather-debug.log", "debug")
				if err != nil {
					return err
				}
				defer f.Close()
			} else {
				// логи испортят экран
				log.SetOutput(io.Discard)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return tui.Run(ctx, svc, svc.ProviderName())
		},
	}

	// Команда для запуска сервера
	var serverCmd = &cobra.Command{
		Use:   "server",
		Short: "Запуск HTTP сервера",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.NewServer(svc, svc.ProviderName(), cfg.ServerPort).ListenAndServe(ctx)
		},
	}

	// Команда для запроса погоды через CLI
	var getCmd = &cobra.Command{
		Use:   "get [город]",
		Short: "Получить погоду для города",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			return getWeatherCLI(strings.Join(args, " "), output)
		},
	}

	getCmd.Flags().StringP("output", "o", "text", "Формат вывода (text, json)")

	// Команда для проверки провайдеров
	var providersCmd = &cobra.Command{
		Use:   "providers",
		Short: "Показать список доступных провайдеров",
		Run: func(cmd *cobra.Command, args []string) {
			showProviders()
		},
	}

	var iconCmd = &cobra.Command{
		Use:   "icon [категория]",
		Short: "Показать иконку для категории погоды",
		Args:  cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(screen.ConditionToIcon(strings.Join(args, " ")))
		},
	}

	rootCmd.AddCommand(tuiCmd, serverCmd, getCmd, providersCmd, iconCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newProvider выбирает провайдера по конфигурации и флагу --mock
func newProvider() providers.Provider {
	name := cfg.Provider
	if useMock {
		name = config.ProviderMock
	}

	switch name {
	case config.ProviderWeatherAPI:
		return providers.NewWeatherAPIProvider(cfg.WeatherAPIKey, cfg.Lang)
	case config.ProviderMock:
		return providers.NewMockProvider(cfg.MockDelay)
	default:
		return providers.NewOpenWeatherProvider(cfg.OpenWeatherAPIKey, cfg.Lang)
	}
}

// getWeatherCLI получает погоду через CLI
func getWeatherCLI(city, output string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	state := screen.Submit(ctx, svc, screen.State{Query: city})
	if state.Summary == nil {
		return errors.New(state.Err)
	}

	if output == "json" {
		data, err := json.MarshalIndent(models.WeatherResponse{
			WeatherSummary: *state.Summary,
			Icon:           screen.ConditionToIcon(state.Summary.ConditionMain),
			Provider:       svc.ProviderName(),
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("ошибка формирования JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	// Текстовый вывод
	v := screen.Render(state)
	fmt.Printf("%s  %s\n", v.Icon, v.Location)
	fmt.Println(strings.Repeat("=", 40))
	fmt.Printf("Температура: %s\n", v.Temperature)
	fmt.Printf("Описание: %s\n", v.Description)
	fmt.Printf("Источник: %s, %s\n", svc.ProviderName(), time.Now().Format("15:04:05"))
	return nil
}

// showProviders показывает список доступных провайдеров
func showProviders() {
	fmt.Println("📡 Доступные провайдеры погоды:")
	fmt.Println(strings.Repeat("-", 30))

	for _, p := range allProviders() {
		active := ""
		if p.Name() == svc.ProviderName() {
			active = " (выбран)"
		}
		if p.IsAvailable() {
			fmt.Printf("✓ %s%s\n", p.Name(), active)
		} else {
			fmt.Printf("✗ %s (нет ключа)%s\n", p.Name(), active)
		}
	}
}

// allProviders все провайдеры в порядке показа
func allProviders() []providers.Provider {
	return []providers.Provider{
		providers.NewOpenWeatherProvider(cfg.OpenWeatherAPIKey, cfg.Lang),
		providers.NewWeatherAPIProvider(cfg.WeatherAPIKey, cfg.Lang),
		providers.NewMockProvider(cfg.MockDelay),
	}
}
