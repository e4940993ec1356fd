package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"weather-lookup/models"
)

func newTestOpenWeather(t *testing.T, h http.HandlerFunc) *OpenWeatherProvider {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	p := NewOpenWeatherProvider("test-key", "en")
	p.baseURL = ts.URL + "/data/2.5/weather"
	return p
}

func TestOpenWeatherLookupSuccess(t *testing.T) {
	var gotQuery map[string]string
	p := newTestOpenWeather(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"q": q.Get("q"), "appid": q.Get("appid"), "units": q.Get("units"), "lang": q.Get("lang"),
		}
		fmt.Fprint(w, `{"name":"Paris","main":{"temp":18.4},"weather":[{"main":"Clouds","description":"overcast clouds"},{"main":"Rain","description":"light rain"}]}`)
	})

	summary, err := p.Lookup(context.Background(), "São Paulo & Co")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}

	want := models.WeatherSummary{LocationName: "Paris", TemperatureCelsius: 18, ConditionText: "overcast clouds", ConditionMain: "Clouds"}
	if *summary != want {
		t.Errorf("summary = %+v, want %+v", *summary, want)
	}
	if gotQuery["q"] != "São Paulo & Co" {
		t.Errorf("q = %q, city must survive URL encoding", gotQuery["q"])
	}
	if gotQuery["appid"] != "test-key" || gotQuery["units"] != "metric" || gotQuery["lang"] != "en" {
		t.Errorf("unexpected query params: %v", gotQuery)
	}
}

func TestOpenWeatherRoundsTemperature(t *testing.T) {
	for temp, want := range map[string]int{"21.6": 22, "21.5": 22, "21.4": 21, "-2.5": -2, "-2.6": -3, "0": 0} {
		p := newTestOpenWeather(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `{"name":"X","main":{"temp":%s},"weather":[{"main":"Clear","description":"clear sky"}]}`, temp)
		})
		summary, err := p.Lookup(context.Background(), "X")
		if err != nil {
			t.Fatalf("temp %s: %v", temp, err)
		}
		if summary.TemperatureCelsius != want {
			t.Errorf("temp %s rounded to %d, want %d", temp, summary.TemperatureCelsius, want)
		}
	}
}

func TestOpenWeatherNotFound(t *testing.T) {
	p := newTestOpenWeather(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"cod":"404","message":"city not found"}`)
	})

	_, err := p.Lookup(context.Background(), "Atlantis")
	var notFound *models.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.City != "Atlantis" {
		t.Errorf("City = %q", notFound.City)
	}
	if models.UserMessage(err) != models.MsgCityNotFound {
		t.Errorf("message = %q", models.UserMessage(err))
	}
}

func TestOpenWeatherNon2xx(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusTooManyRequests, http.StatusInternalServerError} {
		p := newTestOpenWeather(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})

		_, err := p.Lookup(context.Background(), "Paris")
		var transport *models.TransportError
		if !errors.As(err, &transport) {
			t.Fatalf("status %d: expected TransportError, got %v", status, err)
		}
		if transport.StatusCode != status {
			t.Errorf("StatusCode = %d, want %d", transport.StatusCode, status)
		}
		if models.UserMessage(err) != models.MsgFetchFailed {
			t.Errorf("status %d: message = %q", status, models.UserMessage(err))
		}
	}
}

func TestOpenWeatherShapeMismatch(t *testing.T) {
	bodies := map[string]string{
		"not json":        `<html>oops</html>`,
		"no name":         `{"main":{"temp":1},"weather":[{"main":"Clear","description":"clear"}]}`,
		"no main":         `{"name":"X","weather":[{"main":"Clear","description":"clear"}]}`,
		"no temp":         `{"name":"X","main":{},"weather":[{"main":"Clear","description":"clear"}]}`,
		"temp not number": `{"name":"X","main":{"temp":"warm"},"weather":[{"main":"Clear","description":"clear"}]}`,
		"empty weather":   `{"name":"X","main":{"temp":1},"weather":[]}`,
		"no description":  `{"name":"X","main":{"temp":1},"weather":[{"main":"Clear"}]}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			p := newTestOpenWeather(t, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, body)
			})
			_, err := p.Lookup(context.Background(), "X")
			var transport *models.TransportError
			if !errors.As(err, &transport) {
				t.Fatalf("expected TransportError, got %v", err)
			}
		})
	}
}

func TestOpenWeatherNetworkErrorHidesKey(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	p := NewOpenWeatherProvider("super-secret", "en")
	p.baseURL = ts.URL

	_, err := p.Lookup(context.Background(), "Paris")
	var transport *models.TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if strings.Contains(err.Error(), "super-secret") {
		t.Errorf("error leaks API key: %v", err)
	}
}

func TestOpenWeatherContextCanceled(t *testing.T) {
	p := newTestOpenWeather(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Lookup(ctx, "Paris")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled in chain, got %v", err)
	}
}

func TestOpenWeatherAlwaysRequestsMetric(t *testing.T) {
	var units string
	p := newTestOpenWeather(t, func(w http.ResponseWriter, r *http.Request) {
		units = r.URL.Query().Get("units")
		fmt.Fprint(w, `{"name":"Paris","main":{"temp":18.4},"weather":[{"main":"Clouds","description":"overcast clouds"}]}`)
	})

	if _, err := p.Lookup(context.Background(), "Paris"); err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if units != "metric" {
		t.Errorf("units = %q, want metric", units)
	}
}

func TestOpenWeatherIsAvailable(t *testing.T) {
	if !NewOpenWeatherProvider("key", "en").IsAvailable() {
		t.Error("provider with a key must be available")
	}
	if NewOpenWeatherProvider("", "en").IsAvailable() {
		t.Error("provider without a key must not be available")
	}
}
