package screen

import (
	"context"
	"testing"

	"weather-lookup/models"
	"weather-lookup/providers"
)

type countingLookuper struct {
	calls   int
	summary *models.WeatherSummary
	err     error
}

func (l *countingLookuper) Lookup(ctx context.Context, query string) (*models.WeatherSummary, error) {
	l.calls++
	return l.summary, l.err
}

func TestSubmitBlankQueryNeverCallsOut(t *testing.T) {
	for _, q := range []string{"", " ", "   ", "\t"} {
		l := &countingLookuper{summary: &paris}
		s := Submit(context.Background(), l, State{Query: q})

		if l.calls != 0 {
			t.Errorf("query %q: %d outbound calls", q, l.calls)
		}
		if s.Err != models.MsgEmptyQuery {
			t.Errorf("query %q: Err = %q", q, s.Err)
		}
	}
}

func TestSubmitSuccess(t *testing.T) {
	l := &countingLookuper{summary: &paris}
	s := Submit(context.Background(), l, Initial())
	if l.calls != 0 {
		t.Fatal("initial empty query must not call out")
	}

	s.Query = "Paris"
	s = Submit(context.Background(), l, s)
	if l.calls != 1 {
		t.Fatalf("calls = %d, want 1", l.calls)
	}
	if s.Loading || s.Err != "" || s.Summary == nil || *s.Summary != paris {
		t.Errorf("unexpected state %+v", s)
	}
}

func TestSubmitNilSummary(t *testing.T) {
	l := &countingLookuper{}
	s := Submit(context.Background(), l, State{Query: "Paris"})
	if s.Err != models.MsgFetchFailed {
		t.Errorf("Err = %q", s.Err)
	}
}

// Сценарии от ввода до экрана на заглушке провайдера
func TestScenarios(t *testing.T) {
	mock := providers.NewMockProvider(0)

	t.Run("Paris", func(t *testing.T) {
		s := Submit(context.Background(), mock, State{Query: "Paris"})
		v := Render(s)
		if !v.HasWeather || v.Icon != "☁️" || v.Location != "Paris" || v.Temperature != "18°C" || v.Description != "overcast clouds" {
			t.Errorf("view = %+v", v)
		}
		if v.Error != "" {
			t.Errorf("unexpected error %q", v.Error)
		}
	})

	t.Run("Atlantis", func(t *testing.T) {
		s := Submit(context.Background(), mock, State{Query: "Atlantis", Summary: &paris})
		v := Render(s)
		if v.Error != "City not found." {
			t.Errorf("Error = %q", v.Error)
		}
		if v.HasWeather {
			t.Error("weather block must be hidden")
		}
	})

	t.Run("blank", func(t *testing.T) {
		l := &countingLookuper{summary: &paris}
		v := Render(Submit(context.Background(), l, State{Query: "   "}))
		if v.Error != "Please enter a city name." || l.calls != 0 {
			t.Errorf("view = %+v, calls = %d", v, l.calls)
		}
	})

	t.Run("Tokyo rounds up", func(t *testing.T) {
		v := Render(Submit(context.Background(), mock, State{Query: "Tokyo"}))
		if v.Temperature != "22°C" {
			t.Errorf("Temperature = %q, want 22°C", v.Temperature)
		}
	})
}
