package screen

import "fmt"

// View то, что экран показывает пользователю
type View struct {
	Loading     bool
	Error       string
	HasWeather  bool
	Icon        string
	Location    string
	Temperature string
	Description string
}

// Render строит View. Во время загрузки не показываются ни ошибка, ни погода.
func Render(s State) View {
	v := View{Loading: s.Loading}
	if s.Loading {
		return v
	}

	if s.Err != "" {
		v.Error = s.Err
		return v
	}

	if s.Summary != nil {
		v.HasWeather = true
		v.Icon = ConditionToIcon(s.Summary.ConditionMain)
		v.Location = s.Summary.LocationName
		v.Temperature = FormatTemperature(s.Summary.TemperatureCelsius)
		v.Description = s.Summary.ConditionText
	}
	return v
}

// FormatTemperature печатает градусы Цельсия: 18 -> "18°C"
func FormatTemperature(t int) string {
	return fmt.Sprintf("%d°C", t)
}
