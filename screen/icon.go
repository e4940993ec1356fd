package screen

import "strings"

// Иконки, которые показывает экран
const (
	IconClear   = "☀️"
	IconCloud   = "☁️"
	IconRain    = "🌧️"
	IconThunder = "⛈️"
	IconSnow    = "❄️"
	IconDefault = "🌤️" // категория без ключевых слов
	IconUnknown = "❓"  // категории нет
)

// Порядок важен: категории пересекаются по подстрокам,
// срабатывает первое правило.
var iconRules = []struct {
	keywords []string
	icon     string
}{
	{[]string{"clear"}, IconClear},
	{[]string{"cloud"}, IconCloud},
	{[]string{"rain", "drizzle"}, IconRain},
	{[]string{"thunder"}, IconThunder},
	{[]string{"snow"}, IconSnow},
}

// ConditionToIcon подбирает эмодзи для категории погоды
func ConditionToIcon(main string) string {
	if main == "" {
		return IconUnknown
	}

	lower := strings.ToLower(main)
	for _, rule := range iconRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.icon
			}
		}
	}
	return IconDefault
}
