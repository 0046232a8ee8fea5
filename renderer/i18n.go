package renderer

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var supportedTags = []language.Tag{
	language.English,
	language.Ukrainian,
}

var tagMatcher = language.NewMatcher(supportedTags)

// Language resolves a user language ("uk", "en-GB", "") to a supported tag,
// English by default.
func Language(lang string) language.Tag {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return language.English
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return language.English
	}
	_, index, _ := tagMatcher.Match(tag)
	return supportedTags[index]
}

// Printer returns a message printer for lang.
func Printer(lang string) *message.Printer { return message.NewPrinter(Language(lang)) }

// Messages are keyed by their English text, only other languages need to be set.
func init() {
	uk := language.Ukrainian
	for key, value := range map[string]string{
		// statuses
		"unpaid": "Не оплачено",
		"paid":   "Оплачено",
		"early":  "Достроково",

		// months
		"January":   "Січень",
		"February":  "Лютий",
		"March":     "Березень",
		"April":     "Квітень",
		"May":       "Травень",
		"June":      "Червень",
		"July":      "Липень",
		"August":    "Серпень",
		"September": "Вересень",
		"October":   "Жовтень",
		"November":  "Листопад",
		"December":  "Грудень",

		// titles
		"Initial installment": "Перший внесок",
		"Payment #%s":         "Платіж #%s",
		"Q%d %s":              "%d кв. %s",

		// columns and headings
		"Payment":        "Платіж",
		"Project":        "Проєкт",
		"Status":         "Статус",
		"Due":            "Дата",
		"Schedule":       "План",
		"Paid":           "Сплачено",
		"Remaining":      "Залишок",
		"Note":           "Примітка",
		"Period":         "Період",
		"Payments":       "Платежі",
		"Summary":        "Підсумок",
		"Early Payoff":   "Дострокове погашення",
		"Strategy":       "Стратегія",
		"Unit":           "Одиниця",
		"Total":          "Разом",
		"Count":          "Кількість",
		"Rate":           "Курс",
		"Amount":         "Сума",
		"Payment date":   "Дата оплати",
		"Category":       "Категорія",
		"Override":       "Зміни",
		"overdue":        "прострочено",
		"No payments.":   "Немає платежів.",
		"Remaining plan": "Залишок за планом",
		"Paid so far":    "Вже сплачено",
		"Total cost":     "Загальна вартість",

		// summary
		"Early payoff (%s)":                   "Залишок достроково (%s)",
		"%d/%d paid, future unpaid: %d":       "%d/%d оплачено, майбутніх неоплачених: %d",
		"no future payments":                  "немає майбутніх платежів",
		"%d payments, base: %s":               "%d платежів, база: %s",
		"principal excluding %s%%: %d months": "тіло без %s%%: %d міс.",
		"Payoff estimate in %s, as of %s":     "Оцінка погашення в %s, станом на %s",
		"Calendar in %s, %d payments":         "Календар у %s, %d платежів",
		"flat":                                "фіксований платіж",
		"amortization":                        "амортизація",
	} {
		message.SetString(uk, key, value)
	}
}
