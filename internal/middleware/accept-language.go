package middleware

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"
)

// Sprachen, für die Meldungsdateien eingebettet sind; die erste ist der Fallback.
var (
	messageLanguages = []string{"en", "de"}
	languageMatcher  = language.NewMatcher([]language.Tag{language.English, language.German})
)

// AcceptLanguageMiddleware wählt anhand von Accept-Language die passendste
// unterstützte Sprache und legt sie unter c.Locals("lang") ab.
func AcceptLanguageMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("lang", MatchLanguage(c.Get(fiber.HeaderAcceptLanguage)))
		return c.Next()
	}
}

// MatchLanguage liefert "de" für "de-CH,de;q=0.9" und "en" für alles Unbekannte.
func MatchLanguage(header string) string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return messageLanguages[0]
	}
	_, idx, confidence := languageMatcher.Match(tags...)
	if confidence == language.No {
		return messageLanguages[0]
	}
	return messageLanguages[idx]
}
