// Package translate renders user visible messages in the user's locale.
//
// Messages are keyed by their en-US Sprintf() format. American English is
// the fallback; a Brazilian Portuguese catalog is built in.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer *message.Printer

// supported languages, in order of preference when nothing matches.
var supported = []language.Tag{
	language.AmericanEnglish,
	language.BrazilianPortuguese,
}

func init() {
	loadCatalog()

	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("realmode: locale: %v", err)
	}

	printer = message.NewPrinter(Match(locales...))
}

// Match returns the supported language best matching the locale list.
func Match(locales ...string) (tag language.Tag) {
	var tags []language.Tag
	for _, loc := range locales {
		parsed, err := language.Parse(loc)
		if err != nil {
			continue
		}
		tags = append(tags, parsed)
	}

	tag = supported[0]
	if len(tags) == 0 {
		return
	}

	matcher := language.NewMatcher(supported)
	_, index, confidence := matcher.Match(tags...)
	if confidence != language.No {
		tag = supported[index]
	}

	return
}

// SetLanguage replaces the printer used by From.
func SetLanguage(tag language.Tag) {
	printer = message.NewPrinter(tag)
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
