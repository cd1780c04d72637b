// Package translate renders user-visible text through a locale aware
// message printer.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// FALLBACK is the locale used when the host reports none.
const FALLBACK = "en-US"

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("ledseq: locale: %v", err)
	}

	SetLocales(locales...)
}

// SetLocales selects the printer for the best match among locales.
func SetLocales(locales ...string) {
	if len(locales) == 0 {
		locales = []string{FALLBACK}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
