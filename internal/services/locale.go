package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/en_GB"
	"github.com/go-playground/locales/en_US"
	"github.com/go-playground/locales/es"
	"github.com/go-playground/locales/es_ES"
	"github.com/go-playground/locales/es_MX"
	"github.com/go-playground/locales/fr"
	"github.com/go-playground/locales/pt_BR"
)

// DefaultLocale is used for order dates when none is configured
const DefaultLocale = "en_US"

var translators = map[string]func() locales.Translator{
	"de":    de.New,
	"en":    en.New,
	"en_GB": en_GB.New,
	"en_US": en_US.New,
	"es":    es.New,
	"es_ES": es_ES.New,
	"es_MX": es_MX.New,
	"fr":    fr.New,
	"pt_BR": pt_BR.New,
}

// LocaleDateFormatter renders dates with a locale's short date pattern, in UTC
type LocaleDateFormatter struct {
	translator locales.Translator
}

// NewLocaleDateFormatter returns a formatter for a locale such as "en_US" or
// "es-MX". An empty locale selects DefaultLocale.
func NewLocaleDateFormatter(locale string) (*LocaleDateFormatter, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	key := strings.ReplaceAll(locale, "-", "_")

	newTranslator, ok := translators[key]
	if !ok {
		return nil, fmt.Errorf("unsupported locale: %s (supported: %s)", locale, strings.Join(SupportedLocales(), ", "))
	}
	return &LocaleDateFormatter{translator: newTranslator()}, nil
}

// DefaultDateFormatter returns the DefaultLocale formatter
func DefaultDateFormatter() *LocaleDateFormatter {
	return &LocaleDateFormatter{translator: en_US.New()}
}

// FormatDate renders the locale's numeric short date with the year widened
// to four digits, e.g. 3/9/2024 for en_US.
func (f *LocaleDateFormatter) FormatDate(t time.Time) string {
	t = t.UTC()
	return widenYear(f.translator.FmtDateShort(t), t.Year())
}

// widenYear replaces a trailing two-digit year with the full year. Patterns
// that already print the full year are returned unchanged.
func widenYear(short string, year int) string {
	full := strconv.Itoa(year)
	if strings.HasSuffix(short, full) {
		return short
	}
	yy := fmt.Sprintf("%02d", year%100)
	if !strings.HasSuffix(short, yy) {
		return short
	}
	rest := short[:len(short)-len(yy)]
	if rest == "" || unicode.IsDigit(rune(rest[len(rest)-1])) {
		return short
	}
	return rest + full
}

// Locale returns the locale name, e.g. "en_US"
func (f *LocaleDateFormatter) Locale() string {
	return f.translator.Locale()
}

// SupportedLocales lists the locales NewLocaleDateFormatter accepts
func SupportedLocales() []string {
	names := make([]string, 0, len(translators))
	for name := range translators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
