package util

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"

	"github.com/spf13/cast"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const Placeholder = "-"

var printer atomic.Pointer[message.Printer]

func init() {
	printer.Store(message.NewPrinter(language.English))
}

// SetLocale switches the locale used by FormatNumber, e.g. "de" or "en-GB".
func SetLocale(tag string) error {
	lang, err := language.Parse(tag)
	if err != nil {
		return fmt.Errorf("invalid locale %q: %w", tag, err)
	}
	printer.Store(message.NewPrinter(lang))
	return nil
}

// FormatNumber renders n with locale thousands grouping. Nil, NaN and
// non-numeric input render as "0".
func FormatNumber(n any) string {
	if n == nil {
		return "0"
	}
	f, err := cast.ToFloat64E(n)
	if err != nil || math.IsNaN(f) {
		return "0"
	}
	return printer.Load().Sprint(number.Decimal(f, number.MaxFractionDigits(3)))
}

// DashPlaceholder renders empty values as a dash. Lists are joined by newlines.
func DashPlaceholder(value any) string {
	switch v := value.(type) {
	case nil:
		return Placeholder
	case []string:
		if len(v) == 0 {
			return Placeholder
		}
		return strings.Join(v, "\n")
	case string:
		if v == "" || v == `""` {
			return Placeholder
		}
		return v
	case *string:
		if v == nil {
			return Placeholder
		}
		return DashPlaceholder(*v)
	default:
		return fmt.Sprint(v)
	}
}
