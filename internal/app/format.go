package service

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCount renders n with thousands separators, e.g. 1,234.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}
