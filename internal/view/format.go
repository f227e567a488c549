package view

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCount renders n with en-US digit grouping, e.g. 1,250
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}
