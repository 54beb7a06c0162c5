package chat

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// money renders v as "$1,234.56".
func money(v float64) string {
	return printer.Sprintf("$%.2f", v)
}
