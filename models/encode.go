package models

import (
	"net/url"
	"strings"
)

// componentUnescaper undoes the QueryEscape choices that encodeURIComponent does not make
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent percent-encodes a value for use inside a query string.
// The output equals a browser's encodeURIComponent: everything but
// letters, digits and - _ . ! ~ * ' ( ) is escaped, and spaces become %20.
func EncodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
