package cluster

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Decode resolves a single character reference such as "&amp;", "&#65;" or
// "&#x42;". References that do not resolve are returned unchanged.
func Decode(ref string) string {
	if len(ref) < 3 || ref[0] != '&' || ref[len(ref)-1] != ';' {
		return ref
	}
	name := ref[1 : len(ref)-1]

	if num, ok := strings.CutPrefix(name, "#"); ok {
		base := 10
		if hex, ok := strings.CutPrefix(num, "x"); ok {
			num, base = hex, 16
		} else if hex, ok := strings.CutPrefix(num, "X"); ok {
			num, base = hex, 16
		}
		n, err := strconv.ParseUint(num, base, 32)
		if err != nil || !utf8.ValidRune(rune(n)) {
			return ref
		}
		return string(rune(n))
	}

	s := html.UnescapeString(ref)
	// A legacy prefix match ("&ampx;" -> "&x;") leaves the tail of the
	// name and the semicolon behind. Only &semi; legitimately ends in one.
	if s == ref || (strings.HasSuffix(s, ";") && s != ";") {
		return ref
	}
	return s
}

// decodeName resolves a reference name as delivered by an event source:
// "amp", "#65", "#x42", or bare digits for a decimal reference.
func decodeName(name string) string {
	if name != "" && strings.Trim(name, "0123456789") == "" {
		name = "#" + name
	}
	return Decode("&" + name + ";")
}
