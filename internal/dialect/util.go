package dialect

import "strings"

// IsQuoted reports whether a default value already carries single quotes.
func IsQuoted(s string) bool {
	return len(s) >= 2 && strings.HasPrefix(s, "'") && strings.HasSuffix(s, "'")
}

// Unquote strips one layer of single quotes from a quoted literal.
func Unquote(s string) string {
	if IsQuoted(s) {
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}
	return s
}

// looksLikeExpression reports whether a raw default is a function call or
// other non-literal expression rather than a plain value.
func looksLikeExpression(s string) bool {
	if IsQuoted(s) {
		return false
	}
	return strings.ContainsAny(s, "()")
}
