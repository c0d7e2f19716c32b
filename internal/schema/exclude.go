package schema

import "strings"

// ExcludeTable reports whether a table name matches any exclusion pattern.
// A pattern ending in '*' matches by prefix after stripping the marker;
// any other pattern matches exactly. The first match wins.
func ExcludeTable(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.HasSuffix(pattern, "*") {
			if strings.HasPrefix(name, strings.TrimSuffix(pattern, "*")) {
				return true
			}
		} else if pattern == name {
			return true
		}
	}
	return false
}
