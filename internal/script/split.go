package script

import "strings"

// SplitStatements breaks a generated script into executable statements.
// Statements are separated by ';'; comment lines and blank fragments are
// dropped, so advisory "-- DROP ..." lines are never executed.
func SplitStatements(text string) []string {
	var statements []string
	for _, chunk := range strings.Split(text, ";") {
		var lines []string
		for _, line := range strings.Split(chunk, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "--") {
				continue
			}
			lines = append(lines, line)
		}
		stmt := strings.TrimSpace(strings.Join(lines, "\n"))
		if stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}
