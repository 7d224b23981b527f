package repository

import "strings"

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern builds a LIKE pattern matching s anywhere, for use with ESCAPE '!'.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
