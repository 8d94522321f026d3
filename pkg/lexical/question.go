package lexical

import "strings"

// IsQuestion reports whether text ends with "?" or starts with a question
// or auxiliary word
func (a *Analyzer) IsQuestion(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return false
	}
	if strings.HasSuffix(t, "?") {
		return true
	}
	_, ok := a.questionStarters[strings.Fields(t)[0]]
	return ok
}
