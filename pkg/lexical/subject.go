package lexical

import "strings"

// ExtractQuestionSubject infers the lookup key of a question. Prefix
// patterns are tried in table order and the first match wins; otherwise
// the first entity is used; otherwise the leading question word and
// filler words are stripped.
func (a *Analyzer) ExtractQuestionSubject(question string) string {
	q := strings.ToLower(strings.TrimSpace(question))

	for _, p := range a.subjects {
		if m := p.re.FindStringSubmatch(q); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	if entities := a.ExtractEntities(q); len(entities) > 0 {
		return entities[0]
	}

	words := strings.Fields(q)
	if len(words) > 0 {
		if _, ok := a.questionWords[words[0]]; ok {
			words = words[1:]
			for len(words) > 0 {
				if _, filler := a.fillerWords[words[0]]; !filler {
					break
				}
				words = words[1:]
			}
			if subject := strings.TrimSpace(strings.Trim(strings.Join(words, " "), "?")); subject != "" {
				return subject
			}
		}
	}

	return strings.TrimSpace(strings.TrimSuffix(q, "?"))
}
