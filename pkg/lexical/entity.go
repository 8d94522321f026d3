package lexical

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// ExtractEntities collects capitalized words outside the stoplist,
// two-word title case phrases and quoted substrings. The result is
// deduplicated and keeps discovery order.
func (a *Analyzer) ExtractEntities(text string) []string {
	var entities []string
	seen := make(map[string]struct{})
	add := func(e string) {
		if e == "" {
			return
		}
		if _, ok := seen[e]; ok {
			return
		}
		seen[e] = struct{}{}
		entities = append(entities, e)
	}

	for _, word := range findWords(a.capitalized, text) {
		if _, stop := a.entityStop[word]; stop {
			continue
		}
		add(word)
	}

	for _, phrase := range findWords(a.phrase, text) {
		add(phrase)
	}

	for _, m := range a.quoted.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}

	return entities
}

// findWords returns the leftmost non-overlapping matches of re that start
// and end on a word boundary, where letters, digits, marks and '_' are
// word characters in any script. A match that fails the check is retried
// one rune further on.
func findWords(re *regexp.Regexp, text string) []string {
	var words []string
	for pos := 0; pos < len(text); {
		loc := re.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if !wordBefore(text, start) && !wordAt(text, end) {
			words = append(words, text[start:end])
			pos = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		pos = start + size
	}
	return words
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

func wordBefore(s string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return isWordRune(r)
}

func wordAt(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return isWordRune(r)
}
