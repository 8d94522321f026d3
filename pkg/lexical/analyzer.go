// Package lexical implements surface-level text analysis: entity
// extraction, question subject extraction, sentiment scoring and question
// detection. All tables are built once in New and never mutated.
package lexical

import (
	"regexp"

	"github.com/m-mizutani/horizon/pkg/model"
)

type subjectPattern struct {
	re *regexp.Regexp
}

type sentimentWords struct {
	label model.Sentiment
	words []string
}

// Analyzer holds the ordered pattern tables used by every operation
type Analyzer struct {
	capitalized *regexp.Regexp
	phrase      *regexp.Regexp
	quoted      *regexp.Regexp
	entityStop  map[string]struct{}

	subjects      []subjectPattern
	questionWords map[string]struct{}
	fillerWords   map[string]struct{}

	sentiments []sentimentWords
	negations  []string

	questionStarters map[string]struct{}
}

// New builds an Analyzer with the default tables
func New() *Analyzer {
	return &Analyzer{
		// word boundaries are checked in findWords; RE2 \b is ASCII only
		capitalized: regexp.MustCompile(`\p{Lu}\p{Ll}+`),
		phrase:      regexp.MustCompile(`\p{Lu}\p{Ll}+ \p{Lu}\p{Ll}+`),
		quoted:      regexp.MustCompile(`"([^"]*)"`),
		entityStop: toSet(
			"I", "You", "He", "She", "They", "We", "It", "What", "Who", "How",
			"Why", "When", "Where", "Is", "Are", "The", "A", "An", "This", "That",
		),

		subjects: []subjectPattern{
			questionPattern("who is"),
			questionPattern("who are"),
			questionPattern("who was"),
			questionPattern("who were"),
			questionPattern("what is"),
			questionPattern("what are"),
			questionPattern("what was"),
			questionPattern("what were"),
			questionPattern("where is"),
			questionPattern("where are"),
			questionPattern("when did"),
			questionPattern("when was"),
			requestPattern("tell me about"),
			requestPattern("information on"),
			requestPattern("explain"),
		},
		questionWords: toSet("who", "what", "where", "when", "why", "how"),
		fillerWords:   toSet("is", "are", "was", "were", "the", "a", "an", "in", "on", "at"),

		sentiments: []sentimentWords{
			{
				label: model.SentimentPositive,
				words: []string{
					"happy", "good", "great", "excellent", "wonderful", "amazing", "love", "enjoy", "appreciate",
					"fantastic", "terrific", "awesome", "superb", "delighted", "pleased", "thrilled", "excited",
					"impressed", "thankful", "grateful", "satisfied", "perfect", "best", "better", "brilliant",
				},
			},
			{
				label: model.SentimentNegative,
				words: []string{
					"sad", "bad", "terrible", "awful", "horrible", "hate", "dislike", "disappointed", "upset",
					"angry", "annoyed", "frustrated", "irritated", "unhappy", "depressed", "worried", "concerned",
					"worst", "worse", "poor", "unfortunate", "disappointing", "disastrous", "miserable",
				},
			},
			{
				label: model.SentimentNeutral,
				words: []string{
					"okay", "fine", "alright", "so-so", "average", "moderate", "adequate", "acceptable",
					"fair", "reasonable", "standard", "ordinary", "common", "regular", "normal", "typical",
				},
			},
		},
		negations: []string{"not", "n't", "no", "never", "neither", "nor", "hardly", "barely"},

		questionStarters: toSet(
			"who", "what", "when", "where", "why", "how", "is", "are", "can", "could",
			"would", "should", "do", "does", "did", "will", "shall", "may", "might",
		),
	}
}

// questionPattern captures everything after prefix up to the first "?"
func questionPattern(prefix string) subjectPattern {
	return subjectPattern{re: regexp.MustCompile(regexp.QuoteMeta(prefix) + ` (.*?)(?:\?|$)`)}
}

// requestPattern captures everything after prefix up to the first "."
func requestPattern(prefix string) subjectPattern {
	return subjectPattern{re: regexp.MustCompile(regexp.QuoteMeta(prefix) + ` (.*?)(?:\.|$)`)}
}

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
