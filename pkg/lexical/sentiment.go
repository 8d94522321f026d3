package lexical

import (
	"strings"

	"github.com/m-mizutani/horizon/pkg/model"
)

// AnalyzeSentiment counts sentiment words appearing as substrings. Any
// negation cue swaps the positive and negative counts regardless of scope.
func (a *Analyzer) AnalyzeSentiment(text string) model.Sentiment {
	lower := strings.ToLower(text)

	scores := make(map[model.Sentiment]int, len(a.sentiments))
	for _, s := range a.sentiments {
		for _, w := range s.words {
			if strings.Contains(lower, w) {
				scores[s.label]++
			}
		}
	}

	if a.hasNegation(lower) {
		scores[model.SentimentPositive], scores[model.SentimentNegative] =
			scores[model.SentimentNegative], scores[model.SentimentPositive]
	}

	best, bestScore := model.SentimentNeutral, 0
	for _, label := range model.Sentiments() {
		if scores[label] > bestScore {
			best, bestScore = label, scores[label]
		}
	}
	return best
}

func (a *Analyzer) hasNegation(lower string) bool {
	for _, neg := range a.negations {
		if strings.Contains(lower, neg) {
			return true
		}
	}
	return false
}
