package chat

import (
	"math/rand/v2"
	"strings"

	"github.com/m-mizutani/horizon/pkg/model"
	"github.com/pmezard/go-difflib/difflib"
)

// ReuseThreshold is the similarity a prior utterance must exceed for its
// reply to be offered again
const ReuseThreshold = 0.7

// minMutationWords is the word count above which a reused reply gets one
// word swapped for a synonym
const minMutationWords = 5

var synonyms = map[string][]string{
	"good":        {"great", "excellent", "wonderful", "fantastic", "superb", "outstanding"},
	"bad":         {"poor", "terrible", "awful", "unpleasant", "dreadful", "unfavorable"},
	"happy":       {"glad", "delighted", "pleased", "joyful", "cheerful", "thrilled"},
	"sad":         {"unhappy", "disappointed", "down", "blue", "gloomy", "melancholy"},
	"interesting": {"fascinating", "intriguing", "engaging", "compelling", "captivating"},
	"boring":      {"dull", "tedious", "monotonous", "uninteresting", "bland"},
	"important":   {"crucial", "essential", "significant", "vital", "key", "critical"},
	"difficult":   {"challenging", "hard", "tough", "complicated", "complex", "demanding"},
	"easy":        {"simple", "straightforward", "effortless", "uncomplicated", "basic"},
	"beautiful":   {"attractive", "gorgeous", "stunning", "lovely", "exquisite"},
	"understand":  {"comprehend", "grasp", "get", "follow", "perceive"},
	"think":       {"believe", "consider", "feel", "reckon", "suppose", "assume"},
	"say":         {"mention", "state", "express", "articulate", "communicate", "convey"},
	"big":         {"large", "substantial", "sizable", "massive", "extensive", "huge"},
	"small":       {"little", "tiny", "slight", "minor", "modest", "compact"},
}

// Matcher finds a near-duplicate prior utterance and proposes its reply
type Matcher struct {
	rng *rand.Rand
}

func NewMatcher(rng *rand.Rand) *Matcher {
	return &Matcher{rng: rng}
}

// Similarity is the case-insensitive 2*M/T ratio of matching blocks
// between a and b, in [0, 1]
func Similarity(a, b string) float64 {
	return difflib.NewMatcher(chars(strings.ToLower(a)), chars(strings.ToLower(b))).Ratio()
}

func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// FindReuse returns the reply of the most similar completed record when
// its similarity exceeds ReuseThreshold. Replies longer than
// minMutationWords words get one random word replaced by a synonym.
func (m *Matcher) FindReuse(text string, history model.History) (string, bool) {
	var (
		best      *model.Utterance
		bestRatio float64
	)

	for _, u := range history {
		if u == nil || !u.HasReply() {
			continue
		}
		ratio := Similarity(text, u.Text)
		if ratio > bestRatio {
			best, bestRatio = u, ratio
		}
	}

	if best == nil || bestRatio <= ReuseThreshold {
		return "", false
	}

	return m.vary(*best.Reply), true
}

func (m *Matcher) vary(reply string) string {
	words := strings.Fields(reply)
	if len(words) <= minMutationWords {
		return reply
	}

	idx := m.rng.IntN(len(words))
	words[idx] = m.alternative(words[idx])
	return strings.Join(words, " ")
}

func (m *Matcher) alternative(word string) string {
	options, ok := synonyms[strings.ToLower(word)]
	if !ok {
		return word
	}
	return options[m.rng.IntN(len(options))]
}
