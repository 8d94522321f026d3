package chat

import (
	"context"
	"math/rand/v2"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/horizon/pkg/lexical"
	"github.com/m-mizutani/horizon/pkg/model"
	"github.com/m-mizutani/horizon/pkg/utils/logging"
)

// DefaultSource is how lookup results are attributed in replies
const DefaultSource = "Wikipedia"

// Lookup resolves a question subject against the knowledge collaborator
type Lookup interface {
	Lookup(ctx context.Context, subject string) model.LookupResult
}

// Composer decides how to answer one utterance. The first matching rule wins:
// self identification, self description, question lookup, history reuse,
// sentiment-shaped open prompt.
type Composer struct {
	persona  model.Persona
	source   string
	analyzer *lexical.Analyzer
	matcher  *Matcher
	lookup   Lookup
	rng      *rand.Rand
}

type ComposerInput struct {
	Persona  model.Persona
	Source   string
	Analyzer *lexical.Analyzer
	Matcher  *Matcher
	Lookup   Lookup
	Rand     *rand.Rand
}

func NewComposer(input ComposerInput) *Composer {
	c := &Composer{
		persona:  input.Persona,
		source:   input.Source,
		analyzer: input.Analyzer,
		matcher:  input.Matcher,
		lookup:   input.Lookup,
		rng:      input.Rand,
	}
	if c.source == "" {
		c.source = DefaultSource
	}
	if c.analyzer == nil {
		c.analyzer = lexical.New()
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if c.matcher == nil {
		c.matcher = NewMatcher(c.rng)
	}
	return c
}

// ValidateUtterance reports model.ErrMalformedInput for text with no content
func ValidateUtterance(text string) error {
	if strings.TrimSpace(text) == "" {
		return goerr.Wrap(model.ErrMalformedInput, "utterance is blank", goerr.V("length", len(text)))
	}
	return nil
}

// Compose produces the reply for text given the already updated context
// and the history of earlier turns
func (c *Composer) Compose(ctx context.Context, text string, cc *model.ConversationContext, history model.History) string {
	if strings.TrimSpace(text) == "" {
		return fallbackReply
	}

	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "your name"):
		return selfIdentificationReply(c.persona)

	case containsAny(lower, howDoYouWorkPhrases):
		return selfDescriptionReply

	case c.analyzer.IsQuestion(text):
		return c.answerQuestion(ctx, text, history)

	default:
		return c.converse(ctx, text, cc, history)
	}
}

func (c *Composer) answerQuestion(ctx context.Context, text string, history model.History) string {
	subject := c.analyzer.ExtractQuestionSubject(text)
	if subject == "" {
		if reply, ok := c.matcher.FindReuse(text, history); ok {
			return reply
		}
		return clarifyQuestionReply
	}

	logging.From(ctx).Info("identified question", "subject", subject)

	switch r := c.lookup.Lookup(ctx, subject).(type) {
	case *model.LookupFound:
		return foundReply(c.source, r)
	case *model.LookupSuggestions:
		return suggestionsReply(subject, r)
	default:
		return noInformationReply(c.source, subject)
	}
}

func (c *Composer) converse(ctx context.Context, text string, cc *model.ConversationContext, history model.History) string {
	if reply, ok := c.matcher.FindReuse(text, history); ok {
		logging.From(ctx).Debug("reusing earlier reply")
		return reply
	}

	var b strings.Builder
	b.WriteString(sentimentPrefix(cc.Sentiment))
	if cc.HasTopic() {
		b.WriteString("Regarding " + cc.Topic + ", ")
	}
	b.WriteString(thoughtfulPrompts[c.rng.IntN(len(thoughtfulPrompts))])
	return b.String()
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
