package chat

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/horizon/pkg/adapter"
	"github.com/m-mizutani/horizon/pkg/lexical"
	"github.com/m-mizutani/horizon/pkg/model"
	"github.com/m-mizutani/horizon/pkg/pattern"
	"github.com/m-mizutani/horizon/pkg/repository"
	"github.com/m-mizutani/horizon/pkg/utils/logging"
)

const thinkingMessage = "Thinking"

// State is everything a session mutates between turns
type State struct {
	History  model.History
	Context  *model.ConversationContext
	Patterns *pattern.Memory
}

// Session runs the response pipeline one turn at a time
type Session struct {
	id       string
	persona  model.Persona
	repo     repository.KnowledgeRepository
	progress adapter.Progress
	analyzer *lexical.Analyzer
	composer *Composer
	now      func() time.Time

	knowledge model.KnowledgeBase
	state     State
}

// NewInput contains parameters for creating a new chat session
type NewInput struct {
	Persona  model.Persona
	Repo     repository.KnowledgeRepository // Optional: knowledge base is kept in memory only if nil
	Lookup   Lookup
	Progress adapter.Progress // Optional: defaults to no display
	Source   string           // Optional: attribution used in lookup replies
	Rand     *rand.Rand       // Optional: seeded for reproducible replies
	Clock    func() time.Time // Optional
}

func New(ctx context.Context, input NewInput) (*Session, error) {
	if input.Lookup == nil {
		return nil, goerr.New("lookup is required")
	}
	if input.Persona.Name == "" {
		return nil, goerr.New("persona name is required")
	}

	s := &Session{
		id:       uuid.NewString(),
		persona:  input.Persona,
		repo:     input.Repo,
		progress: input.Progress,
		analyzer: lexical.New(),
		now:      input.Clock,
		state: State{
			Context:  model.NewConversationContext(),
			Patterns: pattern.New(),
		},
	}
	if s.progress == nil {
		s.progress = adapter.NopProgress()
	}
	if s.now == nil {
		s.now = time.Now
	}

	rng := input.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	s.composer = NewComposer(ComposerInput{
		Persona:  input.Persona,
		Source:   input.Source,
		Analyzer: s.analyzer,
		Matcher:  NewMatcher(rng),
		Lookup:   input.Lookup,
		Rand:     rng,
	})

	s.knowledge = s.loadKnowledge(ctx)
	return s, nil
}

// loadKnowledge never fails; any load error falls back to an empty map
func (s *Session) loadKnowledge(ctx context.Context) model.KnowledgeBase {
	logger := logging.From(ctx)

	if s.repo == nil {
		return model.NewKnowledgeBase(s.persona, s.now())
	}

	kb, found, err := s.repo.Load(ctx)
	if err != nil {
		logger.Error("failed to load knowledge base", "error", err)
		return model.KnowledgeBase{}
	}
	if !found {
		logger.Info("new knowledge base initialized")
		return model.NewKnowledgeBase(s.persona, s.now())
	}

	logger.Info("knowledge base loaded", "entries", len(kb))
	return kb
}

// ProcessTurn updates the context, records the utterance and composes the
// reply. Failures inside the turn are logged and answered with a generic
// reply so the session continues.
func (s *Session) ProcessTurn(ctx context.Context, text string) (reply string) {
	logger := logging.From(ctx).With("session", s.id, "turn", len(s.state.History)+1)
	ctx = logging.With(ctx, logger)

	defer func() {
		if r := recover(); r != nil {
			s.progress.Stop()
			logger.Error("turn aborted", "panic", r)
			reply = troubleReply
		}
	}()

	s.updateContext(text)

	top := s.state.Patterns.Observe(text)
	logger.Debug("patterns observed", "top", top)

	record := model.NewUtterance(text, s.now())
	s.state.History = append(s.state.History, record)

	if err := ValidateUtterance(text); err != nil {
		logger.Warn("answering malformed utterance with fallback", "error", err)
		record.SetReply(fallbackReply)
		return fallbackReply
	}

	s.progress.Start(thinkingMessage)
	reply = s.composer.Compose(ctx, text, s.state.Context, s.state.History)
	s.progress.Stop()

	record.SetReply(reply)
	logger.Debug("turn completed", "sentiment", s.state.Context.Sentiment, "topic", s.state.Context.Topic)
	return reply
}

func (s *Session) updateContext(text string) {
	cc := s.state.Context
	cc.AddEntities(s.analyzer.ExtractEntities(text)...)
	cc.Sentiment = s.analyzer.AnalyzeSentiment(text)
	if s.analyzer.IsQuestion(text) {
		cc.AddQuery(s.analyzer.ExtractQuestionSubject(text))
	}
}

// Shutdown writes the knowledge base back. Write failures are logged only.
func (s *Session) Shutdown(ctx context.Context) {
	s.progress.Stop()

	if s.repo == nil {
		return
	}

	if err := s.repo.Save(ctx, s.knowledge); err != nil {
		logging.From(ctx).Error("failed to save knowledge base", "error", err)
		return
	}
	logging.From(ctx).Info("knowledge base saved", "entries", len(s.knowledge))
}

// Context returns the conversation context after the last turn
func (s *Session) Context() model.ConversationContext {
	return *s.state.Context
}

// History returns the completed and pending turns in order
func (s *Session) History() model.History {
	return s.state.History
}

// TopPatterns returns the n most frequent n-grams seen so far
func (s *Session) TopPatterns(n int) []pattern.Entry {
	return s.state.Patterns.Top(n)
}

// Knowledge returns the knowledge base held by the session
func (s *Session) Knowledge() model.KnowledgeBase {
	return s.knowledge
}

// Persona returns the assistant identity of the session
func (s *Session) Persona() model.Persona {
	return s.persona
}
