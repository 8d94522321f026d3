package model

const (
	MaxContextEntities = 10
	MaxRecentQueries   = 5
)

// ConversationContext is the rolling state of one session. It is mutated
// once per turn before the reply is composed.
type ConversationContext struct {
	Topic         string    `json:"topic,omitempty"`
	Entities      []string  `json:"entities"`
	Sentiment     Sentiment `json:"sentiment"`
	RecentQueries []string  `json:"recent_queries"`
}

// NewConversationContext returns an empty context with neutral sentiment
func NewConversationContext() *ConversationContext {
	return &ConversationContext{
		Sentiment: SentimentNeutral,
	}
}

// HasTopic reports whether a topic has been set
func (c *ConversationContext) HasTopic() bool {
	return c.Topic != ""
}

// AddEntities appends entities and evicts the oldest beyond MaxContextEntities.
// The first entity ever seen becomes the topic and is never replaced.
func (c *ConversationContext) AddEntities(entities ...string) {
	if len(entities) == 0 {
		return
	}
	if c.Topic == "" {
		c.Topic = entities[0]
	}
	c.Entities = appendBounded(c.Entities, MaxContextEntities, entities...)
}

// AddQuery appends a question subject and evicts the oldest beyond MaxRecentQueries
func (c *ConversationContext) AddQuery(subject string) {
	if subject == "" {
		return
	}
	c.RecentQueries = appendBounded(c.RecentQueries, MaxRecentQueries, subject)
}

func appendBounded(list []string, limit int, items ...string) []string {
	list = append(list, items...)
	if over := len(list) - limit; over > 0 {
		list = append([]string(nil), list[over:]...)
	}
	return list
}
