package model

import (
	"time"

	"github.com/google/uuid"
)

type UtteranceID string

// NewUtteranceID generates a new unique UtteranceID
func NewUtteranceID() UtteranceID {
	return UtteranceID(uuid.New().String())
}

// Utterance is one user turn and the reply composed for it. Reply stays nil
// until the composer finishes the turn.
type Utterance struct {
	ID        UtteranceID
	Text      string
	Timestamp time.Time
	Reply     *string
}

// NewUtterance creates a record for a user turn without a reply
func NewUtterance(text string, now time.Time) *Utterance {
	return &Utterance{
		ID:        NewUtteranceID(),
		Text:      text,
		Timestamp: now,
	}
}

// HasReply reports whether the record is complete
func (u *Utterance) HasReply() bool {
	return u.Reply != nil
}

// SetReply fills the reply once. Later calls are ignored so the record
// stays immutable after completion.
func (u *Utterance) SetReply(reply string) {
	if u.Reply != nil {
		return
	}
	u.Reply = &reply
}

// History is the append-only sequence of turns in one session
type History []*Utterance
