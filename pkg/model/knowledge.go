package model

import "time"

// KnowledgeBase maps a topic key to an arbitrary value. It is loaded at
// startup and written back at shutdown.
type KnowledgeBase map[string]any

// SelfKey is the entry describing the assistant itself
const SelfKey = "self"

// Capabilities listed in the seeded self entry
var Capabilities = []string{
	"advanced conversation",
	"pattern recognition",
	"topic understanding",
	"Wikipedia integration",
	"adaptive learning",
}

// Persona names the assistant in replies and in the knowledge base
type Persona struct {
	Name    string
	Version string
}

// NewKnowledgeBase returns a knowledge base seeded with the self entry
func NewKnowledgeBase(persona Persona, now time.Time) KnowledgeBase {
	return KnowledgeBase{
		SelfKey: map[string]any{
			"name":         persona.Name,
			"version":      persona.Version,
			"created":      now.Format("2006-01-02"),
			"capabilities": append([]string(nil), Capabilities...),
		},
	}
}
