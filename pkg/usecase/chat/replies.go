package chat

import (
	"fmt"
	"strings"

	"github.com/m-mizutani/horizon/pkg/model"
)

const (
	selfDescriptionReply = "I function through advanced pattern recognition and contextual understanding. Unlike systems based solely on predefined prompts, I analyze conversation dynamics, maintain contextual memory, and integrate real-time information from sources like Wikipedia. My neural processing allows me to understand complex questions and provide comprehensive responses."
	clarifyQuestionReply = "That's an interesting question. Could you provide more details about what you're trying to learn?"
	fallbackReply        = "I find your message interesting. Could you tell me more about what you're thinking?"
	troubleReply         = "I had trouble with that, let's continue."

	positivePrefix = "I'm glad to hear that! "
	negativePrefix = "I understand your concern. "
)

var howDoYouWorkPhrases = []string{
	"how do you work",
	"how do you function",
	"how were you made",
}

var thoughtfulPrompts = []string{
	"I find that topic quite interesting. What aspects would you like to explore further?",
	"That's a fascinating perspective. Have you considered how this connects to broader themes?",
	"I appreciate you sharing that. Would you like to discuss the implications in more detail?",
	"That's a meaningful point. How does this relate to your personal experience?",
	"Interesting thoughts. I'm curious about what led you to this particular viewpoint.",
}

func selfIdentificationReply(p model.Persona) string {
	return fmt.Sprintf("I am %s, version %s, an advanced AI assistant with enhanced conversational capabilities and knowledge integration.", p.Name, p.Version)
}

func foundReply(source string, r *model.LookupFound) string {
	return fmt.Sprintf("According to %s, %s\n\nSource: %s", source, r.Summary, r.URL)
}

func suggestionsReply(subject string, r *model.LookupSuggestions) string {
	return fmt.Sprintf("I couldn't find exact information on '%s'. Did you mean: %s?", subject, strings.Join(r.Suggestions, ", "))
}

func noInformationReply(source, subject string) string {
	return fmt.Sprintf("I don't have specific %s information about '%s'. Would you like to know something else about this topic, or shall we explore a different subject?", source, subject)
}

func sentimentPrefix(s model.Sentiment) string {
	switch s {
	case model.SentimentPositive:
		return positivePrefix
	case model.SentimentNegative:
		return negativePrefix
	default:
		return ""
	}
}
