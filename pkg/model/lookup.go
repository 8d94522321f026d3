package model

import "time"

// MaxSummaryLength is the number of characters kept from a page summary
const MaxSummaryLength = 600

// MaxSuggestions is the number of alternative titles offered to the user
const MaxSuggestions = 5

// Page is what the encyclopedia returns for a title lookup
type Page struct {
	Exists  bool
	Title   string
	Summary string
	URL     string
}

// LookupResult is one of LookupFound, LookupSuggestions, LookupNotFound or LookupError
type LookupResult interface {
	lookupResult()
}

type LookupFound struct {
	Title       string
	Summary     string
	URL         string
	RetrievedAt time.Time
}

type LookupSuggestions struct {
	Query       string
	Suggestions []string
}

type LookupNotFound struct {
	Query string
}

type LookupError struct {
	Message string
}

func (*LookupFound) lookupResult()       {}
func (*LookupSuggestions) lookupResult() {}
func (*LookupNotFound) lookupResult()    {}
func (*LookupError) lookupResult()       {}

// TruncateSummary cuts a summary to MaxSummaryLength characters and appends
// an ellipsis when anything was removed
func TruncateSummary(summary string) string {
	runes := []rune(summary)
	if len(runes) <= MaxSummaryLength {
		return summary
	}
	return string(runes[:MaxSummaryLength]) + "..."
}
