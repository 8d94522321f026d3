// Package pattern counts unigrams, bigrams and trigrams seen during a session
package pattern

import (
	"sort"
	"strings"
)

// DefaultTopN is the number of entries Observe returns
const DefaultTopN = 5

// Entry is one n-gram and how often it occurred
type Entry struct {
	NGram string `json:"ngram"`
	Count int    `json:"count"`
}

// Memory is a monotonically growing n-gram frequency table. Ties in Top
// are broken by first insertion.
type Memory struct {
	counts map[string]int
	order  []string
}

func New() *Memory {
	return &Memory{
		counts: make(map[string]int),
	}
}

// Observe counts every n-gram of length 1 to 3 in text and returns the
// DefaultTopN most frequent entries
func (m *Memory) Observe(text string) []Entry {
	words := strings.Fields(strings.ToLower(text))
	for n := 1; n <= 3; n++ {
		for i := 0; i+n <= len(words); i++ {
			m.add(strings.Join(words[i:i+n], " "))
		}
	}
	return m.Top(DefaultTopN)
}

func (m *Memory) add(ngram string) {
	if _, ok := m.counts[ngram]; !ok {
		m.order = append(m.order, ngram)
	}
	m.counts[ngram]++
}

// Top returns up to n entries by descending count
func (m *Memory) Top(n int) []Entry {
	entries := make([]Entry, 0, len(m.order))
	for _, ngram := range m.order {
		entries = append(entries, Entry{NGram: ngram, Count: m.counts[ngram]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Count returns the occurrences of ngram
func (m *Memory) Count(ngram string) int {
	return m.counts[ngram]
}

// Len returns the number of distinct n-grams
func (m *Memory) Len() int {
	return len(m.order)
}
