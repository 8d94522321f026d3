package pattern_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/horizon/pkg/pattern"
)

func TestObserveCountsNGrams(t *testing.T) {
	m := pattern.New()
	m.Observe("The cat sat down")

	gt.Equal(t, m.Count("the"), 1)
	gt.Equal(t, m.Count("the cat"), 1)
	gt.Equal(t, m.Count("cat sat down"), 1)
	gt.Equal(t, m.Count("the cat sat down"), 0)
	// 4 unigrams + 3 bigrams + 2 trigrams
	gt.Equal(t, m.Len(), 9)
}

func TestObserveReturnsTopFive(t *testing.T) {
	m := pattern.New()
	m.Observe("hello world")
	top := m.Observe("hello there")

	gt.A(t, top).Length(5)
	gt.Equal(t, top[0], pattern.Entry{NGram: "hello", Count: 2})
	// ties keep first insertion order
	gt.Equal(t, top[1].NGram, "world")
	gt.Equal(t, top[2].NGram, "hello world")
	gt.Equal(t, top[3].NGram, "there")
	gt.Equal(t, top[4].NGram, "hello there")
}

func TestObserveShortInput(t *testing.T) {
	m := pattern.New()
	gt.A(t, m.Observe("")).Length(0)

	top := m.Observe("Hi")
	gt.A(t, top).Length(1)
	gt.Equal(t, top[0].NGram, "hi")
}

func TestObserveIsAdditive(t *testing.T) {
	m := pattern.New()
	for range 3 {
		m.Observe("again and again")
	}
	gt.Equal(t, m.Count("again"), 6)
	gt.Equal(t, m.Count("again and again"), 3)
}
