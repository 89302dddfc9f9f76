// Package suggest proposes short completions for reminder text from fixed
// phrase banks and from the words a user has typed before.
package suggest

import (
	"math/rand/v2"
	"sort"
	"strings"
	"sync"

	"github.com/tchap/go-patricia/v2/patricia"
)

const (
	// Limit is the maximum number of suggestions returned.
	Limit = 5

	frequentWords   = 10
	minPrefixLength = 2
)

type Option func(*Engine)

// WithRand makes the blank-input sample deterministic.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		e.perm = r.Perm
		e.mu = &sync.Mutex{}
	}
}

// Engine is safe for concurrent use.
type Engine struct {
	perm func(n int) []int
	mu   *sync.Mutex
}

func New(opts ...Option) *Engine {
	e := &Engine{perm: rand.Perm}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = New()

// Suggest runs the default engine.
func Suggest(history []string, currentInput string) []string {
	return defaultEngine.Suggest(history, currentInput)
}

// Suggest returns at most five completions for currentInput. Blank input
// yields a random sample of the banks; anything else combines a context pass
// over every typed word with a prefix pass over the last one.
func (e *Engine) Suggest(history []string, currentInput string) []string {
	if strings.TrimSpace(currentInput) == "" {
		return e.sample()
	}

	words := strings.Split(strings.ToLower(currentInput), " ")
	tail := words[len(words)-1]

	out := newCollector(Limit)
	contextPass(out, words, history)
	if len([]rune(tail)) >= minPrefixLength {
		prefixPass(out, tail)
	}
	return out.items
}

func (e *Engine) sample() []string {
	if e.mu != nil {
		e.mu.Lock()
		defer e.mu.Unlock()
	}
	order := e.perm(len(allEntries))
	out := make([]string, 0, Limit)
	for _, i := range order[:min(Limit, len(order))] {
		out = append(out, allEntries[i].display)
	}
	return out
}

func contextPass(out *collector, words []string, history []string) {
	for _, p := range patternBank {
		if anyContains(words, strings.ToLower(p)) {
			out.add(p)
		}
	}
	for _, c := range categoryBank {
		if anyContains(words, strings.ToLower(c)) {
			out.add(renderCategory(c))
		}
	}
	for _, w := range TopWords(history, frequentWords) {
		if anyContains(words, w) {
			out.add(w)
		}
	}
}

func prefixPass(out *collector, tail string) {
	matches := make([]int, 0)
	_ = prefixTrie.VisitSubtree(patricia.Prefix(tail), func(_ patricia.Prefix, item patricia.Item) error {
		matches = append(matches, item.([]int)...)
		return nil
	})
	sort.Ints(matches)
	for _, i := range matches {
		out.add(allEntries[i].display)
	}
}

func anyContains(words []string, phrase string) bool {
	for _, w := range words {
		if strings.Contains(w, phrase) {
			return true
		}
	}
	return false
}

// collector keeps first occurrences up to limit.
type collector struct {
	items []string
	seen  map[string]bool
	limit int
}

func newCollector(limit int) *collector {
	return &collector{items: make([]string, 0, limit), seen: make(map[string]bool), limit: limit}
}

func (c *collector) add(s string) {
	if len(c.items) >= c.limit || c.seen[s] {
		return
	}
	c.seen[s] = true
	c.items = append(c.items, s)
}
