// Package affirmation picks the encouragement shown after an entry is
// written. Selection is a pure function of the draft and the random source.
package affirmation

import (
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/julianstephens/worthy/internal/constants"
	"github.com/julianstephens/worthy/internal/models"
)

type Selector struct {
	lib Library

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Selector.
type Option func(*Selector)

// WithSeed makes the draw sequence reproducible.
func WithSeed(seed uint64) Option {
	return func(s *Selector) {
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithSource draws from src.
func WithSource(src rand.Source) Option {
	return func(s *Selector) {
		s.rng = rand.New(src)
	}
}

// WithLibrary replaces the built-in phrases.
func WithLibrary(lib Library) Option {
	return func(s *Selector) {
		s.lib = lib
	}
}

func NewSelector(opts ...Option) *Selector {
	s := &Selector{lib: DefaultLibrary()}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s
}

// Candidates returns the pool a draft draws from, in build order. A phrase
// may appear more than once, which weights it.
func (s *Selector) Candidates(draft models.EntryDraft) []string {
	pools := s.lib.Pools
	pool := append([]string(nil), pools[PoolGeneral]...)

	if draft.Image != "" {
		pool = append(pool, pools[PoolImage]...)
	}
	if hasNewTag(draft.Tags) {
		pool = append(pool, pools[PoolNewTag]...)
	}

	text := strings.ToLower(draft.Text())
	if containsAny(text, s.lib.SocialKeywords) {
		pool = append(pool, pools[PoolSocial]...)
	}
	if containsAny(text, s.lib.AchievementKeywords) {
		pool = append(pool, pools[PoolAchievement]...)
	}

	switch {
	case draft.Mood == models.MoodSad:
		pool = append(pool, pools[PoolDifficult]...)
	case draft.Mood == models.MoodCalm:
		pool = append(pool, pools[PoolCalm]...)
	case containsAny(text, s.lib.DistressKeywords):
		pool = append(pool, pools[PoolDifficult]...)
	}

	extra := pools[PoolExtra]
	pool = append(pool, extra[:min(ExtraSampleSize, len(extra))]...)
	return pool
}

// Select draws one phrase uniformly from Candidates. It returns an empty
// string only for an empty library.
func (s *Selector) Select(draft models.EntryDraft) string {
	return s.pick(s.Candidates(draft))
}

// Greeting returns a random opening line.
func (s *Selector) Greeting() string {
	return s.pick(s.lib.Greetings)
}

func (s *Selector) pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return pool[s.rng.IntN(len(pool))]
}

func hasNewTag(tags []string) bool {
	for _, tag := range tags {
		if !constants.IsDefaultTag(tag) {
			return true
		}
	}
	return false
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
