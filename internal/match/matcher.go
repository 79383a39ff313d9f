// Package match ranks menu items against a free-text food query.
package match

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/sahilm/fuzzy"
)

type Mode string

const (
	// ModeToken accepts misspellings: every query word must be within Threshold of some item word.
	ModeToken Mode = "token"

	// ModeSubsequence requires every query word to appear in the item as an ordered subsequence
	// of letters. Threshold is not used.
	ModeSubsequence Mode = "subsequence"
)

// Config is passed to each Matcher; nothing is shared between matchers.
type Config struct {
	// Threshold is the largest accepted distance, 0 (exact) to 1 (anything).
	Threshold float64
	Mode      Mode
}

func DefaultConfig() Config {
	return Config{Threshold: 0.25, Mode: ModeToken}
}

// Match is one accepted candidate.
type Match struct {
	Item     string
	Index    int
	Distance float64
}

var ErrEmptyQuery = errors.New("match: query has no words")

// MatchError wraps a failure inside the matching backend.
type MatchError struct {
	Query string
	Cause any
}

func (e *MatchError) Error() string {
	return fmt.Sprintf("match %q: %v", e.Query, e.Cause)
}

type Matcher struct {
	cfg Config
}

func New(cfg Config) *Matcher {
	if cfg.Mode == "" {
		cfg.Mode = ModeToken
	}
	return &Matcher{cfg: cfg}
}

func (m *Matcher) Config() Config { return m.cfg }

// Match returns the candidates matching query, best first. Candidates without any words are
// skipped. No matches is an empty result and a nil error; a backend failure is a *MatchError.
func (m *Matcher) Match(query string, candidates []string) (matches []Match, err error) {
	defer func() {
		if r := recover(); r != nil {
			matches, err = nil, &MatchError{Query: query, Cause: r}
		}
	}()

	words := tokenize(query)
	if len(words) == 0 {
		return nil, ErrEmptyQuery
	}

	switch m.cfg.Mode {
	case ModeToken:
		matches = m.matchTokens(words, candidates)
	case ModeSubsequence:
		matches = matchSubsequence(words, candidates)
	default:
		return nil, &MatchError{Query: query, Cause: fmt.Sprintf("unknown mode %q", m.cfg.Mode)}
	}
	return matches, nil
}

// Items returns the matched item names in rank order.
func Items(ms []Match) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Item)
	}
	return out
}

func (m *Matcher) matchTokens(query []string, candidates []string) []Match {
	var out []Match
	for i, c := range candidates {
		words := tokenize(c)
		if len(words) == 0 {
			continue
		}
		total, ok := 0.0, true
		for _, q := range query {
			best := 1.0
			for _, w := range words {
				if d := wordDistance(q, w); d < best {
					best = d
				}
			}
			if best > m.cfg.Threshold {
				ok = false
				break
			}
			total += best
		}
		if ok {
			out = append(out, Match{Item: c, Index: i, Distance: total / float64(len(query))})
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Distance < out[b].Distance })
	return out
}

// wordDistance scores q against an item word. A word containing q scores by how much of the
// word is left over, halved; otherwise it is the edit distance relative to the longer word.
func wordDistance(q, w string) float64 {
	if q == w {
		return 0
	}
	lq, lw := utf8.RuneCountInString(q), utf8.RuneCountInString(w)
	if strings.Contains(w, q) {
		return 0.5 * float64(lw-lq) / float64(lw)
	}
	return float64(levenshtein.ComputeDistance(q, w)) / float64(max(lq, lw))
}

func matchSubsequence(query []string, candidates []string) []Match {
	type hit struct {
		score   int
		matched int
		words   int
	}
	lowered := make([]string, len(candidates))
	for i, c := range candidates {
		lowered[i] = strings.ToLower(c)
	}

	hits := map[int]*hit{}
	for i, q := range query {
		for _, fm := range fuzzy.Find(q, lowered) {
			h, ok := hits[fm.Index]
			if !ok {
				if i > 0 {
					continue
				}
				h = &hit{}
				hits[fm.Index] = h
			}
			if h.words != i {
				continue
			}
			h.score += fm.Score
			h.matched += len(fm.MatchedIndexes)
			h.words++
		}
	}

	out := make([]Match, 0, len(hits))
	scores := make(map[int]int, len(hits))
	for idx, h := range hits {
		if h.words != len(query) {
			continue
		}
		n := utf8.RuneCountInString(lowered[idx])
		d := 0.0
		if n > 0 && h.matched < n {
			d = float64(n-h.matched) / float64(n)
		}
		out = append(out, Match{Item: candidates[idx], Index: idx, Distance: d})
		scores[idx] = h.score
	}
	sort.SliceStable(out, func(a, b int) bool {
		sa, sb := scores[out[a].Index], scores[out[b].Index]
		if sa != sb {
			return sa > sb
		}
		return out[a].Index < out[b].Index
	})
	return out
}

// tokenize lowercases s and splits it into words of letters and digits. Whitespace and
// punctuation both separate words, so serialized values still yield their text.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
