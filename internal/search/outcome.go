package search

import "github.com/example/frarold/internal/dining"

type Kind int

const (
	KindNoData Kind = iota
	KindMatched
	KindNotFound

	// KindFailed only appears under PolicyPartial.
	KindFailed
)

func (k Kind) String() string {
	switch k {
	case KindNoData:
		return "no_data"
	case KindMatched:
		return "matched"
	case KindNotFound:
		return "not_found"
	case KindFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is one hall's answer to a food search. Only the fields of its Kind are set.
type Outcome struct {
	Hall dining.Hall
	Kind Kind

	Matches []string // KindMatched, best first
	Query   string   // KindNotFound
	Err     error    // KindFailed
}

func NoData(h dining.Hall) Outcome { return Outcome{Hall: h, Kind: KindNoData} }

// Matched builds a KindMatched outcome; an empty match list is treated as not found.
func Matched(h dining.Hall, query string, matches []string) Outcome {
	if len(matches) == 0 {
		return NotFound(h, query)
	}
	return Outcome{Hall: h, Kind: KindMatched, Matches: matches}
}

func NotFound(h dining.Hall, query string) Outcome {
	return Outcome{Hall: h, Kind: KindNotFound, Query: query}
}

func Failed(h dining.Hall, err error) Outcome {
	return Outcome{Hall: h, Kind: KindFailed, Err: err}
}
