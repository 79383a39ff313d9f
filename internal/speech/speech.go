// Package speech renders menu and search results as the sentences the assistant speaks.
package speech

import (
	"fmt"
	"strings"

	"github.com/example/frarold/internal/aspc"
	"github.com/example/frarold/internal/calendar"
	"github.com/example/frarold/internal/dining"
	"github.com/example/frarold/internal/search"
)

// Apology replaces internal errors in anything said to the user.
const Apology = "Sorry, I'm having trouble reaching the dining hall menus right now. Please try again in a bit."

// DayPhrase is "today" for today's weekday and the weekday name otherwise.
func DayPhrase(d calendar.ResolvedDate) string {
	if d.Today {
		return "today"
	}
	return d.Weekday()
}

// JoinItems lists items for a sentence, with a trailing space:
//
//	[a]       -> "a "
//	[a b]     -> "a, and b "
//	[a b c]   -> "a, b, and c "
func JoinItems(items []string) string {
	switch n := len(items); n {
	case 0:
		return ""
	case 1:
		return items[0] + " "
	default:
		return strings.Join(items[:n-1], ", ") + ", and " + items[n-1] + " "
	}
}

// Menu renders a single hall's menu.
func Menu(h dining.Hall, meal dining.Meal, d calendar.ResolvedDate, r aspc.MenuResult) string {
	if !r.Posted {
		return noData(h, meal, d)
	}
	return has(h, r.Items, meal, d)
}

// Outcome renders one hall's search outcome.
func Outcome(o search.Outcome, meal dining.Meal, d calendar.ResolvedDate) string {
	switch o.Kind {
	case search.KindMatched:
		return has(o.Hall, o.Matches, meal, d)
	case search.KindNotFound:
		return fmt.Sprintf("%s doesn't have %s for %s %s.", o.Hall.DisplayName(), o.Query, meal, DayPhrase(d))
	case search.KindFailed:
		return fmt.Sprintf("Sorry, I couldn't get %s's menu for %s %s.", o.Hall.DisplayName(), meal, DayPhrase(d))
	default:
		return noData(o.Hall, meal, d)
	}
}

// Search renders each outcome, keeping their order.
func Search(outcomes []search.Outcome, meal dining.Meal, d calendar.ResolvedDate) []string {
	out := make([]string, 0, len(outcomes))
	for _, o := range outcomes {
		out = append(out, Outcome(o, meal, d))
	}
	return out
}

func has(h dining.Hall, items []string, meal dining.Meal, d calendar.ResolvedDate) string {
	return fmt.Sprintf("%s has %sfor %s %s.", h.DisplayName(), JoinItems(items), meal, DayPhrase(d))
}

func noData(h dining.Hall, meal dining.Meal, d calendar.ResolvedDate) string {
	return fmt.Sprintf("Hmm...that's weird. It looks like %s didn't post %s %s.", h.DisplayName(), meal, DayPhrase(d))
}
