// Package search fans a food search out to every dining hall and joins the answers in
// directory order.
package search

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/example/frarold/internal/aspc"
	"github.com/example/frarold/internal/calendar"
	"github.com/example/frarold/internal/dining"
	"github.com/example/frarold/internal/match"
)

// MenuFetcher is satisfied by *aspc.Client.
type MenuFetcher interface {
	FetchMenu(ctx context.Context, hall dining.Hall, date calendar.ResolvedDate, meal dining.Meal) (aspc.MenuResult, error)
}

// Matcher is satisfied by *match.Matcher.
type Matcher interface {
	Match(query string, candidates []string) ([]match.Match, error)
}

// Policy decides what a failed hall fetch does to the whole search.
type Policy int

const (
	// PolicyAllOrNothing fails the search if any hall fails.
	PolicyAllOrNothing Policy = iota

	// PolicyPartial reports a failed hall as a KindFailed outcome.
	PolicyPartial
)

// Aggregator searches every hall concurrently. Halls defaults to dining.Halls().
type Aggregator struct {
	Menus   MenuFetcher
	Matcher Matcher
	Halls   []dining.Hall
	Policy  Policy
	Log     *zap.Logger
}

// SearchAllHalls returns one Outcome per hall, in hall order. It waits for every fetch to
// finish; under PolicyAllOrNothing any fetch error fails the call and no outcomes are returned.
func (a *Aggregator) SearchAllHalls(ctx context.Context, foodItem string, date calendar.ResolvedDate, meal dining.Meal) ([]Outcome, error) {
	halls := a.Halls
	if len(halls) == 0 {
		halls = dining.Halls()
	}
	log := a.logger()

	results := make([]Outcome, len(halls))
	var g errgroup.Group
	for i, h := range halls {
		i, h := i, h
		g.Go(func() error {
			o, err := a.searchHall(ctx, h, foodItem, date, meal)
			if err != nil {
				if a.Policy == PolicyPartial {
					log.Warn("hall fetch failed", zap.Stringer("hall", h), zap.Error(err))
					results[i] = Failed(h, err)
					return nil
				}
				return err
			}
			results[i] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debug("search complete", zap.String("item", foodItem), zap.String("day", date.DayCode()), zap.Stringer("meal", meal))
	return results, nil
}

func (a *Aggregator) searchHall(ctx context.Context, h dining.Hall, foodItem string, date calendar.ResolvedDate, meal dining.Meal) (Outcome, error) {
	menu, err := a.Menus.FetchMenu(ctx, h, date, meal)
	if err != nil {
		return Outcome{}, err
	}
	if !menu.Posted {
		return NoData(h), nil
	}

	ms, err := a.Matcher.Match(foodItem, menu.Items)
	if err != nil {
		a.logger().Warn("matcher failed, reporting not found", zap.Stringer("hall", h), zap.String("item", foodItem), zap.Error(err))
		return NotFound(h, foodItem), nil
	}
	return Matched(h, foodItem, match.Items(ms)), nil
}

func (a *Aggregator) logger() *zap.Logger {
	if a.Log == nil {
		return zap.NewNop()
	}
	return a.Log.Named("search")
}
