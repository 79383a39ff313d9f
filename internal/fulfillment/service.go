// Package fulfillment answers menu intents with a sentence to speak.
package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/example/frarold/internal/aspc"
	"github.com/example/frarold/internal/calendar"
	"github.com/example/frarold/internal/dining"
	"github.com/example/frarold/internal/search"
	"github.com/example/frarold/internal/speech"
)

const (
	IntentFoodList   = "food_list"
	IntentFoodSearch = "food_search"
)

var (
	ErrUnknownIntent   = errors.New("unknown intent")
	ErrMissingMeal     = errors.New("meal is required")
	ErrMissingFoodItem = errors.New("food item is required")
)

// Request carries the parameters extracted from one user query. Date is YYYY-MM-DD or empty.
type Request struct {
	Intent   string
	Hall     string
	Meal     string
	FoodItem string
	Date     string
}

// Searcher is satisfied by *search.Aggregator.
type Searcher interface {
	SearchAllHalls(ctx context.Context, foodItem string, date calendar.ResolvedDate, meal dining.Meal) ([]search.Outcome, error)
}

type Service struct {
	Menus  search.MenuFetcher
	Search Searcher
	Dates  *calendar.Resolver
	Log    *zap.Logger
}

// Fulfill answers req. Search answers have one line per hall, in hall order.
func (s *Service) Fulfill(ctx context.Context, req Request) (string, error) {
	meal := dining.NormalizeMeal(req.Meal)
	if meal == "" {
		return "", ErrMissingMeal
	}
	date := s.Dates.Resolve(req.Date)

	switch strings.TrimSpace(req.Intent) {
	case IntentFoodList:
		hall, err := dining.ParseHall(req.Hall)
		if err != nil {
			return "", err
		}
		menu, err := s.Menus.FetchMenu(ctx, hall, date, meal)
		if err != nil {
			return "", fmt.Errorf("food list: %w", err)
		}
		return speech.Menu(hall, meal, date, menu), nil

	case IntentFoodSearch:
		item := strings.TrimSpace(req.FoodItem)
		if item == "" {
			return "", ErrMissingFoodItem
		}
		outcomes, err := s.Search.SearchAllHalls(ctx, item, date, meal)
		if err != nil {
			return "", fmt.Errorf("food search: %w", err)
		}
		return strings.Join(speech.Search(outcomes, meal, date), "\n"), nil

	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownIntent, req.Intent)
	}
}

// Speech is Fulfill for user-facing callers: errors become a sentence and are logged,
// and internal error text is never returned.
func (s *Service) Speech(ctx context.Context, req Request) string {
	out, err := s.Fulfill(ctx, req)
	if err == nil {
		return out
	}

	log := s.logger().With(zap.String("intent", req.Intent), zap.String("hall", req.Hall), zap.String("meal", req.Meal))
	var (
		fe *aspc.FetchError
		pe *aspc.ParseError
	)
	switch {
	case errors.Is(err, dining.ErrUnknownHall):
		log.Info("unknown hall", zap.Error(err))
		return fmt.Sprintf("Sorry, I don't know a dining hall called %q.", strings.TrimSpace(req.Hall))
	case errors.Is(err, ErrMissingMeal):
		return "Which meal? Breakfast, brunch, lunch, or dinner?"
	case errors.Is(err, ErrMissingFoodItem):
		return "What food should I look for?"
	case errors.Is(err, ErrUnknownIntent):
		log.Info("unknown intent", zap.Error(err))
		return "Sorry, I can't help with that yet."
	case errors.As(err, &fe):
		log.Error("menu fetch failed", zap.Error(err), zap.Int("status", fe.Status))
	case errors.As(err, &pe):
		log.Error("menu response malformed", zap.Error(err))
	default:
		log.Error("fulfillment failed", zap.Error(err))
	}
	return speech.Apology
}

func (s *Service) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log.Named("fulfillment")
}
