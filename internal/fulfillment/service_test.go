package fulfillment

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/example/frarold/internal/aspc"
	"github.com/example/frarold/internal/calendar"
	"github.com/example/frarold/internal/dining"
	"github.com/example/frarold/internal/match"
	"github.com/example/frarold/internal/search"
	"github.com/example/frarold/internal/speech"
)

type stubMenus struct {
	menus map[dining.Hall]aspc.MenuResult
	err   error

	mu      sync.Mutex
	gotDay  string
	gotMeal dining.Meal
}

func (s *stubMenus) FetchMenu(_ context.Context, hall dining.Hall, date calendar.ResolvedDate, meal dining.Meal) (aspc.MenuResult, error) {
	s.mu.Lock()
	s.gotDay, s.gotMeal = date.DayCode(), meal
	s.mu.Unlock()
	if s.err != nil {
		return aspc.MenuResult{}, s.err
	}
	return s.menus[hall], nil
}

// Friday 2026-10-16, 09:00 in Los Angeles.
func fridayResolver(t *testing.T) *calendar.Resolver {
	t.Helper()
	r, err := calendar.NewResolver()
	require.NoError(t, err)
	r.Now = func() time.Time { return time.Date(2026, time.October, 16, 16, 0, 0, 0, time.UTC) }
	return r
}

func newService(t *testing.T, menus *stubMenus, log *zap.Logger) *Service {
	t.Helper()
	return &Service{
		Menus:  menus,
		Search: &search.Aggregator{Menus: menus, Matcher: match.New(match.DefaultConfig())},
		Dates:  fridayResolver(t),
		Log:    log,
	}
}

func TestFulfillFoodList(t *testing.T) {
	t.Parallel()

	menus := &stubMenus{menus: map[dining.Hall]aspc.MenuResult{
		dining.Frary: aspc.Items([]string{"Pizza"}),
	}}
	s := newService(t, menus, nil)

	got, err := s.Fulfill(context.Background(), Request{Intent: IntentFoodList, Hall: "frary", Meal: "Lunch"})
	require.NoError(t, err)
	assert.Equal(t, "Frary has Pizza for lunch today.", got)
	assert.Equal(t, "fri", menus.gotDay)
	assert.Equal(t, dining.Lunch, menus.gotMeal)
}

func TestFulfillFoodListOtherDay(t *testing.T) {
	t.Parallel()

	s := newService(t, &stubMenus{}, nil)
	got, err := s.Fulfill(context.Background(), Request{Intent: IntentFoodList, Hall: "collins", Meal: "dinner", Date: "2026-10-19"})
	require.NoError(t, err)
	assert.Equal(t, "Hmm...that's weird. It looks like Collins didn't post dinner Monday.", got)
}

func TestFulfillFoodSearch(t *testing.T) {
	t.Parallel()

	menus := &stubMenus{menus: map[dining.Hall]aspc.MenuResult{
		dining.Frary:   aspc.Items([]string{"Pizza", "Salad"}),
		dining.Frank:   aspc.Items([]string{"Burgers"}),
		dining.Scripps: aspc.Items([]string{"Cheese Pizza"}),
	}}
	s := newService(t, menus, nil)

	got, err := s.Fulfill(context.Background(), Request{Intent: IntentFoodSearch, FoodItem: "pizza", Meal: "lunch"})
	require.NoError(t, err)

	lines := strings.Split(got, "\n")
	assert.Equal(t, []string{
		"Frary has Pizza for lunch today.",
		"Frank doesn't have pizza for lunch today.",
		"Hmm...that's weird. It looks like Collins didn't post lunch today.",
		"Scripps has Cheese Pizza for lunch today.",
		"Hmm...that's weird. It looks like Pitzer didn't post lunch today.",
		"Hmm...that's weird. It looks like Oldenborg didn't post lunch today.",
	}, lines)
}

func TestFulfillValidation(t *testing.T) {
	t.Parallel()

	s := newService(t, &stubMenus{}, nil)
	ctx := context.Background()

	_, err := s.Fulfill(ctx, Request{Intent: IntentFoodList, Hall: "frary"})
	assert.ErrorIs(t, err, ErrMissingMeal)

	_, err = s.Fulfill(ctx, Request{Intent: IntentFoodList, Hall: "mudd", Meal: "lunch"})
	assert.ErrorIs(t, err, dining.ErrUnknownHall)

	_, err = s.Fulfill(ctx, Request{Intent: IntentFoodSearch, Meal: "lunch", FoodItem: "  "})
	assert.ErrorIs(t, err, ErrMissingFoodItem)

	_, err = s.Fulfill(ctx, Request{Intent: "weather", Meal: "lunch"})
	assert.ErrorIs(t, err, ErrUnknownIntent)
}

func TestSpeechMapsErrors(t *testing.T) {
	t.Parallel()

	s := newService(t, &stubMenus{}, nil)
	ctx := context.Background()

	assert.Equal(t, `Sorry, I don't know a dining hall called "mudd".`,
		s.Speech(ctx, Request{Intent: IntentFoodList, Hall: "mudd", Meal: "lunch"}))
	assert.Equal(t, "Which meal? Breakfast, brunch, lunch, or dinner?",
		s.Speech(ctx, Request{Intent: IntentFoodList, Hall: "frary"}))
	assert.Equal(t, "What food should I look for?",
		s.Speech(ctx, Request{Intent: IntentFoodSearch, Meal: "lunch"}))
	assert.Equal(t, "Sorry, I can't help with that yet.",
		s.Speech(ctx, Request{Intent: "weather", Meal: "lunch"}))
}

func TestSpeechHidesFetchErrors(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	cause := &aspc.FetchError{Hall: dining.Frary, Day: "fri", Meal: dining.Lunch, Err: errors.New("dial tcp: connection refused")}
	s := newService(t, &stubMenus{err: cause}, zap.New(core))

	for _, intent := range []string{IntentFoodList, IntentFoodSearch} {
		got := s.Speech(context.Background(), Request{Intent: intent, Hall: "frary", Meal: "lunch", FoodItem: "pizza"})
		assert.Equal(t, speech.Apology, got, intent)
		assert.NotContains(t, got, "connection refused")
	}

	entries := logs.FilterMessage("menu fetch failed").All()
	require.Len(t, entries, 2)
	assert.Contains(t, entries[0].ContextMap()["error"], "connection refused")
}

func TestSpeechHidesParseErrors(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	cause := &aspc.ParseError{Hall: dining.Frank, Err: errors.New("decode menu array: invalid character")}
	s := newService(t, &stubMenus{err: cause}, zap.New(core))

	got := s.Speech(context.Background(), Request{Intent: IntentFoodList, Hall: "frank", Meal: "lunch"})
	assert.Equal(t, speech.Apology, got)
	assert.Equal(t, 1, logs.FilterMessage("menu response malformed").Len())
}
