package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/frarold/internal/config"
	"github.com/example/frarold/internal/fulfillment"
	"github.com/example/frarold/internal/search"
)

type echoSpeaker struct {
	reqs []fulfillment.Request
}

func (e *echoSpeaker) Speech(_ context.Context, req fulfillment.Request) string {
	e.reqs = append(e.reqs, req)
	return req.Intent + ":" + req.FoodItem + req.Hall
}

func TestParseChatLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want fulfillment.Request
	}{
		{"menu hall=frary meal=lunch", fulfillment.Request{Intent: fulfillment.IntentFoodList, Hall: "frary", Meal: "lunch"}},
		{"MENU hall=oldenburg meal=dinner date=2026-10-19", fulfillment.Request{Intent: fulfillment.IntentFoodList, Hall: "oldenburg", Meal: "dinner", Date: "2026-10-19"}},
		{"search item=pizza meal=dinner", fulfillment.Request{Intent: fulfillment.IntentFoodSearch, FoodItem: "pizza", Meal: "dinner"}},
		{"find item=mac and cheese meal=lunch", fulfillment.Request{Intent: fulfillment.IntentFoodSearch, FoodItem: "mac and cheese", Meal: "lunch"}},
		{"food_search food_item=tacos", fulfillment.Request{Intent: fulfillment.IntentFoodSearch, FoodItem: "tacos"}},
	}
	for _, tt := range tests {
		got, err := parseChatLine(tt.line)
		require.NoError(t, err, tt.line)
		assert.Equal(t, tt.want, got, tt.line)
	}
}

func TestParseChatLineErrors(t *testing.T) {
	t.Parallel()

	_, err := parseChatLine("   ")
	assert.ErrorIs(t, err, errEmptyLine)

	for _, line := range []string{
		"weather today",
		"menu frary",
		"menu colour=blue",
	} {
		_, err := parseChatLine(line)
		assert.Error(t, err, line)
	}
}

func TestIsExitCmd(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"exit", "quit", "exit()", "quit()", "bye", "Bye", " BYE "} {
		assert.True(t, isExitCmd(s), s)
	}
	for _, s := range []string{"", "goodbye", "menu hall=frary"} {
		assert.False(t, isExitCmd(s), s)
	}
}

func TestRunChat(t *testing.T) {
	t.Parallel()

	in := strings.NewReader("search item=pizza meal=lunch\n\nhello there\nmenu hall=frank meal=dinner\nbye\nsearch item=never\n")
	var out bytes.Buffer
	s := &echoSpeaker{}

	require.NoError(t, runChat(context.Background(), in, &out, s, zap.NewNop()))

	text := out.String()
	assert.True(t, strings.HasPrefix(text, chatBanner))
	assert.Contains(t, text, "Frarold: food_search:pizza\n")
	assert.Contains(t, text, "Frarold: "+chatUsage+"\n")
	assert.Contains(t, text, "Frarold: food_list:frank\n")
	assert.True(t, strings.HasSuffix(text, "Good talk.\n"))
	assert.Len(t, s.reqs, 2)
}

func TestRunChatEndOfInput(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, runChat(context.Background(), strings.NewReader("menu hall=frary meal=lunch"), &out, &echoSpeaker{}, zap.NewNop()))
	assert.Contains(t, out.String(), "Frarold: food_list:frary\n")
	assert.True(t, strings.HasSuffix(out.String(), "Good talk.\n"))
}

func TestSearchPolicy(t *testing.T) {
	t.Parallel()

	assert.Equal(t, search.PolicyPartial, searchPolicy(config.PolicyPartial))
	assert.Equal(t, search.PolicyAllOrNothing, searchPolicy(config.PolicyAllOrNothing))
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "frarold dev (commit=none, built=unknown)\n", out.String())
}
