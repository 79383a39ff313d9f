package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/frarold/internal/fulfillment"
)

const chatBanner = `Frarold, your Claremont dining hall assistant.
Try "menu hall=frary meal=lunch" or "search item=pizza meal=dinner date=2026-10-17".
Type "bye" to leave.`

const chatUsage = `I understand "menu hall=<hall> meal=<meal> [date=YYYY-MM-DD]" and "search item=<food> meal=<meal> [date=YYYY-MM-DD]".`

var errEmptyLine = errors.New("empty line")

var chatIntents = map[string]string{
	"menu":                       fulfillment.IntentFoodList,
	"list":                       fulfillment.IntentFoodList,
	fulfillment.IntentFoodList:   fulfillment.IntentFoodList,
	"search":                     fulfillment.IntentFoodSearch,
	"find":                       fulfillment.IntentFoodSearch,
	fulfillment.IntentFoodSearch: fulfillment.IntentFoodSearch,
}

type speaker interface {
	Speech(ctx context.Context, req fulfillment.Request) string
}

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Ask about dining halls from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()

			return runChat(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), a.svc, a.log)
		},
	}
}

func runChat(ctx context.Context, in io.Reader, out io.Writer, s speaker, log *zap.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(out, chatBanner)
	defer fmt.Fprintln(out, "\nGood talk.")

	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- sc.Err()
	}()

	for {
		fmt.Fprint(out, "You: ")

		var line string
		select {
		case <-ctx.Done():
			return nil
		case l, ok := <-lines:
			if !ok {
				select {
				case err := <-errc:
					return err
				default:
					return nil
				}
			}
			line = l
		}

		if isExitCmd(line) {
			return nil
		}

		req, err := parseChatLine(line)
		if errors.Is(err, errEmptyLine) {
			continue
		}

		session := uuid.NewString()
		log.Debug("chat query", zap.String("session_id", session), zap.String("line", line))

		reply := chatUsage
		if err == nil {
			reply = s.Speech(ctx, req)
		}
		fmt.Fprintf(out, "Frarold: %s\n", reply)
	}
}

func isExitCmd(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "exit", "quit", "exit()", "quit()", "bye":
		return true
	}
	return false
}

// parseChatLine reads "<intent> key=value ...". Words after a value without "=" extend
// that value, so "item=mac and cheese" works.
func parseChatLine(line string) (fulfillment.Request, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return fulfillment.Request{}, errEmptyLine
	}

	intent, ok := chatIntents[strings.ToLower(fields[0])]
	if !ok {
		return fulfillment.Request{}, fmt.Errorf("unknown command %q", fields[0])
	}

	req := fulfillment.Request{Intent: intent}
	var cur *string
	for _, f := range fields[1:] {
		key, val, found := strings.Cut(f, "=")
		if !found {
			if cur == nil {
				return fulfillment.Request{}, fmt.Errorf("expected key=value, got %q", f)
			}
			*cur += " " + f
			continue
		}
		switch strings.ToLower(key) {
		case "hall", "dining_hall":
			cur = &req.Hall
		case "meal":
			cur = &req.Meal
		case "item", "food", "food_item":
			cur = &req.FoodItem
		case "date":
			cur = &req.Date
		default:
			return fulfillment.Request{}, fmt.Errorf("unknown key %q", key)
		}
		*cur = val
	}
	return req, nil
}
