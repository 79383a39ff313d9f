package aspc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/example/frarold/internal/dining"
)

// MenuResult is what a hall posted for one day and meal: either a non-empty item list or nothing.
type MenuResult struct {
	Posted bool
	Items  []string
}

// NoData is the result for a hall that posted nothing.
func NoData() MenuResult { return MenuResult{} }

// Items wraps a posted item list. An empty list is NoData.
func Items(items []string) MenuResult {
	if len(items) == 0 {
		return NoData()
	}
	return MenuResult{Posted: true, Items: items}
}

// FetchError reports a failure to reach the menu API or a non-2xx answer.
type FetchError struct {
	Hall dining.Hall
	Day  string
	Meal dining.Meal

	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("aspc menu %s/%s/%s: http %d: %v", e.Hall, e.Day, e.Meal, e.Status, e.Err)
	}
	return fmt.Sprintf("aspc menu %s/%s/%s: %v", e.Hall, e.Day, e.Meal, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a response body that does not have the expected shape.
type ParseError struct {
	Hall dining.Hall
	Day  string
	Meal dining.Meal

	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("aspc menu %s/%s/%s: parse: %v", e.Hall, e.Day, e.Meal, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// menuPayload is element 0 of the API's response array.
type menuPayload struct {
	FoodItems []json.RawMessage `json:"food_items"`
}

// parseMenu decodes a response body. An empty array or a null first element means nothing was posted.
func parseMenu(body []byte) (MenuResult, error) {
	var arr []json.RawMessage
	if err := json.Unmarshal(body, &arr); err != nil {
		return MenuResult{}, fmt.Errorf("decode menu array: %w", err)
	}
	if len(arr) == 0 || isNull(arr[0]) {
		return NoData(), nil
	}
	var p menuPayload
	if err := json.Unmarshal(arr[0], &p); err != nil {
		return MenuResult{}, fmt.Errorf("decode menu entry: %w", err)
	}
	return Items(normalizeItems(p.FoodItems)), nil
}

// normalizeItems converts each raw entry to its string form. JSON strings are unquoted; other
// values keep their compact JSON text. Entries that cannot be normalized are dropped.
func normalizeItems(raw []json.RawMessage) []string {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		if isNull(r) {
			continue
		}
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
			continue
		}
		var buf bytes.Buffer
		if err := json.Compact(&buf, r); err != nil {
			continue
		}
		out = append(out, buf.String())
	}
	return out
}

func isNull(r json.RawMessage) bool {
	return len(bytes.TrimSpace(r)) == 0 || string(bytes.TrimSpace(r)) == "null"
}
