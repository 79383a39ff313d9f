package dining

import "strings"

// Meal is a meal period such as "lunch". Values are not checked against a fixed set;
// the menu API answers unknown meals with an empty menu.
type Meal string

const (
	Breakfast Meal = "breakfast"
	Brunch    Meal = "brunch"
	Lunch     Meal = "lunch"
	Dinner    Meal = "dinner"
)

// NormalizeMeal lowercases and trims a user-supplied meal name.
func NormalizeMeal(s string) Meal {
	return Meal(strings.ToLower(strings.TrimSpace(s)))
}

func (m Meal) String() string { return string(m) }
