package aspc

import (
	"net/url"
	"strings"

	"github.com/example/frarold/internal/dining"
)

// DefaultBaseURL is the ASPC menu API root.
const DefaultBaseURL = "https://aspc.pomona.edu/api/menu/"

// MenuPath builds the request path for one hall, day and meal, relative to the API root:
//
//	dining_hall/<hall>/day/<day>/meal/<meal>/?auth_token=<token>
//
// Values are escaped but not validated; unknown halls or meals produce an empty menu upstream.
func MenuPath(hall, day, meal, token string) string {
	var b strings.Builder
	b.WriteString("dining_hall/")
	b.WriteString(url.PathEscape(hall))
	b.WriteString("/day/")
	b.WriteString(url.PathEscape(day))
	b.WriteString("/meal/")
	b.WriteString(url.PathEscape(meal))
	b.WriteString("/?auth_token=")
	b.WriteString(url.QueryEscape(token))
	return b.String()
}

func menuURL(base string, hall dining.Hall, day string, meal dining.Meal, token string) string {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + MenuPath(hall.ID(), day, meal.String(), token)
}
