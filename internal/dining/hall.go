package dining

import (
	"errors"
	"fmt"
	"strings"
)

// Hall identifies one of the Claremont dining halls served by the ASPC menu API.
type Hall int

const (
	Frary Hall = iota
	Frank
	Collins
	Scripps
	Pitzer
	Oldenborg

	hallCount
)

var ErrUnknownHall = errors.New("unknown dining hall")

type hallInfo struct {
	id      string
	display string
}

var halls = [...]hallInfo{
	Frary:     {id: "frary", display: "Frary"},
	Frank:     {id: "frank", display: "Frank"},
	Collins:   {id: "collins", display: "Collins"},
	Scripps:   {id: "scripps", display: "Scripps"},
	Pitzer:    {id: "pitzer", display: "Pitzer"},
	Oldenborg: {id: "oldenburg", display: "Oldenborg"},
}

// Fails to compile if a hall is added without a table entry.
var _ = [1]struct{}{}[len(halls)-int(hallCount)]

// Halls returns every hall in directory order. Search results are reported in this order.
func Halls() []Hall {
	out := make([]Hall, 0, hallCount)
	for h := Hall(0); h < hallCount; h++ {
		out = append(out, h)
	}
	return out
}

// ParseHall maps an API identifier ("frary") to a Hall. Matching ignores case and surrounding space.
func ParseHall(s string) (Hall, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for h := Hall(0); h < hallCount; h++ {
		if halls[h].id == s {
			return h, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownHall, s)
}

// ID is the identifier used in menu API paths.
func (h Hall) ID() string {
	if !h.Valid() {
		return ""
	}
	return halls[h].id
}

// DisplayName is the name spoken back to the user.
func (h Hall) DisplayName() string {
	if !h.Valid() {
		return ""
	}
	return halls[h].display
}

func (h Hall) Valid() bool { return h >= 0 && h < hallCount }

func (h Hall) String() string { return h.ID() }
