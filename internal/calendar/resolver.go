// Package calendar turns the optional date parameter of a menu query into a day in Claremont time.
package calendar

import (
	"strings"
	"time"
	_ "time/tzdata"
)

const (
	// Timezone is the zone every menu day is computed in.
	Timezone = "America/Los_Angeles"

	// DateLayout is the layout of the date parameter sent by the webhook.
	DateLayout = "2006-01-02"
)

// ResolvedDate is a calendar day anchored in Timezone.
type ResolvedDate struct {
	Date time.Time

	// Today is true when Date falls on the same weekday as the current day.
	// Dates a whole number of weeks away also count as today.
	Today bool
}

// DayCode is the lowercase three-letter weekday used in menu API paths ("mon".."sun").
func (d ResolvedDate) DayCode() string {
	return strings.ToLower(d.Date.Weekday().String()[:3])
}

// Weekday is the full weekday name, e.g. "Monday".
func (d ResolvedDate) Weekday() string {
	return d.Date.Weekday().String()
}

// SameDate reports whether d is the same calendar date as t in d's location.
func (d ResolvedDate) SameDate(t time.Time) bool {
	t = t.In(d.Date.Location())
	y1, m1, d1 := d.Date.Date()
	y2, m2, d2 := t.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Resolver resolves date parameters. The zero value uses the wall clock and Timezone.
type Resolver struct {
	Location *time.Location
	Now      func() time.Time
}

// NewResolver returns a Resolver for Timezone.
func NewResolver() (*Resolver, error) {
	loc, err := time.LoadLocation(Timezone)
	if err != nil {
		return nil, err
	}
	return &Resolver{Location: loc, Now: time.Now}, nil
}

// Resolve parses a YYYY-MM-DD string. An empty or unparsable input resolves to the current date.
func (r *Resolver) Resolve(input string) ResolvedDate {
	now := r.now()
	date := now
	if s := strings.TrimSpace(input); s != "" {
		if parsed, err := time.ParseInLocation(DateLayout, s, r.location()); err == nil {
			date = parsed
		}
	}
	return ResolvedDate{
		Date:  date,
		Today: date.Weekday() == now.Weekday(),
	}
}

func (r *Resolver) now() time.Time {
	now := time.Now
	if r != nil && r.Now != nil {
		now = r.Now
	}
	return now().In(r.location())
}

func (r *Resolver) location() *time.Location {
	if r != nil && r.Location != nil {
		return r.Location
	}
	loc, err := time.LoadLocation(Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
