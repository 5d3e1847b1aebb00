package dtos

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DateTimeLayout = "2006-01-02 15:04"
	DateLayout     = "2006-01-02"
	ClockLayout    = "15:04"
)

// Schedule carries a point in time either as one date_time value or as the
// separate date and time fields the web client sends.
type Schedule struct {
	DateTime string `json:"date_time"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

func (s Schedule) IsZero() bool {
	return s.DateTime == "" && s.Date == "" && s.Time == ""
}

// Resolve returns the scheduled time. When only part of the value is given
// (just date, or just time) the missing part is taken from current; with a
// nil current a date is required and the time defaults to midnight.
func (s Schedule) Resolve(current *time.Time) (time.Time, error) {
	if dt := strings.TrimSpace(s.DateTime); dt != "" {
		if t, err := time.Parse(time.RFC3339, dt); err == nil {
			return t.UTC(), nil
		}
		t, err := time.Parse(DateTimeLayout, dt)
		if err != nil {
			return time.Time{}, fmt.Errorf("date_time %q must be %q or RFC 3339", dt, DateTimeLayout)
		}
		return t, nil
	}

	date, clock := strings.TrimSpace(s.Date), strings.TrimSpace(s.Time)
	if date == "" && clock == "" {
		if current == nil {
			return time.Time{}, errors.New("date_time or date is required")
		}
		return *current, nil
	}

	if date == "" {
		if current == nil {
			return time.Time{}, errors.New("date is required")
		}
		date = current.UTC().Format(DateLayout)
	}
	if clock == "" {
		clock = "00:00"
		if current != nil {
			clock = current.UTC().Format(ClockLayout)
		}
	}

	if _, err := time.Parse(DateLayout, date); err != nil {
		return time.Time{}, fmt.Errorf("date %q must be %q", date, DateLayout)
	}
	if _, err := time.Parse(ClockLayout, clock); err != nil {
		return time.Time{}, fmt.Errorf("time %q must be %q", clock, ClockLayout)
	}
	return time.Parse(DateTimeLayout, date+" "+clock)
}
