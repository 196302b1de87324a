package datamodel

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// Date is a calendar day without time of day, stored as YYYY-MM-DD.
// String order equals chronological order, which the range filters rely on.
type Date string

func NewDate(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// Today returns the calendar day of now in its own location.
func Today(now time.Time) Date {
	return NewDate(now)
}

// FirstOfMonth returns the first day of the month containing now.
func FirstOfMonth(now time.Time) Date {
	return NewDate(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()))
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return NewDate(t), nil
}

func (d Date) String() string {
	return string(d)
}

func (d Date) IsZero() bool {
	return d == ""
}

// Time returns midnight of the day in loc.
func (d Date) Time(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateLayout, string(d), loc)
}

func (d Date) Before(o Date) bool {
	return d < o
}

// Scan accepts what the postgres and sqlite drivers hand back for a date column.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = ""
	case time.Time:
		*d = NewDate(v)
	case string:
		return d.parseLoose(v)
	case []byte:
		return d.parseLoose(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
	return nil
}

func (d *Date) parseLoose(s string) error {
	if len(s) >= len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return string(d), nil
}

func (Date) GormDataType() string {
	return "date"
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		*d = ""
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
