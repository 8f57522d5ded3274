package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of a calendar date.
const DateLayout = "2006-01-02"

// Date is a calendar day with no time of day and no zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns a normalized date, so NewDate(2025, 2, 30) is 2 March.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar fields of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the date of now as seen in loc.
func Today(now time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return DateOf(now.In(loc))
}

// ParseDate parses a date in the local zone. See ParseDateIn.
func ParseDate(s string) (Date, error) {
	return ParseDateIn(s, time.Local)
}

// ParseDateIn accepts YYYY-MM-DD or an RFC3339 timestamp. Timestamps are
// moved into loc before the calendar fields are taken.
func ParseDateIn(s string, loc *time.Location) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}

	if len(s) == len(DateLayout) {
		t, err := time.Parse(DateLayout, s)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		return DateOf(t), nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	if loc == nil {
		loc = time.Local
	}
	return DateOf(t.In(loc)), nil
}

// MustParseDate is ParseDate for literals known to be valid.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Format formats d with a time layout.
func (d Date) Format(layout string) string {
	return d.Time(time.UTC).Format(layout)
}

// Compare returns -1, 0 or +1.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time(time.UTC).AddDate(0, 0, n))
}

func (d Date) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

// DaysUntil returns the number of days from d to o, negative when o is earlier.
func (d Date) DaysUntil(o Date) int {
	return int(o.Time(time.UTC).Sub(d.Time(time.UTC)).Hours() / 24)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDate, string(b))
	}
	if s == nil || *s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(*s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan implements sql.Scanner for DATE columns.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		parsed, err := ParseDateIn(v, time.UTC)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidDate, src)
	}
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// DateRange is a start date with an optional inclusive end date.
type DateRange struct {
	Start Date  `json:"start"`
	End   *Date `json:"end"`
}

// NewDateRange rejects an end earlier than start. An end equal to start
// is dropped so the range behaves as a single day.
func NewDateRange(start Date, end *Date) (DateRange, error) {
	if start.IsZero() {
		return DateRange{}, fmt.Errorf("%w: missing start", ErrInvalidDateRange)
	}
	if end != nil && end.IsZero() {
		end = nil
	}
	if end != nil && end.Before(start) {
		return DateRange{}, ErrInvalidDateRange
	}
	if end != nil && *end == start {
		end = nil
	}
	return DateRange{Start: start, End: end}, nil
}

// Contains reports whether d equals the start or lies inside [start, end].
func (r DateRange) Contains(d Date) bool {
	if d == r.Start {
		return true
	}
	if r.End == nil {
		return false
	}
	return !d.Before(r.Start) && !d.After(*r.End)
}

// Days is the inclusive number of days covered.
func (r DateRange) Days() int {
	if r.End == nil {
		return 1
	}
	return r.Start.DaysUntil(*r.End) + 1
}

func (r DateRange) String() string {
	if r.End == nil {
		return r.Start.String()
	}
	return r.Start.String() + " → " + r.End.String()
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
