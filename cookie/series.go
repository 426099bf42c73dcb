package cookie

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DateLayout is the format of the date keys the API uses in series objects.
const DateLayout = "2006-01-02"

// Date is a calendar day without time or location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a date in exactly the YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// Before reports whether d is an earlier day than other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// MarshalText implements encoding.TextMarshaler
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DateSeries is a daily count series keyed by date, kept in the order the
// days were added (for decoded series: the order of the JSON object).
// The zero value is an empty series ready to use.
type DateSeries struct {
	m *orderedmap.OrderedMap[Date, int64]
}

// NewDateSeries creates an empty series.
func NewDateSeries() *DateSeries {
	return &DateSeries{m: orderedmap.New[Date, int64]()}
}

func (s *DateSeries) init() {
	if s.m == nil {
		s.m = orderedmap.New[Date, int64]()
	}
}

// Len returns the number of days in the series.
func (s *DateSeries) Len() int {
	if s == nil || s.m == nil {
		return 0
	}
	return s.m.Len()
}

// Get returns the count for a day.
func (s *DateSeries) Get(d Date) (int64, bool) {
	if s == nil || s.m == nil {
		return 0, false
	}
	return s.m.Get(d)
}

// Set stores the count for a day. A new day is appended; an existing day
// keeps its position.
func (s *DateSeries) Set(d Date, count int64) {
	s.init()
	s.m.Set(d, count)
}

// Each calls fn for every day in order until fn returns false.
func (s *DateSeries) Each(fn func(d Date, count int64) bool) {
	if s == nil || s.m == nil {
		return
	}
	for pair := s.m.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Dates returns the days in order.
func (s *DateSeries) Dates() []Date {
	dates := make([]Date, 0, s.Len())
	s.Each(func(d Date, _ int64) bool {
		dates = append(dates, d)
		return true
	})
	return dates
}

// Counts returns the counts in day order.
func (s *DateSeries) Counts() []int64 {
	counts := make([]int64, 0, s.Len())
	s.Each(func(_ Date, c int64) bool {
		counts = append(counts, c)
		return true
	})
	return counts
}

// Total returns the sum of all counts.
func (s *DateSeries) Total() int64 {
	var total int64
	s.Each(func(_ Date, c int64) bool {
		total += c
		return true
	})
	return total
}

// Max returns the day with the highest count. ok is false for an empty series.
func (s *DateSeries) Max() (day Date, count int64, ok bool) {
	s.Each(func(d Date, c int64) bool {
		if !ok || c > count {
			day, count, ok = d, c, true
		}
		return true
	})
	return day, count, ok
}

// MarshalJSON encodes the series as {"YYYY-MM-DD": count, ...} in order.
func (s DateSeries) MarshalJSON() ([]byte, error) {
	out := orderedmap.New[string, int64]()
	s.Each(func(d Date, c int64) bool {
		out.Set(d.String(), c)
		return true
	})
	return json.Marshal(out)
}

// UnmarshalJSON decodes {"YYYY-MM-DD": count, ...}, keeping key order.
// Every key must be a valid date; a malformed key fails the whole decode.
func (s *DateSeries) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		s.m = nil
		return nil
	}

	raw := orderedmap.New[string, int64]()
	if err := json.Unmarshal(data, raw); err != nil {
		return fmt.Errorf("failed to decode date series: %w", err)
	}

	series := orderedmap.New[Date, int64](raw.Len())
	for pair := raw.Oldest(); pair != nil; pair = pair.Next() {
		d, err := ParseDate(pair.Key)
		if err != nil {
			return fmt.Errorf("failed to decode date series: %w", err)
		}
		series.Set(d, pair.Value)
	}

	s.m = series
	return nil
}
