package filter

import (
	"time"

	"github.com/s0up4200/cookie/cookie"
)

// Day is one entry of a date series as seen by a filter expression
type Day struct {
	Date  cookie.Date
	Count int64
	Index int
}

// Names of the per-day variables available in expressions
const (
	varDate    = "Date"
	varCount   = "Count"
	varWeekday = "Weekday"
	varIndex   = "Index"
)

// setDay writes the per-day variables into env
func setDay(env map[string]any, day Day) {
	env[varDate] = day.Date.Time()
	env[varCount] = day.Count
	env[varWeekday] = day.Date.Weekday().String()[:3]
	env[varIndex] = day.Index
}

// dayPrototype is used at compile time so expressions are type checked
// against the per-day variables
var dayPrototype = Day{Date: cookie.DateOf(time.Unix(0, 0).UTC())}
