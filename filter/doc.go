// Package filter selects days of a date series with expr-lang expressions.
//
// Each day is exposed to the expression as:
//
//   - Date: the day as a time.Time at UTC midnight
//   - Count: the value of that day
//   - Weekday: "Mon" through "Sun"
//   - Index: the position of the day in the series, from 0
//
// Helpers: daysAgo(n), daysSince(t), parseDate("2024-01-31"), now(),
// lower(s) and upper(s).
//
//	f, err := filter.Compile(`Count > 100 && Weekday in ["Sat", "Sun"]`)
//	busyWeekends, err := f.Apply(&activity.MsgActivity)
package filter

var defaultCompiler = NewExprCompiler(WithCache(100))

// Compile compiles an expression with the shared caching compiler
func Compile(expression string) (CompiledFilter, error) {
	return defaultCompiler.Compile(expression)
}
