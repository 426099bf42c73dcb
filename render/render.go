// Package render formats Cookie API results for the terminal.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/s0up4200/cookie/cookie"
)

const noData = "No data available"

// Options configures a Formatter
type Options struct {
	ChartHeight int
	ChartWidth  int // 0 plots one column per day
	Color       bool
}

// Formatter renders models as aligned key/value blocks, date tables and
// line charts
type Formatter struct {
	opts   Options
	styles styles
}

// New creates a Formatter
func New(opts Options) *Formatter {
	if opts.ChartHeight < 3 {
		opts.ChartHeight = 3
	}
	if opts.ChartWidth > 0 && opts.ChartWidth < 20 {
		opts.ChartWidth = 20
	}
	return &Formatter{opts: opts, styles: newStyles(opts.Color)}
}

type row struct {
	label string
	value string
}

// block renders a title followed by aligned label/value rows
func (f *Formatter) block(title string, rows []row) string {
	width := lo.Max(lo.Map(rows, func(r row, _ int) int { return len(r.label) })) + 2

	var b strings.Builder
	b.WriteString(f.styles.title.Render(title))
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(f.styles.label.Render(r.label + ":" + strings.Repeat(" ", width-len(r.label)-1)))
		b.WriteString(f.styles.value.Render(r.value))
	}
	return b.String()
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

func rank(pos, total int64) string {
	if pos <= 0 {
		return "-"
	}
	if total <= 0 {
		return "#" + itoa(pos)
	}
	return fmt.Sprintf("#%d of %d", pos, total)
}

func optional(v mo.Option[int64]) string {
	if id, ok := v.Get(); ok {
		return itoa(id)
	}
	return "-"
}

// delta renders a signed change, coloured by direction
func (f *Formatter) delta(n int64) string {
	s := fmt.Sprintf("%+d", n)
	switch {
	case n > 0:
		return f.styles.up.Render(s)
	case n < 0:
		return f.styles.down.Render(s)
	default:
		return s
	}
}

// UserStats renders the global stats of a user
func (f *Formatter) UserStats(s *cookie.UserStats) string {
	return f.block("User "+itoa(s.UserID), []row{
		{"Job", lo.Ternary(s.Job != "", s.Job, "-")},
		{"Career", lo.Ternary(s.Career != "", s.Career, "-")},
		{"Cookies", itoa(s.Cookies)},
		{"Streak", fmt.Sprintf("%d (max %d)", s.Streak, s.MaxStreak)},
		{"Total shifts", itoa(s.TotalShifts)},
	})
}

// MemberStats renders the level stats of a guild member
func (f *Formatter) MemberStats(s *cookie.MemberStats) string {
	return f.block(fmt.Sprintf("Member %d in guild %d", s.UserID, s.GuildID), []row{
		{"Level", fmt.Sprintf("%d (%.0f%% to next)", s.Level, s.LevelProgress()*100)},
		{"XP", itoa(s.XP)},
		{"Messages", itoa(s.MsgCount)},
		{"Message rank", rank(s.MsgRank, s.MsgTotalMembers)},
		{"Voice level", itoa(s.VoiceLevel)},
		{"Voice XP", itoa(s.VoiceXP)},
		{"Voice minutes", itoa(s.VoiceMin)},
		{"Voice rank", rank(s.VoiceRank, s.VoiceTotalMembers)},
	})
}

// GuildStats renders the member count history of a guild
func (f *Formatter) GuildStats(s *cookie.GuildStats) string {
	_, latest, _ := lastDay(&s.MemberCount)
	head := f.block(fmt.Sprintf("Guild %d, last %d days", s.GuildID, s.Days), []row{
		{"Members", itoa(latest)},
		{"Change", f.delta(s.MemberDelta())},
	})
	return head + "\n\n" + f.Series("Member count", &s.MemberCount)
}

// MemberActivity renders the activity of a member with a chart of both
// series
func (f *Formatter) MemberActivity(a *cookie.MemberActivity) string {
	head := f.block(fmt.Sprintf("Member %d in guild %d, last %d days", a.UserID, a.GuildID, a.Days), []row{
		{"Messages", itoa(a.MsgCount)},
		{"Message rank", rank(a.MsgRank, 0)},
		{"Voice minutes", itoa(a.VoiceMin)},
		{"Voice rank", rank(a.VoiceRank, 0)},
		{"In voice now", fmt.Sprintf("%d min", a.CurrentVoiceMinutes)},
	})
	return head + "\n\n" + f.Chart("messages / voice minutes per day", &a.MsgActivity, &a.VoiceActivity)
}

// GuildActivity renders the activity of a guild with a chart of both series
func (f *Formatter) GuildActivity(a *cookie.GuildActivity) string {
	head := f.block(fmt.Sprintf("Guild %d, last %d days", a.GuildID, a.Days), []row{
		{"Messages", itoa(a.TotalMessages)},
		{"Voice minutes", itoa(a.TotalVoiceMinutes)},
		{"Top channel", fmt.Sprintf("%d (%d messages)", a.TopChannel, a.TopChannelMessages)},
		{"Most active (day)", optional(a.MostActiveUserDay)},
		{"Most active (hour)", optional(a.MostActiveUserHour)},
	})
	return head + "\n\n" + f.Chart("messages / voice minutes per day", &a.MsgActivity, &a.VoiceActivity)
}

// Series renders a date series as a two column table
func (f *Formatter) Series(title string, s *cookie.DateSeries) string {
	if s.Len() == 0 {
		return f.styles.title.Render(title) + "\n" + f.styles.muted.Render(noData)
	}

	counts := lo.Map(s.Counts(), func(c int64, _ int) string { return itoa(c) })
	width := lo.Max(lo.Map(counts, func(c string, _ int) int { return len(c) }))

	var b strings.Builder
	b.WriteString(f.styles.title.Render(title))
	for i, d := range s.Dates() {
		b.WriteString("\n")
		b.WriteString(f.styles.label.Render(d.String()))
		b.WriteString(fmt.Sprintf("  %*s", width, counts[i]))
	}

	if day, count, ok := s.Max(); ok {
		b.WriteString("\n")
		b.WriteString(f.styles.muted.Render(fmt.Sprintf("total %d, peak %d on %s", s.Total(), count, day)))
	}
	return b.String()
}

// Chart plots one or more date series. Shorter series are padded with
// zeros to the length of the longest.
func (f *Formatter) Chart(caption string, series ...*cookie.DateSeries) string {
	longest := lo.Max(lo.Map(series, func(s *cookie.DateSeries, _ int) int { return s.Len() }))
	if longest == 0 {
		return f.styles.muted.Render(noData)
	}

	data := lo.Map(series, func(s *cookie.DateSeries, _ int) []float64 {
		values := make([]float64, longest)
		for i, c := range s.Counts() {
			values[i] = float64(c)
		}
		return values
	})

	opts := []asciigraph.Option{
		asciigraph.Height(f.opts.ChartHeight),
		asciigraph.Caption(caption),
	}
	if f.opts.ChartWidth > 0 {
		opts = append(opts, asciigraph.Width(f.opts.ChartWidth))
	}
	if f.opts.Color && len(data) > 1 {
		opts = append(opts, asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue))
	}

	return asciigraph.PlotMany(data, opts...)
}

func lastDay(s *cookie.DateSeries) (cookie.Date, int64, bool) {
	dates := s.Dates()
	if len(dates) == 0 {
		return cookie.Date{}, 0, false
	}
	d := dates[len(dates)-1]
	c, _ := s.Get(d)
	return d, c, true
}
