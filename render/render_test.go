package render

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/cookie/cookie"
)

func plain() *Formatter {
	return New(Options{ChartHeight: 5})
}

func series(t *testing.T, raw string) cookie.DateSeries {
	t.Helper()
	var s cookie.DateSeries
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	return s
}

func TestUserStats(t *testing.T) {
	out := plain().UserStats(&cookie.UserStats{
		UserID:      42,
		MaxStreak:   10,
		Streak:      4,
		Cookies:     1234,
		TotalShifts: 56,
		Job:         "Chef",
	})

	lines := strings.Split(out, "\n")
	assert.Equal(t, "User 42", lines[0])
	assert.Contains(t, out, "Job:          Chef")
	assert.Contains(t, out, "Career:       -")
	assert.Contains(t, out, "Streak:       4 (max 10)")
	assert.Contains(t, out, "Total shifts: 56")
}

func TestMemberStats(t *testing.T) {
	out := plain().MemberStats(&cookie.MemberStats{
		UserID:               1,
		GuildID:              2,
		Level:                12,
		CurrentLevelProgress: 300,
		CurrentLevelEnd:      1200,
		MsgRank:              2,
		MsgTotalMembers:      150,
	})

	assert.Contains(t, out, "Member 1 in guild 2")
	assert.Contains(t, out, "12 (25% to next)")
	assert.Contains(t, out, "#2 of 150")
	assert.Contains(t, out, "Voice rank:    -")
}

func TestGuildStats(t *testing.T) {
	out := plain().GuildStats(&cookie.GuildStats{
		Days:        3,
		GuildID:     7,
		MemberCount: series(t, `{"2024-01-01": 100, "2024-01-02": 98, "2024-01-03": 97}`),
	})

	assert.Contains(t, out, "Guild 7, last 3 days")
	assert.Contains(t, out, "Members: 97")
	assert.Contains(t, out, "Change:  -3")
	assert.Contains(t, out, "2024-01-02   98")
	assert.Contains(t, out, "total 295, peak 100 on 2024-01-01")
}

func TestActivity(t *testing.T) {
	f := plain()

	t.Run("member", func(t *testing.T) {
		out := f.MemberActivity(&cookie.MemberActivity{
			Days:                2,
			UserID:              1,
			GuildID:             2,
			MsgCount:            5,
			MsgRank:             7,
			CurrentVoiceMinutes: 15,
			MsgActivity:         series(t, `{"2024-01-01": 5, "2024-01-02": 0}`),
			VoiceActivity:       series(t, `{"2024-01-01": 60, "2024-01-02": 60}`),
		})

		assert.Contains(t, out, "last 2 days")
		assert.Contains(t, out, "#7")
		assert.Contains(t, out, "15 min")
		assert.Contains(t, out, "messages / voice minutes per day")
	})

	t.Run("guild", func(t *testing.T) {
		out := f.GuildActivity(&cookie.GuildActivity{
			Days:               14,
			GuildID:            2,
			TopChannel:         99,
			TopChannelMessages: 400,
			MostActiveUserDay:  mo.None[int64](),
			MostActiveUserHour: mo.Some[int64](5),
		})

		assert.Contains(t, out, "99 (400 messages)")
		assert.Contains(t, out, "Most active (day):  -")
		assert.Contains(t, out, "Most active (hour): 5")
		assert.Contains(t, out, noData)
	})
}

func TestSeries(t *testing.T) {
	f := plain()

	assert.Equal(t, "Empty\n"+noData, f.Series("Empty", cookie.NewDateSeries()))

	s := series(t, `{"2024-01-02": 7, "2024-01-01": 1234}`)
	out := f.Series("Members", &s)
	assert.Equal(t, strings.Join([]string{
		"Members",
		"2024-01-02     7",
		"2024-01-01  1234",
		"total 1241, peak 1234 on 2024-01-01",
	}, "\n"), out)
}

func TestChart(t *testing.T) {
	f := plain()

	assert.Equal(t, noData, f.Chart("empty"))
	assert.Equal(t, noData, f.Chart("empty", cookie.NewDateSeries()))

	long := cookie.NewDateSeries()
	short := cookie.NewDateSeries()
	for i := 0; i < 10; i++ {
		long.Set(cookie.Date{Year: 2024, Month: time.January, Day: 1 + i}, int64(i*i))
	}
	short.Set(cookie.Date{Year: 2024, Month: time.January, Day: 1}, 50)

	out := f.Chart("squares", long, short)
	assert.Contains(t, out, "squares")
	assert.GreaterOrEqual(t, strings.Count(out, "\n"), 5)
}

func TestNewClampsDimensions(t *testing.T) {
	f := New(Options{ChartHeight: 1, ChartWidth: 5})
	assert.Equal(t, 3, f.opts.ChartHeight)
	assert.Equal(t, 20, f.opts.ChartWidth)

	f = New(Options{ChartHeight: 8})
	assert.Equal(t, 0, f.opts.ChartWidth)
}
