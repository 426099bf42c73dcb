package cookie

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    Date
		wantErr bool
	}{
		{input: "2024-01-01", want: Date{2024, time.January, 1}},
		{input: "2024-02-29", want: Date{2024, time.February, 29}},
		{input: "2023-02-29", wantErr: true},
		{input: "2024-1-01", wantErr: true},
		{input: "2024-01-1", wantErr: true},
		{input: "01-01-2024", wantErr: true},
		{input: "2024-01-01T00:00:00Z", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestDate(t *testing.T) {
	d := Date{2024, time.March, 9}
	assert.Equal(t, time.Saturday, d.Weekday())
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), d.Time())
	assert.True(t, d.Before(Date{2024, time.March, 10}))
	assert.False(t, d.Before(d))
	assert.Equal(t, d, DateOf(time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC)))
}

func TestDateSeriesUnmarshal(t *testing.T) {
	t.Run("keeps input order and values", func(t *testing.T) {
		var s DateSeries
		require.NoError(t, json.Unmarshal([]byte(`{"2024-01-01": 5, "2024-01-02": 0}`), &s))

		assert.Equal(t, 2, s.Len())
		assert.Equal(t, []Date{{2024, time.January, 1}, {2024, time.January, 2}}, s.Dates())
		assert.Equal(t, []int64{5, 0}, s.Counts())

		c, ok := s.Get(Date{2024, time.January, 2})
		assert.True(t, ok)
		assert.Equal(t, int64(0), c)
	})

	t.Run("insertion order not date order", func(t *testing.T) {
		var s DateSeries
		require.NoError(t, json.Unmarshal([]byte(`{"2024-01-03": 1, "2023-12-31": 2, "2024-01-01": 3}`), &s))

		assert.Equal(t, []string{"2024-01-03", "2023-12-31", "2024-01-01"}, dateStrings(s.Dates()))
	})

	t.Run("large counts are exact", func(t *testing.T) {
		var s DateSeries
		require.NoError(t, json.Unmarshal([]byte(`{"2024-01-01": 9007199254740993}`), &s))
		assert.Equal(t, []int64{9007199254740993}, s.Counts())
	})

	t.Run("malformed date fails", func(t *testing.T) {
		var s DateSeries
		err := json.Unmarshal([]byte(`{"2024-01-01": 5, "2024/01/02": 3}`), &s)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "2024/01/02")
	})

	t.Run("empty object", func(t *testing.T) {
		var s DateSeries
		require.NoError(t, json.Unmarshal([]byte(`{}`), &s))
		assert.Equal(t, 0, s.Len())
	})

	t.Run("null", func(t *testing.T) {
		var s DateSeries
		require.NoError(t, json.Unmarshal([]byte(`null`), &s))
		assert.Equal(t, 0, s.Len())
	})

	t.Run("not an object", func(t *testing.T) {
		var s DateSeries
		assert.Error(t, json.Unmarshal([]byte(`[1, 2]`), &s))
	})
}

func TestDateSeriesMarshal(t *testing.T) {
	s := NewDateSeries()
	s.Set(Date{2024, time.January, 2}, 7)
	s.Set(Date{2024, time.January, 1}, 3)

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `{"2024-01-02":7,"2024-01-01":3}`, string(b))
}

func TestDateSeriesAggregates(t *testing.T) {
	var empty DateSeries
	_, _, ok := empty.Max()
	assert.False(t, ok)
	assert.Zero(t, empty.Total())
	assert.Empty(t, empty.Dates())

	s := NewDateSeries()
	s.Set(Date{2024, time.January, 1}, 4)
	s.Set(Date{2024, time.January, 2}, 9)
	s.Set(Date{2024, time.January, 3}, 9)
	s.Set(Date{2024, time.January, 1}, 1)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, int64(19), s.Total())
	assert.Equal(t, []int64{1, 9, 9}, s.Counts())

	day, count, ok := s.Max()
	assert.True(t, ok)
	assert.Equal(t, Date{2024, time.January, 2}, day)
	assert.Equal(t, int64(9), count)

	var seen int
	s.Each(func(Date, int64) bool {
		seen++
		return seen < 2
	})
	assert.Equal(t, 2, seen)
}

func TestActivityDecode(t *testing.T) {
	body := `{
		"msg_count": 120,
		"voice_min": 45,
		"msg_rank": 3,
		"msg_activity": {"2024-01-01": 5, "2024-01-02": 0},
		"voice_activity": {"2024-01-01": 30, "2024-01-02": 15},
		"some_new_field": true
	}`

	var activity MemberActivity
	require.NoError(t, json.Unmarshal([]byte(body), &activity))

	assert.Equal(t, int64(120), activity.MsgCount)
	assert.Equal(t, int64(3), activity.MsgRank)
	assert.Zero(t, activity.VoiceRank)
	assert.Equal(t, []int64{5, 0}, activity.MsgActivity.Counts())
	assert.Equal(t, []int64{30, 15}, activity.VoiceActivity.Counts())

	var guild GuildActivity
	require.NoError(t, json.Unmarshal([]byte(`{"most_active_user_day": null, "most_active_user_hour": 42, "msg_activity": {}}`), &guild))
	assert.True(t, guild.MostActiveUserDay.IsAbsent())
	assert.Equal(t, int64(42), guild.MostActiveUserHour.OrEmpty())
	assert.Equal(t, 0, guild.VoiceActivity.Len())

	err := json.Unmarshal([]byte(`{"voice_activity": {"yesterday": 3}}`), &activity)
	assert.Error(t, err)
}

func dateStrings(dates []Date) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.String()
	}
	return out
}
