package cookie

import "github.com/samber/mo"

// UserStats contains the global stats of a user
type UserStats struct {
	UserID      int64  `json:"user_id"`
	MaxStreak   int64  `json:"max_streak"`
	Streak      int64  `json:"streak"`
	Cookies     int64  `json:"cookies"`
	Career      string `json:"career"`
	TotalShifts int64  `json:"total_shifts"`
	Job         string `json:"job"`
}

// MemberStats contains the level stats of a user within one guild
type MemberStats struct {
	UserID               int64 `json:"user_id"`
	GuildID              int64 `json:"guild_id"`
	Level                int64 `json:"level"`
	XP                   int64 `json:"xp"`
	MsgCount             int64 `json:"msg_count"`
	VoiceMin             int64 `json:"voice_min"`
	VoiceXP              int64 `json:"voice_xp"`
	VoiceLevel           int64 `json:"voice_level"`
	CurrentLevelProgress int64 `json:"current_level_progress"`
	CurrentLevelEnd      int64 `json:"current_level_end"`
	MsgRank              int64 `json:"msg_rank"`
	MsgTotalMembers      int64 `json:"msg_total_members"`
	VoiceRank            int64 `json:"voice_rank"`
	VoiceTotalMembers    int64 `json:"voice_total_members"`
}

// LevelProgress returns the fraction of the current level already reached
func (m *MemberStats) LevelProgress() float64 {
	if m.CurrentLevelEnd <= 0 {
		return 0
	}
	return float64(m.CurrentLevelProgress) / float64(m.CurrentLevelEnd)
}

// MemberActivity contains the activity of a member over the requested days
type MemberActivity struct {
	Days                int64      `json:"days"`
	UserID              int64      `json:"user_id"`
	GuildID             int64      `json:"guild_id"`
	MsgCount            int64      `json:"msg_count"`
	VoiceMin            int64      `json:"voice_min"`
	MsgRank             int64      `json:"msg_rank"`
	VoiceRank           int64      `json:"voice_rank"`
	CurrentVoiceMinutes int64      `json:"current_voice_minutes"`
	MsgActivity         DateSeries `json:"msg_activity"`
	VoiceActivity       DateSeries `json:"voice_activity"`
}

// GuildActivity contains the activity of a whole guild over the requested days
type GuildActivity struct {
	Days               int64            `json:"days"`
	GuildID            int64            `json:"guild_id"`
	TotalMessages      int64            `json:"total_messages"`
	TotalVoiceMinutes  int64            `json:"total_voice_minutes"`
	TopChannel         int64            `json:"top_channel"`
	TopChannelMessages int64            `json:"top_channel_messages"`
	MostActiveUserDay  mo.Option[int64] `json:"most_active_user_day"`
	MostActiveUserHour mo.Option[int64] `json:"most_active_user_hour"`
	MsgActivity        DateSeries       `json:"msg_activity"`
	VoiceActivity      DateSeries       `json:"voice_activity"`
}

// GuildStats contains the member count history of a guild
type GuildStats struct {
	Days        int64      `json:"days"`
	GuildID     int64      `json:"guild_id"`
	MemberCount DateSeries `json:"member_count"`
}

// MemberDelta returns the change in member count between the first and the
// last day of the history
func (g *GuildStats) MemberDelta() int64 {
	counts := g.MemberCount.Counts()
	if len(counts) < 2 {
		return 0
	}
	return counts[len(counts)-1] - counts[0]
}
