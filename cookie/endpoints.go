package cookie

import "fmt"

const (
	// DefaultBaseURL is the versioned root of the Cookie API
	DefaultBaseURL = "https://api.cookieapp.me/v1/"

	// DefaultDays is the activity window used when no day count is given
	DefaultDays = 14
)

// NormalizeDays replaces a non-positive day count with DefaultDays, the
// window the API is asked for
func NormalizeDays(n int) int {
	if n <= 0 {
		return DefaultDays
	}
	return n
}

func userStatsPath(userID int64) string {
	return fmt.Sprintf("stats/user/%d", userID)
}

func memberStatsPath(userID, guildID int64) string {
	return fmt.Sprintf("stats/member/%d/%d", userID, guildID)
}

func guildStatsPath(guildID int64, n int) string {
	return fmt.Sprintf("stats/guild/%d?days=%d", guildID, n)
}

func memberActivityPath(userID, guildID int64, n int) string {
	return fmt.Sprintf("activity/member/%d/%d?days=%d", userID, guildID, n)
}

func guildActivityPath(guildID int64, n int) string {
	return fmt.Sprintf("activity/guild/%d?days=%d", guildID, n)
}

func guildImagePath(guildID int64, n int) string {
	return fmt.Sprintf("activity/guild/%d/image?days=%d", guildID, n)
}

func memberImagePath(userID, guildID int64, n int) string {
	return fmt.Sprintf("activity/member/%d/%d/image?days=%d", userID, guildID, n)
}

func memberCountPath(guildID int64, n int) string {
	return fmt.Sprintf("member_count/%d?days=%d", guildID, n)
}
