package cookie

import (
	"context"
)

// API defines the blocking Cookie operations. Client implements it, and
// AsyncClient does through Blocking.
type API interface {
	// GetUserStats retrieves the global stats of a user
	GetUserStats(ctx context.Context, userID int64) (*UserStats, error)

	// GetMemberStats retrieves the level stats of a user within a guild
	GetMemberStats(ctx context.Context, userID, guildID int64) (*MemberStats, error)

	// GetGuildStats retrieves the member count history of a guild
	GetGuildStats(ctx context.Context, guildID int64, days int) (*GuildStats, error)

	// GetMemberActivity retrieves the activity of a member
	GetMemberActivity(ctx context.Context, userID, guildID int64, days int) (*MemberActivity, error)

	// GetGuildActivity retrieves the activity of a guild
	GetGuildActivity(ctx context.Context, guildID int64, days int) (*GuildActivity, error)

	// GetGuildImage retrieves the rendered activity image of a guild
	GetGuildImage(ctx context.Context, guildID int64, days int) ([]byte, error)

	// GetMemberImage retrieves the rendered activity image of a member
	GetMemberImage(ctx context.Context, userID, guildID int64, days int) ([]byte, error)

	// GetMemberCount retrieves the number of guild members per day
	GetMemberCount(ctx context.Context, guildID int64, days int) (*DateSeries, error)
}

var (
	_ API = (*Client)(nil)
	_ API = blockingClient{}
)
