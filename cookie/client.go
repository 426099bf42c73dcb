package cookie

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
)

// Client is the blocking Cookie API client. It is safe for concurrent use.
type Client struct {
	req        *requester
	httpClient *http.Client
}

// NewClient creates a new Cookie client. An empty apiKey falls back to the
// COOKIE_KEY environment variable; when neither is set the returned error
// matches ErrInvalidAPIKey and no request is made.
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	key, err := ResolveAPIKey(apiKey)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	return &Client{
		req:        newRequester(key, logger, o),
		httpClient: httpClient,
	}, nil
}

// GetUserStats retrieves the global stats of a user
func (c *Client) GetUserStats(ctx context.Context, userID int64) (*UserStats, error) {
	return c.req.userStats(ctx, c.httpClient, userID)
}

// GetMemberStats retrieves the level stats of a user within a guild
func (c *Client) GetMemberStats(ctx context.Context, userID, guildID int64) (*MemberStats, error) {
	return c.req.memberStats(ctx, c.httpClient, userID, guildID)
}

// GetGuildStats retrieves the member count history of a guild for the last
// days days (DefaultDays when days <= 0)
func (c *Client) GetGuildStats(ctx context.Context, guildID int64, days int) (*GuildStats, error) {
	return c.req.guildStats(ctx, c.httpClient, guildID, days)
}

// GetMemberActivity retrieves the activity of a member for the last days days
func (c *Client) GetMemberActivity(ctx context.Context, userID, guildID int64, days int) (*MemberActivity, error) {
	return c.req.memberActivity(ctx, c.httpClient, userID, guildID, days)
}

// GetGuildActivity retrieves the activity of a guild for the last days days
func (c *Client) GetGuildActivity(ctx context.Context, guildID int64, days int) (*GuildActivity, error) {
	return c.req.guildActivity(ctx, c.httpClient, guildID, days)
}

// GetGuildImage retrieves the activity image of a guild as raw bytes
func (c *Client) GetGuildImage(ctx context.Context, guildID int64, days int) ([]byte, error) {
	return c.req.guildImage(ctx, c.httpClient, guildID, days)
}

// GetMemberImage retrieves the activity image of a member as raw bytes
func (c *Client) GetMemberImage(ctx context.Context, userID, guildID int64, days int) ([]byte, error) {
	return c.req.memberImage(ctx, c.httpClient, userID, guildID, days)
}

// GetMemberCount retrieves the number of members of a guild per day
func (c *Client) GetMemberCount(ctx context.Context, guildID int64, days int) (*DateSeries, error) {
	return c.req.memberCount(ctx, c.httpClient, guildID, days)
}
