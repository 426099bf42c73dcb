package cookie

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/mo"
)

// AsyncClient is the non-blocking Cookie API client. Every operation
// returns a future that resolves to the same value or error the blocking
// Client would return.
//
// The connection handle is created lazily on first use (or by Setup) unless
// one is supplied with WithHTTPClient, and released by Close. Use wraps both
// for scoped use. Calling an AsyncClient after Close is not supported.
type AsyncClient struct {
	req     *requester
	timeout time.Duration

	mu         sync.Mutex
	httpClient *http.Client
	owned      bool
}

// NewAsyncClient creates a new asynchronous Cookie client. Key resolution is
// the same as for NewClient.
func NewAsyncClient(apiKey string, logger zerolog.Logger, opts ...Option) (*AsyncClient, error) {
	key, err := ResolveAPIKey(apiKey)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &AsyncClient{
		req:        newRequester(key, logger, o),
		timeout:    o.timeout,
		httpClient: o.httpClient,
	}, nil
}

// Setup creates the connection handle if there is none yet. Repeated calls
// return the existing handle.
func (c *AsyncClient) Setup() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
		c.owned = true
		c.req.logger.Debug().Msg("Created Cookie API connection")
	}
	return c.httpClient
}

// Close releases the connection handle. A handle created by the client is
// dropped; a supplied one only has its idle connections closed.
func (c *AsyncClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.httpClient == nil {
		return nil
	}

	c.httpClient.CloseIdleConnections()
	if c.owned {
		c.httpClient = nil
		c.owned = false
	}
	c.req.logger.Debug().Msg("Closed Cookie API connection")
	return nil
}

// Use sets up the connection, runs fn and always closes the connection
// afterwards.
func (c *AsyncClient) Use(ctx context.Context, fn func(ctx context.Context, client *AsyncClient) error) error {
	c.Setup()
	defer c.Close()

	return fn(ctx, c)
}

// Blocking returns a view of the client implementing API, where each call
// waits for its future.
func (c *AsyncClient) Blocking() API {
	return blockingClient{c: c}
}

// run resolves the handle on the calling goroutine and performs op in the
// future's goroutine
func run[T any](ctx context.Context, c *AsyncClient, op func(ctx context.Context, hc *http.Client) (T, error)) *mo.Future[T] {
	hc := c.Setup()
	return mo.NewFuture(func(resolve func(T), reject func(error)) {
		v, err := op(ctx, hc)
		if err != nil {
			reject(err)
			return
		}
		resolve(v)
	})
}

// GetUserStats retrieves the global stats of a user
func (c *AsyncClient) GetUserStats(ctx context.Context, userID int64) *mo.Future[*UserStats] {
	return run(ctx, c, func(ctx context.Context, hc *http.Client) (*UserStats, error) {
		return c.req.userStats(ctx, hc, userID)
	})
}

// GetMemberStats retrieves the level stats of a user within a guild
func (c *AsyncClient) GetMemberStats(ctx context.Context, userID, guildID int64) *mo.Future[*MemberStats] {
	return run(ctx, c, func(ctx context.Context, hc *http.Client) (*MemberStats, error) {
		return c.req.memberStats(ctx, hc, userID, guildID)
	})
}

// GetGuildStats retrieves the member count history of a guild
func (c *AsyncClient) GetGuildStats(ctx context.Context, guildID int64, days int) *mo.Future[*GuildStats] {
	return run(ctx, c, func(ctx context.Context, hc *http.Client) (*GuildStats, error) {
		return c.req.guildStats(ctx, hc, guildID, days)
	})
}

// GetMemberActivity retrieves the activity of a member
func (c *AsyncClient) GetMemberActivity(ctx context.Context, userID, guildID int64, days int) *mo.Future[*MemberActivity] {
	return run(ctx, c, func(ctx context.Context, hc *http.Client) (*MemberActivity, error) {
		return c.req.memberActivity(ctx, hc, userID, guildID, days)
	})
}

// GetGuildActivity retrieves the activity of a guild
func (c *AsyncClient) GetGuildActivity(ctx context.Context, guildID int64, days int) *mo.Future[*GuildActivity] {
	return run(ctx, c, func(ctx context.Context, hc *http.Client) (*GuildActivity, error) {
		return c.req.guildActivity(ctx, hc, guildID, days)
	})
}

// GetGuildImage retrieves the activity image of a guild as raw bytes
func (c *AsyncClient) GetGuildImage(ctx context.Context, guildID int64, days int) *mo.Future[[]byte] {
	return run(ctx, c, func(ctx context.Context, hc *http.Client) ([]byte, error) {
		return c.req.guildImage(ctx, hc, guildID, days)
	})
}

// GetMemberImage retrieves the activity image of a member as raw bytes
func (c *AsyncClient) GetMemberImage(ctx context.Context, userID, guildID int64, days int) *mo.Future[[]byte] {
	return run(ctx, c, func(ctx context.Context, hc *http.Client) ([]byte, error) {
		return c.req.memberImage(ctx, hc, userID, guildID, days)
	})
}

// GetMemberCount retrieves the number of members of a guild per day
func (c *AsyncClient) GetMemberCount(ctx context.Context, guildID int64, days int) *mo.Future[*DateSeries] {
	return run(ctx, c, func(ctx context.Context, hc *http.Client) (*DateSeries, error) {
		return c.req.memberCount(ctx, hc, guildID, days)
	})
}

// blockingClient adapts AsyncClient to API
type blockingClient struct {
	c *AsyncClient
}

func (b blockingClient) GetUserStats(ctx context.Context, userID int64) (*UserStats, error) {
	return b.c.GetUserStats(ctx, userID).Collect()
}

func (b blockingClient) GetMemberStats(ctx context.Context, userID, guildID int64) (*MemberStats, error) {
	return b.c.GetMemberStats(ctx, userID, guildID).Collect()
}

func (b blockingClient) GetGuildStats(ctx context.Context, guildID int64, days int) (*GuildStats, error) {
	return b.c.GetGuildStats(ctx, guildID, days).Collect()
}

func (b blockingClient) GetMemberActivity(ctx context.Context, userID, guildID int64, days int) (*MemberActivity, error) {
	return b.c.GetMemberActivity(ctx, userID, guildID, days).Collect()
}

func (b blockingClient) GetGuildActivity(ctx context.Context, guildID int64, days int) (*GuildActivity, error) {
	return b.c.GetGuildActivity(ctx, guildID, days).Collect()
}

func (b blockingClient) GetGuildImage(ctx context.Context, guildID int64, days int) ([]byte, error) {
	return b.c.GetGuildImage(ctx, guildID, days).Collect()
}

func (b blockingClient) GetMemberImage(ctx context.Context, userID, guildID int64, days int) ([]byte, error) {
	return b.c.GetMemberImage(ctx, userID, guildID, days).Collect()
}

func (b blockingClient) GetMemberCount(ctx context.Context, guildID int64, days int) (*DateSeries, error) {
	return b.c.GetMemberCount(ctx, guildID, days).Collect()
}
