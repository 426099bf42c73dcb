package cookie

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// requester builds and sends authenticated requests. It holds no
// connection; the caller passes the HTTP client to use, which is the only
// difference between the sync and async clients.
type requester struct {
	baseURL   string
	apiKey    string
	userAgent string
	logger    zerolog.Logger
}

func newRequester(apiKey string, logger zerolog.Logger, o clientOptions) *requester {
	return &requester{
		// Ensure baseURL has exactly one trailing slash
		baseURL:   strings.TrimRight(o.baseURL, "/") + "/",
		apiKey:    apiKey,
		userAgent: o.userAgent,
		logger:    logger,
	}
}

// get performs one GET against the endpoint and reads the whole body
func (r *requester) get(ctx context.Context, hc *http.Client, endpoint string) (*Response, error) {
	url := r.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrCookie, err)
	}

	req.Header.Set("key", r.apiKey)
	req.Header.Set("accept", "application/json")
	if r.userAgent != "" {
		req.Header.Set("user-agent", r.userAgent)
	}

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request to %s failed: %w", ErrCookie, url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrCookie, err)
	}

	r.logger.Debug().
		Str("method", http.MethodGet).
		Str("url", url).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Cookie API request")

	return &Response{
		StatusCode: resp.StatusCode,
		URL:        url,
		Body:       body,
	}, nil
}

// fetchJSON performs the request and decodes a successful body into a T
func fetchJSON[T any](ctx context.Context, r *requester, hc *http.Client, endpoint string) (*T, error) {
	resp, err := r.get(ctx, hc, endpoint)
	if err != nil {
		return nil, err
	}

	var v T
	if err := resp.Decode(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

// fetchBytes performs the request and returns a successful body unparsed
func (r *requester) fetchBytes(ctx context.Context, hc *http.Client, endpoint string) ([]byte, error) {
	resp, err := r.get(ctx, hc, endpoint)
	if err != nil {
		return nil, err
	}
	return resp.Bytes()
}

// The operations below are shared by Client and AsyncClient. Request
// parameters fill identifying fields the response leaves out.

func (r *requester) userStats(ctx context.Context, hc *http.Client, userID int64) (*UserStats, error) {
	stats, err := fetchJSON[UserStats](ctx, r, hc, userStatsPath(userID))
	if err != nil {
		return nil, err
	}
	if stats.UserID == 0 {
		stats.UserID = userID
	}
	return stats, nil
}

func (r *requester) memberStats(ctx context.Context, hc *http.Client, userID, guildID int64) (*MemberStats, error) {
	stats, err := fetchJSON[MemberStats](ctx, r, hc, memberStatsPath(userID, guildID))
	if err != nil {
		return nil, err
	}
	if stats.UserID == 0 {
		stats.UserID = userID
	}
	if stats.GuildID == 0 {
		stats.GuildID = guildID
	}
	return stats, nil
}

func (r *requester) guildStats(ctx context.Context, hc *http.Client, guildID int64, n int) (*GuildStats, error) {
	n = NormalizeDays(n)
	stats, err := fetchJSON[GuildStats](ctx, r, hc, guildStatsPath(guildID, n))
	if err != nil {
		return nil, err
	}
	if stats.GuildID == 0 {
		stats.GuildID = guildID
	}
	if stats.Days == 0 {
		stats.Days = int64(n)
	}
	return stats, nil
}

func (r *requester) memberActivity(ctx context.Context, hc *http.Client, userID, guildID int64, n int) (*MemberActivity, error) {
	n = NormalizeDays(n)
	activity, err := fetchJSON[MemberActivity](ctx, r, hc, memberActivityPath(userID, guildID, n))
	if err != nil {
		return nil, err
	}
	if activity.UserID == 0 {
		activity.UserID = userID
	}
	if activity.GuildID == 0 {
		activity.GuildID = guildID
	}
	if activity.Days == 0 {
		activity.Days = int64(n)
	}
	return activity, nil
}

func (r *requester) guildActivity(ctx context.Context, hc *http.Client, guildID int64, n int) (*GuildActivity, error) {
	n = NormalizeDays(n)
	activity, err := fetchJSON[GuildActivity](ctx, r, hc, guildActivityPath(guildID, n))
	if err != nil {
		return nil, err
	}
	if activity.GuildID == 0 {
		activity.GuildID = guildID
	}
	if activity.Days == 0 {
		activity.Days = int64(n)
	}
	return activity, nil
}

func (r *requester) guildImage(ctx context.Context, hc *http.Client, guildID int64, n int) ([]byte, error) {
	return r.fetchBytes(ctx, hc, guildImagePath(guildID, NormalizeDays(n)))
}

func (r *requester) memberImage(ctx context.Context, hc *http.Client, userID, guildID int64, n int) ([]byte, error) {
	return r.fetchBytes(ctx, hc, memberImagePath(userID, guildID, NormalizeDays(n)))
}

func (r *requester) memberCount(ctx context.Context, hc *http.Client, guildID int64, n int) (*DateSeries, error) {
	return fetchJSON[DateSeries](ctx, r, hc, memberCountPath(guildID, NormalizeDays(n)))
}
