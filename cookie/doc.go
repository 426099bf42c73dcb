// Package cookie provides a client for the Cookie statistics API.
//
// The Cookie API serves leveling and activity statistics of users, guild
// members and guilds. This package maps its JSON and image responses onto
// typed values and its HTTP status codes onto a small error hierarchy.
//
// # Architecture
//
//   - Client: blocking client, one HTTP round trip per call
//   - AsyncClient: the same operations returning futures, with a lazily
//     created connection handle and explicit Setup/Close/Use lifecycle
//   - Response: the interpreter turning a status code and body into a
//     decoded value or a classified error
//   - DateSeries: insertion-ordered daily counts decoded from
//     {"YYYY-MM-DD": n} objects
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := cookie.NewClient("", logger) // reads COOKIE_KEY
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	activity, err := client.GetGuildActivity(ctx, guildID, cookie.DefaultDays)
//
// The asynchronous client is used as a scoped resource:
//
//	api, err := cookie.NewAsyncClient(key, logger)
//	err = api.Use(ctx, func(ctx context.Context, api *cookie.AsyncClient) error {
//		stats := api.GetMemberStats(ctx, userID, guildID)
//		activity := api.GetMemberActivity(ctx, userID, guildID, 30)
//		if _, err := stats.Collect(); err != nil {
//			return err
//		}
//		_, err := activity.Collect()
//		return err
//	})
//
// # Error Handling
//
// Errors form a chain that errors.Is walks:
//
//   - ErrCookie: any client error, including unclassified statuses
//   - ErrInvalidAPIKey: missing key (at construction) or a 401
//   - ErrQuotaExceeded: a 401 whose detail.status is "quota_exceeded"
//   - ErrNoGuildAccess: a 403
//   - ErrNotFound: a 404, refined to ErrUserNotFound or ErrGuildNotFound
//     from its message
//
// The 404 refinement lower-cases the message and looks for "user" or
// "member" first, then "guild". The API documents no other way to tell the
// cases apart, so the token list is part of the contract.
//
// Responses carry details in *APIError:
//
//	var apiErr *cookie.APIError
//	if errors.As(err, &apiErr) {
//		fmt.Println(apiErr.StatusCode, apiErr.URL, apiErr.Body)
//	}
package cookie
