package cmd

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/cookie/cookie"
	"github.com/s0up4200/cookie/store"
)

// maxConcurrentFetches bounds the requests export runs at once
const maxConcurrentFetches = 4

var exportUsers []int64

// exportCmd archives activity history in the local store
var exportCmd = &cobra.Command{
	Use:   "export <guild_id>",
	Short: "Archive guild and member activity in the local store",
	Long: `Fetch the message and voice activity and the member count of a guild, and
optionally the activity of selected members, and archive the daily values in
the SQLite store. Days already archived are overwritten with the new values.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

// historyCmd prints archived series
var historyCmd = &cobra.Command{
	Use:   "history <guild_id>",
	Short: "Show activity archived with export",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

var historyUser int64

func init() {
	addDaysFlag(exportCmd)
	exportCmd.Flags().Int64SliceVarP(&exportUsers, "user", "u", nil, "also archive the activity of these members")

	historyCmd.Flags().Int64VarP(&historyUser, "user", "u", 0, "show the history of a member instead of the guild")
	historyCmd.Flags().BoolVar(&showChart, "chart", false, "plot the history")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(historyCmd)
}

// archived is one fetched series waiting to be stored
type archived struct {
	key    store.Key
	series *cookie.DateSeries
}

func runExport(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args, "guild ID")
	if err != nil {
		return err
	}
	guildID := ids[0]

	client, err := newClient()
	if err != nil {
		return err
	}

	results, err := fetchForExport(cmd.Context(), client, guildID, exportUsers)
	if err != nil {
		return handleAPIError(cmd, err)
	}

	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, r := range results {
		n, err := db.SaveSeries(cmd.Context(), r.key, r.series)
		if err != nil {
			return err
		}
		logger.Info().
			Int64("guild_id", r.key.GuildID).
			Int64("user_id", r.key.UserID).
			Str("kind", string(r.key.Kind)).
			Int("days", n).
			Msg("Archived series")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Archived %d series to %s\n", len(results), db.Path())
	return nil
}

// fetchForExport fetches the guild series and the series of every user
// concurrently. The first error cancels the remaining requests.
func fetchForExport(ctx context.Context, client cookie.API, guildID int64, users []int64) ([]archived, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	// Use mutex to protect concurrent appends
	var mu sync.Mutex
	var results []archived
	add := func(items ...archived) {
		mu.Lock()
		results = append(results, items...)
		mu.Unlock()
	}

	g.Go(func() error {
		activity, err := client.GetGuildActivity(ctx, guildID, days)
		if err != nil {
			return fmt.Errorf("guild activity: %w", err)
		}
		add(
			archived{store.Key{GuildID: guildID, Kind: store.KindMessages}, &activity.MsgActivity},
			archived{store.Key{GuildID: guildID, Kind: store.KindVoice}, &activity.VoiceActivity},
		)
		return nil
	})

	g.Go(func() error {
		members, err := client.GetMemberCount(ctx, guildID, days)
		if err != nil {
			return fmt.Errorf("member count: %w", err)
		}
		add(archived{store.Key{GuildID: guildID, Kind: store.KindMembers}, members})
		return nil
	})

	for _, userID := range users {
		g.Go(func() error {
			activity, err := client.GetMemberActivity(ctx, userID, guildID, days)
			if err != nil {
				return fmt.Errorf("activity of member %d: %w", userID, err)
			}
			add(
				archived{store.Key{GuildID: guildID, UserID: userID, Kind: store.KindMessages}, &activity.MsgActivity},
				archived{store.Key{GuildID: guildID, UserID: userID, Kind: store.KindVoice}, &activity.VoiceActivity},
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args, "guild ID")
	if err != nil {
		return err
	}
	guildID := ids[0]

	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	keys, err := db.Kinds(cmd.Context(), guildID)
	if err != nil {
		return err
	}

	printed := 0
	for _, key := range keys {
		if key.UserID != historyUser {
			continue
		}

		series, err := db.LoadSeries(cmd.Context(), key)
		if err != nil {
			return err
		}

		if printed > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		if showChart {
			output(cmd, formatter.Chart(string(key.Kind), series))
		} else {
			output(cmd, formatter.Series(string(key.Kind), series))
		}
		printed++
	}

	if printed == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No archived history for guild %d\n", guildID)
	}
	return nil
}
