package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cookie/cookie"
)

// reportCmd fetches everything known about a member in one go
var reportCmd = &cobra.Command{
	Use:   "report <user_id> <guild_id>",
	Short: "Show user stats, member stats and activity of a member",
	Long: `Show the global stats, the level stats and the activity of a guild member.
The three requests run concurrently over one connection.`,
	Args: cobra.ExactArgs(2),
	RunE: runReport,
}

func init() {
	addDaysFlag(reportCmd)
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args, "user ID", "guild ID")
	if err != nil {
		return err
	}
	userID, guildID := ids[0], ids[1]

	client, err := newAsyncClient()
	if err != nil {
		return err
	}

	err = client.Use(cmd.Context(), func(ctx context.Context, client *cookie.AsyncClient) error {
		user := client.GetUserStats(ctx, userID)
		member := client.GetMemberStats(ctx, userID, guildID)
		activity := client.GetMemberActivity(ctx, userID, guildID, days)

		userStats, err := user.Collect()
		if err != nil {
			return err
		}
		memberStats, err := member.Collect()
		if err != nil {
			return err
		}
		memberActivity, err := activity.Collect()
		if err != nil {
			return err
		}

		output(cmd, formatter.UserStats(userStats))
		fmt.Fprintln(cmd.OutOrStdout())
		output(cmd, formatter.MemberStats(memberStats))
		fmt.Fprintln(cmd.OutOrStdout())
		output(cmd, formatter.MemberActivity(memberActivity))
		return nil
	})

	return handleAPIError(cmd, err)
}
