package cmd

import (
	"github.com/spf13/cobra"
)

// userCmd shows the global stats of a user
var userCmd = &cobra.Command{
	Use:   "user <user_id>",
	Short: "Show the global stats of a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUser,
}

// memberCmd shows the level stats of a user within a guild
var memberCmd = &cobra.Command{
	Use:   "member <user_id> <guild_id>",
	Short: "Show the level stats of a guild member",
	Args:  cobra.ExactArgs(2),
	RunE:  runMember,
}

// guildCmd shows the member count history of a guild
var guildCmd = &cobra.Command{
	Use:   "guild <guild_id>",
	Short: "Show the member count history of a guild",
	Args:  cobra.ExactArgs(1),
	RunE:  runGuild,
}

// memberCountCmd prints the raw member count per day
var memberCountCmd = &cobra.Command{
	Use:   "member-count <guild_id>",
	Short: "Show the number of guild members per day",
	Args:  cobra.ExactArgs(1),
	RunE:  runMemberCount,
}

func init() {
	addDaysFlag(guildCmd)
	addDaysFlag(memberCountCmd)
	memberCountCmd.Flags().BoolVar(&showChart, "chart", false, "plot the member count")

	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(memberCmd)
	rootCmd.AddCommand(guildCmd)
	rootCmd.AddCommand(memberCountCmd)
}

func runUser(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args, "user ID")
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	stats, err := client.GetUserStats(cmd.Context(), ids[0])
	if err != nil {
		return handleAPIError(cmd, err)
	}

	output(cmd, formatter.UserStats(stats))
	return nil
}

func runMember(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args, "user ID", "guild ID")
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	stats, err := client.GetMemberStats(cmd.Context(), ids[0], ids[1])
	if err != nil {
		return handleAPIError(cmd, err)
	}

	output(cmd, formatter.MemberStats(stats))
	return nil
}

func runGuild(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args, "guild ID")
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	stats, err := client.GetGuildStats(cmd.Context(), ids[0], days)
	if err != nil {
		return handleAPIError(cmd, err)
	}

	output(cmd, formatter.GuildStats(stats))
	return nil
}

func runMemberCount(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args, "guild ID")
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	series, err := client.GetMemberCount(cmd.Context(), ids[0], days)
	if err != nil {
		return handleAPIError(cmd, err)
	}

	if showChart {
		output(cmd, formatter.Chart("members per day", series))
		return nil
	}
	output(cmd, formatter.Series("Members per day", series))
	return nil
}
