package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cookie/cookie"
)

// activityCmd groups the activity commands
var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show message and voice activity",
	Long: `Show message and voice activity of a member or a guild.

Days can be narrowed with --filter, taking either the name of a filter from
the config file or an expression such as:

  Count > 100
  Weekday in ["Sat", "Sun"]
  Date >= daysAgo(7) && Count == 0`,
}

var activityMemberCmd = &cobra.Command{
	Use:   "member <user_id> <guild_id>",
	Short: "Show the activity of a guild member",
	Args:  cobra.ExactArgs(2),
	RunE:  runActivityMember,
}

var activityGuildCmd = &cobra.Command{
	Use:   "guild <guild_id>",
	Short: "Show the activity of a guild",
	Args:  cobra.ExactArgs(1),
	RunE:  runActivityGuild,
}

func init() {
	for _, c := range []*cobra.Command{activityMemberCmd, activityGuildCmd} {
		addDaysFlag(c)
		c.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter name or expression selecting days")
		c.Flags().BoolVar(&showTable, "table", false, "print day tables instead of a chart")
		activityCmd.AddCommand(c)
	}

	rootCmd.AddCommand(activityCmd)
}

func runActivityMember(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args, "user ID", "guild ID")
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	activity, err := client.GetMemberActivity(cmd.Context(), ids[0], ids[1], days)
	if err != nil {
		return handleAPIError(cmd, err)
	}

	if filterExpr == "" && !showTable {
		output(cmd, formatter.MemberActivity(activity))
		return nil
	}
	return printSeries(cmd, &activity.MsgActivity, &activity.VoiceActivity)
}

func runActivityGuild(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args, "guild ID")
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	activity, err := client.GetGuildActivity(cmd.Context(), ids[0], days)
	if err != nil {
		return handleAPIError(cmd, err)
	}

	if filterExpr == "" && !showTable {
		output(cmd, formatter.GuildActivity(activity))
		return nil
	}
	return printSeries(cmd, &activity.MsgActivity, &activity.VoiceActivity)
}

// printSeries prints the message and voice series, narrowed by --filter
func printSeries(cmd *cobra.Command, msgs, voice *cookie.DateSeries) error {
	if filterExpr != "" {
		f, err := filters.Resolve(filterExpr)
		if err != nil {
			return fmt.Errorf("invalid filter: %w", err)
		}
		logger.Debug().Str("filter", f.Expression()).Msg("Filtering days")

		if msgs, err = f.Apply(msgs); err != nil {
			return err
		}
		if voice, err = f.Apply(voice); err != nil {
			return err
		}
	}

	if !showTable {
		output(cmd, formatter.Chart("messages / voice minutes per day", msgs, voice))
		return nil
	}

	output(cmd, formatter.Series("Messages per day", msgs))
	fmt.Fprintln(cmd.OutOrStdout())
	output(cmd, formatter.Series("Voice minutes per day", voice))
	return nil
}
