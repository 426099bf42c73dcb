package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/s0up4200/cookie/cookie"
)

var imageOutput string

// imageCmd groups the activity image downloads
var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Download rendered activity images",
}

var imageGuildCmd = &cobra.Command{
	Use:   "guild <guild_id>",
	Short: "Download the activity image of a guild",
	Args:  cobra.ExactArgs(1),
	RunE:  runImageGuild,
}

var imageMemberCmd = &cobra.Command{
	Use:   "member <user_id> <guild_id>",
	Short: "Download the activity image of a guild member",
	Args:  cobra.ExactArgs(2),
	RunE:  runImageMember,
}

func init() {
	for _, c := range []*cobra.Command{imageGuildCmd, imageMemberCmd} {
		addDaysFlag(c)
		c.Flags().StringVarP(&imageOutput, "output", "o", "", "file to write the image to (default <kind>-<ids>-<days>d.png)")
		imageCmd.AddCommand(c)
	}

	rootCmd.AddCommand(imageCmd)
}

func runImageGuild(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args, "guild ID")
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	img, err := client.GetGuildImage(cmd.Context(), ids[0], days)
	if err != nil {
		return handleAPIError(cmd, err)
	}

	return writeImage(cmd, fmt.Sprintf("guild-%d-%dd.png", ids[0], cookie.NormalizeDays(days)), img)
}

func runImageMember(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args, "user ID", "guild ID")
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	img, err := client.GetMemberImage(cmd.Context(), ids[0], ids[1], days)
	if err != nil {
		return handleAPIError(cmd, err)
	}

	return writeImage(cmd, fmt.Sprintf("member-%d-%d-%dd.png", ids[0], ids[1], cookie.NormalizeDays(days)), img)
}

// writeImage writes img to --output, or to defaultName when no output is
// given
func writeImage(cmd *cobra.Command, defaultName string, img []byte) error {
	path := imageOutput
	if path == "" {
		path = defaultName
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := afero.WriteFile(fs, path, img, 0o644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}

	logger.Debug().Str("path", path).Int("bytes", len(img)).Msg("Wrote activity image")
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d bytes)\n", path, len(img))
	return nil
}
