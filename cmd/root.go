package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/s0up4200/cookie/auth"
	"github.com/s0up4200/cookie/config"
	"github.com/s0up4200/cookie/cookie"
	"github.com/s0up4200/cookie/filter"
	"github.com/s0up4200/cookie/render"
)

var (
	cfgFile   string
	cfg       *config.Config
	logger    zerolog.Logger
	formatter *render.Formatter
	filters   *filter.Manager

	// fs is where files such as activity images are written
	fs afero.Fs = afero.NewOsFs()

	// Command flags
	apiKey     string
	days       int
	filterExpr string
	showChart  bool
	showTable  bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cookie",
	Short: "Query guild and member statistics from the Cookie API",
	Long: `cookie is a CLI for the Cookie statistics API. It shows user, member
and guild stats, charts daily message and voice activity, downloads activity
images and archives history in a local SQLite database.

The API key is taken from --key, the config file, the COOKIE_KEY environment
variable (also read from a .env file) or the system keyring, in that order.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or ~/.cookie/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&apiKey, "key", "k", "", "Cookie API key")
}

// initializeApp loads the configuration and sets up logging and output
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	tty := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())

	logging := cfg.Logging
	logging.Color = logging.Color && tty
	logger = setupLogger(logging)

	formatter = render.New(render.Options{
		ChartHeight: cfg.Output.ChartHeight,
		ChartWidth:  cfg.Output.ChartWidth,
		Color:       cfg.Output.Color && tty,
	})

	filters = filter.NewManager()
	if err := filters.RegisterFilters(cfg.Filter); err != nil {
		return fmt.Errorf("invalid filter in config: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// resolveAPIKey picks the key from the flag, the config (which includes
// COOKIE_KEY) or the keyring. An empty result lets the client report the
// missing key.
func resolveAPIKey() string {
	if apiKey != "" {
		return apiKey
	}
	if cfg.Cookie.APIKey != "" {
		return cfg.Cookie.APIKey
	}

	key, err := auth.GetAPIKey()
	if err != nil {
		if !errors.Is(err, auth.ErrNoAPIKey) {
			logger.Debug().Err(err).Msg("Keyring unavailable")
		}
		return ""
	}
	return key
}

func clientOptions() []cookie.Option {
	return []cookie.Option{
		cookie.WithBaseURL(cfg.Cookie.BaseURL),
		cookie.WithTimeout(cfg.Cookie.Timeout),
		cookie.WithUserAgent(userAgent()),
	}
}

func userAgent() string {
	if cfg.Cookie.UserAgent != "" {
		return cfg.Cookie.UserAgent
	}
	return "cookie-cli/" + appVersion
}

// newClient creates the blocking client
func newClient() (*cookie.Client, error) {
	client, err := cookie.NewClient(resolveAPIKey(), logger, clientOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Cookie client: %w", err)
	}
	return client, nil
}

// newAsyncClient creates the asynchronous client
func newAsyncClient() (*cookie.AsyncClient, error) {
	client, err := cookie.NewAsyncClient(resolveAPIKey(), logger, clientOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Cookie client: %w", err)
	}
	return client, nil
}

// parseIDs parses Discord snowflake arguments
func parseIDs(args []string, names ...string) ([]int64, error) {
	ids := make([]int64, len(args))
	for i, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid %s: %q", names[i], arg)
		}
		ids[i] = id
	}
	return ids, nil
}

// handleAPIError turns not-found errors into a notice so a missing user or
// guild is reported rather than failing the command
func handleAPIError(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, cookie.ErrNotFound) {
		fmt.Fprintf(cmd.OutOrStdout(), "No data available: %v\n", err)
		return nil
	}
	return err
}

// output prints a rendered block followed by a newline
func output(cmd *cobra.Command, s string) {
	fmt.Fprintln(cmd.OutOrStdout(), s)
}

func addDaysFlag(cmd *cobra.Command) {
	cmd.Flags().IntVar(&days, "days", cookie.DefaultDays, "number of days to look back")
}
