package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/yfantasy/auth"
	"github.com/s0up4200/yfantasy/config"
	"github.com/s0up4200/yfantasy/models"
	"github.com/s0up4200/yfantasy/query"
	"github.com/s0up4200/yfantasy/yahoo"
)

var (
	cfgFile     string
	cfg         *config.Config
	logger      zerolog.Logger
	authService *auth.Service
	client      *yahoo.Client
	api         *query.API

	// Command flags
	outputFormat string
	leagueID     int
	gameCode     string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "yfantasy",
	Short: "Query Yahoo Fantasy Sports leagues from the command line",
	Long: `yfantasy reads games, leagues, teams and players from the Yahoo Fantasy
Sports API. Run "yfantasy auth" once to authorize access; tokens are cached
and refreshed automatically.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", formatTable, "output format (table|json)")
	rootCmd.PersistentFlags().IntVarP(&leagueID, "league", "l", 0, "league id (overrides yahoo.league_id)")
	rootCmd.PersistentFlags().StringVarP(&gameCode, "game", "g", "", "game code (overrides yahoo.game_code)")
}

// initializeApp loads configuration and wires the auth service, transport
// and query builder.
func initializeApp(cmd *cobra.Command, args []string) error {
	if outputFormat != formatTable && outputFormat != formatJSON {
		return fmt.Errorf("invalid output format: %s (must be '%s' or '%s')", outputFormat, formatTable, formatJSON)
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)
	models.SetLogger(logger.With().Str("component", "models").Logger())

	if cmd.Flags().Changed("league") {
		cfg.Yahoo.LeagueID = leagueID
	}
	if cmd.Flags().Changed("game") {
		cfg.Yahoo.GameCode = gameCode
	}

	authService, err = auth.NewService(auth.Config{
		ClientID:     cfg.Yahoo.ClientID,
		ClientSecret: cfg.Yahoo.ClientSecret,
		TokenFile:    cfg.Yahoo.TokenFile,
		In:           os.Stdin,
		Out:          os.Stderr,
	}, logger.With().Str("component", "auth").Logger())
	if err != nil {
		return fmt.Errorf("failed to create auth service: %w", err)
	}

	client, err = yahoo.NewClient(authService, logger.With().Str("component", "yahoo").Logger(),
		yahoo.WithBaseURL(cfg.Client.BaseURL),
		yahoo.WithTimeout(cfg.Client.Timeout),
		yahoo.WithRequestDelay(cfg.Client.RequestDelay),
		yahoo.WithRefreshMargin(cfg.Client.RefreshMargin),
		yahoo.WithUserAgent("yfantasy/"+version),
	)
	if err != nil {
		return fmt.Errorf("failed to create fantasy client: %w", err)
	}

	api = query.New(client, cfg.Yahoo.GameCode, cfg.Yahoo.LeagueID)
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
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

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// authorizedContext returns the command context after making sure tokens
// exist, prompting for authorization on first use.
func authorizedContext(cmd *cobra.Command) (context.Context, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := authService.EnsureAuthorized(ctx); err != nil {
		return nil, err
	}
	return ctx, nil
}

// requireLeague fails when no league id is configured
func requireLeague() error {
	if cfg.Yahoo.LeagueID == 0 {
		return fmt.Errorf("no league configured: set yahoo.league_id or pass --league")
	}
	return nil
}
