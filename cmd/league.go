package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/s0up4200/yfantasy/filter"
	"github.com/s0up4200/yfantasy/models"
	"github.com/s0up4200/yfantasy/query"
)

var (
	scoreboardWeek int
	draftPlayers   bool

	playersOpts query.PlayersOptions
	playersWith string
	filterExpr  string
	listPresets bool

	statsCoverage query.Coverage

	txOpts query.TransactionsOptions

	rosterConcurrency int
)

var leagueCmd = &cobra.Command{
	Use:   "league",
	Short: "Show the configured league",
	Args:  cobra.NoArgs,
	RunE:  leagueRunner(func(q query.LeagueQuery) (query.Terminal[*models.League], error) { return q.Meta(), nil }, formatLeague),
}

var leagueMetaCmd = &cobra.Command{
	Use:   "meta",
	Short: "Show league metadata",
	Args:  cobra.NoArgs,
	RunE:  leagueCmd.RunE,
}

var leagueSettingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show league settings",
	Args:  cobra.NoArgs,
	RunE: leagueRunner(func(q query.LeagueQuery) (query.Terminal[*models.League], error) {
		return q.Settings(), nil
	}, func(w io.Writer, l *models.League) { formatSettings(w, l.Settings) }),
}

var leagueStandingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show league standings",
	Args:  cobra.NoArgs,
	RunE: leagueRunner(func(q query.LeagueQuery) (query.Terminal[*models.League], error) {
		return q.Standings(), nil
	}, func(w io.Writer, l *models.League) { formatStandings(w, l.Standings) }),
}

var leagueTeamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List league teams",
	Args:  cobra.NoArgs,
	RunE: leagueRunner(func(q query.LeagueQuery) (query.Terminal[*models.League], error) {
		return q.Teams(), nil
	}, func(w io.Writer, l *models.League) { formatTeams(w, l.Teams) }),
}

var leagueScoreboardCmd = &cobra.Command{
	Use:   "scoreboard",
	Short: "Show the matchups of a week",
	Args:  cobra.NoArgs,
	RunE: leagueRunner(func(q query.LeagueQuery) (query.Terminal[*models.League], error) {
		return q.Scoreboard(scoreboardWeek), nil
	}, func(w io.Writer, l *models.League) { formatMatchups(w, l.Matchups) }),
}

var leagueDraftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Show the draft results",
	Args:  cobra.NoArgs,
	RunE: leagueRunner(func(q query.LeagueQuery) (query.Terminal[*models.League], error) {
		if draftPlayers {
			return q.DraftResults().Players(), nil
		}
		return q.DraftResults().Terminal(), nil
	}, func(w io.Writer, l *models.League) { formatDraftResults(w, l.DraftResults) }),
}

var leagueTransactionsCmd = &cobra.Command{
	Use:   "transactions",
	Short: "List league transactions",
	Args:  cobra.NoArgs,
	RunE: leagueRunner(func(q query.LeagueQuery) (query.Terminal[*models.League], error) {
		return q.Transactions(txOpts)
	}, func(w io.Writer, l *models.League) { formatTransactions(w, l.Transactions) }),
}

var leaguePlayersCmd = &cobra.Command{
	Use:   "players",
	Short: "List league players, optionally filtered",
	Long: `List players of the league collection. Use --with to request a sub-resource
and --filter to narrow the page with an expression or a configured preset:

  yfantasy league players --status FA --with percent_owned --filter 'hasPosition("C") && PercentOwned > 10'`,
	Args: cobra.NoArgs,
	RunE: runLeaguePlayers,
}

var leagueRostersCmd = &cobra.Command{
	Use:   "rosters",
	Short: "Show the current roster of every team",
	Args:  cobra.NoArgs,
	RunE:  runLeagueRosters,
}

func init() {
	rootCmd.AddCommand(leagueCmd)
	leagueCmd.AddCommand(leagueMetaCmd, leagueSettingsCmd, leagueStandingsCmd, leagueTeamsCmd,
		leagueScoreboardCmd, leagueDraftCmd, leaguePlayersCmd, leagueTransactionsCmd, leagueRostersCmd)

	leagueScoreboardCmd.Flags().IntVarP(&scoreboardWeek, "week", "w", 0, "week (default is the current week)")
	leagueDraftCmd.Flags().BoolVar(&draftPlayers, "players", false, "include drafted player details")

	pf := leaguePlayersCmd.Flags()
	pf.IntVar(&playersOpts.Start, "start", 0, "offset into the players collection")
	pf.IntVar(&playersOpts.Count, "count", query.DefaultPlayersCount, "number of players")
	pf.StringVar(&playersOpts.Status, "status", "", "status filter (A|FA|W|T|K)")
	pf.StringVar(&playersOpts.Search, "search", "", "name search")
	pf.StringVar(&playersWith, "with", "", "sub-resource (ownership|percent_owned|draft_analysis|stats)")
	pf.StringVarP(&filterExpr, "filter", "f", "", "filter expression or preset name")
	pf.BoolVar(&listPresets, "presets", false, "list configured filter presets and exit")
	addCoverageFlags(leaguePlayersCmd)

	tf := leagueTransactionsCmd.Flags()
	tf.StringVar(&txOpts.Type, "type", "", "transaction type (add|drop|commish|trade|waiver|pending_trade)")
	tf.IntVar(&txOpts.TeamID, "team", 0, "team id, required for waiver and pending_trade")
	tf.IntVar(&txOpts.Count, "count", 0, "number of transactions")
	tf.IntVar(&txOpts.Start, "start", 0, "offset into the transactions collection")

	leagueRostersCmd.Flags().IntVar(&rosterConcurrency, "concurrency", query.DefaultRosterConcurrency, "teams decoded in parallel; requests are serialized by the client")
}

func addCoverageFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&statsCoverage.Date, "stats-date", "", "stats for a date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsCoverage.Season, "stats-season", 0, "stats for a season")
	cmd.Flags().IntVar(&statsCoverage.Week, "stats-week", 0, "stats for a week")
}

func leagueRunner(build func(query.LeagueQuery) (query.Terminal[*models.League], error), table func(io.Writer, *models.League)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := requireLeague(); err != nil {
			return err
		}
		terminal, err := build(api.League())
		if err != nil {
			return err
		}
		ctx, err := authorizedContext(cmd)
		if err != nil {
			return err
		}
		league, err := terminal.Get(ctx)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), outputFormat, league, func(w io.Writer) { table(w, league) })
	}
}

// playersTerminal picks the sub-resource requested with --with
func playersTerminal(q query.PlayersQuery, with string, coverage query.Coverage) (query.Terminal[*models.League], error) {
	switch with {
	case "":
		return q.Terminal(), nil
	case "ownership":
		return q.Ownership(), nil
	case "percent_owned":
		return q.PercentOwned(), nil
	case "draft_analysis":
		return q.DraftAnalysis(), nil
	case "stats":
		return q.Stats(coverage)
	default:
		return query.Terminal[*models.League]{}, fmt.Errorf("invalid --with value: %s", with)
	}
}

func newFilterManager() (*filter.Manager, error) {
	manager := filter.NewManager(filter.WithCompiler(
		filter.NewExprCompiler(filter.WithCache(100), filter.WithLogger(logger)),
	))
	if err := manager.RegisterFilters(cfg.Filter); err != nil {
		return nil, err
	}
	return manager, nil
}

func runLeaguePlayers(cmd *cobra.Command, args []string) error {
	manager, err := newFilterManager()
	if err != nil {
		return err
	}
	if listPresets {
		for _, name := range manager.ListFilters() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s\n", name, cfg.Filter[name])
		}
		return nil
	}

	if err := requireLeague(); err != nil {
		return err
	}
	terminal, err := playersTerminal(api.League().Players(playersOpts), playersWith, statsCoverage)
	if err != nil {
		return err
	}
	ctx, err := authorizedContext(cmd)
	if err != nil {
		return err
	}

	league, err := terminal.Get(ctx)
	if err != nil {
		return err
	}

	players := league.Players
	if filterExpr != "" {
		players, err = manager.Apply(ctx, filterExpr, players)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		logger.Debug().Str("filter", filterExpr).Int("matched", len(players)).Int("total", len(league.Players)).Msg("Filtered players")
	}

	return render(cmd.OutOrStdout(), outputFormat, players, func(w io.Writer) { formatPlayers(w, players) })
}

func runLeagueRosters(cmd *cobra.Command, args []string) error {
	if err := requireLeague(); err != nil {
		return err
	}
	ctx, err := authorizedContext(cmd)
	if err != nil {
		return err
	}

	league, err := api.League().Teams().Get(ctx)
	if err != nil {
		return err
	}
	ids := make([]int, 0, len(league.Teams))
	for _, t := range league.Teams {
		ids = append(ids, t.ID)
	}

	teams, err := query.TeamRosters(ctx, api, ids, rosterConcurrency)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), outputFormat, teams, func(w io.Writer) {
		for _, t := range teams {
			fmt.Fprintf(w, "\n%s\n", t.Name)
			formatPlayers(w, t.Players)
		}
	})
}
