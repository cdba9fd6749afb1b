package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/s0up4200/yfantasy/models"
	"github.com/s0up4200/yfantasy/query"
)

var (
	gamesAvailable bool
	gamesCodes     []string
	gamesSeasons   []int
)

var gameCmd = &cobra.Command{
	Use:   "game",
	Short: "Show the configured game",
	Args:  cobra.NoArgs,
	RunE:  gameRunner(func(q query.GameQuery) query.Terminal[*models.Game] { return q.Meta() }),
}

var gameWeeksCmd = &cobra.Command{
	Use:   "weeks",
	Short: "List the scoring weeks of the game",
	Args:  cobra.NoArgs,
	RunE:  gameRunner(func(q query.GameQuery) query.Terminal[*models.Game] { return q.GameWeeks() }),
}

var gamePositionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "List the position types of the game",
	Args:  cobra.NoArgs,
	RunE:  gameRunner(func(q query.GameQuery) query.Terminal[*models.Game] { return q.PositionTypes() }),
}

var gameRosterPositionsCmd = &cobra.Command{
	Use:   "roster-positions",
	Short: "List the roster positions of the game",
	Args:  cobra.NoArgs,
	RunE:  gameRunner(func(q query.GameQuery) query.Terminal[*models.Game] { return q.RosterPositions() }),
}

var gameStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "List the stat categories of the game",
	Args:  cobra.NoArgs,
	RunE:  gameRunner(func(q query.GameQuery) query.Terminal[*models.Game] { return q.StatCategories() }),
}

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List games, optionally filtered",
	Args:  cobra.NoArgs,
	RunE:  runGames,
}

func init() {
	rootCmd.AddCommand(gameCmd, gamesCmd)
	gameCmd.AddCommand(gameWeeksCmd, gamePositionsCmd, gameRosterPositionsCmd, gameStatsCmd)

	gamesCmd.Flags().BoolVar(&gamesAvailable, "available", false, "only games currently available")
	gamesCmd.Flags().StringSliceVar(&gamesCodes, "codes", nil, "game codes, e.g. nhl,nfl")
	gamesCmd.Flags().IntSliceVar(&gamesSeasons, "seasons", nil, "seasons, e.g. 2020,2021")
}

func gameRunner(build func(query.GameQuery) query.Terminal[*models.Game]) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, err := authorizedContext(cmd)
		if err != nil {
			return err
		}
		game, err := build(api.Game()).Get(ctx)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), outputFormat, game, func(w io.Writer) { formatGame(w, game) })
	}
}

func runGames(cmd *cobra.Command, args []string) error {
	ctx, err := authorizedContext(cmd)
	if err != nil {
		return err
	}

	filter := query.GamesFilter{GameCodes: gamesCodes, Seasons: gamesSeasons}
	if cmd.Flags().Changed("available") {
		filter.IsAvailable = &gamesAvailable
	}

	games, err := api.Games().Get(ctx, filter)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), outputFormat, games, func(w io.Writer) { formatGames(w, games) })
}
