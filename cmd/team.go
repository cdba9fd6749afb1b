package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/s0up4200/yfantasy/models"
	"github.com/s0up4200/yfantasy/query"
)

var (
	teamWeek int
	teamDate string
)

// teamResources are the resources accepted after the team id
var teamResources = []string{"meta", "roster", "standings", "stats", "matchups"}

var teamCmd = &cobra.Command{
	Use:   "team <id> [meta|roster|standings|stats|matchups]",
	Short: "Show a team of the configured league",
	Long: `Show a team by its id within the configured league. The optional second
argument selects a sub-resource; roster accepts --week or --date and the
--stats-* flags, matchups accepts --week.`,
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: teamResources,
	RunE:      runTeam,
}

func init() {
	rootCmd.AddCommand(teamCmd)

	teamCmd.Flags().IntVarP(&teamWeek, "week", "w", 0, "week for roster or matchups")
	teamCmd.Flags().StringVar(&teamDate, "date", "", "date for roster (YYYY-MM-DD)")
	addCoverageFlags(teamCmd)
}

// teamTerminal maps a resource name to its request
func teamTerminal(q query.TeamQuery, resource string) (query.Terminal[*models.Team], error) {
	switch resource {
	case "", "meta":
		return q.Meta(), nil
	case "standings":
		return q.Standings(), nil
	case "stats":
		return q.Stats(), nil
	case "matchups":
		return q.Matchups(teamWeek), nil
	case "roster":
		roster, err := q.Roster(teamDate, teamWeek)
		if err != nil {
			return query.Terminal[*models.Team]{}, err
		}
		if statsCoverage != (query.Coverage{}) {
			return roster.Stats(statsCoverage)
		}
		return roster.Terminal(), nil
	default:
		return query.Terminal[*models.Team]{}, fmt.Errorf("unknown team resource %q (valid: %v)", resource, teamResources)
	}
}

func runTeam(cmd *cobra.Command, args []string) error {
	if err := requireLeague(); err != nil {
		return err
	}

	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid team id: %s", args[0])
	}
	var resource string
	if len(args) == 2 {
		resource = args[1]
	}

	terminal, err := teamTerminal(api.Team(id), resource)
	if err != nil {
		return err
	}
	ctx, err := authorizedContext(cmd)
	if err != nil {
		return err
	}

	team, err := terminal.Get(ctx)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), outputFormat, team, func(w io.Writer) { formatTeam(w, team) })
}
