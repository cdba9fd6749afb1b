package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/s0up4200/yfantasy/models"
	"github.com/s0up4200/yfantasy/query"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Show the logged-in user",
	Args:  cobra.NoArgs,
	RunE:  userRunner(func(q query.UserQuery) query.Terminal[*models.User] { return q.Meta() }),
}

var userGamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List the games the user has played",
	Args:  cobra.NoArgs,
	RunE:  userRunner(func(q query.UserQuery) query.Terminal[*models.User] { return q.Games() }),
}

var userTeamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List the user's teams",
	Args:  cobra.NoArgs,
	RunE:  userRunner(func(q query.UserQuery) query.Terminal[*models.User] { return q.Teams() }),
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userGamesCmd, userTeamsCmd)
}

func userRunner(build func(query.UserQuery) query.Terminal[*models.User]) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, err := authorizedContext(cmd)
		if err != nil {
			return err
		}
		user, err := build(api.User()).Get(ctx)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), outputFormat, user, func(w io.Writer) { formatUser(w, user) })
	}
}
