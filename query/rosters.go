package query

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/yfantasy/models"
)

// DefaultRosterConcurrency bounds TeamRosters when limit is not positive.
const DefaultRosterConcurrency = 4

// TeamRosters fetches the current roster of each team from at most limit
// goroutines. The client serializes the requests themselves, so only decoding
// runs in parallel. Results are returned in the order of teamIDs. The first
// failure cancels the remaining fetches.
func TeamRosters(ctx context.Context, api *API, teamIDs []int, limit int) ([]*models.Team, error) {
	if limit <= 0 {
		limit = DefaultRosterConcurrency
	}

	teams := make([]*models.Team, len(teamIDs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, id := range teamIDs {
		g.Go(func() error {
			roster, err := api.Team(id).Roster("", 0)
			if err != nil {
				return err
			}
			team, err := roster.Get(ctx)
			if err != nil {
				return fmt.Errorf("roster for team %d: %w", id, err)
			}
			teams[i] = team
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return teams, nil
}
