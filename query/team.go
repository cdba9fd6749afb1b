package query

import (
	"context"
	"fmt"
	"strconv"

	"github.com/s0up4200/yfantasy/models"
)

// TeamQuery builds a query for team/{team_key}.
type TeamQuery struct {
	node
}

// Meta returns the team without sub-resources.
func (q TeamQuery) Meta() Terminal[*models.Team] {
	return teamTerminal(q.node)
}

// Get fetches the team without sub-resources.
func (q TeamQuery) Get(ctx context.Context) (*models.Team, error) {
	return q.Meta().Get(ctx)
}

// Matchups adds the matchups sub-resource, optionally for one week.
func (q TeamQuery) Matchups(week int) Terminal[*models.Team] {
	segment := "/matchups"
	if week != 0 {
		segment += ";weeks=" + strconv.Itoa(week)
	}
	return teamTerminal(q.with(segment))
}

// Roster adds the roster sub-resource for a date or a week, but not both.
func (q TeamQuery) Roster(date string, week int) (RosterQuery, error) {
	segment := "/roster"
	switch {
	case date != "" && week != 0:
		return RosterQuery{}, &UsageError{
			Method: "roster",
			Args:   []string{"date=" + date, fmt.Sprintf("week=%d", week)},
			Err:    ErrExclusiveFilters,
		}
	case week != 0:
		segment += ";week=" + strconv.Itoa(week)
	case date != "":
		segment += ";date=" + date
	}
	return RosterQuery{node: q.with(segment)}, nil
}

// Standings adds the standings sub-resource.
func (q TeamQuery) Standings() Terminal[*models.Team] {
	return teamTerminal(q.with("/standings"))
}

// Stats adds the team stats sub-resource.
func (q TeamQuery) Stats() Terminal[*models.Team] {
	return teamTerminal(q.with("/stats"))
}

// RosterQuery is a team query with the roster requested.
type RosterQuery struct {
	node
}

// Stats adds stats for every rostered player, for at most one coverage window.
func (q RosterQuery) Stats(c Coverage) (Terminal[*models.Team], error) {
	clause, err := c.Path()
	if err != nil {
		return Terminal[*models.Team]{}, err
	}
	return teamTerminal(q.with("/players/stats" + clause)), nil
}

// Terminal returns the roster request without player stats.
func (q RosterQuery) Terminal() Terminal[*models.Team] {
	return teamTerminal(q.node)
}

// Get fetches the team with its roster.
func (q RosterQuery) Get(ctx context.Context) (*models.Team, error) {
	return q.Terminal().Get(ctx)
}
