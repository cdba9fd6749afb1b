package query

import (
	"context"
	"fmt"
	"strconv"

	"github.com/s0up4200/yfantasy/models"
)

// Player status filters accepted by the players collection.
const (
	StatusAll        = "A"
	StatusFreeAgents = "FA"
	StatusWaivers    = "W"
	StatusTaken      = "T"
	StatusKeepers    = "K"
)

// Transaction type filters.
const (
	TransactionAdd          = "add"
	TransactionDrop         = "drop"
	TransactionCommish      = "commish"
	TransactionTrade        = "trade"
	TransactionWaiver       = "waiver"
	TransactionPendingTrade = "pending_trade"
)

// DefaultPlayersCount is the page size used when PlayersOptions.Count is zero.
const DefaultPlayersCount = 25

// LeagueQuery builds a query for league/{league_key}.
type LeagueQuery struct {
	node
}

// Meta returns the league without sub-resources.
func (q LeagueQuery) Meta() Terminal[*models.League] {
	return leagueTerminal(q.node)
}

// Get fetches the league without sub-resources.
func (q LeagueQuery) Get(ctx context.Context) (*models.League, error) {
	return q.Meta().Get(ctx)
}

// DraftResults adds the draftresults sub-resource.
func (q LeagueQuery) DraftResults() DraftResultsQuery {
	return DraftResultsQuery{node: q.with("/draftresults")}
}

// PlayersOptions pages and filters the league players collection.
type PlayersOptions struct {
	Start  int
	Count  int
	Status string
	Search string
}

// Players adds the players sub-resource. start and count are always emitted.
func (q LeagueQuery) Players(opts PlayersOptions) PlayersQuery {
	count := opts.Count
	if count == 0 {
		count = DefaultPlayersCount
	}

	segment := fmt.Sprintf("/players;start=%d;count=%d", opts.Start, count)
	if opts.Search != "" {
		segment += ";search=" + opts.Search
	}
	if opts.Status != "" {
		segment += ";status=" + opts.Status
	}
	return PlayersQuery{node: q.with(segment)}
}

// Scoreboard adds the scoreboard sub-resource, optionally for one week.
func (q LeagueQuery) Scoreboard(week int) Terminal[*models.League] {
	segment := "/scoreboard"
	if week != 0 {
		segment += ";week=" + strconv.Itoa(week)
	}
	return leagueTerminal(q.with(segment))
}

// Settings adds the settings sub-resource.
func (q LeagueQuery) Settings() Terminal[*models.League] {
	return leagueTerminal(q.with("/settings"))
}

// Standings adds the standings sub-resource.
func (q LeagueQuery) Standings() Terminal[*models.League] {
	return leagueTerminal(q.with("/standings"))
}

// Teams adds the teams sub-resource.
func (q LeagueQuery) Teams() Terminal[*models.League] {
	return leagueTerminal(q.with("/teams"))
}

// TransactionsOptions filters the league transactions collection.
type TransactionsOptions struct {
	Type   string
	TeamID int
	Count  int
	Start  int
}

// Transactions adds the transactions sub-resource. The waiver and
// pending_trade types need a TeamID.
func (q LeagueQuery) Transactions(opts TransactionsOptions) (Terminal[*models.League], error) {
	if (opts.Type == TransactionWaiver || opts.Type == TransactionPendingTrade) && opts.TeamID == 0 {
		return Terminal[*models.League]{}, &UsageError{
			Method: "transactions",
			Args:   []string{"type=" + opts.Type},
			Err:    ErrMissingTeamScope,
		}
	}

	segment := "/transactions"
	if opts.Type != "" {
		segment += ";type=" + opts.Type
	}
	if opts.TeamID != 0 {
		segment += ";team_key=" + q.api.TeamKey(opts.TeamID)
	}
	if opts.Count != 0 {
		segment += ";count=" + strconv.Itoa(opts.Count)
	}
	if opts.Start != 0 {
		segment += ";start=" + strconv.Itoa(opts.Start)
	}
	return leagueTerminal(q.with(segment)), nil
}

// DraftResultsQuery is a league query with draft results requested.
type DraftResultsQuery struct {
	node
}

// Players adds the drafted players to each draft result.
func (q DraftResultsQuery) Players() Terminal[*models.League] {
	return leagueTerminal(q.with("/players"))
}

// Terminal returns the draft results request without player details.
func (q DraftResultsQuery) Terminal() Terminal[*models.League] {
	return leagueTerminal(q.node)
}

// Get fetches the league with its draft results.
func (q DraftResultsQuery) Get(ctx context.Context) (*models.League, error) {
	return q.Terminal().Get(ctx)
}

// PlayersQuery is a league query with the players collection requested.
type PlayersQuery struct {
	node
}

// DraftAnalysis adds the draft_analysis player sub-resource.
func (q PlayersQuery) DraftAnalysis() Terminal[*models.League] {
	return leagueTerminal(q.with("/draft_analysis"))
}

// Ownership adds the ownership player sub-resource.
func (q PlayersQuery) Ownership() Terminal[*models.League] {
	return leagueTerminal(q.with("/ownership"))
}

// PercentOwned adds the percent_owned player sub-resource.
func (q PlayersQuery) PercentOwned() Terminal[*models.League] {
	return leagueTerminal(q.with("/percent_owned"))
}

// Stats adds the stats player sub-resource for at most one coverage window.
func (q PlayersQuery) Stats(c Coverage) (Terminal[*models.League], error) {
	clause, err := c.Path()
	if err != nil {
		return Terminal[*models.League]{}, err
	}
	return leagueTerminal(q.with("/stats" + clause)), nil
}

// Terminal returns the players request without a player sub-resource.
func (q PlayersQuery) Terminal() Terminal[*models.League] {
	return leagueTerminal(q.node)
}

// Get fetches the league with its players.
func (q PlayersQuery) Get(ctx context.Context) (*models.League, error) {
	return q.Terminal().Get(ctx)
}
