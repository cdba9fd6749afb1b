package query

import (
	"context"
	"strconv"
	"strings"

	"github.com/s0up4200/yfantasy/models"
)

// GameQuery builds a query for game/{game_code}.
type GameQuery struct {
	node
}

// Meta returns the game without sub-resources.
func (q GameQuery) Meta() Terminal[*models.Game] {
	return gameTerminal(q.node)
}

// GameWeeks adds the game_weeks sub-resource.
func (q GameQuery) GameWeeks() Terminal[*models.Game] {
	return gameTerminal(q.with("/game_weeks"))
}

// PositionTypes adds the position_types sub-resource.
func (q GameQuery) PositionTypes() Terminal[*models.Game] {
	return gameTerminal(q.with("/position_types"))
}

// RosterPositions adds the roster_positions sub-resource.
func (q GameQuery) RosterPositions() Terminal[*models.Game] {
	return gameTerminal(q.with("/roster_positions"))
}

// StatCategories adds the stat_categories sub-resource.
func (q GameQuery) StatCategories() Terminal[*models.Game] {
	return gameTerminal(q.with("/stat_categories"))
}

// Get fetches the game without sub-resources.
func (q GameQuery) Get(ctx context.Context) (*models.Game, error) {
	return q.Meta().Get(ctx)
}

func gameTerminal(n node) Terminal[*models.Game] {
	return terminal(n, "game", models.DecodeGame)
}

// GamesFilter narrows the games collection. Zero values add no clause.
type GamesFilter struct {
	IsAvailable *bool
	GameCodes   []string
	Seasons     []int
}

func (f GamesFilter) path() string {
	var b strings.Builder
	if f.IsAvailable != nil {
		b.WriteString(";is_available=")
		if *f.IsAvailable {
			b.WriteString("1")
		} else {
			b.WriteString("0")
		}
	}
	if len(f.GameCodes) > 0 {
		b.WriteString(";game_codes=")
		b.WriteString(strings.Join(f.GameCodes, ","))
	}
	if len(f.Seasons) > 0 {
		seasons := make([]string, len(f.Seasons))
		for i, s := range f.Seasons {
			seasons[i] = strconv.Itoa(s)
		}
		b.WriteString(";seasons=")
		b.WriteString(strings.Join(seasons, ","))
	}
	return b.String()
}

// GamesQuery builds a query for the games collection.
type GamesQuery struct {
	node
}

// Filter applies collection filters.
func (q GamesQuery) Filter(f GamesFilter) Terminal[[]*models.Game] {
	return terminal(q.with(f.path()), "games", models.DecodeGames)
}

// Get fetches the games matching f.
func (q GamesQuery) Get(ctx context.Context, f GamesFilter) ([]*models.Game, error) {
	return q.Filter(f).Get(ctx)
}
