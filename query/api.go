package query

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/s0up4200/yfantasy/models"
)

// Fetcher performs a GET for a resource path and returns the fantasy_content payload.
type Fetcher interface {
	Get(ctx context.Context, path string) (json.RawMessage, error)
}

// API is the entry point for building queries against one league of one game.
type API struct {
	fetcher  Fetcher
	gameCode string
	leagueID int
}

// New creates an API that fetches through f.
func New(f Fetcher, gameCode string, leagueID int) *API {
	return &API{
		fetcher:  f,
		gameCode: gameCode,
		leagueID: leagueID,
	}
}

// LeagueKey returns the configured league key, {game_code}.l.{league_id}.
func (a *API) LeagueKey() string {
	return fmt.Sprintf("%s.l.%d", a.gameCode, a.leagueID)
}

// TeamKey returns the key of a team in the configured league.
func (a *API) TeamKey(teamID int) string {
	return fmt.Sprintf("%s.t.%d", a.LeagueKey(), teamID)
}

// Game starts a query for the configured game.
func (a *API) Game() GameQuery {
	return GameQuery{node: node{api: a, path: "game/" + a.gameCode}}
}

// Games starts a query for the games collection.
func (a *API) Games() GamesQuery {
	return GamesQuery{node: node{api: a, path: "games"}}
}

// League starts a query for the configured league.
func (a *API) League() LeagueQuery {
	return LeagueQuery{node: node{api: a, path: "league/" + a.LeagueKey()}}
}

// Team starts a query for a team of the configured league.
func (a *API) Team(teamID int) TeamQuery {
	return TeamQuery{node: node{api: a, path: "team/" + a.TeamKey(teamID)}}
}

// User starts a query for the logged-in user.
func (a *API) User() UserQuery {
	return UserQuery{node: node{api: a, path: "users;use_login=1"}}
}

// node is the immutable state shared by every builder step. Each step returns
// a new value with a longer path; no two nodes share a buffer.
type node struct {
	api  *API
	path string
}

// Path returns the resource path built so far.
func (n node) Path() string {
	return n.path
}

func (n node) with(segment string) node {
	return node{api: n.api, path: n.path + segment}
}

// Terminal is a fully built query whose only operation is Get.
type Terminal[T any] struct {
	node
	root   string
	decode func(json.RawMessage) (T, error)
}

func terminal[T any](n node, root string, decode func(json.RawMessage) (T, error)) Terminal[T] {
	return Terminal[T]{node: n, root: root, decode: decode}
}

// Get performs the request and decodes the response.
func (t Terminal[T]) Get(ctx context.Context) (T, error) {
	var zero T

	raw, err := t.api.fetcher.Get(ctx, t.path)
	if err != nil {
		return zero, err
	}

	var content map[string]json.RawMessage
	if err := json.Unmarshal(raw, &content); err != nil {
		return zero, fmt.Errorf("%s: %w: %v", t.path, ErrUnexpectedResponse, err)
	}
	payload, ok := content[t.root]
	if !ok {
		return zero, fmt.Errorf("%s: %w: no %q in response", t.path, ErrUnexpectedResponse, t.root)
	}

	v, err := t.decode(payload)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", t.path, err)
	}
	return v, nil
}

func leagueTerminal(n node) Terminal[*models.League] {
	return terminal(n, "league", models.DecodeLeague)
}

func teamTerminal(n node) Terminal[*models.Team] {
	return terminal(n, "team", models.DecodeTeam)
}
