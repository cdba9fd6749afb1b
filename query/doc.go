// Package query builds resource paths for the fantasy API and decodes the
// responses into models.
//
// Queries are built as chains of immutable values. Every step returns a new
// value carrying a longer path, so a partially built query can be reused as
// the base of several others without one affecting another.
//
//	api := query.New(client, "nhl", 12345)
//
//	league, err := api.League().Standings().Get(ctx)
//
//	players, err := api.League().
//		Players(query.PlayersOptions{Status: query.StatusFreeAgents}).
//		Stats(query.Coverage{Week: 5})
//	if err != nil {
//		return err // invalid filter combination, nothing was sent
//	}
//	league, err = players.Get(ctx)
//
// Builder steps that accept filters validate them immediately and return a
// *UsageError wrapping ErrExclusiveFilters or ErrMissingTeamScope, so an
// invalid query never reaches the network.
package query
