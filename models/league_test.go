package models

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const leagueInfo = `{
	"league_key": "411.l.12345",
	"league_id": "12345",
	"name": "Sunday Skaters",
	"url": "https://hockey.fantasysports.yahoo.com/hockey/12345",
	"logo_url": false,
	"draft_status": "postdraft",
	"num_teams": 3,
	"scoring_type": "head",
	"league_type": "private",
	"allow_add_to_dl_extra_pos": 1,
	"current_week": "5",
	"start_week": "1",
	"start_date": "2021-10-12",
	"end_week": "25",
	"end_date": "2022-04-24",
	"game_code": "nhl",
	"season": "2021"
}`

func teamFixture(id int, extra string) string {
	return fmt.Sprintf(`[[{"team_key": "411.l.12345.t.%[1]d"}, {"team_id": "%[1]d"}, {"name": "Team %[1]d"}, [], {"waiver_priority": %[1]d}]%[2]s]`, id, extra)
}

func standingsFixture(id, rank int) string {
	return teamFixture(id, fmt.Sprintf(`, {"team_standings": {
		"rank": %d,
		"playoff_seed": "%d",
		"outcome_totals": {"wins": "%d", "losses": 2, "ties": 0, "percentage": ".600"},
		"streak": {"type": "win", "value": "2"},
		"points_for": "101.5",
		"points_against": 88
	}}`, rank, rank, 10-rank))
}

func TestDecodeLeagueInfo(t *testing.T) {
	league, err := DecodeLeague(json.RawMessage(`[` + leagueInfo + `]`))
	require.NoError(t, err)

	assert.Equal(t, "411.l.12345", league.Key)
	assert.Equal(t, 12345, league.ID)
	assert.Equal(t, "Sunday Skaters", league.Name)
	assert.Equal(t, 3, league.NumTeams)
	assert.True(t, league.AllowAddToDLExtraPos)
	assert.Equal(t, intPtr(5), league.CurrentWeek)
	assert.Equal(t, intPtr(2021), league.Season)
	assert.Equal(t, "", league.LogoURL)

	assert.Nil(t, league.Teams)
	assert.Nil(t, league.Standings)
	assert.Nil(t, league.Settings)
	assert.Nil(t, league.Transactions)
	assert.Nil(t, league.Matchups)
}

func TestDecodeLeagueMissingKey(t *testing.T) {
	_, err := DecodeLeague(json.RawMessage(`[{"league_id": "1"}]`))

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "league", de.Entity)
	assert.Equal(t, "league_key", de.Key)
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestDecodeLeagueStandings(t *testing.T) {
	raw := fmt.Sprintf(`[%s, {"standings": [{"teams": {
		"2": {"team": %s},
		"0": {"team": %s},
		"count": 3,
		"1": {"team": %s},
		"3": {"team": %s},
		"extra": "ignored"
	}}]}]`, leagueInfo,
		standingsFixture(3, 3), standingsFixture(1, 1), standingsFixture(2, 2), standingsFixture(4, 4))

	league, err := DecodeLeague(json.RawMessage(raw))
	require.NoError(t, err)
	require.Len(t, league.Standings, 3)

	for i, team := range league.Standings {
		assert.Equal(t, fmt.Sprintf("411.l.12345.t.%d", i+1), team.Key)
		assert.Equal(t, i+1, team.ID)
		require.NotNil(t, team.Standings)
		assert.Equal(t, intPtr(i+1), team.Standings.Rank)
		assert.Equal(t, 9-i, team.Standings.Wins)
		assert.Equal(t, 2, team.Standings.Losses)
		assert.Equal(t, floatPtr(0.6), team.Standings.Percentage)
		assert.Equal(t, floatPtr(101.5), team.Standings.PointsFor)
		assert.Equal(t, floatPtr(88), team.Standings.PointsAgainst)
		assert.Equal(t, "win", team.Standings.StreakType)
		assert.Nil(t, team.Standings.Divisional)
	}
}

func TestDecodeLeagueTeams(t *testing.T) {
	raw := fmt.Sprintf(`[%s, {"teams": {"0": {"team": %s}, "1": {"team": %s}, "count": 2}}]`,
		leagueInfo, teamFixture(1, ""), teamFixture(2, ""))

	league, err := DecodeLeague(json.RawMessage(raw))
	require.NoError(t, err)
	require.Len(t, league.Teams, 2)
	assert.Equal(t, "Team 1", league.Teams[0].Name)
	assert.Equal(t, intPtr(2), league.Teams[1].WaiverPriority)
	assert.Nil(t, league.Teams[0].Players)
}

func TestDecodeLeagueIgnoresUnknownSubResource(t *testing.T) {
	raw := fmt.Sprintf(`[%s, {"new_feature": {"count": 1}}]`, leagueInfo)

	league, err := DecodeLeague(json.RawMessage(raw))
	require.NoError(t, err)
	assert.Equal(t, "411.l.12345", league.Key)
}

func matchupFixture(winner string) string {
	return fmt.Sprintf(`{
		"week": "3",
		"week_start": "2021-10-25",
		"week_end": "2021-10-31",
		"status": "postevent",
		"is_playoffs": "0",
		"is_consolation": "0",
		"is_tied": 0,
		%s
		"0": {"teams": {"0": {"team": %s}, "1": {"team": %s}, "count": 2}}
	}`, winner, teamFixture(1, `, {"team_points": {"coverage_type": "week", "week": "3", "total": "120.5"}}`), teamFixture(2, ""))
}

func TestDecodeLeagueScoreboard(t *testing.T) {
	tests := []struct {
		name       string
		winner     string
		wantWinner string
		wantLoser  string
		wantErr    bool
	}{
		{
			name:       "winner partitions teams",
			winner:     `"winner_team_key": "411.l.12345.t.2",`,
			wantWinner: "411.l.12345.t.2",
			wantLoser:  "411.l.12345.t.1",
		},
		{
			name: "no winner yet",
		},
		{
			name:    "winner not in matchup",
			winner:  `"winner_team_key": "411.l.12345.t.9",`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := fmt.Sprintf(`[%s, {"scoreboard": {"0": {"matchups": {"0": {"matchup": %s}, "count": 1}}, "week": "3"}}]`,
				leagueInfo, matchupFixture(tt.winner))

			league, err := DecodeLeague(json.RawMessage(raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnexpectedShape)
				return
			}
			require.NoError(t, err)
			require.Len(t, league.Matchups, 1)

			m := league.Matchups[0]
			assert.Equal(t, intPtr(3), m.Week)
			assert.False(t, m.IsCurrent)
			require.Len(t, m.Teams, 2)
			require.NotNil(t, m.Teams[0].Points)
			assert.Equal(t, floatPtr(120.5), m.Teams[0].Points.Total)
			assert.Equal(t, "3", m.Teams[0].Points.CoverageValue)

			if tt.wantWinner == "" {
				assert.Nil(t, m.Winner)
				assert.Nil(t, m.Loser)
				return
			}
			require.NotNil(t, m.Winner)
			require.NotNil(t, m.Loser)
			assert.Equal(t, tt.wantWinner, m.Winner.Key)
			assert.Equal(t, tt.wantLoser, m.Loser.Key)
		})
	}
}

func TestDecodeLeagueDraftResults(t *testing.T) {
	raw := fmt.Sprintf(`[%s, {"draft_results": {
		"0": {"draft_result": {"pick": 1, "round": 1, "team_key": "411.l.12345.t.1", "player_key": "411.p.6743"}},
		"1": {"draft_result": {"pick": "2", "round": "1", "team_key": "411.l.12345.t.2", "cost": "14",
			"0": {"players": {"0": {"player": %s}, "count": 1}}}},
		"count": 2
	}}]`, leagueInfo, playerFixture(""))

	league, err := DecodeLeague(json.RawMessage(raw))
	require.NoError(t, err)
	require.Len(t, league.DraftResults, 2)

	first := league.DraftResults[0]
	assert.Equal(t, 1, first.Pick)
	assert.Equal(t, "411.p.6743", first.PlayerKey)
	assert.Nil(t, first.Player)

	second := league.DraftResults[1]
	assert.Equal(t, 2, second.Pick)
	assert.Equal(t, intPtr(14), second.Cost)
	require.NotNil(t, second.Player)
	assert.Equal(t, "411.p.7109", second.PlayerKey)
}

const settingsFixture = `[{
	"draft_type": "live",
	"is_auction_draft": "0",
	"scoring_type": "head",
	"uses_playoff": "1",
	"playoff_start_week": "23",
	"num_playoff_teams": "4",
	"waiver_type": "R",
	"waiver_time": 2,
	"uses_faab": "0",
	"trade_end_date": "2022-03-04",
	"can_trade_draft_picks": "1",
	"uses_fractional_points": "1",
	"uses_negative_points": "1",
	"roster_positions": [
		{"roster_position": {"position": "C", "position_type": "P", "count": 2}},
		{"roster_position": {"position": "BN", "count": "4"}}
	],
	"stat_categories": {"stats": [
		{"stat": {"stat_id": 1, "enabled": "1", "name": "Goals", "display_name": "G", "sort_order": "1"}},
		{"stat": {"stat_id": 2, "enabled": "1", "name": "Assists", "display_name": "A", "sort_order": "1"}}
	]},
	"stat_modifiers": {"stats": [
		{"stat": {"stat_id": 1, "value": "3"}},
		{"stat": {"stat_id": 2, "value": "2"}}
	]},
	"divisions": [
		{"division": {"division_id": 1, "name": "East"}},
		{"division": {"division_id": "2", "name": "West"}}
	]
}]`

func TestDecodeSettings(t *testing.T) {
	settings, err := DecodeSettings(json.RawMessage(settingsFixture))
	require.NoError(t, err)

	assert.Equal(t, "live", settings.DraftType)
	assert.False(t, settings.IsAuctionDraft)
	assert.True(t, settings.UsesPlayoff)
	assert.Equal(t, intPtr(23), settings.PlayoffStartWeek)
	assert.Equal(t, intPtr(2), settings.WaiverTime)
	assert.True(t, settings.CanTradeDraftPicks)
	assert.Equal(t, map[string]int{"C": 2, "BN": 4}, settings.RosterPositions)

	assert.Equal(t, []Stat{
		{ID: "1", Name: "Goals", DisplayName: "G", Modifier: floatPtr(3)},
		{ID: "2", Name: "Assists", DisplayName: "A", Modifier: floatPtr(2)},
	}, settings.StatCategories)
	assert.Equal(t, []Division{{ID: 1, Name: "East"}, {ID: 2, Name: "West"}}, settings.Divisions)
}

func TestDecodeSettingsWithoutModifiers(t *testing.T) {
	raw := `[{
		"roster_positions": [],
		"stat_categories": {"stats": [{"stat": {"stat_id": 1, "name": "Goals", "display_name": "G"}}]}
	}]`

	settings, err := DecodeSettings(json.RawMessage(raw))
	require.NoError(t, err)
	assert.Empty(t, settings.RosterPositions)
	require.Len(t, settings.StatCategories, 1)
	assert.Nil(t, settings.StatCategories[0].Modifier)
	assert.Nil(t, settings.Divisions)
}
