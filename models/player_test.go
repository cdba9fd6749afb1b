package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const playerInfo = `[
	{"player_key": "411.p.7109"},
	{"player_id": "7109"},
	{"name": {"full": "Connor McDavid", "first": "Connor", "last": "McDavid", "ascii_first": "Connor", "ascii_last": "McDavid"}},
	{"editorial_player_key": "nhl.p.7109"},
	{"editorial_team_key": "nhl.t.22"},
	{"editorial_team_full_name": "Edmonton Oilers"},
	{"editorial_team_abbr": "Edm"},
	{"uniform_number": "97"},
	{"display_position": "C"},
	{
		"headshot": {"url": "https://s.yimg.com/iu/api/res/1.2/xyz--/https://s.yimg.com/xe/i/us/sp/v/nhl_cutout/players_l/7109.png", "size": "small"},
		"image_url": "https://s.yimg.com/iu/api/res/1.2/xyz--/https://s.yimg.com/xe/i/us/sp/v/nhl_cutout/players_l/7109.png"
	},
	{"is_undroppable": "1"},
	{"position_type": "P"},
	{"primary_position": "C"},
	{"eligible_positions": [{"position": "C"}, {"position": "Util"}]},
	[],
	{"has_player_notes": 1}
]`

// playerFixture returns a player array with the given sub-resource elements
// appended after the attribute block.
func playerFixture(extra string) string {
	return `[` + playerInfo + extra + `]`
}

func TestDecodePlayerInfo(t *testing.T) {
	p, err := DecodePlayer(json.RawMessage(playerFixture("")))
	require.NoError(t, err)

	assert.Equal(t, "411.p.7109", p.Key)
	assert.Equal(t, 7109, p.ID)
	assert.Equal(t, "Connor McDavid", p.FullName)
	assert.Equal(t, "McDavid", p.LastName)
	assert.Equal(t, "Edm", p.EditorialTeamAbbr)
	assert.Equal(t, "97", p.UniformNumber)
	assert.Equal(t, []string{"C", "Util"}, p.EligiblePositions)
	assert.True(t, p.IsUndroppable)
	assert.True(t, p.HasPlayerNotes)
	assert.False(t, p.HasRecentPlayerNotes)
	assert.Equal(t, "https://s.yimg.com/xe/i/us/sp/v/nhl_cutout/players_l/7109.png", p.ImageURL)
	assert.Contains(t, p.HeadshotURL, "/https://")

	assert.Nil(t, p.Stats)
	assert.Nil(t, p.Points)
	assert.Nil(t, p.Ownership)
	assert.Nil(t, p.PercentOwned)
	assert.Nil(t, p.DraftAnalysis)
	assert.Nil(t, p.SelectedPosition)
}

func TestDecodePlayerMissingName(t *testing.T) {
	_, err := DecodePlayer(json.RawMessage(`[[{"player_key": "411.p.1"}, {"player_id": "1"}]]`))

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "player", de.Entity)
	assert.Equal(t, "name", de.Key)
}

func TestUnwrapImageURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{
			in:   "https://proxy.example/resize/w=46/https://img.example/p.png",
			want: "https://img.example/p.png",
		},
		{
			in:   "https://proxy.example/a/https://cdn.example/resize/https://img.example/p.png",
			want: "https://img.example/p.png",
		},
		{
			in:   "https://img.example/p.png",
			want: "https://img.example/p.png",
		},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, unwrapImageURL(tt.in))
	}
}

func TestDecodePlayerSubResources(t *testing.T) {
	raw := playerFixture(`,
		{"selected_position": [{"coverage_type": "date"}, {"date": "2021-11-01"}, {"position": "C"}, {"is_flex": 0}]},
		{"player_stats": {
			"0": {"coverage_type": "week", "week": "5"},
			"stats": [{"stat": {"stat_id": "1", "value": "3"}}, {"stat": {"stat_id": "2", "value": "-"}}, {"stat": {"stat_id": "1", "value": "4"}}]
		}},
		{"player_points": {"coverage_type": "week", "week": "5", "total": "14.2"}},
		{"percent_owned": [{"coverage_type": "week"}, {"week": "5"}, {"value": "99"}, {"delta": "-0.5"}]},
		{"draft_analysis": [{"average_pick": "1.2"}, {"average_round": "1.0"}, {"average_cost": "-"}, {"percent_drafted": "1.00"}]},
		{"some_future_block": {"x": 1}}`)

	p, err := DecodePlayer(json.RawMessage(raw))
	require.NoError(t, err)

	require.NotNil(t, p.SelectedPosition)
	assert.Equal(t, "C", p.SelectedPosition.Position)
	assert.Equal(t, "2021-11-01", p.SelectedPosition.CoverageValue)
	assert.False(t, p.SelectedPosition.IsFlex)

	require.NotNil(t, p.Stats)
	assert.Equal(t, "week", p.Stats.CoverageType)
	assert.Equal(t, "5", p.Stats.CoverageValue)
	assert.Equal(t, StatValues{"1": "4", "2": "-"}, p.Stats.Values)
	assert.Equal(t, floatPtr(4), p.Stats.Values.Float("1"))
	assert.Nil(t, p.Stats.Values.Float("2"))
	assert.Nil(t, p.Stats.Values.Float("99"))

	require.NotNil(t, p.Points)
	assert.Equal(t, floatPtr(14.2), p.Points.Total)

	require.NotNil(t, p.PercentOwned)
	assert.Equal(t, floatPtr(99), p.PercentOwned.Value)
	assert.Equal(t, floatPtr(-0.5), p.PercentOwned.Delta)

	require.NotNil(t, p.DraftAnalysis)
	assert.Equal(t, floatPtr(1.2), p.DraftAnalysis.AveragePick)
	assert.Nil(t, p.DraftAnalysis.AverageCost)
	assert.Equal(t, floatPtr(1), p.DraftAnalysis.PercentDrafted)
}

func TestDecodePlayerDraftAnalysisMissingKey(t *testing.T) {
	raw := playerFixture(`, {"draft_analysis": [{"average_pick": "1.2"}, {"average_round": "1.0"}]}`)

	_, err := DecodePlayer(json.RawMessage(raw))
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestDecodePlayerOwnership(t *testing.T) {
	tests := []struct {
		name      string
		ownership string
		wantType  string
		wantTeam  string
		wantOwned bool
	}{
		{
			name:      "free agent has no team",
			ownership: `{"ownership_type": "freeagent", "owner_team_name": ""}`,
			wantType:  "freeagent",
		},
		{
			name:      "waivers has no team",
			ownership: `{"ownership_type": "waivers", "waiver_date": "2021-11-03"}`,
			wantType:  "waivers",
		},
		{
			name: "team owner",
			ownership: `{
				"ownership_type": "team",
				"owner_team_key": "411.l.12345.t.1",
				"owner_team_name": "Team 1",
				"0": {"teams": {"0": {"team": ` + teamFixture(1, "") + `}, "count": 1}}
			}`,
			wantType:  "team",
			wantTeam:  "411.l.12345.t.1",
			wantOwned: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := DecodePlayer(json.RawMessage(playerFixture(`, {"ownership": ` + tt.ownership + `}`)))
			require.NoError(t, err)
			require.NotNil(t, p.Ownership)

			assert.Equal(t, tt.wantType, p.Ownership.Type)
			assert.Equal(t, tt.wantOwned, p.Ownership.Owned())
			if tt.wantTeam == "" {
				assert.Nil(t, p.Ownership.Team)
				return
			}
			require.NotNil(t, p.Ownership.Team)
			assert.Equal(t, tt.wantTeam, p.Ownership.Team.Key)
			assert.Equal(t, tt.wantTeam, p.Ownership.OwnerTeamKey)
		})
	}
}
