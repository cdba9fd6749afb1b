package models

import (
	"encoding/json"
)

// Team is a fantasy team within a league.
type Team struct {
	Key               string
	ID                int
	Name              string
	URL               string
	Logos             []TeamLogo
	WaiverPriority    *int
	FAABBalance       *int
	NumberOfMoves     *int
	NumberOfTrades    *int
	RosterAdds        *RosterAdds
	LeagueScoringType string
	HasDraftGrade     bool
	DraftGrade        string
	ClinchedPlayoffs  bool
	Managers          []Manager

	Players   []*Player
	Standings *TeamStandings
	Points    *Points
	Stats     *TeamStats
	Matchups  []*Matchup
}

// TeamLogo is one rendition of the team logo.
type TeamLogo struct {
	Size string
	URL  string
}

// RosterAdds counts the adds made in the current coverage window.
type RosterAdds struct {
	CoverageType  string
	CoverageValue string
	Value         *int
}

// Manager is a user managing a team.
type Manager struct {
	ID             string
	Nickname       string
	GUID           string
	Email          string
	ImageURL       string
	FeloScore      *int
	FeloTier       string
	IsCommissioner bool
	IsCurrentLogin bool
}

// TeamStandings is the standings block for a team.
type TeamStandings struct {
	Rank          *int
	PlayoffSeed   *int
	Wins          int
	Losses        int
	Ties          int
	Percentage    *float64
	PointsFor     *float64
	PointsAgainst *float64

	// Divisional totals are only present for leagues with divisions.
	Divisional *OutcomeTotals

	StreakType  string
	StreakValue *int
}

// OutcomeTotals is a win/loss/tie record.
type OutcomeTotals struct {
	Wins   int
	Losses int
	Ties   int
}

// TeamStats holds the team_stats sub-resource.
type TeamStats struct {
	CoverageType  string
	CoverageValue string
	Values        StatValues
}

// DecodeTeam decodes a team array or a bare team attribute block.
func DecodeTeam(raw json.RawMessage) (*Team, error) {
	infoRaw, subs, err := subResources(raw, "team")
	if err != nil {
		return nil, err
	}

	attrs, err := Flatten(infoRaw)
	if err != nil {
		return nil, badShape("team", "0", err)
	}

	t, err := decodeTeamInfo(attrs)
	if err != nil {
		return nil, err
	}

	for _, sub := range subs {
		for key, value := range sub {
			if err := t.decodeSubResource(key, value); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

func decodeTeamInfo(attrs Attributes) (*Team, error) {
	const entity = "team"

	key, err := requireString(attrs, entity, "team_key")
	if err != nil {
		return nil, err
	}
	if _, err := requireKey(attrs, entity, "team_id"); err != nil {
		return nil, err
	}
	name, err := requireString(attrs, entity, "name")
	if err != nil {
		return nil, err
	}

	t := &Team{
		Key:               key,
		ID:                attrs.IntOr("team_id", 0),
		Name:              name,
		URL:               attrs.String("url"),
		WaiverPriority:    attrs.Int("waiver_priority"),
		FAABBalance:       attrs.Int("faab_balance"),
		NumberOfMoves:     attrs.Int("number_of_moves"),
		NumberOfTrades:    attrs.Int("number_of_trades"),
		LeagueScoringType: attrs.String("league_scoring_type"),
		HasDraftGrade:     attrs.Bool("has_draft_grade"),
		DraftGrade:        attrs.String("draft_grade"),
		ClinchedPlayoffs:  attrs.Bool("clinched_playoffs"),
	}

	if logos, ok := attrs["team_logos"]; ok {
		t.Logos, err = listOf(logos, entity, "team_logo", func(raw json.RawMessage) (TeamLogo, error) {
			a, err := Flatten(raw)
			if err != nil {
				return TeamLogo{}, badShape(entity, "team_logo", err)
			}
			return TeamLogo{Size: a.String("size"), URL: a.String("url")}, nil
		})
		if err != nil {
			return nil, err
		}
	}

	if adds, ok := attrs["roster_adds"]; ok && !isEmpty(adds) {
		a, err := Flatten(adds)
		if err != nil {
			return nil, badShape(entity, "roster_adds", err)
		}
		t.RosterAdds = &RosterAdds{CoverageType: a.String("coverage_type"), CoverageValue: a.String("coverage_value"), Value: a.Int("value")}
	}

	if managers, ok := attrs["managers"]; ok {
		if t.Managers, err = listOf(managers, entity, "manager", decodeManager); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func decodeManager(raw json.RawMessage) (Manager, error) {
	const entity = "manager"

	attrs, err := Flatten(raw)
	if err != nil {
		return Manager{}, badShape(entity, entity, err)
	}
	for _, key := range []string{"manager_id", "nickname", "guid"} {
		if _, err := requireKey(attrs, entity, key); err != nil {
			return Manager{}, err
		}
	}
	return Manager{
		ID:             attrs.String("manager_id"),
		Nickname:       attrs.String("nickname"),
		GUID:           attrs.String("guid"),
		Email:          attrs.String("email"),
		ImageURL:       attrs.String("image_url"),
		FeloScore:      attrs.Int("felo_score"),
		FeloTier:       attrs.String("felo_tier"),
		IsCommissioner: attrs.Bool("is_commissioner"),
		IsCurrentLogin: attrs.Bool("is_current_login"),
	}, nil
}

func (t *Team) decodeSubResource(key string, value json.RawMessage) error {
	var err error
	switch key {
	case "roster":
		t.Players, err = decodeRoster(value)
	case "team_standings":
		t.Standings, err = decodeTeamStandings(value)
	case "team_points":
		t.Points, err = decodePoints(value, "team_points")
	case "team_stats":
		t.Stats, err = decodeTeamStats(value)
	case "matchups":
		t.Matchups, err = indexedOf(value, "team", "matchup", DecodeMatchup)
	}
	return err
}

// decodeRoster reads roster -> "0" -> players, the extra index level the
// roster sub-resource adds in front of its player collection.
func decodeRoster(raw json.RawMessage) ([]*Player, error) {
	players, err := dig(raw, "roster", "0", "players")
	if err != nil {
		return nil, err
	}
	return indexedOf(players, "roster", "player", DecodePlayer)
}

func decodeTeamStandings(raw json.RawMessage) (*TeamStandings, error) {
	const entity = "team_standings"

	attrs, err := Flatten(raw)
	if err != nil {
		return nil, badShape(entity, entity, err)
	}

	totals, err := requireKey(attrs, entity, "outcome_totals")
	if err != nil {
		return nil, err
	}
	outcome, err := decodeOutcomeTotals(totals, entity)
	if err != nil {
		return nil, err
	}

	s := &TeamStandings{
		Rank:          attrs.Int("rank"),
		PlayoffSeed:   attrs.Int("playoff_seed"),
		Wins:          outcome.Wins,
		Losses:        outcome.Losses,
		Ties:          outcome.Ties,
		PointsFor:     attrs.Float("points_for"),
		PointsAgainst: attrs.Float("points_against"),
	}
	if totalsAttrs, err := Flatten(totals); err == nil {
		s.Percentage = totalsAttrs.Float("percentage")
	}

	if div, ok := attrs["divisional_outcome_totals"]; ok {
		d, err := decodeOutcomeTotals(div, entity)
		if err != nil {
			return nil, err
		}
		s.Divisional = &d
	}

	if streak, ok := attrs["streak"]; ok {
		a, err := Flatten(streak)
		if err != nil {
			return nil, badShape(entity, "streak", err)
		}
		s.StreakType = a.String("type")
		s.StreakValue = a.Int("value")
	}
	return s, nil
}

func decodeOutcomeTotals(raw json.RawMessage, entity string) (OutcomeTotals, error) {
	attrs, err := Flatten(raw)
	if err != nil {
		return OutcomeTotals{}, badShape(entity, "outcome_totals", err)
	}
	for _, key := range []string{"wins", "losses", "ties"} {
		if _, err := requireKey(attrs, entity, key); err != nil {
			return OutcomeTotals{}, err
		}
	}
	return OutcomeTotals{
		Wins:   attrs.IntOr("wins", 0),
		Losses: attrs.IntOr("losses", 0),
		Ties:   attrs.IntOr("ties", 0),
	}, nil
}

func decodeTeamStats(raw json.RawMessage) (*TeamStats, error) {
	const entity = "team_stats"

	attrs, err := Flatten(raw)
	if err != nil {
		return nil, badShape(entity, entity, err)
	}
	stats, err := requireKey(attrs, entity, "stats")
	if err != nil {
		return nil, err
	}
	values, err := decodeStatValues(stats, entity)
	if err != nil {
		return nil, err
	}
	ct := attrs.String("coverage_type")
	return &TeamStats{
		CoverageType:  ct,
		CoverageValue: attrs.String(ct),
		Values:        values,
	}, nil
}
