package models

import (
	"encoding/json"
	"errors"
)

// League is a fantasy league instance. Sub-resource fields stay nil unless the
// query requested them; Transactions is an empty slice when requested but empty.
type League struct {
	Key                  string
	ID                   int
	Name                 string
	URL                  string
	LogoURL              string
	DraftStatus          string
	NumTeams             int
	ScoringType          string
	LeagueType           string
	AllowAddToDLExtraPos bool
	CurrentWeek          *int
	StartWeek            *int
	StartDate            string
	EndWeek              *int
	EndDate              string
	GameCode             string
	Season               *int
	IsFinished           bool
	EditKey              string
	WeeklyDeadline       string
	UpdatedAt            *int

	DraftResults []*DraftResult
	Players      []*Player
	Matchups     []*Matchup
	Settings     *Settings
	Standings    []*Team
	Teams        []*Team
	Transactions []Transaction
}

// DraftResult is one pick of the league draft. Player is only set when the
// players sub-resource was requested with the draft results.
type DraftResult struct {
	Pick      int
	Round     int
	Cost      *int
	TeamKey   string
	PlayerKey string
	Player    *Player
}

// Matchup is a scheduled head-to-head week between two teams.
type Matchup struct {
	Week          *int
	WeekStart     string
	WeekEnd       string
	Status        string
	IsCurrent     bool
	IsPlayoffs    bool
	IsConsolation bool
	IsTied        bool
	WinnerTeamKey string
	Teams         []*Team

	// Winner and Loser are set when the matchup carries a winner_team_key.
	Winner *Team
	Loser  *Team
}

// DecodeLeague decodes the league payload of a league resource response.
func DecodeLeague(raw json.RawMessage) (*League, error) {
	infoRaw, subs, err := subResources(raw, "league")
	if err != nil {
		return nil, err
	}

	attrs, err := Flatten(infoRaw)
	if err != nil {
		return nil, badShape("league", "0", err)
	}
	l, err := decodeLeagueInfo(attrs)
	if err != nil {
		return nil, err
	}

	for _, sub := range subs {
		for key, value := range sub {
			if err := l.decodeSubResource(key, value); err != nil {
				return nil, err
			}
		}
	}
	return l, nil
}

func decodeLeagueInfo(attrs Attributes) (*League, error) {
	key, err := requireString(attrs, "league", "league_key")
	if err != nil {
		return nil, err
	}

	return &League{
		Key:                  key,
		ID:                   attrs.IntOr("league_id", 0),
		Name:                 attrs.String("name"),
		URL:                  attrs.String("url"),
		LogoURL:              attrs.String("logo_url"),
		DraftStatus:          attrs.String("draft_status"),
		NumTeams:             attrs.IntOr("num_teams", 0),
		ScoringType:          attrs.String("scoring_type"),
		LeagueType:           attrs.String("league_type"),
		AllowAddToDLExtraPos: attrs.Bool("allow_add_to_dl_extra_pos"),
		CurrentWeek:          attrs.Int("current_week"),
		StartWeek:            attrs.Int("start_week"),
		StartDate:            attrs.String("start_date"),
		EndWeek:              attrs.Int("end_week"),
		EndDate:              attrs.String("end_date"),
		GameCode:             attrs.String("game_code"),
		Season:               attrs.Int("season"),
		IsFinished:           attrs.Bool("is_finished"),
		EditKey:              attrs.String("edit_key"),
		WeeklyDeadline:       attrs.String("weekly_deadline"),
		UpdatedAt:            attrs.Int("league_update_timestamp"),
	}, nil
}

func (l *League) decodeSubResource(key string, value json.RawMessage) error {
	var err error
	switch key {
	case "draft_results":
		l.DraftResults, err = indexedOf(value, "league", "draft_result", decodeDraftResult)
	case "players":
		l.Players, err = indexedOf(value, "league", "player", DecodePlayer)
	case "scoreboard":
		l.Matchups, err = decodeScoreboard(value)
	case "settings":
		l.Settings, err = DecodeSettings(value)
	case "standings":
		l.Standings, err = decodeStandings(value)
	case "teams":
		l.Teams, err = indexedOf(value, "league", "team", DecodeTeam)
	case "transactions":
		l.Transactions, err = decodeTransactions(value)
	}
	return err
}

// decodeScoreboard reads scoreboard -> "0" -> matchups.
func decodeScoreboard(raw json.RawMessage) ([]*Matchup, error) {
	matchups, err := dig(raw, "scoreboard", "0", "matchups")
	if err != nil {
		return nil, err
	}
	return indexedOf(matchups, "scoreboard", "matchup", DecodeMatchup)
}

// decodeStandings reads standings -> [0] -> teams.
func decodeStandings(raw json.RawMessage) ([]*Team, error) {
	elems, err := array(raw)
	if err != nil {
		return nil, badShape("standings", "standings", err)
	}
	if len(elems) == 0 {
		return nil, missing("standings", "0")
	}
	teams, err := field(elems[0], "standings", "teams")
	if err != nil {
		return nil, err
	}
	return indexedOf(teams, "standings", "team", DecodeTeam)
}

// decodeTransactions decodes the indexed transactions in reverse index order
// and dispatches each to its subtype. A falsy block yields an empty list.
// Transaction types without a model (commish, waiver claims) are skipped.
func decodeTransactions(raw json.RawMessage) ([]Transaction, error) {
	if isEmpty(raw) {
		return []Transaction{}, nil
	}
	entries, err := indexedOf(raw, "transactions", "transaction", func(raw json.RawMessage) (json.RawMessage, error) {
		return raw, nil
	})
	if err != nil {
		return nil, err
	}

	transactions := make([]Transaction, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		t, err := DecodeTransaction(entries[i])
		if errors.Is(err, ErrUnknownTransaction) {
			logger.Debug().Err(err).Int("index", i).Msg("Skipping transaction")
			continue
		}
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, nil
}

func decodeDraftResult(raw json.RawMessage) (*DraftResult, error) {
	const entity = "draft_result"

	attrs, err := Flatten(raw)
	if err != nil {
		return nil, badShape(entity, entity, err)
	}
	pick, err := requireKey(attrs, entity, "pick")
	if err != nil {
		return nil, err
	}
	round, err := requireKey(attrs, entity, "round")
	if err != nil {
		return nil, err
	}
	teamKey, err := requireString(attrs, entity, "team_key")
	if err != nil {
		return nil, err
	}

	d := &DraftResult{
		TeamKey:   teamKey,
		PlayerKey: attrs.String("player_key"),
		Cost:      attrs.Int("cost"),
	}
	if n := AsInt(pick); n != nil {
		d.Pick = *n
	}
	if n := AsInt(round); n != nil {
		d.Round = *n
	}

	if nested, ok := attrs["0"]; ok {
		playerRaw, err := dig(nested, entity, "players", "0", "player")
		if err != nil {
			return nil, err
		}
		if d.Player, err = DecodePlayer(playerRaw); err != nil {
			return nil, err
		}
		if d.PlayerKey == "" {
			d.PlayerKey = d.Player.Key
		}
	}
	return d, nil
}

// DecodeMatchup decodes a matchup block. Exactly two teams are expected.
func DecodeMatchup(raw json.RawMessage) (*Matchup, error) {
	const entity = "matchup"

	attrs, err := Flatten(raw)
	if err != nil {
		return nil, badShape(entity, entity, err)
	}

	m := &Matchup{
		Week:          attrs.Int("week"),
		WeekStart:     attrs.String("week_start"),
		WeekEnd:       attrs.String("week_end"),
		Status:        attrs.String("status"),
		IsPlayoffs:    attrs.Bool("is_playoffs"),
		IsConsolation: attrs.Bool("is_consolation"),
		IsTied:        attrs.Bool("is_tied"),
		WinnerTeamKey: attrs.String("winner_team_key"),
	}
	m.IsCurrent = m.Status == "midevent"

	teams, err := dig(raw, entity, "0", "teams")
	if err != nil {
		return nil, err
	}
	if m.Teams, err = indexedOf(teams, entity, "team", DecodeTeam); err != nil {
		return nil, err
	}
	if len(m.Teams) != 2 {
		return nil, &DecodeError{Entity: entity, Key: "teams", Err: ErrUnexpectedShape}
	}

	if m.WinnerTeamKey != "" {
		for _, t := range m.Teams {
			if t.Key == m.WinnerTeamKey {
				m.Winner = t
			} else {
				m.Loser = t
			}
		}
		if m.Winner == nil {
			return nil, &DecodeError{Entity: entity, Key: "winner_team_key", Err: ErrUnexpectedShape}
		}
	}
	return m, nil
}
