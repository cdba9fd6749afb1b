package models

import (
	"encoding/json"
	"strings"
)

// Player is a rosterable athlete. Sub-resource fields stay nil unless the
// query requested them.
type Player struct {
	Key                      string
	ID                       int
	FirstName                string
	LastName                 string
	FullName                 string
	EditorialPlayerKey       string
	EditorialTeamKey         string
	EditorialTeamName        string
	EditorialTeamAbbr        string
	UniformNumber            string
	DisplayPosition          string
	PrimaryPosition          string
	PositionType             string
	EligiblePositions        []string
	HeadshotURL              string
	ImageURL                 string
	IsUndroppable            bool
	HasPlayerNotes           bool
	HasRecentPlayerNotes     bool
	PlayerNotesLastTimestamp *int
	Status                   string
	StatusFull               string
	InjuryNote               string
	OnDisabledList           bool

	Stats            *PlayerStats
	Points           *Points
	Ownership        *Ownership
	PercentOwned     *PercentOwned
	DraftAnalysis    *DraftAnalysis
	SelectedPosition *SelectedPosition

	// transactionData is the raw transaction_data block attached to players
	// returned inside a transaction.
	transactionData json.RawMessage
}

// PlayerStats holds the stats sub-resource for one coverage window.
type PlayerStats struct {
	CoverageType  string
	CoverageValue string
	Values        StatValues
}

// Points is a coverage-scoped fantasy points total.
type Points struct {
	CoverageType  string
	CoverageValue string
	Total         *float64
}

// Ownership describes who owns a player. Team is set only when the player is
// owned by a fantasy team.
type Ownership struct {
	Type          string
	OwnerTeamKey  string
	OwnerTeamName string
	Team          *Team
}

// Owned reports whether the player belongs to a team.
func (o *Ownership) Owned() bool {
	return o != nil && o.Type == "team"
}

// PercentOwned is the ownership percentage and its change over the coverage window.
type PercentOwned struct {
	CoverageType  string
	CoverageValue string
	Value         *float64
	Delta         *float64
}

// DraftAnalysis contains pre-season draft averages.
type DraftAnalysis struct {
	AveragePick    *float64
	AverageRound   *float64
	AverageCost    *float64
	PercentDrafted *float64
}

// SelectedPosition is the lineup slot a rostered player occupies.
type SelectedPosition struct {
	CoverageType  string
	CoverageValue string
	Position      string
	IsFlex        bool
}

// StatValues maps stat ids to their raw values as reported by the service.
type StatValues map[string]string

// Float returns a stat value coerced with AsFloat.
func (s StatValues) Float(statID string) *float64 {
	v, ok := s[statID]
	if !ok {
		return nil
	}
	raw, _ := json.Marshal(v)
	return AsFloat(raw)
}

// DecodePlayer decodes a player array: an attribute block followed by
// optional sub-resources.
func DecodePlayer(raw json.RawMessage) (*Player, error) {
	infoRaw, subs, err := subResources(raw, "player")
	if err != nil {
		return nil, err
	}

	attrs, err := Flatten(infoRaw)
	if err != nil {
		return nil, badShape("player", "0", err)
	}
	p, err := decodePlayerInfo(attrs)
	if err != nil {
		return nil, err
	}

	for _, sub := range subs {
		for key, value := range sub {
			if err := p.decodeSubResource(key, value); err != nil {
				return nil, err
			}
		}
	}
	return p, nil
}

func decodePlayerInfo(attrs Attributes) (*Player, error) {
	const entity = "player"

	key, err := requireString(attrs, entity, "player_key")
	if err != nil {
		return nil, err
	}
	if _, err := requireKey(attrs, entity, "player_id"); err != nil {
		return nil, err
	}
	name, err := requireKey(attrs, entity, "name")
	if err != nil {
		return nil, err
	}
	nameAttrs, err := Flatten(name)
	if err != nil {
		return nil, badShape(entity, "name", err)
	}

	p := &Player{
		Key:                      key,
		ID:                       attrs.IntOr("player_id", 0),
		FirstName:                nameAttrs.String("first"),
		LastName:                 nameAttrs.String("last"),
		FullName:                 nameAttrs.String("full"),
		EditorialPlayerKey:       attrs.String("editorial_player_key"),
		EditorialTeamKey:         attrs.String("editorial_team_key"),
		EditorialTeamName:        attrs.String("editorial_team_full_name"),
		EditorialTeamAbbr:        attrs.String("editorial_team_abbr"),
		UniformNumber:            attrs.String("uniform_number"),
		DisplayPosition:          attrs.String("display_position"),
		PrimaryPosition:          attrs.String("primary_position"),
		PositionType:             attrs.String("position_type"),
		ImageURL:                 unwrapImageURL(attrs.String("image_url")),
		IsUndroppable:            attrs.Bool("is_undroppable"),
		HasPlayerNotes:           attrs.Bool("has_player_notes"),
		HasRecentPlayerNotes:     attrs.Bool("has_recent_player_notes"),
		PlayerNotesLastTimestamp: attrs.Int("player_notes_last_timestamp"),
		Status:                   attrs.String("status"),
		StatusFull:               attrs.String("status_full"),
		InjuryNote:               attrs.String("injury_note"),
		OnDisabledList:           attrs.Bool("on_disabled_list"),
	}

	if headshot, ok := attrs["headshot"]; ok && kind(headshot) == '{' {
		h, err := Flatten(headshot)
		if err != nil {
			return nil, badShape(entity, "headshot", err)
		}
		p.HeadshotURL = h.String("url")
	}

	if eligible, ok := attrs["eligible_positions"]; ok {
		positions, err := listOf(eligible, entity, "position", func(raw json.RawMessage) (string, error) {
			return AsString(raw), nil
		})
		if err != nil {
			return nil, err
		}
		p.EligiblePositions = positions
	}
	return p, nil
}

func (p *Player) decodeSubResource(key string, value json.RawMessage) error {
	var err error
	switch key {
	case "player_stats":
		p.Stats, err = decodePlayerStats(value)
	case "player_points":
		p.Points, err = decodePoints(value, "player_points")
	case "ownership":
		p.Ownership, err = decodeOwnership(value)
	case "percent_owned":
		p.PercentOwned, err = decodePercentOwned(value)
	case "draft_analysis":
		p.DraftAnalysis, err = decodeDraftAnalysis(value)
	case "selected_position":
		p.SelectedPosition, err = decodeSelectedPosition(value)
	case "transaction_data":
		p.transactionData = value
	}
	return err
}

func decodePlayerStats(raw json.RawMessage) (*PlayerStats, error) {
	const entity = "player_stats"

	coverage, err := field(raw, entity, "0")
	if err != nil {
		return nil, err
	}
	coverageType, err := field(coverage, entity, "coverage_type")
	if err != nil {
		return nil, err
	}
	ct := AsString(coverageType)
	coverageValue, err := field(coverage, entity, ct)
	if err != nil {
		return nil, err
	}

	stats, err := field(raw, entity, "stats")
	if err != nil {
		return nil, err
	}
	values, err := decodeStatValues(stats, entity)
	if err != nil {
		return nil, err
	}

	return &PlayerStats{
		CoverageType:  ct,
		CoverageValue: AsString(coverageValue),
		Values:        values,
	}, nil
}

// decodeStatValues reads [{"stat": {"stat_id": ..., "value": ...}}, ...].
// A duplicated stat id keeps the last value.
func decodeStatValues(raw json.RawMessage, entity string) (StatValues, error) {
	type pair struct{ id, value string }

	pairs, err := listOf(raw, entity, "stat", func(stat json.RawMessage) (pair, error) {
		id, err := field(stat, entity, "stat_id")
		if err != nil {
			return pair{}, err
		}
		value, err := field(stat, entity, "value")
		if err != nil {
			return pair{}, err
		}
		return pair{id: AsString(id), value: AsString(value)}, nil
	})
	if err != nil {
		return nil, err
	}

	values := make(StatValues, len(pairs))
	for _, p := range pairs {
		values[p.id] = p.value
	}
	return values, nil
}

func decodePoints(raw json.RawMessage, entity string) (*Points, error) {
	attrs, err := Flatten(raw)
	if err != nil {
		return nil, badShape(entity, entity, err)
	}
	total, err := requireKey(attrs, entity, "total")
	if err != nil {
		return nil, err
	}
	ct := attrs.String("coverage_type")
	return &Points{
		CoverageType:  ct,
		CoverageValue: attrs.String(ct),
		Total:         AsFloat(total),
	}, nil
}

func decodeOwnership(raw json.RawMessage) (*Ownership, error) {
	const entity = "ownership"

	obj, err := object(raw)
	if err != nil {
		return nil, badShape(entity, entity, err)
	}
	ownershipType, ok := obj["ownership_type"]
	if !ok {
		return nil, missing(entity, "ownership_type")
	}

	o := &Ownership{
		Type:          AsString(ownershipType),
		OwnerTeamKey:  AsString(obj["owner_team_key"]),
		OwnerTeamName: AsString(obj["owner_team_name"]),
	}
	if o.Type != "team" {
		return o, nil
	}

	teamRaw, err := dig(raw, entity, "0", "teams", "0", "team")
	if err != nil {
		return nil, err
	}
	if o.Team, err = DecodeTeam(teamRaw); err != nil {
		return nil, err
	}
	return o, nil
}

func decodePercentOwned(raw json.RawMessage) (*PercentOwned, error) {
	attrs, err := Flatten(raw)
	if err != nil {
		return nil, badShape("percent_owned", "percent_owned", err)
	}
	ct := attrs.String("coverage_type")
	return &PercentOwned{
		CoverageType:  ct,
		CoverageValue: attrs.String(ct),
		Value:         attrs.Float("value"),
		Delta:         attrs.Float("delta"),
	}, nil
}

func decodeDraftAnalysis(raw json.RawMessage) (*DraftAnalysis, error) {
	const entity = "draft_analysis"

	attrs, err := Flatten(raw)
	if err != nil {
		return nil, badShape(entity, entity, err)
	}
	for _, key := range []string{"average_pick", "average_round", "average_cost", "percent_drafted"} {
		if _, err := requireKey(attrs, entity, key); err != nil {
			return nil, err
		}
	}
	return &DraftAnalysis{
		AveragePick:    attrs.Float("average_pick"),
		AverageRound:   attrs.Float("average_round"),
		AverageCost:    attrs.Float("average_cost"),
		PercentDrafted: attrs.Float("percent_drafted"),
	}, nil
}

func decodeSelectedPosition(raw json.RawMessage) (*SelectedPosition, error) {
	attrs, err := Flatten(raw)
	if err != nil {
		return nil, badShape("selected_position", "selected_position", err)
	}
	position, err := requireString(attrs, "selected_position", "position")
	if err != nil {
		return nil, err
	}
	ct := attrs.String("coverage_type")
	return &SelectedPosition{
		CoverageType:  ct,
		CoverageValue: attrs.String(ct),
		Position:      position,
		IsFlex:        attrs.Bool("is_flex"),
	}, nil
}

// unwrapImageURL strips the resizing proxy prefix the service sometimes puts in
// front of the real image location, keeping everything from the nested
// "https" onwards.
func unwrapImageURL(url string) string {
	const marker = "/https"
	if i := strings.LastIndex(url, marker); i >= 0 {
		return url[i+1:]
	}
	return url
}
