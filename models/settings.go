package models

import (
	"encoding/json"
)

// Settings is the league configuration block.
type Settings struct {
	DraftType                  string
	IsAuctionDraft             bool
	ScoringType                string
	PersistentURL              string
	UsesPlayoff                bool
	HasConsolationGames        bool
	PlayoffStartWeek           *int
	UsesPlayoffReseeding       bool
	UsesLockEliminatedTeams    bool
	NumPlayoffTeams            *int
	NumPlayoffConsolationTeams *int
	HasMultiweekChampionship   bool
	WaiverType                 string
	WaiverRule                 string
	UsesFAAB                   bool
	DraftPickTime              *int
	PostDraftPlayers           string
	MaxTeams                   *int
	WaiverTime                 *int
	TradeEndDate               string
	TradeRatifyType            string
	TradeRejectTime            *int
	PlayerPool                 string
	CantCutList                string
	CanTradeDraftPicks         bool
	UsesFractionalPoints       bool
	UsesNegativePoints         bool

	// RosterPositions maps a lineup position to the number of slots.
	RosterPositions map[string]int
	StatCategories  []Stat
	Divisions       []Division
}

// Stat is a scored stat category. Modifier is the points value per unit and
// is nil for leagues without stat modifiers.
type Stat struct {
	ID          string
	Name        string
	DisplayName string
	Modifier    *float64
}

// Division groups teams within a league.
type Division struct {
	ID   int
	Name string
}

// DecodeSettings decodes the settings sub-resource: a one element list
// holding the settings object.
func DecodeSettings(raw json.RawMessage) (*Settings, error) {
	const entity = "settings"

	elems, err := array(raw)
	if err != nil {
		return nil, badShape(entity, entity, err)
	}
	if len(elems) == 0 {
		return nil, missing(entity, "0")
	}
	attrs, err := Flatten(elems[0])
	if err != nil {
		return nil, badShape(entity, "0", err)
	}

	s := &Settings{
		DraftType:                  attrs.String("draft_type"),
		IsAuctionDraft:             attrs.Bool("is_auction_draft"),
		ScoringType:                attrs.String("scoring_type"),
		PersistentURL:              attrs.String("persistent_url"),
		UsesPlayoff:                attrs.Bool("uses_playoff"),
		HasConsolationGames:        attrs.Bool("has_playoff_consolation_games"),
		PlayoffStartWeek:           attrs.Int("playoff_start_week"),
		UsesPlayoffReseeding:       attrs.Bool("uses_playoff_reseeding"),
		UsesLockEliminatedTeams:    attrs.Bool("uses_lock_eliminated_teams"),
		NumPlayoffTeams:            attrs.Int("num_playoff_teams"),
		NumPlayoffConsolationTeams: attrs.Int("num_playoff_consolation_teams"),
		HasMultiweekChampionship:   attrs.Bool("has_multiweek_championship"),
		WaiverType:                 attrs.String("waiver_type"),
		WaiverRule:                 attrs.String("waiver_rule"),
		UsesFAAB:                   attrs.Bool("uses_faab"),
		DraftPickTime:              attrs.Int("draft_pick_time"),
		PostDraftPlayers:           attrs.String("post_draft_players"),
		MaxTeams:                   attrs.Int("max_teams"),
		WaiverTime:                 attrs.Int("waiver_time"),
		TradeEndDate:               attrs.String("trade_end_date"),
		TradeRatifyType:            attrs.String("trade_ratify_type"),
		TradeRejectTime:            attrs.Int("trade_reject_time"),
		PlayerPool:                 attrs.String("player_pool"),
		CantCutList:                attrs.String("cant_cut_list"),
		CanTradeDraftPicks:         attrs.Bool("can_trade_draft_picks"),
		UsesFractionalPoints:       attrs.Bool("uses_fractional_points"),
		UsesNegativePoints:         attrs.Bool("uses_negative_points"),
	}

	positions, err := requireKey(attrs, entity, "roster_positions")
	if err != nil {
		return nil, err
	}
	if s.RosterPositions, err = decodeRosterSlots(positions); err != nil {
		return nil, err
	}

	if s.StatCategories, err = decodeScoredStats(attrs); err != nil {
		return nil, err
	}

	if divisions, ok := attrs["divisions"]; ok {
		s.Divisions, err = listOf(divisions, entity, "division", decodeDivision)
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

func decodeRosterSlots(raw json.RawMessage) (map[string]int, error) {
	type slot struct {
		position string
		count    int
	}

	slots, err := listOf(raw, "settings", "roster_position", func(raw json.RawMessage) (slot, error) {
		attrs, err := Flatten(raw)
		if err != nil {
			return slot{}, badShape("roster_position", "roster_position", err)
		}
		position, err := requireString(attrs, "roster_position", "position")
		if err != nil {
			return slot{}, err
		}
		if _, err := requireKey(attrs, "roster_position", "count"); err != nil {
			return slot{}, err
		}
		return slot{position: position, count: attrs.IntOr("count", 0)}, nil
	})
	if err != nil {
		return nil, err
	}

	out := make(map[string]int, len(slots))
	for _, s := range slots {
		out[s.position] = s.count
	}
	return out, nil
}

// decodeScoredStats joins stat_categories with the optional stat_modifiers
// block by stat id.
func decodeScoredStats(attrs Attributes) ([]Stat, error) {
	const entity = "settings"

	categories, err := requireKey(attrs, entity, "stat_categories")
	if err != nil {
		return nil, err
	}
	categoryStats, err := field(categories, entity, "stats")
	if err != nil {
		return nil, err
	}

	modifiers := map[string]*float64{}
	if block, ok := attrs["stat_modifiers"]; ok && !isEmpty(block) {
		modifierStats, err := field(block, entity, "stats")
		if err != nil {
			return nil, err
		}
		values, err := decodeStatValues(modifierStats, "stat_modifiers")
		if err != nil {
			return nil, err
		}
		for id := range values {
			modifiers[id] = values.Float(id)
		}
	}

	return listOf(categoryStats, entity, "stat", func(raw json.RawMessage) (Stat, error) {
		a, err := Flatten(raw)
		if err != nil {
			return Stat{}, badShape("stat", "stat", err)
		}
		id, err := requireString(a, "stat", "stat_id")
		if err != nil {
			return Stat{}, err
		}
		name, err := requireString(a, "stat", "name")
		if err != nil {
			return Stat{}, err
		}
		display, err := requireString(a, "stat", "display_name")
		if err != nil {
			return Stat{}, err
		}
		return Stat{ID: id, Name: name, DisplayName: display, Modifier: modifiers[id]}, nil
	})
}

func decodeDivision(raw json.RawMessage) (Division, error) {
	attrs, err := Flatten(raw)
	if err != nil {
		return Division{}, badShape("division", "division", err)
	}
	id, err := requireKey(attrs, "division", "division_id")
	if err != nil {
		return Division{}, err
	}
	name, err := requireString(attrs, "division", "name")
	if err != nil {
		return Division{}, err
	}
	d := Division{Name: name}
	if n := AsInt(id); n != nil {
		d.ID = *n
	}
	return d, nil
}
