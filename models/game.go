package models

import (
	"encoding/json"
)

// Game is a sport and season context, such as the 2021 NHL game.
type Game struct {
	Key                string
	ID                 int
	Name               string
	Code               string
	Type               string
	URL                string
	Season             *int
	IsRegistrationOver bool
	IsGameOver         bool
	IsOffseason        bool

	GameWeeks       []GameWeek
	PositionTypes   []PositionType
	RosterPositions []RosterPosition
	StatCategories  []StatCategory
}

// GameWeek is one scoring week of a game.
type GameWeek struct {
	Week        int
	DisplayName string
	Start       string
	End         string
}

// PositionType is a broad position grouping, such as skaters and goalies.
type PositionType struct {
	Type        string
	DisplayName string
}

// RosterPosition is a lineup slot a game offers.
type RosterPosition struct {
	Position       string
	Abbreviation   string
	DisplayName    string
	PositionType   string
	IsBench        bool
	IsDisabledList bool
}

// StatCategory describes a stat tracked by a game.
type StatCategory struct {
	ID              string
	Name            string
	DisplayName     string
	SortOrder       *int
	PositionTypes   []string
	IsCompositeStat bool
	BaseStats       []string
}

// DecodeGame decodes a game array or a bare game attribute block.
func DecodeGame(raw json.RawMessage) (*Game, error) {
	infoRaw, subs, err := subResources(raw, "game")
	if err != nil {
		return nil, err
	}
	attrs, err := Flatten(infoRaw)
	if err != nil {
		return nil, badShape("game", "0", err)
	}
	g, err := decodeGameInfo(attrs)
	if err != nil {
		return nil, err
	}

	for _, sub := range subs {
		for key, value := range sub {
			if err := g.decodeSubResource(key, value); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// DecodeGames decodes an indexed games collection.
func DecodeGames(raw json.RawMessage) ([]*Game, error) {
	return indexedOf(raw, "games", "game", DecodeGame)
}

func decodeGameInfo(attrs Attributes) (*Game, error) {
	const entity = "game"

	v, err := requireStrings(attrs, entity, "game_key", "game_id", "name", "code", "type", "url", "season")
	if err != nil {
		return nil, err
	}
	for _, key := range []string{"is_registration_over", "is_game_over", "is_offseason"} {
		if _, err := requireKey(attrs, entity, key); err != nil {
			return nil, err
		}
	}

	return &Game{
		Key:                v[0],
		ID:                 attrs.IntOr("game_id", 0),
		Name:               v[2],
		Code:               v[3],
		Type:               v[4],
		URL:                v[5],
		Season:             attrs.Int("season"),
		IsRegistrationOver: attrs.Bool("is_registration_over"),
		IsGameOver:         attrs.Bool("is_game_over"),
		IsOffseason:        attrs.Bool("is_offseason"),
	}, nil
}

func (g *Game) decodeSubResource(key string, value json.RawMessage) error {
	var err error
	switch key {
	case "game_weeks":
		g.GameWeeks, err = indexedOf(value, "game", "game_week", decodeGameWeek)
	case "position_types":
		g.PositionTypes, err = listOf(value, "game", "position_type", decodePositionType)
	case "roster_positions":
		g.RosterPositions, err = listOf(value, "game", "roster_position", decodeRosterPosition)
	case "stat_categories":
		var stats json.RawMessage
		if stats, err = field(value, "stat_categories", "stats"); err == nil {
			g.StatCategories, err = listOf(stats, "stat_categories", "stat", decodeStatCategory)
		}
	}
	return err
}

func decodeGameWeek(raw json.RawMessage) (GameWeek, error) {
	attrs, err := Flatten(raw)
	if err != nil {
		return GameWeek{}, badShape("game_week", "game_week", err)
	}
	v, err := requireStrings(attrs, "game_week", "week", "display_name", "start", "end")
	if err != nil {
		return GameWeek{}, err
	}
	return GameWeek{
		Week:        attrs.IntOr("week", 0),
		DisplayName: v[1],
		Start:       v[2],
		End:         v[3],
	}, nil
}

func decodePositionType(raw json.RawMessage) (PositionType, error) {
	attrs, err := Flatten(raw)
	if err != nil {
		return PositionType{}, badShape("position_type", "position_type", err)
	}
	v, err := requireStrings(attrs, "position_type", "type", "display_name")
	if err != nil {
		return PositionType{}, err
	}
	return PositionType{Type: v[0], DisplayName: v[1]}, nil
}

func decodeRosterPosition(raw json.RawMessage) (RosterPosition, error) {
	attrs, err := Flatten(raw)
	if err != nil {
		return RosterPosition{}, badShape("roster_position", "roster_position", err)
	}
	v, err := requireStrings(attrs, "roster_position", "position", "abbreviation", "display_name")
	if err != nil {
		return RosterPosition{}, err
	}
	return RosterPosition{
		Position:       v[0],
		Abbreviation:   v[1],
		DisplayName:    v[2],
		PositionType:   attrs.String("position_type"),
		IsBench:        attrs.Bool("is_bench"),
		IsDisabledList: attrs.Bool("is_disabled_list"),
	}, nil
}

func decodeStatCategory(raw json.RawMessage) (StatCategory, error) {
	const entity = "stat"

	attrs, err := Flatten(raw)
	if err != nil {
		return StatCategory{}, badShape(entity, entity, err)
	}
	v, err := requireStrings(attrs, entity, "stat_id", "name", "display_name", "sort_order")
	if err != nil {
		return StatCategory{}, err
	}
	c := StatCategory{
		ID:              v[0],
		Name:            v[1],
		DisplayName:     v[2],
		SortOrder:       attrs.Int("sort_order"),
		IsCompositeStat: attrs.Bool("is_composite_stat"),
		PositionTypes:   []string{},
		BaseStats:       []string{},
	}

	if types, ok := attrs["position_types"]; ok {
		c.PositionTypes, err = listOf(types, entity, "position_type", func(raw json.RawMessage) (string, error) {
			return AsString(raw), nil
		})
		if err != nil {
			return StatCategory{}, err
		}
	}
	if base, ok := attrs["base_stats"]; ok {
		c.BaseStats, err = listOf(base, entity, "base_stat", func(raw json.RawMessage) (string, error) {
			id, err := field(raw, "base_stat", "stat_id")
			if err != nil {
				return "", err
			}
			return AsString(id), nil
		})
		if err != nil {
			return StatCategory{}, err
		}
	}
	return c, nil
}
