package models

import (
	"encoding/json"
	"fmt"
)

// Transaction types reported by the service.
const (
	TransactionAdd     = "add"
	TransactionDrop    = "drop"
	TransactionAddDrop = "add/drop"
	TransactionTrade   = "trade"
)

// Transaction is implemented by Add, Drop, AddDrop and Trade.
type Transaction interface {
	Info() TransactionInfo
}

// TransactionInfo holds the attributes shared by every transaction type.
type TransactionInfo struct {
	Key       string
	ID        int
	Type      string
	Status    string
	Timestamp *int
}

// Info returns the shared transaction attributes.
func (t TransactionInfo) Info() TransactionInfo { return t }

// Add is a free agent or waiver pickup.
type Add struct {
	TransactionInfo
	FAABBid             *int
	Player              *Player
	SourceType          string
	DestinationType     string
	DestinationTeamKey  string
	DestinationTeamName string
}

// Drop releases a player from a team.
type Drop struct {
	TransactionInfo
	Player          *Player
	SourceType      string
	SourceTeamKey   string
	SourceTeamName  string
	DestinationType string
}

// AddDrop is an add paired with a drop in one move.
type AddDrop struct {
	TransactionInfo
	FAABBid             *int
	Added               *Player
	Dropped             *Player
	SourceType          string
	DestinationType     string
	DestinationTeamKey  string
	DestinationTeamName string
}

// Trade exchanges players and draft picks between two teams.
type Trade struct {
	TransactionInfo
	TraderTeamKey  string
	TraderTeamName string
	TradeeTeamKey  string
	TradeeTeamName string
	Picks          []Pick
	Players        []*Player
}

// Pick is a draft pick moved by a trade.
type Pick struct {
	Round               int
	SourceTeamKey       string
	SourceTeamName      string
	DestinationTeamKey  string
	DestinationTeamName string
	OriginalTeamKey     string
	OriginalTeamName    string
}

// DecodeTransaction decodes a transaction array and dispatches on its type.
// Unsupported types return ErrUnknownTransaction.
func DecodeTransaction(raw json.RawMessage) (Transaction, error) {
	const entity = "transaction"

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
	info, err := decodeTransactionInfo(attrs)
	if err != nil {
		return nil, err
	}

	switch info.Type {
	case TransactionAdd, TransactionDrop, TransactionAddDrop, TransactionTrade:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransaction, info.Type)
	}

	if len(elems) < 2 {
		return nil, missing(entity, "1")
	}
	players, err := field(elems[1], entity, "players")
	if err != nil {
		return nil, err
	}

	switch info.Type {
	case TransactionAdd:
		return decodeAdd(info, attrs, players)
	case TransactionDrop:
		return decodeDrop(info, players)
	case TransactionAddDrop:
		return decodeAddDrop(info, attrs, players)
	default:
		return decodeTrade(info, attrs, players)
	}
}

func decodeTransactionInfo(attrs Attributes) (TransactionInfo, error) {
	const entity = "transaction"

	var info TransactionInfo
	for _, key := range []string{"transaction_key", "transaction_id", "type", "status", "timestamp"} {
		if _, err := requireKey(attrs, entity, key); err != nil {
			return info, err
		}
	}
	info.Key = attrs.String("transaction_key")
	info.ID = attrs.IntOr("transaction_id", 0)
	info.Type = attrs.String("type")
	info.Status = attrs.String("status")
	info.Timestamp = attrs.Int("timestamp")
	return info, nil
}

// transactionPlayer decodes players[index].player along with its raw
// transaction_data block.
func transactionPlayer(players json.RawMessage, index string) (*Player, error) {
	raw, err := dig(players, "transaction", index, "player")
	if err != nil {
		return nil, err
	}
	p, err := DecodePlayer(raw)
	if err != nil {
		return nil, err
	}
	if p.transactionData == nil {
		return nil, missing("transaction", index+".player.transaction_data")
	}
	return p, nil
}

// listedTransactionData reads the add-style transaction_data, which wraps the
// block in a one element list.
func listedTransactionData(p *Player) (Attributes, error) {
	const entity = "transaction_data"

	elems, err := array(p.transactionData)
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
	return attrs, nil
}

// bareTransactionData reads the drop-style transaction_data, a plain object.
func bareTransactionData(p *Player) (Attributes, error) {
	const entity = "transaction_data"

	obj, err := object(p.transactionData)
	if err != nil {
		return nil, badShape(entity, entity, err)
	}
	return Attributes(obj), nil
}

func requireStrings(attrs Attributes, entity string, keys ...string) ([]string, error) {
	out := make([]string, len(keys))
	for i, key := range keys {
		v, err := requireString(attrs, entity, key)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func decodeAdd(info TransactionInfo, attrs Attributes, players json.RawMessage) (*Add, error) {
	p, err := transactionPlayer(players, "0")
	if err != nil {
		return nil, err
	}
	data, err := listedTransactionData(p)
	if err != nil {
		return nil, err
	}
	v, err := requireStrings(data, "transaction_data", "source_type", "destination_type", "destination_team_key", "destination_team_name")
	if err != nil {
		return nil, err
	}
	return &Add{
		TransactionInfo:     info,
		FAABBid:             attrs.Int("faab_bid"),
		Player:              p,
		SourceType:          v[0],
		DestinationType:     v[1],
		DestinationTeamKey:  v[2],
		DestinationTeamName: v[3],
	}, nil
}

func decodeDrop(info TransactionInfo, players json.RawMessage) (*Drop, error) {
	p, err := transactionPlayer(players, "0")
	if err != nil {
		return nil, err
	}
	data, err := bareTransactionData(p)
	if err != nil {
		return nil, err
	}
	v, err := requireStrings(data, "transaction_data", "source_type", "source_team_key", "source_team_name", "destination_type")
	if err != nil {
		return nil, err
	}
	return &Drop{
		TransactionInfo: info,
		Player:          p,
		SourceType:      v[0],
		SourceTeamKey:   v[1],
		SourceTeamName:  v[2],
		DestinationType: v[3],
	}, nil
}

func decodeAddDrop(info TransactionInfo, attrs Attributes, players json.RawMessage) (*AddDrop, error) {
	added, err := transactionPlayer(players, "0")
	if err != nil {
		return nil, err
	}
	droppedRaw, err := dig(players, "transaction", "1", "player")
	if err != nil {
		return nil, err
	}
	dropped, err := DecodePlayer(droppedRaw)
	if err != nil {
		return nil, err
	}
	data, err := listedTransactionData(added)
	if err != nil {
		return nil, err
	}
	v, err := requireStrings(data, "transaction_data", "source_type", "destination_type", "destination_team_key", "destination_team_name")
	if err != nil {
		return nil, err
	}
	return &AddDrop{
		TransactionInfo:     info,
		FAABBid:             attrs.Int("faab_bid"),
		Added:               added,
		Dropped:             dropped,
		SourceType:          v[0],
		DestinationType:     v[1],
		DestinationTeamKey:  v[2],
		DestinationTeamName: v[3],
	}, nil
}

// decodeTrade reads the trade metadata from the info block. The players block
// is an empty list when no players moved, and an indexed collection otherwise.
func decodeTrade(info TransactionInfo, attrs Attributes, players json.RawMessage) (*Trade, error) {
	v, err := requireStrings(attrs, "trade", "trader_team_key", "trader_team_name", "tradee_team_key", "tradee_team_name")
	if err != nil {
		return nil, err
	}
	t := &Trade{
		TransactionInfo: info,
		TraderTeamKey:   v[0],
		TraderTeamName:  v[1],
		TradeeTeamKey:   v[2],
		TradeeTeamName:  v[3],
		Picks:           []Pick{},
		Players:         []*Player{},
	}

	if picks, ok := attrs["picks"]; ok {
		if t.Picks, err = listOf(picks, "trade", "pick", decodePick); err != nil {
			return nil, err
		}
	}

	if kind(players) == '[' {
		return t, nil
	}
	if t.Players, err = indexedOf(players, "trade", "player", DecodePlayer); err != nil {
		return nil, err
	}
	return t, nil
}

func decodePick(raw json.RawMessage) (Pick, error) {
	attrs, err := Flatten(raw)
	if err != nil {
		return Pick{}, badShape("pick", "pick", err)
	}
	v, err := requireStrings(attrs, "pick",
		"source_team_key", "source_team_name",
		"destination_team_key", "destination_team_name",
		"original_team_key", "original_team_name")
	if err != nil {
		return Pick{}, err
	}
	if _, err := requireKey(attrs, "pick", "round"); err != nil {
		return Pick{}, err
	}
	return Pick{
		Round:               attrs.IntOr("round", 0),
		SourceTeamKey:       v[0],
		SourceTeamName:      v[1],
		DestinationTeamKey:  v[2],
		DestinationTeamName: v[3],
		OriginalTeamKey:     v[4],
		OriginalTeamName:    v[5],
	}, nil
}
