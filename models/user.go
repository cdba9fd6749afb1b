package models

import (
	"encoding/json"
)

// User is the logged-in account.
type User struct {
	GUID  string
	Games []*Game
	Teams []*Team
}

// DecodeUser decodes a user array: a guid block followed by optional games or
// teams collections.
func DecodeUser(raw json.RawMessage) (*User, error) {
	infoRaw, subs, err := subResources(raw, "user")
	if err != nil {
		return nil, err
	}
	attrs, err := Flatten(infoRaw)
	if err != nil {
		return nil, badShape("user", "0", err)
	}
	guid, err := requireString(attrs, "user", "guid")
	if err != nil {
		return nil, err
	}

	u := &User{GUID: guid}
	for _, sub := range subs {
		for key, value := range sub {
			switch key {
			case "games":
				u.Games, err = DecodeGames(value)
			case "teams":
				u.Teams, err = indexedOf(value, "user", "team", DecodeTeam)
			}
			if err != nil {
				return nil, err
			}
		}
	}
	return u, nil
}

// DecodeUsers reads the users collection of a users;use_login=1 response and
// returns its first user.
func DecodeUsers(raw json.RawMessage) (*User, error) {
	users, err := indexedOf(raw, "users", "user", DecodeUser)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, missing("users", "0")
	}
	return users[0], nil
}
