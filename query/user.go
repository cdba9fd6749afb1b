package query

import (
	"context"

	"github.com/s0up4200/yfantasy/models"
)

// UserQuery builds a query for users;use_login=1.
type UserQuery struct {
	node
}

// Meta returns the user without sub-resources.
func (q UserQuery) Meta() Terminal[*models.User] {
	return userTerminal(q.node)
}

// Games adds the games the user has played.
func (q UserQuery) Games() Terminal[*models.User] {
	return userTerminal(q.with("/games"))
}

// Teams adds the teams the user manages.
func (q UserQuery) Teams() Terminal[*models.User] {
	return userTerminal(q.with("/teams"))
}

// Get fetches the user without sub-resources.
func (q UserQuery) Get(ctx context.Context) (*models.User, error) {
	return q.Meta().Get(ctx)
}

func userTerminal(n node) Terminal[*models.User] {
	return terminal(n, "users", models.DecodeUsers)
}
