package filter

import (
	"context"

	"github.com/s0up4200/yfantasy/models"
)

// Filter defines the basic interface for player filters
type Filter interface {
	// Evaluate checks if a player matches the filter criteria
	Evaluate(player *models.Player) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Expression returns the original filter expression
	Expression() string

	// IsThreadSafe indicates if the filter can be evaluated concurrently
	IsThreadSafe() bool
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// Evaluator evaluates filters against players
type Evaluator interface {
	// Evaluate returns the players matching filter, in input order
	Evaluate(ctx context.Context, filter CompiledFilter, players []*models.Player) ([]*models.Player, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}
