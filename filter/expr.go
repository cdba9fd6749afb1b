package filter

import (
	"maps"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rs/zerolog"

	"github.com/s0up4200/yfantasy/models"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	extra      map[string]any
	logger     zerolog.Logger
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[CompiledFilter](size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.extra, funcs)
	}
}

// WithLogger logs evaluation failures at debug level
func WithLogger(logger zerolog.Logger) ExprCompilerOption {
	return func(c *exprCompiler) {
		c.logger = logger
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) Compiler {
	c := &exprCompiler{
		extra:  make(map[string]any),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	extra  map[string]any
	cache  *lruCache[CompiledFilter]
	logger zerolog.Logger
}

// Compile compiles an expression into an executable filter. The expression
// is type-checked against the player environment, so unknown names fail here.
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(playerEnvironment(&models.Player{}, c.extra)),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		extra:      c.extra,
		logger:     c.logger,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}
	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Evaluate evaluates the filter against a player. Runtime errors count as
// no match.
func (f *exprFilter) Evaluate(player *models.Player) bool {
	if player == nil {
		return false
	}

	result, err := expr.Run(f.program, playerEnvironment(player, f.extra))
	if err != nil {
		f.logger.Debug().
			Err(&EvaluationError{Expression: f.expression, PlayerKey: player.Key, Err: err}).
			Msg("Filter evaluation failed")
		return false
	}
	return result.(bool)
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// IsThreadSafe indicates that expr filters are thread-safe
func (f *exprFilter) IsThreadSafe() bool {
	return true
}

// addStringHelpers adds the player-independent helpers
func addStringHelpers(env map[string]any) {
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
}

// playerEnvironment builds the evaluation environment for one player.
// Optional sub-resources read as zero values when absent.
func playerEnvironment(p *models.Player, extra map[string]any) map[string]any {
	env := make(map[string]any, 40+len(extra))
	addStringHelpers(env)

	env["Player"] = p
	env["Key"] = p.Key
	env["ID"] = p.ID
	env["Name"] = p.FullName
	env["FirstName"] = p.FirstName
	env["LastName"] = p.LastName
	env["Team"] = p.EditorialTeamAbbr
	env["TeamName"] = p.EditorialTeamName
	env["Position"] = p.DisplayPosition
	env["PrimaryPosition"] = p.PrimaryPosition
	env["PositionType"] = p.PositionType
	env["Positions"] = p.EligiblePositions
	env["Status"] = p.Status
	env["Undroppable"] = p.IsUndroppable

	env["PercentOwned"] = derefFloat(percentOwned(p))
	env["Points"] = derefFloat(points(p))
	env["Owned"] = p.Ownership.Owned()
	env["OwnerTeamKey"] = ownerTeamKey(p)
	env["SelectedPosition"] = selectedPosition(p)

	env["stat"] = createStatFunc(p.Stats)
	env["hasStat"] = createHasStatFunc(p.Stats)
	env["hasPosition"] = createHasPositionFunc(p.EligiblePositions)
	env["ownedByTeam"] = func() bool { return p.Ownership.Owned() }
	env["ownedBy"] = createOwnedByFunc(ownerTeamKey(p))
	env["injured"] = func() bool { return p.Status != "" || p.OnDisabledList }

	maps.Copy(env, extra)
	return env
}

func derefFloat(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func percentOwned(p *models.Player) *float64 {
	if p.PercentOwned == nil {
		return nil
	}
	return p.PercentOwned.Value
}

func points(p *models.Player) *float64 {
	if p.Points == nil {
		return nil
	}
	return p.Points.Total
}

func ownerTeamKey(p *models.Player) string {
	if p.Ownership == nil {
		return ""
	}
	return p.Ownership.OwnerTeamKey
}

func selectedPosition(p *models.Player) string {
	if p.SelectedPosition == nil {
		return ""
	}
	return p.SelectedPosition.Position
}

func createStatFunc(stats *models.PlayerStats) func(string) float64 {
	return func(id string) float64 {
		if stats == nil {
			return 0
		}
		return derefFloat(stats.Values.Float(id))
	}
}

func createHasStatFunc(stats *models.PlayerStats) func(string) bool {
	return func(id string) bool {
		if stats == nil {
			return false
		}
		_, ok := stats.Values[id]
		return ok
	}
}

func createHasPositionFunc(positions []string) func(string) bool {
	upper := make([]string, len(positions))
	for i, pos := range positions {
		upper[i] = strings.ToUpper(pos)
	}
	return func(pos string) bool {
		return slices.Contains(upper, strings.ToUpper(pos))
	}
}

func createOwnedByFunc(owner string) func(string) bool {
	return func(teamKey string) bool {
		return owner != "" && owner == teamKey
	}
}
