package filter

import (
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/s0up4200/cookie/cookie"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	envPool    *sync.Pool
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache(size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// WithClock replaces the time source of the now, daysAgo and daysSince
// helpers
func WithClock(now func() time.Time) ExprCompilerOption {
	return func(c *exprCompiler) {
		c.now = now
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: make(map[string]any),
		now:         time.Now,
		envPool:     &sync.Pool{},
	}

	for _, opt := range opts {
		opt(c)
	}

	custom := c.helperFuncs
	c.helperFuncs = createHelperFunctions(c.now)
	maps.Copy(c.helperFuncs, custom)

	c.envPool.New = func() any {
		env := make(map[string]any, len(c.helperFuncs)+4)
		maps.Copy(env, c.helperFuncs)
		return env
	}

	return c
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
	now         func() time.Time
	cache       *lruCache
	envPool     *sync.Pool // Pool for environment maps
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
			Position:   -1,
		}
	}

	// Check cache if enabled
	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// Type check against the helpers and a prototype day
	env := make(map[string]any, len(c.helperFuncs)+4)
	maps.Copy(env, c.helperFuncs)
	setDay(env, dayPrototype)

	program, err := expr.Compile(expression,
		expr.Env(env),
		expr.AsBool(), // Ensure boolean result
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Position:   -1,
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		envPool:    c.envPool,
	}

	// Cache if enabled
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

// Evaluate evaluates the filter against a day. Days that fail to evaluate
// do not match.
func (f *exprFilter) Evaluate(day Day) bool {
	env := f.envPool.Get().(map[string]any)
	defer f.envPool.Put(env)

	ok, err := f.run(env, day)
	return err == nil && ok
}

// Apply evaluates the filter against every day of series
func (f *exprFilter) Apply(series *cookie.DateSeries) (*cookie.DateSeries, error) {
	env := f.envPool.Get().(map[string]any)
	defer f.envPool.Put(env)

	out := cookie.NewDateSeries()
	var evalErr error
	index := 0
	series.Each(func(date cookie.Date, count int64) bool {
		day := Day{Date: date, Count: count, Index: index}
		index++

		ok, err := f.run(env, day)
		if err != nil {
			evalErr = &EvaluationError{
				Expression: f.expression,
				Date:       date.String(),
				Reason:     "failed to evaluate expression",
				Err:        err,
			}
			return false
		}
		if ok {
			out.Set(date, count)
		}
		return true
	})
	if evalErr != nil {
		return nil, evalErr
	}

	return out, nil
}

func (f *exprFilter) run(env map[string]any, day Day) (bool, error) {
	setDay(env, day)

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, err
	}

	// Result is guaranteed to be bool due to AsBool() option during compilation
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// createHelperFunctions creates the helper functions available to every
// expression
func createHelperFunctions(now func() time.Time) map[string]any {
	today := func() time.Time {
		return cookie.DateOf(now().UTC()).Time()
	}

	return map[string]any{
		// Date helpers, all at UTC midnight like the series dates
		"daysAgo": func(days int) time.Time {
			return today().AddDate(0, 0, -days)
		},
		"daysSince": func(t time.Time) int {
			return int(today().Sub(t).Hours() / 24)
		},
		"parseDate": func(dateStr string) (time.Time, error) {
			d, err := cookie.ParseDate(dateStr)
			if err != nil {
				return time.Time{}, err
			}
			return d.Time(), nil
		},
		"now": now,
		// String helpers
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}
