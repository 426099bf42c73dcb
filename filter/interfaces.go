package filter

import "github.com/s0up4200/cookie/cookie"

// Filter defines the basic interface for day filters
type Filter interface {
	// Evaluate checks if a day matches the filter criteria
	Evaluate(day Day) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Expression returns the original filter expression
	Expression() string

	// Apply returns a new series holding only the matching days, in their
	// original order
	Apply(series *cookie.DateSeries) (*cookie.DateSeries, error)
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}
