package shader

// ProgramBuilderOption is a function that configures a Program during construction.
type ProgramBuilderOption func(*Program)

// WithPending marks the program as not ready regardless of its id. The loader
// calls Resolve once the program has been linked.
//
// Returns:
//   - ProgramBuilderOption: a function that clears the program's readiness
func WithPending() ProgramBuilderOption {
	return func(p *Program) {
		p.SetReady(false)
	}
}
