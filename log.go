package mindlayout

import "go.uber.org/zap"

// EngineOption configures a new Engine, using the struct-literal-plus-
// functional-options shape idiomatic for anything with more than a
// couple of optional knobs.
type EngineOption func(*Engine)

// WithLogger installs a *zap.Logger the engine uses for non-fatal
// diagnostics: the resolver's convergence warnings. Errors such as an
// invariant violation on load are returned to the caller, not logged.
// The default is zap.NewNop(): silent until the host opts in.
func WithLogger(logger *zap.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLayoutSettings seeds the engine with layout settings other than the
// defaults. LoadDocument overwrites this with the
// document's own settings block.
func WithLayoutSettings(settings LayoutSettings) EngineOption {
	return func(e *Engine) {
		e.settings = settings
	}
}
