package parser

import "time"

// Option represents a parser configuration option
type Option func(*config)

// config holds parser configuration
type config struct {
	telemetry *Telemetry
	debug     bool
}

// WithTelemetry records counters and per-phase timings into the given
// struct during the parse. Zero overhead when not supplied.
func WithTelemetry(t *Telemetry) Option {
	return func(c *config) {
		c.telemetry = t
	}
}

// WithDebugPaths enables nonterminal enter/exit tracing to stderr
// (development only). The ESTA_DEBUG_PARSER environment variable
// enables the same tracing without code changes.
func WithDebugPaths() Option {
	return func(c *config) {
		c.debug = true
	}
}

// Telemetry holds parse performance metrics
type Telemetry struct {
	LexTime        time.Duration // Time spent lexing
	ParseTime      time.Duration // Time spent parsing
	TotalTime      time.Duration // Lex + parse
	TokenCount     int           // Number of tokens, including EOF
	StatementCount int           // Number of top-level statements
}
