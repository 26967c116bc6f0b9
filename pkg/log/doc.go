/*
Package log provides structured logging for Cairn's placement engine.

Built on zerolog for zero-allocation structured output. The package owns a
single global logger configured once at startup via Init, plus helpers for
attaching the fields that recur throughout the scheduler: component, pool,
chunkserver, and copyset.

# Usage

	log.Init(log.Config{Level: log.InfoLevel, JSONOutput: true})

	logger := log.WithComponent("scheduler")
	logger.Error().
		Str("target", targetID).
		Msg("cannot get chunkserver for migration target")

Console output (human-readable, RFC3339 timestamps) is the default;
JSONOutput switches to newline-delimited JSON for log shipping. Output
defaults to stderr so command results on stdout stay machine-parseable.
*/
package log
