// Package cmd implements the exprx subcommands: eval, render, markers, list,
// init, and repl.
//
// Commands receive their [context.Context] and the [ext.Config] selected by
// the global extension flags through kong bindings. Context files named by
// the global --context flag are attached with [WithContextFiles] and decoded
// on demand; standard streams can be redirected with [WithStreams].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)
