// Package cli contains the command line interface for exprx.
//
// # Usage
//
//	exprx [flags] <command> [args]
//
// Commands:
//
//	eval     Evaluate an expression (default)
//	render   Resolve the <? ... ?> markers of a template
//	markers  List the markers of a template
//	list     List extension functions and constants
//	repl     Start an interactive evaluator
//	init     Write the current flag values to the configuration file
//
// # Context
//
// The --context (-c) flag names YAML or JSON files whose contents are bound
// to $. Objects from several files are merged, later files winning; '-'
// reads stdin last. Commands that evaluate accept --set key=value to assign
// individual values, using dots for nested keys:
//
//	exprx -c user.yaml eval '$.name + " is " + str($.age)'
//	exprx render --ext -S name=ada 'Hello <? upper($.name) ?>, it is day <? day("UTC") ?>'
//
// # Configuration File
//
// Flag defaults are read from $XDG_CONFIG_HOME/exprx/config.yaml (see
// [os.UserConfigDir]). Keys are flag names; nested maps are joined with
// hyphens. The ext map accepts loose switches:
//
//	log:
//	  level: debug
//	  pretty: false
//	ext:
//	  datetime: off
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Extension Options
//
//   - --[no-]ext-maths, --[no-]ext-datetime, --[no-]ext-cast, --[no-]ext-regex
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o exprx .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/exprx/pprof)
package cli
