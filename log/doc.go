// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Loggers are configured once, at creation time, with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("kitchen"),
//		log.WithCaller(true))
//
// Attributes are typed [slog.Attr] values:
//
//	logger = logger.With(slog.String("component", "template"))
//	logger.Info("resolved", slog.Int("markers", 3))
//
// Each level has a context-aware variant. Context-unaware variants use
// [DefaultContextProvider].
//
// The package also keeps a default logger, reconfigured with [Config] and
// used by the package-level functions such as [Info] and [WarnContext].
//
// [LevelTrace] sits below [LevelDebug]. Expression compilation and
// evaluation details are logged at trace level.
//
// Two output formats are supported: [FormatText] (default) and
// [FormatJSON]. With [WithPretty], text output is colorized with lipgloss
// and JSON output is indented.
package log
