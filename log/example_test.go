package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/exprx/log"
)

func ExampleMake() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelDebug),
		log.WithTimeLayout("none"),
	)

	logger.Debug("compiled", slog.String("source", "1 + 2"))
	logger.Trace("not shown")

	// Output:
	// level=DEBUG msg=compiled source="1 + 2"
}

func ExampleConfig() {
	log.Config(
		log.WithOutput(os.Stdout),
		log.WithFormat(log.FormatJSON),
		log.WithTimeLayout("none"),
	)

	log.Info("ready", slog.Int("functions", 9))

	// Output:
	// {"level":"INFO","msg":"ready","functions":9}
}
