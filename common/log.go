package common

import "go.uber.org/zap"

// Log is the package-wide structured logger for everything outside the
// core (spec.md §7: "the core never ... logs"). storage/buffer and
// container/hash never call it; storage/disk's FileManager and the demo
// CLI do. The concurrency stubs do not log.
var Log = mustNewLogger()

func mustNewLogger() *zap.SugaredLogger {
	logger, err := zap.NewDevelopment()
	if err != nil {
		// zap.NewDevelopment only fails on an unwritable stderr, which
		// leaves nothing sensible to log to.
		panic(err)
	}
	return logger.Sugar()
}
