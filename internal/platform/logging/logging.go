package logging

import (
	"log"
	"os"

	"go.uber.org/zap"
)

// Init builds the process-wide zap logger and installs it as the global,
// so packages log via zap.S() / zap.L().
func Init() {
	var cfg zap.Config
	if os.Getenv("APP_ENV") == "development" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	zap.ReplaceGlobals(logger)
}

// Sync flushes buffered log entries; call on shutdown.
func Sync() {
	_ = zap.L().Sync()
}
