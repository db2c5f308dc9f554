package logging

import (
	"strings"

	"go.uber.org/zap"
)

// New builds the process logger. mode "prod"/"production" selects the JSON
// production config; anything else gets the console development config.
func New(mode string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
