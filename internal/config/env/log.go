package env

import (
	"lootbox_backend/internal/config"
	"os"
	"strconv"
)

const logVerboseEnvName = "LOG_VERBOSE"

type logConfig struct {
	verbose bool
}

// NewLogConfig - info и warning пишутся в stdout, пока LOG_VERBOSE не выключен явно
func NewLogConfig() config.LogConfig {
	verbose := true
	if v, err := strconv.ParseBool(os.Getenv(logVerboseEnvName)); err == nil {
		verbose = v
	}
	return &logConfig{verbose: verbose}
}

func (cfg *logConfig) Verbose() bool {
	return cfg.verbose
}
