// Command linetrackctl inspects a linetrack data file from the shell
package main

import (
	"os"

	"linetrack/internal/platform/logger"
	ptime "linetrack/internal/platform/time"
)

func main() {
	logger.Init(logger.FromEnv("linetrackctl"))
	if err := newRootCmd(os.Stdout, ptime.System{}).Execute(); err != nil {
		logger.Get().Error().Err(err).Msg("linetrackctl failed")
		os.Exit(1)
	}
}
