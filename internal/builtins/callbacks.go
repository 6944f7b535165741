package builtins

import "github.com/rs/zerolog"

// LogCallback records module lifecycle events.
type LogCallback struct {
	logger zerolog.Logger
}

func NewLogCallback(logger zerolog.Logger) *LogCallback {
	return &LogCallback{logger: logger}
}

// OnStart is called before a module runs.
func (c *LogCallback) OnStart(module string, inputs map[string]any) {
	c.logger.Debug().Str("module", module).Fields(inputs).Msg("module started")
}

// OnEnd is called after a module ran. err is nil on success.
func (c *LogCallback) OnEnd(module string, outputs map[string]any, err error) {
	if err != nil {
		c.logger.Error().Err(err).Str("module", module).Msg("module failed")
		return
	}
	c.logger.Debug().Str("module", module).Fields(outputs).Msg("module finished")
}
