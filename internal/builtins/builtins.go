// Package builtins registers the tools, callbacks and interpreters the
// metadspy CLI exposes to module documents.
package builtins

import (
	"github.com/rs/zerolog"

	"github.com/kingrea/metadspy/symbol"
)

// Module paths of the built-in references.
const (
	ToolsModule        = "metadspy.tools"
	CallbacksModule    = "metadspy.callbacks"
	InterpretersModule = "metadspy.interpreters"
)

// Register installs every built-in into reg. The log callback writes to
// logger.
func Register(reg *symbol.Registry, logger zerolog.Logger) error {
	entries := []struct {
		module string
		attr   string
		value  any
	}{
		{ToolsModule, "echo", Echo()},
		{ToolsModule, "clock", Clock(nil)},
		{ToolsModule, "word_count", WordCount()},
		{CallbacksModule, "log", NewLogCallback(logger)},
		{InterpretersModule, "go", NewGoInterpreter()},
	}
	for _, e := range entries {
		if err := reg.Register(e.module, e.attr, e.value); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry holding only the built-ins.
func NewRegistry(logger zerolog.Logger) (*symbol.Registry, error) {
	reg := symbol.NewRegistry()
	if err := Register(reg, logger); err != nil {
		return nil, err
	}
	return reg, nil
}
