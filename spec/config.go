package spec

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/kingrea/metadspy/runtime"
)

// PredictConfig holds the sampling parameters of a Predict module. Nil fields
// are absent and are never forwarded to the runtime.
type PredictConfig struct {
	Temperature *float64 `yaml:"temperature,omitempty"`
	MaxTokens   *int     `yaml:"max_tokens,omitempty"`
	Stop        StopList `yaml:"stop,omitempty"`
}

// Validate normalizes stop and checks the numeric ranges.
func (c *PredictConfig) Validate() error {
	if len(c.Stop) == 0 {
		c.Stop = nil
	}
	if c.Temperature != nil {
		t := *c.Temperature
		if !(t >= 0 && t <= 2) {
			return &ValidationError{Field: "temperature", Reason: fmt.Sprintf("must be in [0,2], got %v", t)}
		}
	}
	if c.MaxTokens != nil && *c.MaxTokens <= 0 {
		return &ValidationError{Field: "max_tokens", Reason: fmt.Sprintf("must be > 0, got %d", *c.MaxTokens)}
	}
	return nil
}

// IsZero reports whether every field is absent.
func (c PredictConfig) IsZero() bool {
	return c.Temperature == nil && c.MaxTokens == nil && len(c.Stop) == 0
}

func (c PredictConfig) apply(kw *runtime.Kwargs) {
	if c.Temperature != nil {
		kw.Set(runtime.KwTemperature, *c.Temperature)
	}
	if c.MaxTokens != nil {
		kw.Set(runtime.KwMaxTokens, *c.MaxTokens)
	}
	if len(c.Stop) > 0 {
		kw.Set(runtime.KwStop, append([]string{}, c.Stop...))
	}
}

// StopList is a list of stop sequences. Documents may give a single string,
// which decodes into a one-element list.
type StopList []string

// UnmarshalYAML accepts a string or a sequence of strings.
func (s *StopList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			*s = nil
			return nil
		}
		if node.ShortTag() != "!!str" {
			return fmt.Errorf("line %d: stop must be a string or a list of strings", node.Line)
		}
		*s = StopList{node.Value}
		return nil
	case yaml.SequenceNode:
		out := make(StopList, 0, len(node.Content))
		for idx, item := range node.Content {
			if item.Kind != yaml.ScalarNode || item.ShortTag() != "!!str" {
				return fmt.Errorf("line %d: stop[%d] must be a string", item.Line, idx)
			}
			out = append(out, item.Value)
		}
		*s = out
		return nil
	default:
		return fmt.Errorf("line %d: stop must be a string or a list of strings", node.Line)
	}
}
