package kern

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
)

// Config holds the hyperparameters of a DRW kernel. Nil fields are unset.
// When both the log-scale and the natural-scale form of a parameter are set,
// the log-scale form wins.
type Config struct {
	LogVariance *float64 // log a^2
	Variance    *float64 // a^2
	Amplitude   *float64 // a
	Dimension   *int

	LogLengthScale LengthScale // log l
	LengthScale    LengthScale // l
}

// Keys recognized by FromMap.
const (
	KeyLogVariance    = "loga2"
	KeyVariance       = "variance"
	KeyAmplitude      = "a"
	KeyDimension      = "dim"
	KeyLogLengthScale = "logl"
	KeyLengthScale    = "l"
)

// FromMap builds a Config from untyped options, e.g. {"a": 1, "l": [2, 3]}.
func FromMap(opts map[string]any) (Config, error) {
	var cfg Config
	for key, val := range opts {
		switch key {
		case KeyLogVariance, KeyVariance, KeyAmplitude:
			f, ok := toFloat(val)
			if !ok {
				return Config{}, fmt.Errorf("%w: %q should be a float, got %T",
					ErrInvalidHyperparameter, key, val)
			}
			switch key {
			case KeyLogVariance:
				cfg.LogVariance = &f
			case KeyVariance:
				cfg.Variance = &f
			default:
				cfg.Amplitude = &f
			}
		case KeyDimension:
			f, ok := toFloat(val)
			if !ok || f != float64(int(f)) {
				return Config{}, fmt.Errorf("%w: %q should be an integer, got %v",
					ErrInvalidHyperparameter, key, val)
			}
			dim := int(f)
			cfg.Dimension = &dim
		case KeyLogLengthScale, KeyLengthScale:
			ls, err := ParseLengthScale(val)
			if err != nil {
				return Config{}, fmt.Errorf("%q: %w", key, err)
			}
			if key == KeyLogLengthScale {
				cfg.LogLengthScale = ls
			} else {
				cfg.LengthScale = ls
			}
		default:
			return Config{}, fmt.Errorf("unknown option %q", key)
		}
	}
	return cfg, nil
}

func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	cfg, err := FromMap(raw)
	if err != nil {
		return err
	}
	*c = cfg
	return nil
}

// LoadConfig reads a kernel configuration from a YAML file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
