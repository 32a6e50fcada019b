// Package config loads and validates the settings of an inverse model.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lucasmaystre/goinverse/grid"
	"github.com/lucasmaystre/goinverse/kern"
	"github.com/lucasmaystre/goinverse/prior"
	"github.com/lucasmaystre/goinverse/solver"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Smoothness is the Matern parameter nu. In YAML it is a number or one of
// inf, .inf, infinity (any case), all meaning the RBF kernel.
type Smoothness float64

func (s *Smoothness) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("config: nu must be a scalar (line %d)", value.Line)
	}
	switch strings.ToLower(strings.TrimSpace(value.Value)) {
	case "inf", "+inf", ".inf", "+.inf", "infinity":
		*s = Smoothness(math.Inf(1))
		return nil
	}
	v, err := strconv.ParseFloat(value.Value, 64)
	if err != nil {
		return fmt.Errorf("config: nu %q (line %d): %w", value.Value, value.Line, err)
	}
	*s = Smoothness(v)
	return nil
}

func (s Smoothness) String() string {
	if math.IsInf(float64(s), 1) {
		return "inf"
	}
	return strconv.FormatFloat(float64(s), 'g', -1, 64)
}

type Config struct {
	N           int             `yaml:"n" validate:"gte=4"`
	Nu          Smoothness      `yaml:"nu" validate:"gt=0"`
	NoiseStd    float64         `yaml:"noise_std" validate:"gt=0"`
	LengthScale float64         `yaml:"length_scale" validate:"gt=0"`
	Boundary    solver.Boundary `yaml:"boundary"`
	// Seed of the reference field draw.
	ReferenceSeed uint64 `yaml:"reference_seed"`
	// Seed of the observation noise. Nil means ambient randomness.
	NoiseSeed *uint64 `yaml:"noise_seed"`
}

// Default returns a configuration with every optional field filled in.
func Default() Config {
	return Config{
		N:             20,
		Nu:            1.5,
		NoiseStd:      0.01,
		LengthScale:   kern.DefaultLengthScale,
		Boundary:      solver.DefaultBoundary,
		ReferenceSeed: prior.ReferenceSeed,
	}
}

// Parse decodes a YAML document on top of Default and validates it.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Validate checks the field constraints. Failures wrap
// grid.ErrConfiguration and name each offending field and value.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		if math.IsInf(c.NoiseStd, 0) || math.IsInf(c.LengthScale, 0) {
			return fmt.Errorf("%w: noise_std=%v, length_scale=%v must be finite",
				grid.ErrConfiguration, c.NoiseStd, c.LengthScale)
		}
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", grid.ErrConfiguration, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s=%v fails %s=%s", yamlName(fe.StructField()), fe.Value(), fe.Tag(), fe.Param()))
	}
	return fmt.Errorf("%w: %s", grid.ErrConfiguration, strings.Join(msgs, "; "))
}

func yamlName(field string) string {
	switch field {
	case "N":
		return "n"
	case "Nu":
		return "nu"
	case "NoiseStd":
		return "noise_std"
	case "LengthScale":
		return "length_scale"
	}
	return field
}
