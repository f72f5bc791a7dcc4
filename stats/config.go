package stats

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/swdee/go-motstats/overlap"
)

// EnvPrefix is the prefix of environment variables overriding the config,
// eg: MOTSTATS_DATA_ROOT
const EnvPrefix = "MOTSTATS"

// ErrInvalidConfig is returned by Config.Validate
var ErrInvalidConfig = errors.New("invalid stats config")

// Config holds the settings of a statistics run
type Config struct {
	// DataRoot is the dataset directory holding <split>/ directories and
	// <split>_seqmap.txt files
	DataRoot string `mapstructure:"data_root"`
	// Splits are walked in order and contribute frame counts
	Splits []string `mapstructure:"splits"`
	// StatSplits are the splits with ground truth, they also contribute
	// identity, pair and overlap counts
	StatSplits []string `mapstructure:"stat_splits"`
	// OverlapThreshold is the IoU a pair must exceed to count as overlapping
	OverlapThreshold float64 `mapstructure:"overlap_threshold"`
	// Method is the IoU definition, "rectangle" or "polygon"
	Method string `mapstructure:"method"`
	// ClassIDs are the ground truth classes kept
	ClassIDs []int `mapstructure:"class_ids"`
	// OutputJSON is the summary JSON file, skipped when empty
	OutputJSON string `mapstructure:"output_json"`
	// OutputSQLite is the summary database, skipped when empty
	OutputSQLite string `mapstructure:"output_sqlite"`
}

// DefaultConfig returns the settings used for DanceTrack
func DefaultConfig() Config {
	return Config{
		Splits:           []string{"train", "val", "test"},
		StatSplits:       []string{"train", "val"},
		OverlapThreshold: 0.5,
		Method:           overlap.MethodRectangle.String(),
		ClassIDs:         []int{1},
	}
}

// LoadConfig reads the config file, when given, and applies MOTSTATS_*
// environment overrides on top of DefaultConfig
func LoadConfig(file string) (Config, error) {

	def := DefaultConfig()

	v := viper.New()
	v.SetDefault("data_root", def.DataRoot)
	v.SetDefault("splits", def.Splits)
	v.SetDefault("stat_splits", def.StatSplits)
	v.SetDefault("overlap_threshold", def.OverlapThreshold)
	v.SetDefault("method", def.Method)
	v.SetDefault("class_ids", def.ClassIDs)
	v.SetDefault("output_json", def.OutputJSON)
	v.SetDefault("output_sqlite", def.OutputSQLite)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)

		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "reading config %s", file)
		}
	}

	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decoding config")
	}

	return cfg, nil
}

// Validate checks the config can drive a run
func (c Config) Validate() error {

	if c.DataRoot == "" {
		return errors.Wrap(ErrInvalidConfig, "data_root is required")
	}

	if len(c.Splits) == 0 {
		return errors.Wrap(ErrInvalidConfig, "at least one split is required")
	}

	for _, s := range c.StatSplits {
		if !c.hasSplit(s) {
			return errors.Wrapf(ErrInvalidConfig, "stat split %q is not in splits", s)
		}
	}

	if c.OverlapThreshold < 0 || c.OverlapThreshold > 1 {
		return errors.Wrapf(ErrInvalidConfig, "overlap_threshold %v outside [0, 1]", c.OverlapThreshold)
	}

	if _, err := overlap.ParseMethod(c.Method); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}

	if len(c.ClassIDs) == 0 {
		return errors.Wrap(ErrInvalidConfig, "at least one class id is required")
	}

	return nil
}

func (c Config) hasSplit(name string) bool {
	for _, s := range c.Splits {
		if s == name {
			return true
		}
	}
	return false
}

// isStatSplit reports whether the split has ground truth statistics
func (c Config) isStatSplit(name string) bool {
	for _, s := range c.StatSplits {
		if s == name {
			return true
		}
	}
	return false
}
