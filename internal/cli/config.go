package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/rpncalc/internal/session"
	"github.com/mesh-intelligence/rpncalc/pkg/rpn"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "RPNCALC"

	// Config keys in config.yaml.
	cfgKeyPrecision       = "precision"
	cfgKeySegmentCapacity = "segment_capacity"
	cfgKeyJournal         = "journal"
	cfgKeyHistory         = "history"
	cfgKeyDataDir         = "data_dir"

	// maxPrecision is the most decimals that still say something about a float64.
	maxPrecision = 17

	// maxSegmentCapacity bounds the slots allocated per stack segment.
	maxSegmentCapacity = 1 << 16
)

// flagKeys maps config keys to the flags that override them.
var flagKeys = map[string]string{
	cfgKeyPrecision:       "precision",
	cfgKeySegmentCapacity: "segment-capacity",
	cfgKeyJournal:         "journal",
	cfgKeyHistory:         "history",
}

// Configuration errors.
var (
	ErrInvalidPrecision       = fmt.Errorf("precision must be between 0 and %d", maxPrecision)
	ErrInvalidSegmentCapacity = fmt.Errorf("segment capacity must be between 1 and %d", maxSegmentCapacity)
)

// settings is the resolved configuration used by every command.
type settings struct {
	configDir       string
	dataDir         string
	precision       int
	segmentCapacity int
	journal         bool
	history         bool
	log             *zap.Logger
}

// loadConfig reads config.yaml from configDir using Viper. Values come from,
// in order of precedence: flags set on cmd, RPNCALC_* environment variables,
// config.yaml, defaults. A missing config.yaml is not an error.
func loadConfig(configDir string, cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyPrecision, session.DefaultPrecision)
	v.SetDefault(cfgKeySegmentCapacity, rpn.DefaultSegmentCapacity)
	v.SetDefault(cfgKeyJournal, false)
	v.SetDefault(cfgKeyHistory, true)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	for key, name := range flagKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// settingsFrom validates the numeric settings held by v.
func settingsFrom(v *viper.Viper) (settings, error) {
	s := settings{
		precision:       v.GetInt(cfgKeyPrecision),
		segmentCapacity: v.GetInt(cfgKeySegmentCapacity),
		journal:         v.GetBool(cfgKeyJournal),
		history:         v.GetBool(cfgKeyHistory),
	}
	if s.precision < 0 || s.precision > maxPrecision {
		return settings{}, fmt.Errorf("%w: got %d", ErrInvalidPrecision, s.precision)
	}
	if s.segmentCapacity < 1 || s.segmentCapacity > maxSegmentCapacity {
		return settings{}, fmt.Errorf("%w: got %d", ErrInvalidSegmentCapacity, s.segmentCapacity)
	}
	return s, nil
}
