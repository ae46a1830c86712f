package recon

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. XTABRECON_NUMERIC_TOLERANCE.
const EnvPrefix = "XTABRECON"

// SetDefaults registers the scalar defaults of DefaultConfig on v.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("numeric_tolerance", d.NumericTolerance)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("sheet_timeout", d.SheetTimeout)

	v.SetDefault("fuzzy.level_threshold", d.Fuzzy.LevelThreshold)
	v.SetDefault("fuzzy.accept_threshold", d.Fuzzy.AcceptThreshold)

	v.SetDefault("normalize.year_min", d.Normalize.YearMin)
	v.SetDefault("normalize.year_max", d.Normalize.YearMax)

	v.SetDefault("parser.round_to_displayed", d.Parser.RoundToDisplayed)
	v.SetDefault("parser.region.margin", d.Parser.Region.Margin)
	v.SetDefault("parser.region.marker_scan_rows", d.Parser.Region.MarkerScanRows)
	v.SetDefault("parser.header.min_label_length", d.Parser.Header.MinLabelLength)
	v.SetDefault("parser.header.number_header_max", d.Parser.Header.NumberHeaderMax)
}

// NewViper returns a viper instance with defaults and environment overrides.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// LoadWithViper decodes the configuration held by v over DefaultConfig, so
// tables absent from v keep their defaults.
func LoadWithViper(v *viper.Viper) (Config, error) {
	cfg := DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to unmarshal config")
	}
	if cfg.NumericTolerance < 0 {
		return Config{}, errors.Newf("numeric_tolerance must not be negative, got %v", cfg.NumericTolerance)
	}
	return cfg, nil
}

// LoadConfig reads a TOML config file. An empty path yields the defaults
// with environment overrides applied.
func LoadConfig(path string) (Config, error) {
	v := NewViper()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}
	return LoadWithViper(v)
}
