// Package config loads conversion settings from a YAML file, a .env file and
// SHEETXML_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/ukaji3/sheetxml-go/pkg/sheetxml"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by FromEnv.
const EnvPrefix = "SHEETXML_"

// Config holds the conversion settings. Field tags name the YAML keys; the
// matching environment variables are the upper-cased keys with EnvPrefix.
type Config struct {
	EmitDataTypeAttr     bool   `yaml:"emit_data_type_attr"`
	EmitRowNumberAttr    bool   `yaml:"emit_row_number_attr"`
	EmitCellPositionAttr bool   `yaml:"emit_cell_position_attr"`
	DateFormat           string `yaml:"date_format"`
	NumberFormat         string `yaml:"number_format"`
	ElementNaming        string `yaml:"element_naming" validate:"omitempty,oneof=simple column-letter header-row"`
	HeaderRow            int    `yaml:"header_row" validate:"min=1"`
	XMLEncoding          string `yaml:"xml_encoding"`
	IgnoreNullRows       bool   `yaml:"ignore_null_rows"`
	TimeZone             string `yaml:"time_zone"`
	LogLevel             string `yaml:"log_level" validate:"omitempty,oneof=panic fatal error warn warning info debug trace"`
}

// Load reads the configuration like Read and validates it.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read builds a Config from the environment and then overlays the YAML file
// at path, if path is not empty. Keys missing from the file keep their
// environment value. The result is not validated, so callers can apply
// further overrides first.
func Read(path string) (*Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: failed to parse config %s: %v", sheetxml.ErrInvalidArgument, path, err)
		}
	}
	return cfg, nil
}

// FromEnv reads SHEETXML_* variables, falling back to the defaults.
func FromEnv() (*Config, error) {
	cfg := &Config{
		DateFormat:    getEnv("DATE_FORMAT", ""),
		NumberFormat:  getEnv("NUMBER_FORMAT", ""),
		ElementNaming: getEnv("ELEMENT_NAMING", string(sheetxml.NamingSimple)),
		XMLEncoding:   getEnv("XML_ENCODING", ""),
		TimeZone:      getEnv("TIME_ZONE", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.EmitDataTypeAttr, err = getEnvBool("EMIT_DATA_TYPE_ATTR", false); err != nil {
		return nil, err
	}
	if cfg.EmitRowNumberAttr, err = getEnvBool("EMIT_ROW_NUMBER_ATTR", false); err != nil {
		return nil, err
	}
	if cfg.EmitCellPositionAttr, err = getEnvBool("EMIT_CELL_POSITION_ATTR", false); err != nil {
		return nil, err
	}
	if cfg.IgnoreNullRows, err = getEnvBool("IGNORE_NULL_ROWS", false); err != nil {
		return nil, err
	}
	if cfg.HeaderRow, err = getEnvInt("HEADER_ROW", 1); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and that the time zone is known.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("%w: invalid config: %s", sheetxml.ErrInvalidArgument, strings.Join(msgs, ", "))
		}
		return fmt.Errorf("%w: invalid config: %v", sheetxml.ErrInvalidArgument, err)
	}
	if _, err := c.location(); err != nil {
		return err
	}
	return nil
}

// ToOptions maps the configuration onto conversion options.
func (c *Config) ToOptions() (sheetxml.Options, error) {
	naming, err := sheetxml.ParseNaming(c.ElementNaming)
	if err != nil {
		return sheetxml.Options{}, err
	}
	loc, err := c.location()
	if err != nil {
		return sheetxml.Options{}, err
	}

	opts := sheetxml.DefaultOptions()
	opts.Style = sheetxml.Style{
		EmitTypeAttr:         sheetxml.Bool(c.EmitDataTypeAttr),
		EmitRowNumberAttr:    sheetxml.Bool(c.EmitRowNumberAttr),
		EmitCellPositionAttr: sheetxml.Bool(c.EmitCellPositionAttr),
		Naming:               naming,
		HeaderRow:            sheetxml.Int(c.HeaderRow),
		DateFormat:           c.DateFormat,
		NumberFormat:         c.NumberFormat,
		XMLEncoding:          c.XMLEncoding,
	}
	opts.IgnoreNullRows = sheetxml.Bool(c.IgnoreNullRows)
	opts.Location = loc
	return opts, nil
}

func (c *Config) location() (*time.Location, error) {
	if c.TimeZone == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("%w: time zone %q: %v", sheetxml.ErrInvalidArgument, c.TimeZone, err)
	}
	return loc, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(EnvPrefix + key); exists {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value, exists := os.LookupEnv(EnvPrefix + key)
	if !exists || value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%w: %s%s=%q is not a boolean", sheetxml.ErrInvalidArgument, EnvPrefix, key, value)
	}
	return b, nil
}

func getEnvInt(key string, fallback int) (int, error) {
	value, exists := os.LookupEnv(EnvPrefix + key)
	if !exists || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s%s=%q is not an integer", sheetxml.ErrInvalidArgument, EnvPrefix, key, value)
	}
	return n, nil
}
