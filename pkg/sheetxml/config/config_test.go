package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetxml-go/pkg/sheetxml"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "style.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "simple", cfg.ElementNaming)
	assert.Equal(t, 1, cfg.HeaderRow)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.EmitDataTypeAttr)
	assert.False(t, cfg.IgnoreNullRows)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
emit_data_type_attr: true
emit_cell_position_attr: true
element_naming: header-row
header_row: 3
number_format: "0.###E0"
time_zone: Asia/Tokyo
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.EmitDataTypeAttr)
	assert.False(t, cfg.EmitRowNumberAttr)
	assert.True(t, cfg.EmitCellPositionAttr)
	assert.Equal(t, "header-row", cfg.ElementNaming)
	assert.Equal(t, 3, cfg.HeaderRow)
	assert.Equal(t, "0.###E0", cfg.NumberFormat)
	assert.Equal(t, "Asia/Tokyo", cfg.TimeZone)
}

func TestLoadFileOverridesEnv(t *testing.T) {
	t.Setenv("SHEETXML_ELEMENT_NAMING", "column-letter")
	t.Setenv("SHEETXML_IGNORE_NULL_ROWS", "true")
	t.Setenv("SHEETXML_HEADER_ROW", "2")

	cfg, err := Load(writeConfig(t, "header_row: 4\n"))
	require.NoError(t, err)

	assert.Equal(t, "column-letter", cfg.ElementNaming)
	assert.True(t, cfg.IgnoreNullRows)
	assert.Equal(t, 4, cfg.HeaderRow)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown naming", "element_naming: by-magic\n"},
		{"zero header row", "header_row: 0\n"},
		{"bad log level", "log_level: loud\n"},
		{"bad time zone", "time_zone: Mars/Olympus\n"},
		{"not yaml", "header_row: [1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, sheetxml.ErrInvalidArgument)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFromEnvInvalid(t *testing.T) {
	t.Setenv("SHEETXML_EMIT_DATA_TYPE_ATTR", "perhaps")
	_, err := FromEnv()
	assert.ErrorIs(t, err, sheetxml.ErrInvalidArgument)

	t.Setenv("SHEETXML_EMIT_DATA_TYPE_ATTR", "1")
	t.Setenv("SHEETXML_HEADER_ROW", "two")
	_, err = FromEnv()
	assert.ErrorIs(t, err, sheetxml.ErrInvalidArgument)
}

func TestToOptions(t *testing.T) {
	cfg := &Config{
		EmitRowNumberAttr: true,
		DateFormat:        "yyyy/MM/dd",
		ElementNaming:     "Header-Row",
		HeaderRow:         2,
		XMLEncoding:       "ISO-8859-1",
		IgnoreNullRows:    true,
		TimeZone:          "Asia/Tokyo",
	}
	opts, err := cfg.ToOptions()
	require.NoError(t, err)

	assert.Equal(t, sheetxml.NamingHeaderRow, opts.Style.NamingStrategy())
	assert.Equal(t, 2, opts.Style.HeaderRowNumber())
	assert.True(t, opts.Style.ShouldEmitRowNumber())
	assert.False(t, opts.Style.ShouldEmitType())
	assert.True(t, opts.ShouldIgnoreNullRows())
	assert.Equal(t, "ISO-8859-1", opts.Encoding("UTF-16"))
	assert.Equal(t, "yyyy/MM/dd", opts.Style.DateFormat)

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, tokyo.String(), opts.Location.String())
}

func TestToOptionsDefaultLocation(t *testing.T) {
	opts, err := (&Config{HeaderRow: 1}).ToOptions()
	require.NoError(t, err)
	assert.Nil(t, opts.Location)
	assert.Equal(t, sheetxml.NamingSimple, opts.Style.NamingStrategy())
}

func TestReadDoesNotValidate(t *testing.T) {
	t.Setenv("SHEETXML_HEADER_ROW", "0")

	cfg, err := Read("")
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.HeaderRow)
	assert.ErrorIs(t, cfg.Validate(), sheetxml.ErrInvalidArgument)

	cfg.HeaderRow = 2
	assert.NoError(t, cfg.Validate())

	_, err = Load("")
	assert.ErrorIs(t, err, sheetxml.ErrInvalidArgument)
}
