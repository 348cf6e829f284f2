package sheetxml

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetxml-go/pkg/sheetxml/format"
	"github.com/ukaji3/sheetxml-go/pkg/sheetxml/models"
)

func TestClassify(t *testing.T) {
	c := Classifier{Policy: format.Default()}
	tests := []struct {
		name     string
		cell     *models.CellData
		wantType ValueType
		wantText string
	}{
		{"blank", blankCell(0), TypeBlank, ""},
		{"boolean", boolCell(0, true), TypeBoolean, "true"},
		{"numeric", numCell(0, 1.5), TypeNumeric, "1.5"},
		{"integral numeric", numCell(0, 42), TypeNumeric, "42"},
		{"date", dateCell(0, 45356.25), TypeDate, "2024-03-05T06:00:00+0000"},
		{"string", strCell(0, "Acme"), TypeString, "Acme"},
		{"error", &models.CellData{Kind: models.CellError, Err: models.ErrorRef}, TypeError, "#REF!"},
		{
			"formula numeric",
			&models.CellData{Kind: models.CellFormula, ResultKind: models.CellNumeric, Number: 4},
			TypeNumeric, "4",
		},
		{
			"formula date",
			&models.CellData{Kind: models.CellFormula, ResultKind: models.CellNumeric, Number: 45356, DateFormatted: true},
			TypeDate, "2024-03-05T00:00:00+0000",
		},
		{
			"formula text",
			&models.CellData{Kind: models.CellFormula, ResultKind: models.CellString, Text: "ab"},
			TypeFormula, "ab",
		},
		{
			"formula boolean",
			&models.CellData{Kind: models.CellFormula, ResultKind: models.CellBoolean, Bool: false},
			TypeFormula, "false",
		},
		{
			"formula error",
			&models.CellData{Kind: models.CellFormula, ResultKind: models.CellError, Err: models.ErrorDiv0},
			TypeFormula, "#DIV/0!",
		},
		{
			"malformed formula with numeric result",
			&models.CellData{Kind: models.CellFormula, Malformed: true, ResultKind: models.CellNumeric, Number: 7, DateFormatted: true},
			TypeNumeric, "7",
		},
		{
			"malformed formula with error result",
			&models.CellData{Kind: models.CellFormula, Malformed: true, ResultKind: models.CellError, Err: models.ErrorName},
			TypeFormula, "#NAME?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := c.Classify(tt.cell, true)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, v.Type)
			assert.Equal(t, tt.wantText, v.Text)
		})
	}
}

func TestClassifyAbsent(t *testing.T) {
	c := Classifier{Policy: format.Default()}
	v, err := c.Classify(nil, false)
	require.NoError(t, err)
	assert.Equal(t, TypeBlank, v.Type)
	assert.Equal(t, "", v.Text)
	assert.Equal(t, "blank", v.Type.String())
}

func TestClassifyDateWinsOverNumeric(t *testing.T) {
	c := Classifier{Policy: format.Default()}
	for _, serial := range []float64{1, 45356, 45356.75} {
		v, err := c.Classify(dateCell(0, serial), true)
		require.NoError(t, err)
		assert.Equal(t, TypeDate, v.Type, "serial %v", serial)
	}
}

func TestClassifyErrors(t *testing.T) {
	c := Classifier{Policy: format.Default()}

	_, err := c.Classify(&models.CellData{Kind: models.CellUnknown}, true)
	assert.ErrorIs(t, err, ErrUnsupportedCellKind)
	assert.Contains(t, err.Error(), "unknown(0)")

	_, err = c.Classify(&models.CellData{Kind: models.CellFormula}, true)
	assert.ErrorIs(t, err, ErrUnsupportedCellKind)

	_, err = c.Classify(numCell(0, math.NaN()), true)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestClassifyInvalidDateSerialIsNumeric(t *testing.T) {
	c := Classifier{Policy: format.Default()}
	for serial, text := range map[float64]string{-5: "-5", -0.25: "-0.25", 3e6: "3000000"} {
		v, err := c.Classify(dateCell(0, serial), true)
		require.NoError(t, err)
		assert.Equal(t, TypeNumeric, v.Type, "serial %v", serial)
		assert.Equal(t, text, v.Text)
	}
}

func TestClassifyEarlySerials(t *testing.T) {
	c := Classifier{Policy: format.Default()}
	tests := map[float64]string{
		1:  "1900-01-01T00:00:00+0000",
		5:  "1900-01-05T00:00:00+0000",
		59: "1900-02-28T00:00:00+0000",
		60: "1900-03-01T00:00:00+0000",
		61: "1900-03-01T00:00:00+0000",
	}
	for serial, expected := range tests {
		v, err := c.Classify(dateCell(0, serial), true)
		require.NoError(t, err)
		assert.Equal(t, TypeDate, v.Type)
		assert.Equal(t, expected, v.Text, "serial %v", serial)
	}
}

func TestClassifyDateSystems(t *testing.T) {
	c := Classifier{Policy: format.Default(), Date1904: true}
	v, err := c.Classify(dateCell(0, 0), true)
	require.NoError(t, err)
	assert.Equal(t, "1904-01-01T00:00:00+0000", v.Text)
}

func TestClassifyDateLocation(t *testing.T) {
	policy, err := format.New(format.Config{Location: time.FixedZone("CET", 3600)})
	require.NoError(t, err)
	c := Classifier{Policy: policy}

	v, err := c.Classify(dateCell(0, 45356.25), true)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05T06:00:00+0100", v.Text)
	assert.Equal(t, 6, v.Time.Hour())
}

func TestClassifyIsDeterministic(t *testing.T) {
	policy, err := format.New(format.Config{NumberPattern: "0.###E0"})
	require.NoError(t, err)
	c := Classifier{Policy: policy}
	cell := numCell(0, 1234.5678)

	first, err := c.Classify(cell, true)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := c.Classify(cell, true)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, "1.235E3", first.Text)
}

func TestValueTypeString(t *testing.T) {
	tags := map[ValueType]string{
		TypeNumeric: "numeric",
		TypeDate:    "date",
		TypeString:  "string",
		TypeBoolean: "boolean",
		TypeError:   "error",
		TypeFormula: "formula",
		TypeBlank:   "blank",
	}
	for typ, tag := range tags {
		assert.Equal(t, tag, typ.String())
	}
}
