package sheetxml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetxml-go/pkg/sheetxml/format"
)

func fixedID() string { return "0001" }

func TestSimpleAndColumnLetterNames(t *testing.T) {
	sheet := newSheet("S", newRow(0, strCell(0, "a")))
	c := Classifier{Policy: format.Default()}

	names, err := ColumnNames(sheet, 3, DefaultOptions(), c)
	require.NoError(t, err)
	assert.Equal(t, []string{"cell", "cell", "cell"}, names)

	opts := DefaultOptions()
	opts.Style.Naming = NamingColumnLetter
	names, err = ColumnNames(sheet, 28, opts, c)
	require.NoError(t, err)
	assert.Equal(t, "A", names[0])
	assert.Equal(t, "Z", names[25])
	assert.Equal(t, "AB", names[27])
}

func TestHeaderRowNames(t *testing.T) {
	sheet := newSheet("S",
		newRow(0, strCell(0, "Title")),
		newRow(1, strCell(0, "Name"), strCell(1, "Column Zee!"), strCell(2, ""), numCell(3, 42), blankCell(4)),
	)
	opts := DefaultOptions()
	opts.Style.Naming = NamingHeaderRow
	opts.Style.HeaderRow = Int(2)
	opts.IDGenerator = fixedID

	names, err := ColumnNames(sheet, 5, opts, Classifier{Policy: format.Default()})
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Column_Zee_", "blank_0001", "_42", "blank_0001"}, names)
}

func TestHeaderRowNamesMissing(t *testing.T) {
	c := Classifier{Policy: format.Default()}
	opts := DefaultOptions()
	opts.Style.Naming = NamingHeaderRow

	_, err := ColumnNames(newSheet("S", newRow(1, strCell(0, "x"))), 1, opts, c)
	assert.ErrorIs(t, err, ErrMissingHeader)

	_, err = ColumnNames(newSheet("S", newRow(0, strCell(0, "x"))), 2, opts, c)
	assert.ErrorIs(t, err, ErrMissingHeader)
	assert.Contains(t, err.Error(), "B1")
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Column Zee!", "Column_Zee_"},
		{`a\b?c*d:e f|g&h"i'j<k>l)m(n/o`, "a_b_c_d_e_f_g_h_i_j_k_l_m_n_o"},
		{"Price.Net-2", "Price.Net-2"},
		{"1st", "_1st"},
		{"-x", "_-x"},
		{"héllo", "héllo"},
		{"", "blank_0001"},
		{" ", "_"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, SanitizeName(tt.input, fixedID), "SanitizeName(%q)", tt.input)
	}
}

func TestDefaultIDGenerator(t *testing.T) {
	gen := DefaultOptions().idGenerator()
	a, b := gen(), gen()
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
	assert.Regexp(t, "^blank_[0-9a-f]{32}$", SanitizeName("", gen))
}

func TestParseNaming(t *testing.T) {
	for input, expected := range map[string]Naming{
		"":              NamingSimple,
		"simple":        NamingSimple,
		"Column-Letter": NamingColumnLetter,
		" header-row ":  NamingHeaderRow,
	} {
		got, err := ParseNaming(input)
		require.NoError(t, err)
		assert.Equal(t, expected, got)
	}
	_, err := ParseNaming("positional")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
