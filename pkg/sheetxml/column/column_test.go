package column

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetxml-go/pkg/sheetxml/errs"
)

func TestName(t *testing.T) {
	tests := []struct {
		index    int
		expected string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
		{16383, "XFD"},
		{18277, "ZZZ"},
		{18278, "AAAA"},
		{-1, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Name(tt.index), "Name(%d)", tt.index)
	}
}

func TestIndex(t *testing.T) {
	tests := []struct {
		name     string
		expected int
	}{
		{"A", 0},
		{"AB", 27},
		{"ZZ", 701},
		{"AAA", 702},
		{"XFD", 16383},
		{"xfd", 16383},
	}

	for _, tt := range tests {
		got, err := Index(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.expected, got, "Index(%q)", tt.name)
	}
}

func TestIndexInvalid(t *testing.T) {
	for _, name := range []string{"", "A1", "$A", " A", "Ä", "\u017f", "\u0131", "\u212a", strings.Repeat("A", 30)} {
		_, err := Index(name)
		assert.ErrorIs(t, err, errs.ErrInvalidArgument, "Index(%q)", name)
	}
}

func TestIndexLongNames(t *testing.T) {
	got, err := Index(strings.Repeat("Z", 13))
	require.NoError(t, err)
	assert.Positive(t, got)

	_, err = Index(strings.Repeat("Z", 14))
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestRoundTrip(t *testing.T) {
	for i := 0; i <= MaxIndex; i++ {
		got, err := Index(Name(i))
		require.NoError(t, err)
		if got != i {
			t.Fatalf("Index(Name(%d)) = %d", i, got)
		}
	}
}

func TestCell(t *testing.T) {
	assert.Equal(t, "A1", Cell(0, 1))
	assert.Equal(t, "AB12", Cell(27, 12))
}
