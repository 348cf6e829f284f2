package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetxml-go/pkg/sheetxml/errs"
	"github.com/ukaji3/sheetxml-go/pkg/sheetxml/models"
)

func sampleTree(text string) *models.Node {
	root := models.NewNode("spreadsheet")
	sheet := root.AddChild(models.NewNode("sheet"))
	sheet.SetAttr("name", "Sheet1")
	row := sheet.AddChild(models.NewNode("row"))
	row.SetAttr("number", "1")
	cell := row.AddChild(models.NewNode("cell"))
	cell.SetAttr("type", "string")
	cell.SetText(text)
	row.AddChild(models.NewNode("cell"))
	return root
}

func TestToXML(t *testing.T) {
	data, err := ToXML(sampleTree("Acme & Co"), "UTF-8", false)
	require.NoError(t, err)
	expected := `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
		`<spreadsheet><sheet name="Sheet1"><row number="1"><cell type="string">Acme &amp; Co</cell><cell></cell></row></sheet></spreadsheet>`
	assert.Equal(t, expected, string(data))
}

func TestToXMLPretty(t *testing.T) {
	data, err := ToXML(sampleTree("a"), "", true)
	require.NoError(t, err)
	assert.Contains(t, string(data), `encoding="UTF-8"`)
	assert.Contains(t, string(data), "\n    <row number=\"1\">\n      <cell type=\"string\">a</cell>\n")
	assert.True(t, bytes.HasSuffix(data, []byte("</spreadsheet>\n")))
}

func TestToXMLLatin1(t *testing.T) {
	data, err := ToXML(sampleTree("café ā"), "ISO-8859-1", false)
	require.NoError(t, err)
	assert.Contains(t, string(data), `encoding="ISO-8859-1"`)
	assert.True(t, bytes.Contains(data, []byte("caf\xe9 &#257;")))
}

func TestToXMLUnknownEncoding(t *testing.T) {
	_, err := ToXML(sampleTree("a"), "no-such-charset", false)
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestWriteXML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXML(&buf, models.NewNode("spreadsheet"), "utf8", false))
	assert.Equal(t, `<?xml version="1.0" encoding="UTF-8"?>`+"\n<spreadsheet></spreadsheet>", buf.String())
}

func TestToXMLCanonicalEncodingName(t *testing.T) {
	data, err := ToXML(sampleTree("caf\u00e9"), "latin1", false)
	require.NoError(t, err)
	assert.Contains(t, string(data), `encoding="ISO-8859-1"`)
	assert.True(t, bytes.Contains(data, []byte("caf\xe9")))

	// 0x80 is the euro sign in windows-1252 but has no Latin-1 character.
	data, err = ToXML(sampleTree("\u20ac"), "ISO-8859-1", false)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(data, []byte("&#8364;")))

	data, err = ToXML(sampleTree("\u20ac"), "windows-1252", false)
	require.NoError(t, err)
	assert.Contains(t, string(data), `encoding="windows-1252"`)
	assert.True(t, bytes.Contains(data, []byte(">\x80<")))
}

func TestToXMLUnencodableName(t *testing.T) {
	root := models.NewNode("spreadsheet")
	row := root.AddChild(models.NewNode("row"))
	row.AddChild(models.NewNode("\u65e5\u4ed8")).SetText("x")

	_, err := ToXML(root, "ISO-8859-1", false)
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)

	attrRoot := models.NewNode("spreadsheet")
	attrRoot.SetAttr("\u0101", "v")
	_, err = ToXML(attrRoot, "ISO-8859-1", false)
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)

	data, err := ToXML(root, "UTF-8", false)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<\u65e5\u4ed8>x</\u65e5\u4ed8>")
}
