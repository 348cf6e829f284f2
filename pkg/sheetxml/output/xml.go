// Package output serializes converted documents.
package output

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/ukaji3/sheetxml-go/pkg/sheetxml/errs"
	"github.com/ukaji3/sheetxml-go/pkg/sheetxml/models"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// ToXML serializes the tree rooted at root as an XML document in the named
// encoding. Text characters the encoding cannot represent are written as
// numeric character references; element and attribute names must be
// representable.
func ToXML(root *models.Node, encodingName string, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteXML(&buf, root, encodingName, pretty); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteXML is ToXML writing to w. The declaration names the encoding by its
// canonical name, e.g. "latin1" is declared as "ISO-8859-1".
func WriteXML(w io.Writer, root *models.Node, encodingName string, pretty bool) error {
	enc, canonical, err := lookupEncoding(encodingName)
	if err != nil {
		return err
	}
	if enc != nil {
		if err := checkNames(enc, canonical, root); err != nil {
			return err
		}
	}

	var body bytes.Buffer
	fmt.Fprintf(&body, "<?xml version=\"1.0\" encoding=\"%s\"?>\n", canonical)
	xe := xml.NewEncoder(&body)
	if pretty {
		xe.Indent("", "  ")
	}
	if err := writeNode(xe, root); err != nil {
		return err
	}
	if err := xe.Flush(); err != nil {
		return err
	}
	if pretty {
		body.WriteByte('\n')
	}

	out := body.Bytes()
	if enc != nil {
		out, err = encoding.HTMLEscapeUnsupported(enc.NewEncoder()).Bytes(out)
		if err != nil {
			return fmt.Errorf("encoding output as %s: %w", canonical, err)
		}
	}
	_, err = w.Write(out)
	return err
}

// lookupEncoding resolves an IANA charset name. The returned encoding is nil
// for UTF-8, which needs no transcoding.
func lookupEncoding(name string) (encoding.Encoding, string, error) {
	if name == "" || strings.EqualFold(name, "UTF-8") || strings.EqualFold(name, "UTF8") {
		return nil, "UTF-8", nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, "", fmt.Errorf("%w: unsupported encoding %q", errs.ErrInvalidArgument, name)
	}
	canonical, err := ianaindex.MIME.Name(enc)
	if err != nil {
		if canonical, err = ianaindex.IANA.Name(enc); err != nil {
			canonical = name
		}
	}
	if enc == unicode.UTF8 {
		return nil, canonical, nil
	}
	return enc, canonical, nil
}

// checkNames fails when an element or attribute name cannot be written in
// enc. Character references are only valid in text, so names get no fallback.
func checkNames(enc encoding.Encoding, encName string, n *models.Node) error {
	names := []string{n.Name}
	for _, a := range n.Attrs {
		names = append(names, a.Name)
	}
	for _, name := range names {
		if _, err := enc.NewEncoder().String(name); err != nil {
			return fmt.Errorf("%w: name %q cannot be written in %s", errs.ErrInvalidArgument, name, encName)
		}
	}
	for _, child := range n.Children {
		if err := checkNames(enc, encName, child); err != nil {
			return err
		}
	}
	return nil
}

func writeNode(xe *xml.Encoder, n *models.Node) error {
	start := xml.StartElement{Name: xml.Name{Local: n.Name}}
	for _, a := range n.Attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	if err := xe.EncodeToken(start); err != nil {
		return err
	}
	if len(n.Children) > 0 {
		for _, child := range n.Children {
			if err := writeNode(xe, child); err != nil {
				return err
			}
		}
	} else if n.Text != "" {
		if err := xe.EncodeToken(xml.CharData(n.Text)); err != nil {
			return err
		}
	}
	return xe.EncodeToken(start.End())
}
