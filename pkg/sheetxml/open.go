package sheetxml

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ukaji3/sheetxml-go/pkg/sheetxml/models"
	"github.com/ukaji3/sheetxml-go/pkg/sheetxml/parser"
)

// Result is a converted document and the encoding it should be written in.
type Result struct {
	Document *models.Node
	Encoding string
}

// Open reads an xlsx or xls workbook from memory.
func Open(data []byte) (*models.WorkbookData, error) {
	mt := mimetype.Detect(data)
	switch {
	case mt.Is("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"),
		mt.Is("application/zip"):
		return parser.OpenXLSX(data)
	case mt.Is("application/vnd.ms-excel"),
		mt.Is("application/x-ole-storage"):
		return parser.OpenXLS(data)
	}
	return nil, fmt.Errorf("%w: detected %s", ErrInvalidFormat, mt.String())
}

// ConvertBytes reads a workbook and converts it. inheritedEncoding is the
// caller's current content encoding; it is used when no explicit encoding is
// configured.
func ConvertBytes(data []byte, inheritedEncoding string, opts Options) (*Result, error) {
	wb, err := Open(data)
	if err != nil {
		return nil, err
	}
	doc, err := Convert(wb, opts)
	if err != nil {
		return nil, err
	}
	return &Result{
		Document: doc,
		Encoding: opts.Encoding(inheritedEncoding),
	}, nil
}

// ConvertFile reads and converts the workbook at path.
func ConvertFile(path string, opts Options) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	return ConvertBytes(data, "", opts)
}
