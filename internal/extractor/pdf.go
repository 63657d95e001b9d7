package extractor

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// pageSource is a paginated document. Pages are numbered from 1.
type pageSource interface {
	NumPage() int
	PageText(page int) (string, error)
}

type ledongthucPDF struct {
	reader *pdf.Reader
}

func openLedongthucPDF(data []byte) (src pageSource, err error) {
	defer func() {
		if r := recover(); r != nil {
			src, err = nil, fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return &ledongthucPDF{reader: reader}, nil
}

func (p *ledongthucPDF) NumPage() int {
	return p.reader.NumPage()
}

func (p *ledongthucPDF) PageText(n int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("page %d: %v", n, r)
		}
	}()

	page := p.reader.Page(n)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}
