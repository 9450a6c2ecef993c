package graphics

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ContentTypePDF is the MIME type of logo sheets.
const ContentTypePDF = "application/pdf"

// ErrNoImages indicates a logo sheet was requested with no images.
var ErrNoImages = errors.New("no images for logo sheet")

func init() {
	api.DisableConfigDir()
}

// LogoSheet builds a PDF with one encoded image per page.
func LogoSheet(images [][]byte) ([]byte, error) {
	if len(images) == 0 {
		return nil, ErrNoImages
	}

	readers := make([]io.Reader, 0, len(images))
	for _, img := range images {
		readers = append(readers, bytes.NewReader(img))
	}

	var buf bytes.Buffer
	imp := pdfcpu.DefaultImportConfig()
	conf := model.NewDefaultConfiguration()

	if err := api.ImportImages(nil, &buf, readers, imp, conf); err != nil {
		return nil, fmt.Errorf("import images: %w", err)
	}

	return buf.Bytes(), nil
}
