package formatter

import (
	"bytes"
	"os"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/samsontands/RAG/internal/entity"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the internal name used by gofpdf
	// for the UTF-8 capable font.
	pdfFontName = "DejaVuSans"

	// Relative paths where the TTF font may live.
	// In Docker runtime fonts are copied to /app/ttf.
	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"
	pdfFontSourcePath  = "internal/pkg/formatter/ttf/DejaVuSans.ttf"
)

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

// resolveFontPath looks for DejaVuSans next to the binary, then in the source tree
func resolveFontPath() string {
	for _, path := range []string{pdfFontRuntimePath, pdfFontSourcePath} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func (pf *PDFFormatter) Format(transcript *entity.Transcript) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// fixed dates keep the output reproducible
	pdf.SetCreationDate(time.Unix(0, 0).UTC())
	pdf.SetCatalogSort(true)
	pdf.SetTitle(transcript.Title, true)
	pdf.AddPage()

	// Without the bundled font fall back to a core font, which only covers cp1252.
	fontName := "Arial"
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	if fontPath := resolveFontPath(); fontPath != "" {
		pdf.AddUTF8Font(pdfFontName, "", fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", fontPath)
		fontName = pdfFontName
		translate = func(s string) string { return s }
	}

	pdf.SetFont(fontName, "B", 18)
	pdf.MultiCell(0, 9, translate(transcript.Title), "", "", false)
	pdf.Ln(2)

	pdf.SetFont(fontName, "", 9)
	pdf.Cell(0, 6, translate("Session "+transcript.SessionID))
	pdf.Ln(10)

	for _, msg := range transcript.Messages {
		pdf.SetFont(fontName, "B", 12)
		pdf.Cell(0, 7, roleTitle(msg.Role))
		pdf.Ln(8)

		pdf.SetFont(fontName, "", 11)
		_, lineHeight := pdf.GetFontSize()
		pdf.MultiCell(0, lineHeight*1.5, translate(strings.Join(splitLines(msg.Content), "\n")), "", "", false)
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (pf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (pf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
