package formatter

import (
	"bytes"
	"fmt"
	"html"

	"github.com/samsontands/RAG/internal/entity"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const (
	htmlContentType   = "text/html; charset=utf-8"
	htmlFileExtension = ".html"
)

// HTMLFormatter renders the markdown transcript to a standalone page.
// Raw HTML inside messages is dropped by goldmark.
type HTMLFormatter struct {
	md goldmark.Markdown
}

func NewHTMLFormatter() *HTMLFormatter {
	return &HTMLFormatter{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

func (hf *HTMLFormatter) Format(transcript *entity.Transcript) ([]byte, error) {
	var body bytes.Buffer
	if err := hf.md.Convert(renderMarkdown(transcript), &body); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n",
		html.EscapeString(transcript.Title))
	buf.Write(body.Bytes())
	buf.WriteString("</body>\n</html>\n")

	return buf.Bytes(), nil
}

func (hf *HTMLFormatter) ContentType() string {
	return htmlContentType
}

func (hf *HTMLFormatter) FileExtension() string {
	return htmlFileExtension
}
