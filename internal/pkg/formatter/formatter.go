package formatter

import (
	"fmt"

	"github.com/samsontands/RAG/internal/entity"
)

type Formatter interface {
	Format(transcript *entity.Transcript) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.TranscriptFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatHTML:
		return NewHTMLFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	case entity.FormatYAML:
		return NewYAMLFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported format: %s", entity.ErrInvalidParameter, format)
	}
}

func roleTitle(role entity.Role) string {
	switch role {
	case entity.RoleUser:
		return "User"
	case entity.RoleAssistant:
		return "Assistant"
	default:
		return string(role)
	}
}
