package formatter

import (
	"bytes"
	"fmt"

	"github.com/samsontands/RAG/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(transcript *entity.Transcript) ([]byte, error) {
	return renderMarkdown(transcript), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}

// renderMarkdown is shared with the HTML formatter. Message content is written
// as is: assistant answers are already markdown.
func renderMarkdown(transcript *entity.Transcript) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", transcript.Title)
	fmt.Fprintf(&buf, "Session `%s`\n", transcript.SessionID)

	for _, msg := range transcript.Messages {
		fmt.Fprintf(&buf, "\n---\n\n**%s:**\n\n%s\n", roleTitle(msg.Role), msg.Content)
	}

	return buf.Bytes()
}
