package entity

import "fmt"

// TranscriptTitle heads every exported conversation
const TranscriptTitle = "Chat with your documents (Google Drive & SharePoint)"

type TranscriptFormat string

const (
	FormatMarkdown TranscriptFormat = "markdown"
	FormatHTML     TranscriptFormat = "html"
	FormatPDF      TranscriptFormat = "pdf"
	FormatDOCX     TranscriptFormat = "docx"
	FormatYAML     TranscriptFormat = "yaml"
)

func (f TranscriptFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatHTML, FormatPDF, FormatDOCX, FormatYAML:
		return true
	default:
		return false
	}
}

func (f TranscriptFormat) Validate() error {
	if !f.IsValid() {
		return fmt.Errorf("%w: unknown transcript format %q", ErrInvalidParameter, string(f))
	}
	return nil
}

// Transcript is a session's history prepared for export
type Transcript struct {
	Title     string    `yaml:"title"`
	SessionID string    `yaml:"session_id"`
	Messages  []Message `yaml:"messages"`
}

func NewTranscript(session *Session) *Transcript {
	messages := make([]Message, len(session.Messages))
	copy(messages, session.Messages)
	return &Transcript{
		Title:     TranscriptTitle,
		SessionID: session.ID,
		Messages:  messages,
	}
}
