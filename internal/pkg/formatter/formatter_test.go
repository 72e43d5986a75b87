package formatter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/samsontands/RAG/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testTranscript() *entity.Transcript {
	return &entity.Transcript{
		Title:     entity.TranscriptTitle,
		SessionID: "uuid-1234",
		Messages: []entity.Message{
			{Role: entity.RoleUser, Content: "What is RAG?"},
			{Role: entity.RoleAssistant, Content: "RAG is...\n\nDocuments looked up to obtain this answer: `intro.pdf`"},
		},
	}
}

func TestFactory_Create(t *testing.T) {
	tests := []struct {
		format      entity.TranscriptFormat
		contentType string
		extension   string
	}{
		{entity.FormatMarkdown, "text/markdown; charset=utf-8", ".md"},
		{entity.FormatHTML, "text/html; charset=utf-8", ".html"},
		{entity.FormatPDF, "application/pdf", ".pdf"},
		{entity.FormatDOCX, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", ".docx"},
		{entity.FormatYAML, "application/yaml", ".yaml"},
	}

	factory := NewFactory()
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			f, err := factory.Create(tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.contentType, f.ContentType())
			assert.Equal(t, tt.extension, f.FileExtension())
		})
	}

	_, err := factory.Create("rtf")
	assert.ErrorIs(t, err, entity.ErrInvalidParameter)
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := NewMarkdownFormatter().Format(testTranscript())
	require.NoError(t, err)

	want := "# Chat with your documents (Google Drive & SharePoint)\n\n" +
		"Session `uuid-1234`\n" +
		"\n---\n\n**User:**\n\nWhat is RAG?\n" +
		"\n---\n\n**Assistant:**\n\nRAG is...\n\nDocuments looked up to obtain this answer: `intro.pdf`\n"
	assert.Equal(t, want, string(out))
}

func TestHTMLFormatter(t *testing.T) {
	transcript := testTranscript()
	transcript.Messages = append(transcript.Messages, entity.Message{
		Role:    entity.RoleUser,
		Content: "<script>alert(1)</script>",
	})

	out, err := NewHTMLFormatter().Format(transcript)
	require.NoError(t, err)

	page := string(out)
	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, "<title>Chat with your documents (Google Drive &amp; SharePoint)</title>")
	assert.Contains(t, page, "<code>intro.pdf</code>")
	assert.Contains(t, page, "<strong>Assistant:</strong>")
	assert.NotContains(t, page, "<script>")
}

func TestYAMLFormatter(t *testing.T) {
	out, err := NewYAMLFormatter().Format(testTranscript())
	require.NoError(t, err)

	var decoded entity.Transcript
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, *testTranscript(), decoded)
	assert.Contains(t, string(out), "session_id: uuid-1234")
}

func TestPDFFormatter(t *testing.T) {
	out, err := NewPDFFormatter().Format(testTranscript())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestFormattersAreDeterministic(t *testing.T) {
	formatters := map[string]Formatter{
		"markdown": NewMarkdownFormatter(),
		"html":     NewHTMLFormatter(),
		"yaml":     NewYAMLFormatter(),
		"pdf":      NewPDFFormatter(),
	}

	for name, f := range formatters {
		t.Run(name, func(t *testing.T) {
			first, err := f.Format(testTranscript())
			require.NoError(t, err)
			second, err := f.Format(testTranscript())
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}
