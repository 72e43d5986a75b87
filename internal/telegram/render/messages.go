package render

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/samsontands/RAG/internal/entity"
)

const (
	MsgWelcome = `👋 Hi! Ask me anything about the documents indexed from your Google Drive and SharePoint folders.

Just type your question. I will tell you which documents I looked up to answer it.`

	MsgHelp = `🤖 Commands:

/start - Show the conversation so far
/files - List the indexed documents
/sources - Where to upload new documents
/transcript [markdown|html|pdf|docx|yaml] - Download this conversation
/help - Show this help`

	MsgTextOnly   = `✍️ I can only read text messages. Please type your question.`
	MsgNoFiles    = `📂 No documents are indexed yet. Use /sources to see where to upload them.`
	MsgRateLimit  = `⚠️ Too many messages. Please wait a little.`
	MsgRateLimit2 = `⚠️ Rate limit exceeded. Please wait about 30 seconds before trying again.`
	MsgRateLimit3 = `🛑 You are sending messages too often. Please wait a minute.`

	ErrGeneric          = `❌ Something went wrong. Please try again or press /start`
	ErrUnknownCommand   = `❌ Unknown command. Use /help`
	ErrFilesUnavailable = `❌ The document service is not answering right now. Please try again in a moment.`
	ErrInvalidFormat    = `❌ Unknown format. Use one of: markdown, html, pdf, docx, yaml`
	ErrMessageTooLong   = `❌ This message is too long. Please shorten your question.`
	ErrTimeout          = `❌ That took too long. Please try again.`
)

// maxTableRows keeps the file table well inside Telegram's message limit
const maxTableRows = 40

// RenderFileTable formats the indexed files as an aligned, monospace HTML block
func RenderFileTable(table *entity.FileTable) string {
	if len(table.Rows) == 0 {
		return MsgNoFiles
	}

	rows := table.Rows
	hidden := 0
	if len(rows) > maxTableRows {
		hidden = len(rows) - maxTableRows
		rows = rows[:maxTableRows]
	}

	widths := make([]int, len(table.Columns))
	for i, col := range table.Columns {
		widths[i] = utf8.RuneCountInString(col)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], utf8.RuneCountInString(cell))
			}
		}
	}

	var b strings.Builder
	b.WriteString("📚 Indexed documents\n<pre>")
	writeRow(&b, table.Columns, widths)
	separators := make([]string, len(widths))
	for i, w := range widths {
		separators[i] = strings.Repeat("-", w)
	}
	writeRow(&b, separators, widths)
	for _, row := range rows {
		writeRow(&b, row, widths)
	}
	b.WriteString("</pre>")

	if hidden > 0 {
		fmt.Fprintf(&b, "\n…and %d more", hidden)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string, widths []int) {
	parts := make([]string, 0, len(cells))
	for i, cell := range cells {
		pad := 0
		if i < len(widths) {
			pad = widths[i] - utf8.RuneCountInString(cell)
		}
		parts = append(parts, html.EscapeString(cell)+strings.Repeat(" ", pad))
	}
	b.WriteString(strings.TrimRight(strings.Join(parts, "  "), " "))
	b.WriteString("\n")
}

// RenderSources tells the user where documents are uploaded and which backend indexes them
func RenderSources(info entity.WorkspaceInfo) string {
	return fmt.Sprintf("📤 Upload your documents here:\n%s\n\n%s", info.UploadURL, info.BackendCaption)
}

// ClassifyError maps an error to a message the user can act on
func ClassifyError(err error) string {
	switch {
	case err == nil:
		return ErrGeneric
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case errors.Is(err, entity.ErrIndexedFilesUnavailable):
		return ErrFilesUnavailable
	case errors.Is(err, entity.ErrInvalidParameter):
		return ErrMessageTooLong
	default:
		return ErrGeneric
	}
}
