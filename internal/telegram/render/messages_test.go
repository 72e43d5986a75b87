package render

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/samsontands/RAG/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestRenderFileTable(t *testing.T) {
	table := &entity.FileTable{
		Columns: []string{"Last modified (UTC)", "Filename", "Status"},
		Rows: [][]string{
			{"2024-06-01 10:00:00", "a&b.pdf", "INDEXED"},
			{"2024-06-02 10:00:00", "notes.md", ""},
		},
	}

	want := "📚 Indexed documents\n<pre>" +
		"Last modified (UTC)  Filename  Status\n" +
		"-------------------  --------  -------\n" +
		"2024-06-01 10:00:00  a&amp;b.pdf   INDEXED\n" +
		"2024-06-02 10:00:00  notes.md\n" +
		"</pre>"
	assert.Equal(t, want, RenderFileTable(table))
}

func TestRenderFileTable_Empty(t *testing.T) {
	assert.Equal(t, MsgNoFiles, RenderFileTable(&entity.FileTable{Columns: []string{"ts", "Filename"}}))
}

func TestRenderFileTable_Truncates(t *testing.T) {
	table := &entity.FileTable{Columns: []string{"ts", "Filename"}}
	for i := 0; i < maxTableRows+5; i++ {
		table.Rows = append(table.Rows, []string{"ts", fmt.Sprintf("f%d", i)})
	}

	out := RenderFileTable(table)
	assert.True(t, strings.HasSuffix(out, "…and 5 more"))
	assert.NotContains(t, out, fmt.Sprintf("f%d", maxTableRows))
}

func TestRenderSources(t *testing.T) {
	out := RenderSources(entity.WorkspaceInfo{UploadURL: "https://drive.example/x", BackendCaption: "Connected to: host"})
	assert.Equal(t, "📤 Upload your documents here:\nhttps://drive.example/x\n\nConnected to: host", out)
}

func TestClassifyError(t *testing.T) {
	assert.Equal(t, ErrFilesUnavailable, ClassifyError(fmt.Errorf("list: %w", entity.ErrIndexedFilesUnavailable)))
	assert.Equal(t, ErrTimeout, ClassifyError(context.DeadlineExceeded))
	assert.Equal(t, ErrMessageTooLong, ClassifyError(entity.ErrInvalidParameter))
	assert.Equal(t, ErrGeneric, ClassifyError(errors.New("boom")))
}
