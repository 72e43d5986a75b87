package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/samsontands/RAG/internal/entity"
	chatuc "github.com/samsontands/RAG/internal/usecase/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoChat struct {
	session *entity.Session
	started int
}

func (e *echoChat) OpenSession(ctx context.Context, connectionID string, headers map[string]string) (*entity.Session, error) {
	e.session = &entity.Session{ID: "uuid-cli", Messages: entity.StarterExchange()}
	return e.session, nil
}

func (e *echoChat) SubmitMessage(ctx context.Context, sessionID, text string, indicator chatuc.WorkingIndicator) (*entity.Session, error) {
	indicator.Start(ctx)
	e.started++
	indicator.Stop()

	e.session.Messages = append(e.session.Messages,
		entity.Message{Role: entity.RoleUser, Content: text},
		entity.Message{Role: entity.RoleAssistant, Content: "echo: " + text},
	)
	return e.session, nil
}

func TestRunChat(t *testing.T) {
	uc := &echoChat{}
	var out bytes.Buffer

	session, err := runChat(context.Background(), uc, strings.NewReader("first\n\n  \nsecond\nexit\nignored\n"), &out)

	require.NoError(t, err)
	assert.Equal(t, 2, uc.started, "blank lines are not questions")
	assert.Len(t, session.Messages, 6)
	assert.Contains(t, out.String(), "echo: first")
	assert.Contains(t, out.String(), "echo: second")
	assert.NotContains(t, out.String(), "echo: ignored")
	assert.Contains(t, out.String(), thinkingText)
}

func TestRunChat_EOF(t *testing.T) {
	uc := &echoChat{}
	var out bytes.Buffer

	session, err := runChat(context.Background(), uc, strings.NewReader("only"), &out)

	require.NoError(t, err)
	assert.Len(t, session.Messages, 4)
}

func TestRunChat_Interrupt(t *testing.T) {
	tests := []struct {
		name         string
		cancelBefore bool
	}{
		{name: "already interrupted", cancelBefore: true},
		{name: "interrupted while waiting for input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &echoChat{}
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			pr, pw := io.Pipe()
			defer pw.Close()
			go pw.Write([]byte("\n\n")) //nolint:errcheck

			if tt.cancelBefore {
				cancel()
			}

			done := make(chan *entity.Session, 1)
			go func() {
				session, err := runChat(ctx, uc, pr, io.Discard)
				assert.NoError(t, err)
				done <- session
			}()

			if !tt.cancelBefore {
				time.Sleep(20 * time.Millisecond)
				cancel()
			}

			select {
			case session := <-done:
				require.NotNil(t, session)
				assert.Len(t, session.Messages, 2)
				assert.Zero(t, uc.started)
			case <-time.After(2 * time.Second):
				t.Fatal("runChat did not return after the interrupt")
			}
		})
	}
}

func TestSaveTranscript(t *testing.T) {
	session := &entity.Session{ID: "uuid-cli", Messages: entity.StarterExchange()}
	dir := t.TempDir()

	mdPath := filepath.Join(dir, "chat.md")
	require.NoError(t, saveTranscript(session, mdPath, ""))
	data, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# "+entity.TranscriptTitle))

	yamlPath := filepath.Join(dir, "chat.txt")
	require.NoError(t, saveTranscript(session, yamlPath, "yaml"))
	data, err = os.ReadFile(yamlPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "session_id: uuid-cli")

	assert.ErrorIs(t, saveTranscript(session, filepath.Join(dir, "chat.rtf"), "rtf"), entity.ErrInvalidParameter)
}

func TestFormatFromExtension(t *testing.T) {
	assert.Equal(t, "html", formatFromExtension(".HTML"))
	assert.Equal(t, "yaml", formatFromExtension(".yml"))
	assert.Equal(t, "pdf", formatFromExtension(".pdf"))
	assert.Equal(t, "markdown", formatFromExtension(".txt"))
}

func TestPrintFileTable(t *testing.T) {
	var out bytes.Buffer
	printFileTable(&out, &entity.FileTable{
		Columns: []string{"Indexed at", "Filename"},
		Rows:    [][]string{{"2024-06-01 10:00:00", "employee-handbook.pdf"}},
	})
	assert.Contains(t, out.String(), "employee-handbook.pdf")
	assert.Contains(t, out.String(), "1 documents")

	out.Reset()
	printFileTable(&out, &entity.FileTable{})
	assert.Contains(t, out.String(), "No documents are indexed yet.")
}
