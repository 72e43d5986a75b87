package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/samsontands/RAG/internal/builder"
	"github.com/samsontands/RAG/internal/entity"
	"github.com/samsontands/RAG/internal/pkg/formatter"
	chatuc "github.com/samsontands/RAG/internal/usecase/chat"
	"github.com/spf13/cobra"
)

const (
	thinkingText = "Thinking..."
	// cliConnection keys the one session a terminal run holds
	cliConnection = "cli"
)

var (
	chatSavePath string
	chatFormat   string
)

type chatSession interface {
	OpenSession(ctx context.Context, connectionID string, headers map[string]string) (*entity.Session, error)
	SubmitMessage(ctx context.Context, sessionID, text string, indicator chatuc.WorkingIndicator) (*entity.Session, error)
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation",
	Long: `Start an interactive conversation about the indexed documents.
Type a question and press Enter. Type "exit" or press Ctrl+D or Ctrl+C to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := builder.BuildComponents(environment)
		if err != nil {
			return err
		}
		defer c.Logger.Sync() //nolint:errcheck

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		ctx = ctxzap.ToContext(ctx, c.Logger)

		session, err := runChat(ctx, c.Chat, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}

		if chatSavePath == "" {
			return nil
		}
		return saveTranscript(session, chatSavePath, chatFormat)
	},
}

// runChat reads questions line by line until EOF, "exit" or ctx is done and prints every answer
func runChat(ctx context.Context, uc chatSession, in io.Reader, out io.Writer) (*entity.Session, error) {
	session, err := uc.OpenSession(ctx, cliConnection, map[string]string{"client": "docchat"})
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}

	for _, msg := range session.Messages {
		printMessage(out, msg)
	}

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()
	lines, readErr := readLines(readCtx, in)
	for {
		if ctx.Err() != nil {
			fmt.Fprintln(out)
			return session, nil
		}
		fmt.Fprint(out, promptStyle.Render("> "))

		var text string
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return session, nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				if err := <-readErr; err != nil {
					return session, fmt.Errorf("read input: %w", err)
				}
				return session, nil
			}
			text = line
		}

		switch strings.TrimSpace(text) {
		case "":
			continue
		case "exit", "quit":
			return session, nil
		}

		indicator := &thinkingIndicator{out: out}
		session, err = uc.SubmitMessage(ctx, session.ID, text, indicator)
		if err != nil {
			return session, fmt.Errorf("submit message: %w", err)
		}
		if answer, ok := session.LastMessage(); ok && answer.Role == entity.RoleAssistant {
			printMessage(out, answer)
		}
	}
}

// readLines scans in on its own goroutine so an interrupt is seen while waiting for input.
// The scan error is delivered before lines is closed.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				readErr <- nil
				return
			}
		}
		readErr <- scanner.Err()
	}()

	return lines, readErr
}

func printMessage(out io.Writer, msg entity.Message) {
	if msg.Role == entity.RoleUser {
		fmt.Fprintln(out, promptStyle.Render("> ")+msg.Content)
		return
	}
	fmt.Fprintln(out, answerStyle.Render(msg.Content))
	fmt.Fprintln(out)
}

// thinkingIndicator prints a placeholder while the answer is produced and clears it after
type thinkingIndicator struct {
	out io.Writer
	mu  sync.Mutex
	on  bool
}

func (t *thinkingIndicator) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.on = true
	fmt.Fprint(t.out, hintStyle.Render(thinkingText))
}

func (t *thinkingIndicator) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.on {
		return
	}
	t.on = false
	fmt.Fprint(t.out, "\r"+strings.Repeat(" ", len(thinkingText))+"\r")
}

// saveTranscript writes the conversation, taking the format from the flag or the file extension
func saveTranscript(session *entity.Session, path, format string) error {
	if session == nil {
		return errors.New("no conversation to save")
	}

	if format == "" {
		format = formatFromExtension(filepath.Ext(path))
	}

	fmtr, err := formatter.NewFactory().Create(entity.TranscriptFormat(format))
	if err != nil {
		return fmt.Errorf("create formatter: %w", err)
	}

	data, err := fmtr.Format(entity.NewTranscript(session))
	if err != nil {
		return fmt.Errorf("format transcript: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}

	return nil
}

func formatFromExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".html", ".htm":
		return string(entity.FormatHTML)
	case ".pdf":
		return string(entity.FormatPDF)
	case ".docx":
		return string(entity.FormatDOCX)
	case ".yaml", ".yml":
		return string(entity.FormatYAML)
	default:
		return string(entity.FormatMarkdown)
	}
}

func init() {
	chatCmd.Flags().StringVar(&chatSavePath, "save", "", "Write the transcript to this file when the conversation ends")
	chatCmd.Flags().StringVar(&chatFormat, "format", "", "Transcript format: markdown, html, pdf, docx or yaml (default: from the file extension)")
	rootCmd.AddCommand(chatCmd)
}
