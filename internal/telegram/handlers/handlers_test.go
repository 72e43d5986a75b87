package handlers

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samsontands/RAG/internal/entity"
	"github.com/samsontands/RAG/internal/pkg/validator"
	"github.com/samsontands/RAG/internal/telegram/keyboard"
	"github.com/samsontands/RAG/internal/telegram/render"
	chatuc "github.com/samsontands/RAG/internal/usecase/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSender struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
}

func (s *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, c)
	return tgbotapi.Message{}, nil
}

func (s *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (s *fakeSender) texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []string
	for _, c := range s.sent {
		if msg, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, msg.Text)
		}
	}
	return out
}

type stubChat struct {
	session   *entity.Session
	submitted []string
}

func (s *stubChat) OpenSession(ctx context.Context, connectionID string, headers map[string]string) (*entity.Session, error) {
	if s.session == nil {
		s.session = &entity.Session{ID: "uuid-test", ConnectionID: connectionID, Messages: entity.StarterExchange()}
	}
	return s.session, nil
}

func (s *stubChat) SubmitMessage(ctx context.Context, sessionID, text string, indicator chatuc.WorkingIndicator) (*entity.Session, error) {
	s.submitted = append(s.submitted, text)
	indicator.Start(ctx)
	defer indicator.Stop()

	s.session.Messages = append(s.session.Messages,
		entity.Message{Role: entity.RoleUser, Content: text},
		entity.Message{Role: entity.RoleAssistant, Content: "answer to " + text},
	)
	return s.session, nil
}

type stubFiles struct {
	table *entity.FileTable
	err   error
}

func (s *stubFiles) Table(ctx context.Context) (*entity.FileTable, error) {
	return s.table, s.err
}

func (s *stubFiles) Info() entity.WorkspaceInfo {
	return entity.WorkspaceInfo{UploadURL: "https://drive.example/x", BackendCaption: "caption"}
}

func newSender() (*fakeSender, *MessageSender) {
	bot := &fakeSender{}
	return bot, NewMessageSender(bot, zap.NewNop())
}

func TestConnectionID(t *testing.T) {
	assert.Equal(t, "telegram:42", ConnectionID(42))
	assert.Equal(t, "telegram:-100123", ConnectionID(-100123))
}

func TestStartHandler(t *testing.T) {
	bot, sender := newSender()
	chat := &stubChat{}
	h := NewStartHandler(sender, chat, keyboard.NewBuilder())

	require.NoError(t, h.Handle(context.Background(), &Message{ChatID: 7, UserID: 1}))

	assert.Equal(t, "telegram:7", chat.session.ConnectionID)
	texts := bot.texts()
	require.Len(t, texts, 2)
	assert.Equal(t, render.MsgWelcome, texts[0])
	assert.Equal(t, entity.StarterExchange()[1].Content, texts[1])

	last := bot.sent[1].(tgbotapi.MessageConfig)
	assert.IsType(t, tgbotapi.InlineKeyboardMarkup{}, last.ReplyMarkup)
}

func TestChatHandler(t *testing.T) {
	t.Run("answers the question", func(t *testing.T) {
		bot, sender := newSender()
		chat := &stubChat{}
		h := NewChatHandler(sender, chat, validator.NewValidator(100), bot, zap.NewNop())

		require.NoError(t, h.Handle(context.Background(), &Message{ChatID: 7, Text: "What is RAG?"}))

		assert.Equal(t, []string{"What is RAG?"}, chat.submitted)
		assert.Equal(t, []string{"answer to What is RAG?"}, bot.texts())
		require.NotEmpty(t, bot.requests)
		action := bot.requests[0].(tgbotapi.ChatActionConfig)
		assert.Equal(t, tgbotapi.ChatTyping, action.Action)
	})

	t.Run("blank text is not a question", func(t *testing.T) {
		bot, sender := newSender()
		chat := &stubChat{}
		h := NewChatHandler(sender, chat, validator.NewValidator(100), bot, zap.NewNop())

		require.NoError(t, h.Handle(context.Background(), &Message{ChatID: 7, Text: "  "}))

		assert.Empty(t, chat.submitted)
		assert.Equal(t, []string{render.MsgTextOnly}, bot.texts())
	})

	t.Run("too long", func(t *testing.T) {
		bot, sender := newSender()
		chat := &stubChat{}
		h := NewChatHandler(sender, chat, validator.NewValidator(3), bot, zap.NewNop())

		err := h.Handle(context.Background(), &Message{ChatID: 7, Text: "long question"})
		assert.ErrorIs(t, err, entity.ErrInvalidParameter)
		assert.Empty(t, chat.submitted)
	})
}

func TestFilesHandler(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		bot, sender := newSender()
		files := &stubFiles{table: &entity.FileTable{
			Columns: []string{"ts", "Filename"},
			Rows:    [][]string{{"2024-01-01 00:00:00", "a.pdf"}},
		}}

		require.NoError(t, NewFilesHandler(sender, files).Handle(context.Background(), &Message{ChatID: 7}))

		require.Len(t, bot.sent, 1)
		msg := bot.sent[0].(tgbotapi.MessageConfig)
		assert.Equal(t, tgbotapi.ModeHTML, msg.ParseMode)
		assert.Contains(t, msg.Text, "a.pdf")
	})

	t.Run("backend failure", func(t *testing.T) {
		_, sender := newSender()
		files := &stubFiles{err: entity.ErrIndexedFilesUnavailable}

		err := NewFilesHandler(sender, files).Handle(context.Background(), &Message{ChatID: 7})
		assert.ErrorIs(t, err, entity.ErrIndexedFilesUnavailable)
	})
}

func TestSourcesHandler(t *testing.T) {
	bot, sender := newSender()

	require.NoError(t, NewSourcesHandler(sender, &stubFiles{}).Handle(context.Background(), &Message{ChatID: 7}))
	assert.Equal(t, []string{"📤 Upload your documents here:\nhttps://drive.example/x\n\ncaption"}, bot.texts())
}

func TestTranscriptHandler(t *testing.T) {
	t.Run("markdown document", func(t *testing.T) {
		bot, sender := newSender()
		h := NewTranscriptHandler(sender, &stubChat{}, validator.NewValidator(10))

		require.NoError(t, h.Handle(context.Background(), &Message{ChatID: 7}))

		require.Len(t, bot.sent, 1)
		doc := bot.sent[0].(tgbotapi.DocumentConfig)
		file := doc.File.(tgbotapi.FileBytes)
		assert.Equal(t, "chat-uuid-test.md", file.Name)
		assert.True(t, strings.HasPrefix(string(file.Bytes), "# "+entity.TranscriptTitle))
	})

	t.Run("unknown format", func(t *testing.T) {
		bot, sender := newSender()
		h := NewTranscriptHandler(sender, &stubChat{}, validator.NewValidator(10))

		require.NoError(t, h.Handle(context.Background(), &Message{ChatID: 7, Args: "rtf"}))
		assert.Equal(t, []string{render.ErrInvalidFormat}, bot.texts())
	})
}

func TestTypingNotifier(t *testing.T) {
	bot := &fakeSender{}
	n := NewTypingNotifier(bot, 7, zap.NewNop())
	n.interval = 10 * time.Millisecond

	n.Start(context.Background())
	n.Start(context.Background())
	time.Sleep(35 * time.Millisecond)
	n.Stop()
	n.Stop()

	bot.mu.Lock()
	count := len(bot.requests)
	bot.mu.Unlock()
	assert.GreaterOrEqual(t, count, 2)

	time.Sleep(25 * time.Millisecond)
	bot.mu.Lock()
	assert.Equal(t, count, len(bot.requests), "no typing after Stop")
	bot.mu.Unlock()
}

func TestMessageSender_SplitsLongText(t *testing.T) {
	bot, sender := newSender()
	text := strings.Repeat("a", maxMessageRunes) + "\n" + strings.Repeat("b", 10)

	require.NoError(t, sender.Send(7, text, keyboard.NewBuilder().MainKeyboard()))

	require.Len(t, bot.sent, 2)
	first := bot.sent[0].(tgbotapi.MessageConfig)
	second := bot.sent[1].(tgbotapi.MessageConfig)
	assert.Nil(t, first.ReplyMarkup)
	assert.NotNil(t, second.ReplyMarkup)
	assert.Equal(t, text, first.Text+second.Text)
}

func TestSplitText(t *testing.T) {
	assert.Equal(t, []string{"short"}, splitText("short", 10))
	assert.Equal(t, []string{"abcd\n", "efgh"}, splitText("abcd\nefgh", 6))
	assert.Equal(t, []string{"abcdef", "ghij"}, splitText("abcdefghij", 6))
}

var errSend = errors.New("send failed")

type failingSender struct{ fakeSender }

func (s *failingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	return tgbotapi.Message{}, errSend
}

func TestMessageSender_ReturnsSendError(t *testing.T) {
	sender := NewMessageSender(&failingSender{}, zap.NewNop())
	assert.ErrorIs(t, sender.Send(7, "hi", nil), errSend)
}
