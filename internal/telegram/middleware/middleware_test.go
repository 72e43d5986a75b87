package middleware

import (
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samsontands/RAG/internal/telegram/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingSender struct {
	mu    sync.Mutex
	texts []string
}

func (s *recordingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		s.texts = append(s.texts, msg.Text)
	}
	return tgbotapi.Message{}, nil
}

func textUpdate(userID, chatID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: 1,
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: userID},
			Chat: &tgbotapi.Chat{ID: chatID},
			Text: text,
		},
	}
}

func TestRateLimiter(t *testing.T) {
	bot := &recordingSender{}
	rl := NewRateLimiterMiddleware(60, 2, zap.NewNop(), bot)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	handled := 0
	next := func(tgbotapi.Update) { handled++ }

	for range 5 {
		rl.Handle(textUpdate(1, 10, "hi"), next)
	}
	assert.Equal(t, 2, handled, "only the burst passes")
	assert.Equal(t, []string{render.MsgRateLimit}, bot.texts, "one warning per interval")

	rl.Handle(textUpdate(2, 20, "hi"), next)
	assert.Equal(t, 3, handled, "users are limited independently")

	now = now.Add(31 * time.Second)
	rl.Handle(textUpdate(1, 10, "hi"), next)
	assert.Equal(t, 4, handled, "tokens refill over time")

	rl.Handle(textUpdate(1, 10, "hi"), next)
	rl.Handle(textUpdate(1, 10, "hi"), next)
	rl.Handle(textUpdate(1, 10, "hi"), next)
	assert.Equal(t, 5, handled)
	assert.Equal(t, []string{render.MsgRateLimit, render.MsgRateLimit}, bot.texts, "a success resets the escalation")
}

func TestRateLimiter_Escalates(t *testing.T) {
	bot := &recordingSender{}
	rl := NewRateLimiterMiddleware(1, 1, zap.NewNop(), bot)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	rl.interval = 10 * time.Second

	next := func(tgbotapi.Update) {}
	rl.Handle(textUpdate(1, 10, "hi"), next)
	for range 3 {
		rl.Handle(textUpdate(1, 10, "hi"), next)
		now = now.Add(11 * time.Second)
	}

	assert.Equal(t, []string{render.MsgRateLimit, render.MsgRateLimit2, render.MsgRateLimit3}, bot.texts)
}

func TestRateLimiter_PassesUnknownUpdates(t *testing.T) {
	rl := NewRateLimiterMiddleware(1, 1, zap.NewNop(), &recordingSender{})

	called := false
	rl.Handle(tgbotapi.Update{UpdateID: 3}, func(tgbotapi.Update) { called = true })
	assert.True(t, called)
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	bot := &recordingSender{}
	m := NewRecoveryMiddleware(zap.New(core), bot)

	require.NotPanics(t, func() {
		m.Handle(textUpdate(1, 10, "hi"), func(tgbotapi.Update) { panic("boom") })
	})

	assert.Equal(t, []string{render.ErrGeneric}, bot.texts)
	assert.Equal(t, 1, logs.FilterMessage("panic recovered in telegram handler").Len())
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := NewLoggingMiddleware(zap.New(core))

	called := false
	m.Handle(textUpdate(1, 10, "hi"), func(tgbotapi.Update) { called = true })

	assert.True(t, called)
	received := logs.FilterMessage("telegram update received").All()
	require.Len(t, received, 1)
	assert.Equal(t, "text", received[0].ContextMap()["type"])
	assert.Equal(t, int64(10), received[0].ContextMap()["chat_id"])
	assert.Equal(t, 1, logs.FilterMessage("telegram update processed").Len())
}
