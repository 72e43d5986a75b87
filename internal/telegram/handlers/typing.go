package handlers

import (
	"context"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// typingInterval refreshes the action before Telegram drops it after 5 seconds
const typingInterval = 4 * time.Second

// TypingNotifier shows "typing..." in a chat while an answer is being produced
type TypingNotifier struct {
	bot      Sender
	chatID   int64
	interval time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	started bool
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewTypingNotifier creates a new typing indicator
func NewTypingNotifier(bot Sender, chatID int64, logger *zap.Logger) *TypingNotifier {
	return &TypingNotifier{
		bot:      bot,
		chatID:   chatID,
		interval: typingInterval,
		logger:   logger,
	}
}

// Start sends the typing action now and then on every interval until Stop or ctx is done
func (t *TypingNotifier) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return
	}
	t.started = true
	t.done = make(chan struct{})

	t.sendTyping()

	t.wg.Add(1)
	go func(done <-chan struct{}) {
		defer t.wg.Done()

		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				t.sendTyping()
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}(t.done)
}

// Stop stops sending typing actions and waits for the refresh loop to exit
func (t *TypingNotifier) Stop() {
	t.mu.Lock()
	if !t.started {
		t.mu.Unlock()
		return
	}
	t.started = false
	close(t.done)
	t.mu.Unlock()

	t.wg.Wait()
}

func (t *TypingNotifier) sendTyping() {
	action := tgbotapi.NewChatAction(t.chatID, tgbotapi.ChatTyping)
	if _, err := t.bot.Request(action); err != nil {
		t.logger.Warn("failed to send typing action",
			zap.Error(err),
			zap.Int64("chat_id", t.chatID),
		)
	}
}
