package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/samsontands/RAG/internal/config"
	"github.com/samsontands/RAG/internal/pkg/logger"
	"github.com/samsontands/RAG/internal/pkg/validator"
	"github.com/samsontands/RAG/internal/telegram/handlers"
	"github.com/samsontands/RAG/internal/telegram/keyboard"
	"github.com/samsontands/RAG/internal/telegram/middleware"
	"github.com/samsontands/RAG/internal/telegram/render"
	"go.uber.org/zap"
)

// API is the part of *tgbotapi.BotAPI the bot uses
type API interface {
	handlers.Sender
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot represents the Telegram bot
type Bot struct {
	api         API
	cfg         *config.TelegramConfig
	sender      *handlers.MessageSender
	commands    map[string]handlers.Handler
	chat        handlers.Handler
	keyboard    *keyboard.Builder
	logger      *zap.Logger
	loggingMW   *middleware.LoggingMiddleware
	recoveryMW  *middleware.RecoveryMiddleware
	rateLimitMW *middleware.RateLimiterMiddleware
	updatesChan tgbotapi.UpdatesChannel
	stopChan    chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
}

// New creates a new Telegram bot and registers its handlers
func New(
	cfg *config.TelegramConfig,
	api API,
	chatUC handlers.ChatUsecase,
	filesUC handlers.FilesUsecase,
	validator *validator.Validator,
	logger *zap.Logger,
) *Bot {
	sender := handlers.NewMessageSender(api, logger)
	kb := keyboard.NewBuilder()

	b := &Bot{
		api:      api,
		cfg:      cfg,
		sender:   sender,
		keyboard: kb,
		logger:   logger,
		stopChan: make(chan struct{}),
	}

	b.loggingMW = middleware.NewLoggingMiddleware(logger)
	b.recoveryMW = middleware.NewRecoveryMiddleware(logger, api)
	b.rateLimitMW = middleware.NewRateLimiterMiddleware(
		cfg.RateLimitPerMinute,
		cfg.RateLimitBurst,
		logger,
		api,
	)

	b.commands = map[string]handlers.Handler{
		"start":      handlers.NewStartHandler(sender, chatUC, kb),
		"help":       handlers.NewHelpHandler(sender),
		"files":      handlers.NewFilesHandler(sender, filesUC),
		"sources":    handlers.NewSourcesHandler(sender, filesUC),
		"transcript": handlers.NewTranscriptHandler(sender, chatUC, validator),
	}
	b.chat = handlers.NewChatHandler(sender, chatUC, validator, api, logger)

	logger.Info("telegram handlers registered",
		zap.Int("command_count", len(b.commands)),
	)

	return b
}

// Start starts the bot
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout
	b.updatesChan = b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)
	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops receiving updates and waits for in-flight handlers up to the shutdown timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	b.stopOnce.Do(func() {
		close(b.stopChan)
		b.api.StopReceivingUpdates()
	})

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(b.cfg.ShutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", b.cfg.ShutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

func (b *Bot) processUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update, ok := <-b.updatesChan:
			if !ok {
				ctxzap.Info(ctx, "updates channel closed")
				return
			}
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdateWithMiddleware(u)
			}(update)
		}
	}
}

// handleUpdateWithMiddleware runs the update through rate limiting, logging and recovery
func (b *Bot) handleUpdateWithMiddleware(update tgbotapi.Update) {
	b.rateLimitMW.Handle(update, func(u tgbotapi.Update) {
		b.loggingMW.Handle(u, func(u2 tgbotapi.Update) {
			b.recoveryMW.Handle(u2, b.handleUpdate)
		})
	})
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	ctx := ctxzap.ToContext(context.Background(), b.logger.With(zap.Int("update_id", update.UpdateID)))

	switch {
	case update.CallbackQuery != nil:
		b.handleCallbackQuery(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	msg := newMessage(message)
	ctx = logger.AddFields(ctx,
		zap.Int64("chat_id", msg.ChatID),
		zap.Int64("user_id", msg.UserID),
	)

	if !message.IsCommand() {
		b.run(ctx, b.chat, msg)
		return
	}

	command := message.Command()
	ctxzap.Info(ctx, "command received", zap.String("command", command))

	handler, ok := b.commands[command]
	if !ok {
		b.sendError(msg.ChatID, render.ErrUnknownCommand)
		return
	}
	msg.Args = message.CommandArguments()
	b.run(logger.WithAction(ctx, command), handler, msg)
}

// handleCallbackQuery answers the button press and runs the command it stands for
func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	b.answerCallback(query.ID)

	if query.Message == nil {
		return
	}

	callbackData, err := keyboard.ParseCallback(query.Data)
	if err != nil {
		ctxzap.Warn(ctx, "invalid callback data",
			zap.Error(err),
			zap.String("data", query.Data),
		)
		return
	}

	ctxzap.Info(ctx, "callback query received",
		zap.String("action", callbackData.Action),
		zap.String("value", callbackData.Value),
		zap.Int64("user_id", query.From.ID),
	)

	handler, ok := b.commands[callbackData.Action]
	if !ok {
		b.sendError(query.Message.Chat.ID, render.ErrUnknownCommand)
		return
	}

	msg := &handlers.Message{
		ChatID:    query.Message.Chat.ID,
		UserID:    query.From.ID,
		Username:  query.From.UserName,
		MessageID: query.Message.MessageID,
	}
	b.run(logger.WithAction(ctx, callbackData.Action), handler, msg)
}

func (b *Bot) run(ctx context.Context, handler handlers.Handler, msg *handlers.Message) {
	if err := handler.Handle(ctx, msg); err != nil {
		ctxzap.Error(ctx, "handler error", zap.Error(err))
		b.sendError(msg.ChatID, render.ClassifyError(err))
	}
}

func newMessage(message *tgbotapi.Message) *handlers.Message {
	msg := &handlers.Message{
		ChatID:    message.Chat.ID,
		MessageID: message.MessageID,
		Text:      message.Text,
	}
	if message.From != nil {
		msg.UserID = message.From.ID
		msg.Username = message.From.UserName
	}
	return msg
}

func (b *Bot) sendError(chatID int64, text string) {
	if err := b.sender.Send(chatID, text, nil); err != nil {
		b.logger.Error("failed to send error message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

func (b *Bot) answerCallback(callbackID string) {
	callback := tgbotapi.NewCallback(callbackID, "")
	if _, err := b.api.Request(callback); err != nil {
		b.logger.Error("failed to answer callback",
			zap.Error(err),
			zap.String("callback_id", callbackID),
		)
	}
}
