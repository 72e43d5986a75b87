package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samsontands/RAG/internal/config"
	"github.com/samsontands/RAG/internal/pkg/validator"
	"github.com/samsontands/RAG/internal/telegram/bot"
	"github.com/samsontands/RAG/internal/telegram/handlers"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot authorizes with Telegram and wires the bot to the chat and files use cases
func NewBot(
	cfg *config.TelegramConfig,
	chatUC handlers.ChatUsecase,
	filesUC handlers.FilesUsecase,
	validator *validator.Validator,
	logger *zap.Logger,
) (Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	return bot.New(cfg, api, chatUC, filesUC, validator, logger), nil
}
