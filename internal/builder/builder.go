package builder

import (
	"fmt"
	"net/http"

	"github.com/samsontands/RAG/internal/api"
	chatapi "github.com/samsontands/RAG/internal/api/chat"
	filesapi "github.com/samsontands/RAG/internal/api/files"
	"github.com/samsontands/RAG/internal/telegram"
	"go.uber.org/zap"
)

// Build wires the HTTP chat server
func Build(environment string) (*App, error) {
	c, err := BuildComponents(environment)
	if err != nil {
		return nil, err
	}

	c.Logger.Info("Building application",
		zap.String("environment", c.Config.Environment),
		zap.String("server_addr", c.Config.ServerAddr),
	)

	return newApp(c), nil
}

func newApp(c *Components) *App {
	cfg := c.Config

	router := api.SetupRouter(
		chatapi.NewHandler(c.Chat, c.Validator),
		filesapi.NewHandler(c.Files),
		cfg.ServerHandlerTimeout,
		c.Logger,
	)

	server := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		// A turn may take the whole handler timeout; leave room to write the answer
		WriteTimeout: cfg.ServerHandlerTimeout + writeTimeoutSlack,
		IdleTimeout:  idleTimeout,
	}

	c.Logger.Info("Application built successfully")

	return &App{
		server: server,
		logger: c.Logger,
	}
}

// BuildTelegramBot wires the Telegram front end on top of the same use cases
func BuildTelegramBot(environment string) (telegram.Bot, *zap.Logger, error) {
	c, err := BuildComponents(environment)
	if err != nil {
		return nil, nil, err
	}

	if err := c.Config.ValidateTelegram(); err != nil {
		return nil, nil, err
	}

	bot, err := telegram.NewBot(&c.Config.TelegramCfg, c.Chat, c.Files, c.Validator, c.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	c.Logger.Info("Telegram bot built successfully",
		zap.String("environment", c.Config.Environment),
	)

	return bot, c.Logger, nil
}
