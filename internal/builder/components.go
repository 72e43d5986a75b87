package builder

import (
	"fmt"

	"github.com/samsontands/RAG/internal/config"
	"github.com/samsontands/RAG/internal/entity"
	"github.com/samsontands/RAG/internal/integration/rag"
	"github.com/samsontands/RAG/internal/pkg/logger"
	"github.com/samsontands/RAG/internal/pkg/validator"
	"github.com/samsontands/RAG/internal/repository"
	"github.com/samsontands/RAG/internal/usecase/chat"
	"github.com/samsontands/RAG/internal/usecase/files"
	"go.uber.org/zap"
)

// ragBackend is what the use cases need from the retrieval service
type ragBackend interface {
	repository.EngineFactory
	files.IndexedFilesLister
}

// Components are the front-end independent parts every entry point shares
type Components struct {
	Config    *config.Config
	Logger    *zap.Logger
	Chat      *chat.ChatUsecase
	Files     *files.FilesUsecase
	Validator *validator.Validator
}

// BuildComponents loads the configuration for the environment and wires the use cases
func BuildComponents(environment string) (*Components, error) {
	cfg, err := config.LoadConfig(environment)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	return setupComponents(cfg, log), nil
}

func setupComponents(cfg *config.Config, logger *zap.Logger) *Components {
	var backend ragBackend
	if cfg.EnableMocks {
		logger.Info("Using mock connector for the RAG service")
		backend = rag.NewMockConnector(logger)
	} else {
		logger.Info("Using RAG service",
			zap.String("url", cfg.RAGConnectorCfg.Url),
			zap.String("chat_endpoint", cfg.RAGConnectorCfg.ChatEndpoint),
		)
		backend = rag.NewConnector(cfg.RAGConnectorCfg, logger)
	}

	sessions := repository.NewSessionMemory(cfg.SessionCfg, backend, logger)
	logger.Info("Session store initialized",
		zap.Duration("ttl", cfg.SessionCfg.TTL),
		zap.Duration("cleanup_interval", cfg.SessionCfg.CleanupInterval),
	)

	info := entity.WorkspaceInfo{
		UploadURL:      cfg.UploadURL,
		BackendHost:    cfg.PathwayHost,
		BackendCaption: cfg.BackendCaption(),
	}

	return &Components{
		Config:    cfg,
		Logger:    logger,
		Chat:      chat.NewUsecase(sessions, cfg.FallbackAnswer),
		Files:     files.NewUsecase(backend, info),
		Validator: validator.NewValidator(cfg.MaxMessageLength),
	}
}
