package builder

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tnega/gosearch/internal/api"
	chatapi "github.com/tnega/gosearch/internal/api/chat"
	"github.com/tnega/gosearch/internal/config"
	"github.com/tnega/gosearch/internal/integration/filesearch"
	"github.com/tnega/gosearch/internal/pkg/validator"
	"github.com/tnega/gosearch/internal/session"
	"github.com/tnega/gosearch/internal/telegram"
	"github.com/tnega/gosearch/internal/usecase/chat"
	"github.com/tnega/gosearch/internal/usecase/ingest"
	"github.com/unidoc/unioffice/common/license"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	chatUC := buildChatUsecase(cfg, logger)

	// Setup API handlers
	chatHandler := chatapi.NewHandler(chatUC)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(chatHandler, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (telegram.Bot, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	chatUC := buildChatUsecase(cfg, logger)

	// Initialize Telegram bot
	bot, err := telegram.NewBot(&cfg.TelegramCfg, chatUC, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, logger, nil
}

// BuildIngestor creates the batch ingestion tool
func BuildIngestor() (*ingest.Usecase, *config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building ingestion tool",
		zap.String("environment", cfg.Environment),
		zap.String("documents_dir", cfg.IngestCfg.DocumentsDir),
	)

	// unioffice refuses all workbook operations without a license, so the
	// metadata loader cannot run without this key.
	if cfg.UnidocLicenseKey == "" {
		return nil, nil, nil, fmt.Errorf("UNIDOC_LICENSE_API_KEY environment variable is not set (required to read the metadata spreadsheet)")
	}
	if err := license.SetMeteredKey(cfg.UnidocLicenseKey); err != nil {
		return nil, nil, nil, fmt.Errorf("set unioffice license key: %w", err)
	}

	connector := buildFileSearchConnector(cfg, logger)
	documentValidator := validator.NewDocumentValidator(cfg.IngestCfg.MaxFileSize)

	uc := ingest.NewUsecase(cfg.IngestCfg, connector, documentValidator, logger)

	return uc, cfg, logger, nil
}

func buildChatUsecase(cfg *config.Config, logger *zap.Logger) *chat.Usecase {
	sessions := session.NewStore(cfg.SessionCfg.TTL, cfg.SessionCfg.CleanupInterval)
	logger.Info("Session store initialized",
		zap.Duration("ttl", cfg.SessionCfg.TTL),
	)

	connector := buildFileSearchConnector(cfg, logger)

	uc := chat.NewUsecase(
		connector,
		sessions,
		cfg.SessionCfg.StoreConfigFile,
		cfg.GeminiAPIKey,
		cfg.EnableMocks,
		logger,
	)
	logger.Info("Use cases initialized")

	return uc
}

func buildFileSearchConnector(cfg *config.Config, logger *zap.Logger) filesearchConnector {
	if cfg.EnableMocks {
		logger.Info("Using mock connector for the file search service")
		return filesearch.NewMockConnector(logger)
	}

	logger.Info("Using real connector for the file search service")
	return filesearch.NewConnector(cfg.GenAICfg, cfg.GeminiAPIKey, logger)
}

// filesearchConnector is the union of what the ingestion and chat flows need.
type filesearchConnector interface {
	ingest.FileSearchConnector
	chat.GenerateConnector
}
