package telegram

import (
	"context"
	"fmt"

	"github.com/tnega/gosearch/internal/config"
	"github.com/tnega/gosearch/internal/telegram/bot"
	"github.com/tnega/gosearch/internal/telegram/handlers"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot initializes the telegram bot with all dependencies
func NewBot(
	cfg *config.TelegramConfig,
	chatUC handlers.ChatUsecase,
	logger *zap.Logger,
) (Bot, error) {
	b, err := bot.New(cfg, chatUC, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	logger.Info("telegram bot initialized successfully")

	return b, nil
}
