package handlers

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/tnega/gosearch/internal/entity"
	"github.com/tnega/gosearch/internal/session"
	"github.com/tnega/gosearch/internal/telegram/render"
	chatuc "github.com/tnega/gosearch/internal/usecase/chat"
	"go.uber.org/zap"
)

// ChatUsecase is what the bot needs from the chat flow.
type ChatUsecase interface {
	StartSession(ctx context.Context, sessionID string) (*session.Session, error)
	HandleMessage(ctx context.Context, sessionID, text string) (*entity.Answer, error)
	EndSession(ctx context.Context, sessionID string)
}

// ChatHandler answers free-text questions for one chat. Sessions are keyed
// by chat ID, so each Telegram chat owns exactly one transcript.
type ChatHandler struct {
	api     *tgbotapi.BotAPI
	usecase ChatUsecase
	sender  *MessageSender
	logger  *zap.Logger
}

func NewChatHandler(api *tgbotapi.BotAPI, usecase ChatUsecase, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		api:     api,
		usecase: usecase,
		sender:  NewMessageSender(api, logger),
		logger:  logger,
	}
}

// SessionID maps a Telegram chat to its chat session key.
func SessionID(chatID int64) string {
	return fmt.Sprintf("tg:%d", chatID)
}

// HandleStart initializes the session for /start and greets the user.
// Configuration problems (missing credential, missing store config) surface
// as plain messages and leave no session behind.
func (h *ChatHandler) HandleStart(ctx context.Context, chatID int64) {
	if _, err := h.usecase.StartSession(ctx, SessionID(chatID)); err != nil {
		ctxzap.Error(ctx, "failed to start chat session",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sender.Send(chatID, err.Error())
		return
	}

	h.sender.Send(chatID, chatuc.WelcomeMessage)
}

// HandleText runs one question through the chat flow with a typing indicator
// and an editable progress message, then sends the composed answer.
func (h *ChatHandler) HandleText(ctx context.Context, chatID int64, text string) {
	typing := NewTypingNotifier(h.api, chatID, h.logger)
	typing.Start(ctx)
	defer typing.Stop()

	progressID, err := h.sender.Send(chatID, render.MsgSearching)
	if err != nil {
		return
	}

	answer, err := h.usecase.HandleMessage(ctx, SessionID(chatID), text)

	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		h.sender.Edit(chatID, progressID, chatuc.RestartMessage)

	case errors.Is(err, entity.ErrEmptyMessage):
		h.sender.Edit(chatID, progressID, err.Error())

	case err != nil:
		h.sender.Edit(chatID, progressID, fmt.Sprintf(render.MsgSearchFailedFmt, err))
		h.sender.Send(chatID, chatuc.ErrorMessage(err))

	default:
		h.sender.Edit(chatID, progressID, render.MsgSearchComplete)
		h.sender.Send(chatID, chatuc.RenderMessage(answer))
	}
}
