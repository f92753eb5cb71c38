package chat

import (
	"context"

	"github.com/tnega/gosearch/internal/entity"
	"github.com/tnega/gosearch/internal/session"
)

// ChatUsecase is what the HTTP handler needs from the chat flow.
type ChatUsecase interface {
	StartSession(ctx context.Context, sessionID string) (*session.Session, error)
	HandleMessage(ctx context.Context, sessionID, text string) (*entity.Answer, error)
	EndSession(ctx context.Context, sessionID string)
}
