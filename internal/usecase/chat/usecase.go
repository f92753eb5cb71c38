package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/tnega/gosearch/internal/entity"
	"github.com/tnega/gosearch/internal/session"
	"github.com/tnega/gosearch/internal/storeconfig"
	"go.uber.org/zap"
)

// Usecase drives the chat flow: session start against the persisted store
// configuration, and per-message retrieval-augmented queries with a capped
// in-memory transcript.
type Usecase struct {
	connector       GenerateConnector
	sessions        *session.Store
	storeConfigFile string
	apiKey          string
	mocksEnabled    bool
	logger          *zap.Logger
}

func NewUsecase(
	connector GenerateConnector,
	sessions *session.Store,
	storeConfigFile string,
	apiKey string,
	mocksEnabled bool,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		connector:       connector,
		sessions:        sessions,
		storeConfigFile: storeConfigFile,
		apiKey:          apiKey,
		mocksEnabled:    mocksEnabled,
		logger:          logger,
	}
}

// StartSession opens a new chat session. The credential and the store
// configuration are both required; either missing is a user-visible error and
// no session state is stored. Mock runs need no credential, matching the
// ingestion entry point.
func (u *Usecase) StartSession(ctx context.Context, sessionID string) (*session.Session, error) {
	if u.apiKey == "" && !u.mocksEnabled {
		return nil, entity.ErrMissingAPIKey
	}

	cfg, err := storeconfig.Load(u.storeConfigFile)
	if err != nil {
		return nil, err
	}

	sess := u.sessions.Create(sessionID, cfg.StoreName)

	ctxzap.Info(ctx, "chat session started",
		zap.String("session_id", sessionID),
		zap.String("store", cfg.StoreName),
	)

	return sess, nil
}

// EndSession discards the session and its transcript.
func (u *Usecase) EndSession(ctx context.Context, sessionID string) {
	u.sessions.Delete(sessionID)
	ctxzap.Info(ctx, "chat session ended", zap.String("session_id", sessionID))
}

// HandleMessage answers one user message within a session.
//
// The model input is the fixed system instruction pair, the stored transcript
// in order, then the new user turn. Whatever the query produces — a composed
// answer or the rendered error fallback — is appended to the transcript
// together with the user turn, and the transcript is truncated to its cap.
// A query failure is returned as the error; the transcript already carries
// the fallback text the surfaces render for it.
func (u *Usecase) HandleMessage(ctx context.Context, sessionID, text string) (*entity.Answer, error) {
	sess, ok := u.sessions.Get(sessionID)
	if !ok {
		return nil, entity.ErrSessionNotFound
	}

	// One in-flight query per session; concurrent messages to the same
	// session queue up here instead of racing on the transcript.
	sess.Lock()
	defer sess.Unlock()

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, entity.ErrEmptyMessage
	}

	contents := buildContents(sess.Transcript, text)

	resp, genErr := u.connector.GenerateWithFileSearch(ctx, sess.StoreName, contents)

	var answer *entity.Answer
	var rendered string
	if genErr != nil {
		ctxzap.Error(ctx, "retrieval query failed",
			zap.String("session_id", sessionID),
			zap.Error(genErr),
		)
		rendered = ErrorMessage(genErr)
	} else {
		answer = composeAnswer(resp)
		rendered = RenderMessage(answer)
	}

	sess.Transcript = entity.AppendTurns(sess.Transcript,
		entity.Turn{Role: entity.RoleUser, Text: text},
		entity.Turn{Role: entity.RoleModel, Text: rendered},
	)
	u.sessions.Save(sess)

	if genErr != nil {
		return nil, fmt.Errorf("generate answer: %w", genErr)
	}

	ctxzap.Info(ctx, "message answered",
		zap.String("session_id", sessionID),
		zap.Int("transcript_turns", len(sess.Transcript)),
		zap.Int("source_count", len(answer.Sources)),
	)

	return answer, nil
}

// buildContents assembles the model input for one query.
func buildContents(transcript []entity.Turn, text string) []entity.Content {
	contents := make([]entity.Content, 0, len(transcript)+3)
	contents = append(contents,
		entity.NewTextContent(entity.RoleUser, SystemPrompt),
		entity.NewTextContent(entity.RoleModel, systemAck),
	)

	for _, turn := range transcript {
		contents = append(contents, entity.NewTextContent(turn.Role, turn.Text))
	}

	return append(contents, entity.NewTextContent(entity.RoleUser, text))
}
