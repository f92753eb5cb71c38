package filesearch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/tnega/gosearch/internal/entity"
	"go.uber.org/zap"
)

// MockConnector is an offline stand-in for the hosted service, enabled with
// ENABLE_MOCKS for local runs.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) CreateStore(ctx context.Context, displayName string) (*entity.FileSearchStore, error) {
	ctxzap.Info(ctx, "[MOCK] creating file search store",
		zap.String("display_name", displayName),
	)

	return &entity.FileSearchStore{
		Name:        "fileSearchStores/mock-store",
		DisplayName: displayName,
	}, nil
}

func (m *MockConnector) UploadToStore(ctx context.Context, storeName, path string, uploadCfg *entity.UploadConfig) (*entity.Operation, error) {
	ctxzap.Info(ctx, "[MOCK] uploading document",
		zap.String("store", storeName),
		zap.String("file", filepath.Base(path)),
		zap.Int("custom_metadata_count", len(uploadCfg.CustomMetadata)),
	)

	// Mock uploads complete instantly
	return &entity.Operation{
		Name: fmt.Sprintf("%s/operations/mock-%s", storeName, filepath.Base(path)),
		Done: true,
	}, nil
}

func (m *MockConnector) GetOperation(ctx context.Context, name string) (*entity.Operation, error) {
	ctxzap.Info(ctx, "[MOCK] getting operation", zap.String("operation", name))

	return &entity.Operation{Name: name, Done: true}, nil
}

func (m *MockConnector) GenerateWithFileSearch(ctx context.Context, storeName string, contents []entity.Content) (*entity.GenerateContentResponse, error) {
	ctxzap.Info(ctx, "[MOCK] generating content with file search",
		zap.String("store", storeName),
		zap.Int("turn_count", len(contents)),
	)

	var question string
	if len(contents) > 0 {
		last := contents[len(contents)-1]
		if len(last.Parts) > 0 {
			question = last.Parts[0].Text
		}
	}

	answer := fmt.Sprintf("Mock answer for: %q. G.O. (Ms) No.1, dated 01.01.2021, "+
		"Information Technology Department, covers this topic.", question)

	return &entity.GenerateContentResponse{
		Candidates: []entity.Candidate{
			{
				Content: &entity.Content{
					Role:  entity.RoleModel,
					Parts: []entity.Part{{Text: answer}},
				},
				GroundingMetadata: &entity.GroundingMetadata{
					GroundingChunks: []entity.GroundingChunk{
						{RetrievedContext: &entity.RetrievedContext{Title: "mock_go_1.pdf"}},
					},
				},
			},
		},
	}, nil
}
