package ingest

import (
	"context"

	"github.com/tnega/gosearch/internal/entity"
)

// FileSearchConnector is the slice of the hosted service the ingestion tool
// needs: store creation, async uploads and operation polling.
type FileSearchConnector interface {
	CreateStore(ctx context.Context, displayName string) (*entity.FileSearchStore, error)
	UploadToStore(ctx context.Context, storeName, path string, cfg *entity.UploadConfig) (*entity.Operation, error)
	GetOperation(ctx context.Context, name string) (*entity.Operation, error)
}
