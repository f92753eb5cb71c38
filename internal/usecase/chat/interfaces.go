package chat

import (
	"context"

	"github.com/tnega/gosearch/internal/entity"
)

// GenerateConnector is the slice of the hosted service the chat flow needs.
type GenerateConnector interface {
	GenerateWithFileSearch(ctx context.Context, storeName string, contents []entity.Content) (*entity.GenerateContentResponse, error)
}
