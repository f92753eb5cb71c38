package filesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/tnega/gosearch/internal/config"
	"github.com/tnega/gosearch/internal/entity"
	pkghttp "github.com/tnega/gosearch/pkg/http"
	"go.uber.org/zap"
)

const (
	createStoreEndpoint  = "/v1beta/fileSearchStores"
	uploadEndpointFmt    = "/upload/v1beta/%s:uploadToFileSearchStore"
	operationEndpointFmt = "/v1beta/%s"
	generateEndpointFmt  = "/v1beta/models/%s:generateContent"

	apiKeyHeader = "x-goog-api-key"
)

// Connector talks to the hosted file-search/LLM service over its REST API.
type Connector struct {
	config    config.GenAIConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.GenAIConnectorConfig,
	apiKey string,
	logger *zap.Logger,
) *Connector {
	connCfg := &pkghttp.ConnectorConfig{
		Logger:  logger,
		BaseURL: cfg.Url,
	}

	return &Connector{
		connector: pkghttp.NewConnector(
			connCfg,
			pkghttp.WithRequestTimeout(cfg.RequestTimeout),
			pkghttp.WithConnClientTimeout(cfg.ConnTimeout),
			pkghttp.WithClientKeepAlive(cfg.KeepAlive),
			pkghttp.WithIdleConnTimeout(cfg.IdleConnTimeout),
			pkghttp.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
			pkghttp.WithRequestLogging(),
			pkghttp.WithAPIKey(apiKeyHeader, apiKey),
		),
		config: cfg,
		logger: logger,
	}
}

// CreateStore creates a new file search store with the given display name.
func (c *Connector) CreateStore(ctx context.Context, displayName string) (*entity.FileSearchStore, error) {
	ctxzap.Info(ctx, "creating file search store", zap.String("display_name", displayName))

	req := entity.CreateStoreRequest{DisplayName: displayName}
	var store entity.FileSearchStore
	if err := c.connector.DoRequest(ctx, http.MethodPost, createStoreEndpoint, req, &store); err != nil {
		return nil, fmt.Errorf("create file search store: %w", err)
	}

	ctxzap.Info(ctx, "file search store created", zap.String("store", store.Name))

	return &store, nil
}

// UploadToStore submits one document for asynchronous upload and indexing.
// The returned operation must be polled via GetOperation until done.
func (c *Connector) UploadToStore(ctx context.Context, storeName, path string, uploadCfg *entity.UploadConfig) (*entity.Operation, error) {
	ctxzap.Info(ctx, "uploading document to file search store",
		zap.String("store", storeName),
		zap.String("file", filepath.Base(path)),
	)

	prepareBody := func(writer *multipart.Writer) error {
		metadata, err := json.Marshal(uploadCfg)
		if err != nil {
			return fmt.Errorf("marshal upload config: %w", err)
		}

		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="metadata"`)
		header.Set("Content-Type", "application/json")
		part, err := writer.CreatePart(header)
		if err != nil {
			return fmt.Errorf("create metadata part: %w", err)
		}
		if _, err := part.Write(metadata); err != nil {
			return fmt.Errorf("write metadata part: %w", err)
		}

		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open document: %w", err)
		}
		defer file.Close()

		filePart, err := writer.CreateFormFile("file", filepath.Base(path))
		if err != nil {
			return fmt.Errorf("create file part: %w", err)
		}
		if _, err := io.Copy(filePart, file); err != nil {
			return fmt.Errorf("write file part: %w", err)
		}

		return nil
	}

	endpoint := fmt.Sprintf(uploadEndpointFmt, storeName)

	var op entity.Operation
	if err := c.connector.DoMultipartRequest(ctx, http.MethodPost, endpoint, prepareBody, &op); err != nil {
		return nil, fmt.Errorf("upload %s: %w", filepath.Base(path), err)
	}

	ctxzap.Info(ctx, "upload operation started", zap.String("operation", op.Name))

	return &op, nil
}

// GetOperation fetches the current state of an asynchronous upload operation.
func (c *Connector) GetOperation(ctx context.Context, name string) (*entity.Operation, error) {
	endpoint := fmt.Sprintf(operationEndpointFmt, name)

	var op entity.Operation
	if err := c.connector.DoRequest(ctx, http.MethodGet, endpoint, nil, &op); err != nil {
		return nil, fmt.Errorf("get operation %s: %w", name, err)
	}

	return &op, nil
}

// GenerateWithFileSearch issues a retrieval-augmented generation request
// scoped to the given store.
func (c *Connector) GenerateWithFileSearch(ctx context.Context, storeName string, contents []entity.Content) (*entity.GenerateContentResponse, error) {
	ctxzap.Debug(ctx, "generating content with file search",
		zap.String("store", storeName),
		zap.Int("turn_count", len(contents)),
	)

	req := entity.GenerateContentRequest{
		Contents: contents,
		Tools: []entity.Tool{
			{FileSearch: &entity.FileSearch{FileSearchStoreNames: []string{storeName}}},
		},
	}

	endpoint := fmt.Sprintf(generateEndpointFmt, c.config.Model)

	var resp entity.GenerateContentResponse
	if err := c.connector.DoRequest(ctx, http.MethodPost, endpoint, req, &resp); err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	ctxzap.Debug(ctx, "content generated",
		zap.Int("answer_length", len(resp.Text())),
		zap.Int("source_count", len(resp.SourceTitles())),
	)

	return &resp, nil
}
