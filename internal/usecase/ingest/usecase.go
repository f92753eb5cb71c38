package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	retrygo "github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/tnega/gosearch/internal/config"
	"github.com/tnega/gosearch/internal/entity"
	"github.com/tnega/gosearch/internal/metadata"
	"github.com/tnega/gosearch/internal/pkg/validator"
	"github.com/tnega/gosearch/internal/storeconfig"
	"go.uber.org/zap"
)

// Usecase runs the one-time document ingestion: spreadsheet metadata is
// loaded, a fresh file search store is created, every PDF in the documents
// directory is uploaded with its derived custom metadata, and the resulting
// store name is persisted for the chat service.
//
// Per-file failures (submission or polling) are isolated: they are logged,
// counted and never stop the rest of the batch. Rerunning creates a new
// store; there is no deduplication against a previous run.
type Usecase struct {
	cfg       config.IngestConfig
	connector FileSearchConnector
	validator *validator.DocumentValidator
	logger    *zap.Logger
}

func NewUsecase(
	cfg config.IngestConfig,
	connector FileSearchConnector,
	documentValidator *validator.DocumentValidator,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		cfg:       cfg,
		connector: connector,
		validator: documentValidator,
		logger:    logger,
	}
}

// Summary reports the outcome of one ingestion run.
type Summary struct {
	StoreName string
	Submitted int
	Succeeded int
	Failed    int
}

type pendingUpload struct {
	filename  string
	operation *entity.Operation
}

// Run executes the full ingestion flow and writes the store configuration.
func (u *Usecase) Run(ctx context.Context) (*Summary, error) {
	ctxzap.Info(ctx, "loading metadata", zap.String("file", u.cfg.MetadataFile))

	records, err := metadata.Load(u.cfg.MetadataFile)
	if err != nil {
		return nil, fmt.Errorf("load metadata: %w", err)
	}
	ctxzap.Info(ctx, "metadata loaded", zap.Int("record_count", len(records)))

	store, err := u.connector.CreateStore(ctx, u.cfg.StoreDisplayName)
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}

	files, err := u.listDocuments()
	if err != nil {
		return nil, err
	}
	ctxzap.Info(ctx, "found documents",
		zap.Int("count", len(files)),
		zap.String("dir", u.cfg.DocumentsDir),
	)

	summary := &Summary{StoreName: store.Name}

	pending := u.submitUploads(ctx, store.Name, files, records, summary)
	summary.Submitted = len(pending)

	u.awaitUploads(ctx, pending, summary)

	cfg := entity.StoreConfig{StoreName: store.Name, DisplayName: u.cfg.StoreDisplayName}
	if err := storeconfig.Save(u.cfg.StoreConfigFile, cfg); err != nil {
		return summary, err
	}

	ctxzap.Info(ctx, "ingestion complete",
		zap.Int("submitted", summary.Submitted),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.String("store", store.Name),
		zap.String("config_file", u.cfg.StoreConfigFile),
	)

	return summary, nil
}

// listDocuments returns the upload candidates in the documents directory.
// os.ReadDir already sorts entries by filename, which keeps runs
// deterministic.
func (u *Usecase) listDocuments() ([]string, error) {
	entries, err := os.ReadDir(u.cfg.DocumentsDir)
	if err != nil {
		return nil, fmt.Errorf("read documents dir %s: %w", u.cfg.DocumentsDir, err)
	}

	var files []string
	for _, entry := range entries {
		if u.validator.IsCandidate(entry) {
			files = append(files, entry.Name())
		}
	}

	return files, nil
}

func (u *Usecase) submitUploads(
	ctx context.Context,
	storeName string,
	files []string,
	records map[string]entity.MetadataRecord,
	summary *Summary,
) []pendingUpload {
	var pending []pendingUpload

	for i, filename := range files {
		path := filepath.Join(u.cfg.DocumentsDir, filename)

		info, err := os.Stat(path)
		if err == nil {
			err = u.validator.Validate(filename, info.Size())
		}
		if err != nil {
			ctxzap.Error(ctx, "skipping document",
				zap.String("file", filename),
				zap.Error(err),
			)
			summary.Failed++
			continue
		}

		record := records[filename]
		if record.IsZero() {
			ctxzap.Warn(ctx, "no metadata row for document, uploading without custom metadata",
				zap.String("file", filename),
			)
		}

		uploadCfg := &entity.UploadConfig{
			DisplayName:    filename,
			CustomMetadata: metadata.BuildCustomMetadata(record),
		}

		ctxzap.Info(ctx, "submitting upload",
			zap.String("file", filename),
			zap.Int("index", i+1),
			zap.Int("total", len(files)),
			zap.Int("custom_metadata_count", len(uploadCfg.CustomMetadata)),
		)

		op, err := u.connector.UploadToStore(ctx, storeName, path, uploadCfg)
		if err != nil {
			ctxzap.Error(ctx, "upload submission failed",
				zap.String("file", filename),
				zap.Error(err),
			)
			summary.Failed++
			continue
		}

		pending = append(pending, pendingUpload{filename: filename, operation: op})
	}

	return pending
}

func (u *Usecase) awaitUploads(ctx context.Context, pending []pendingUpload, summary *Summary) {
	if len(pending) == 0 {
		return
	}

	ctxzap.Info(ctx, "waiting for uploads to complete", zap.Int("count", len(pending)))

	for _, upload := range pending {
		if err := u.waitForOperation(ctx, upload.operation); err != nil {
			ctxzap.Error(ctx, "upload failed",
				zap.String("file", upload.filename),
				zap.Error(err),
			)
			summary.Failed++
			continue
		}

		ctxzap.Info(ctx, "upload completed", zap.String("file", upload.filename))
		summary.Succeeded++
	}
}

// waitForOperation polls one operation until it reports completion. Each poll
// cycle sleeps the configured interval; a failing poll is retried on a fixed
// delay and the operation is abandoned after the configured number of
// consecutive failures. The retry budget is per operation.
func (u *Usecase) waitForOperation(ctx context.Context, op *entity.Operation) error {
	for !op.Done {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(u.cfg.PollInterval):
		}

		opts := append(u.cfg.Poll.ToRetryOptions(), retrygo.Context(ctx))
		updated, err := retrygo.DoWithData(func() (*entity.Operation, error) {
			return u.connector.GetOperation(ctx, op.Name)
		}, opts...)
		if err != nil {
			return fmt.Errorf("poll operation %s: %w", op.Name, err)
		}

		op = updated
	}

	if op.Error != nil {
		return fmt.Errorf("operation %s failed: %s", op.Name, op.Error.Message)
	}

	return nil
}
