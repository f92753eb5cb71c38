package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnega/gosearch/internal/config"
	"github.com/tnega/gosearch/internal/entity"
	pkgretry "github.com/tnega/gosearch/internal/pkg/retry"
	"github.com/tnega/gosearch/internal/pkg/validator"
	"github.com/tnega/gosearch/internal/storeconfig"
	"github.com/unidoc/unioffice/spreadsheet"
	"go.uber.org/zap"
)

type uploadCall struct {
	storeName string
	path      string
	cfg       *entity.UploadConfig
}

type mockFileSearchConnector struct {
	createdDisplayName string
	uploads            []uploadCall
	uploadErrs         map[string]error

	operations map[string]*entity.Operation
	getOpErr   error
	getOpCalls int
}

func (m *mockFileSearchConnector) CreateStore(_ context.Context, displayName string) (*entity.FileSearchStore, error) {
	m.createdDisplayName = displayName
	return &entity.FileSearchStore{Name: "fileSearchStores/test-store", DisplayName: displayName}, nil
}

func (m *mockFileSearchConnector) UploadToStore(_ context.Context, storeName, path string, cfg *entity.UploadConfig) (*entity.Operation, error) {
	filename := filepath.Base(path)
	if err := m.uploadErrs[filename]; err != nil {
		return nil, err
	}
	m.uploads = append(m.uploads, uploadCall{storeName: storeName, path: path, cfg: cfg})
	return &entity.Operation{Name: "operations/" + filename}, nil
}

func (m *mockFileSearchConnector) GetOperation(_ context.Context, name string) (*entity.Operation, error) {
	m.getOpCalls++
	if m.getOpErr != nil {
		return nil, m.getOpErr
	}
	if op, ok := m.operations[name]; ok {
		return op, nil
	}
	return &entity.Operation{Name: name, Done: true}, nil
}

func writePDF(t *testing.T, dir, name string) {
	t.Helper()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(40, 10, "Government Order "+name)
	require.NoError(t, pdf.OutputFileAndClose(filepath.Join(dir, name)))
}

func writeMetadataFile(t *testing.T, path string, rows [][]string) {
	t.Helper()

	wb := spreadsheet.New()
	defer wb.Close()
	sheet := wb.AddSheet()

	header := sheet.AddRow()
	for _, h := range []string{"Filename", "Year", "GO Number", "Department", "Abstract", "Date"} {
		header.AddCell().SetString(h)
	}
	for _, cells := range rows {
		row := sheet.AddRow()
		for _, value := range cells {
			row.AddCell().SetString(value)
		}
	}

	require.NoError(t, wb.SaveToFile(path))
}

func testConfig(t *testing.T) config.IngestConfig {
	t.Helper()

	dir := t.TempDir()
	return config.IngestConfig{
		DocumentsDir:     filepath.Join(dir, "docs"),
		MetadataFile:     filepath.Join(dir, "GO_metadata.xlsx"),
		StoreConfigFile:  filepath.Join(dir, "store_config.json"),
		StoreDisplayName: "TNega-GOs",
		PollInterval:     time.Millisecond,
		MaxFileSize:      10 << 20,
		Poll:             pkgretry.RetryConfig{Attempts: 2, Delay: time.Millisecond},
	}
}

func TestRun(t *testing.T) {
	t.Run("uploads every pdf with its metadata", func(t *testing.T) {
		cfg := testConfig(t)
		require.NoError(t, os.Mkdir(cfg.DocumentsDir, 0o755))
		writePDF(t, cfg.DocumentsDir, "go_1.pdf")
		writePDF(t, cfg.DocumentsDir, "go_2.pdf")
		// non-candidates are ignored
		require.NoError(t, os.WriteFile(filepath.Join(cfg.DocumentsDir, "notes.txt"), []byte("x"), 0o644))

		writeMetadataFile(t, cfg.MetadataFile, [][]string{
			{"go_1.pdf", "2023", "123", "Finance", "Sanction of funds", "2023-04-01"},
		})

		connector := &mockFileSearchConnector{}
		uc := NewUsecase(cfg, connector, validator.NewDocumentValidator(cfg.MaxFileSize), zap.NewNop())

		summary, err := uc.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "TNega-GOs", connector.createdDisplayName)
		assert.Equal(t, "fileSearchStores/test-store", summary.StoreName)
		assert.Equal(t, 2, summary.Submitted)
		assert.Equal(t, 2, summary.Succeeded)
		assert.Equal(t, 0, summary.Failed)

		require.Len(t, connector.uploads, 2)
		withMetadata := connector.uploads[0]
		assert.Equal(t, "go_1.pdf", withMetadata.cfg.DisplayName)
		assert.Len(t, withMetadata.cfg.CustomMetadata, 5)

		// no spreadsheet row: uploaded without custom metadata
		bare := connector.uploads[1]
		assert.Equal(t, "go_2.pdf", bare.cfg.DisplayName)
		assert.Empty(t, bare.cfg.CustomMetadata)

		saved, err := storeconfig.Load(cfg.StoreConfigFile)
		require.NoError(t, err)
		assert.Equal(t, "fileSearchStores/test-store", saved.StoreName)
		assert.Equal(t, "TNega-GOs", saved.DisplayName)
	})

	t.Run("submission failure does not stop the batch", func(t *testing.T) {
		cfg := testConfig(t)
		require.NoError(t, os.Mkdir(cfg.DocumentsDir, 0o755))
		writePDF(t, cfg.DocumentsDir, "go_1.pdf")
		writePDF(t, cfg.DocumentsDir, "go_2.pdf")
		writeMetadataFile(t, cfg.MetadataFile, nil)

		connector := &mockFileSearchConnector{
			uploadErrs: map[string]error{"go_1.pdf": errors.New("boom")},
		}
		uc := NewUsecase(cfg, connector, validator.NewDocumentValidator(cfg.MaxFileSize), zap.NewNop())

		summary, err := uc.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1, summary.Submitted)
		assert.Equal(t, 1, summary.Succeeded)
		assert.Equal(t, 1, summary.Failed)

		// the store config is still written for the surviving uploads
		_, err = storeconfig.Load(cfg.StoreConfigFile)
		assert.NoError(t, err)
	})

	t.Run("oversized file is skipped", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.MaxFileSize = 10
		require.NoError(t, os.Mkdir(cfg.DocumentsDir, 0o755))
		writePDF(t, cfg.DocumentsDir, "go_1.pdf")
		writeMetadataFile(t, cfg.MetadataFile, nil)

		connector := &mockFileSearchConnector{}
		uc := NewUsecase(cfg, connector, validator.NewDocumentValidator(cfg.MaxFileSize), zap.NewNop())

		summary, err := uc.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 0, summary.Submitted)
		assert.Equal(t, 1, summary.Failed)
		assert.Empty(t, connector.uploads)
	})

	t.Run("operation error counts as failure", func(t *testing.T) {
		cfg := testConfig(t)
		require.NoError(t, os.Mkdir(cfg.DocumentsDir, 0o755))
		writePDF(t, cfg.DocumentsDir, "go_1.pdf")
		writeMetadataFile(t, cfg.MetadataFile, nil)

		connector := &mockFileSearchConnector{
			operations: map[string]*entity.Operation{
				"operations/go_1.pdf": {
					Name: "operations/go_1.pdf",
					Done: true,
					Error: &entity.OperationError{
						Code:    13,
						Message: "processing failed",
					},
				},
			},
		}
		uc := NewUsecase(cfg, connector, validator.NewDocumentValidator(cfg.MaxFileSize), zap.NewNop())

		summary, err := uc.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1, summary.Submitted)
		assert.Equal(t, 0, summary.Succeeded)
		assert.Equal(t, 1, summary.Failed)
	})

	t.Run("polling is abandoned after the retry budget", func(t *testing.T) {
		cfg := testConfig(t)
		require.NoError(t, os.Mkdir(cfg.DocumentsDir, 0o755))
		writePDF(t, cfg.DocumentsDir, "go_1.pdf")
		writeMetadataFile(t, cfg.MetadataFile, nil)

		connector := &mockFileSearchConnector{getOpErr: errors.New("unreachable")}
		uc := NewUsecase(cfg, connector, validator.NewDocumentValidator(cfg.MaxFileSize), zap.NewNop())

		summary, err := uc.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1, summary.Failed)
		assert.Equal(t, int(cfg.Poll.Attempts), connector.getOpCalls)
	})

	t.Run("missing metadata file aborts", func(t *testing.T) {
		cfg := testConfig(t)
		require.NoError(t, os.Mkdir(cfg.DocumentsDir, 0o755))

		uc := NewUsecase(cfg, &mockFileSearchConnector{}, validator.NewDocumentValidator(cfg.MaxFileSize), zap.NewNop())

		_, err := uc.Run(context.Background())
		assert.Error(t, err)
	})
}
