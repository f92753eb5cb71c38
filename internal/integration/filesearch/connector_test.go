package filesearch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnega/gosearch/internal/config"
	"github.com/tnega/gosearch/internal/entity"
	pkghttp "github.com/tnega/gosearch/pkg/http"
	"go.uber.org/zap"
)

func testConnector(serverURL string) *Connector {
	cfg := config.GenAIConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			RequestTimeout:        5 * time.Second,
			ConnTimeout:           5 * time.Second,
			KeepAlive:             5 * time.Second,
			IdleConnTimeout:       5 * time.Second,
			ResponseHeaderTimeout: 5 * time.Second,
			Url:                   serverURL,
		},
		Model: "gemini-test",
	}
	return NewConnector(cfg, "test-api-key", zap.NewNop())
}

func TestCreateStore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/fileSearchStores", r.URL.Path)
		assert.Equal(t, "test-api-key", r.Header.Get("x-goog-api-key"))

		var req entity.CreateStoreRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "TNega-GOs", req.DisplayName)

		json.NewEncoder(w).Encode(entity.FileSearchStore{
			Name:        "fileSearchStores/abc123",
			DisplayName: req.DisplayName,
		})
	}))
	defer server.Close()

	store, err := testConnector(server.URL).CreateStore(context.Background(), "TNega-GOs")
	require.NoError(t, err)
	assert.Equal(t, "fileSearchStores/abc123", store.Name)
}

func TestUploadToStore(t *testing.T) {
	docPath := filepath.Join(t.TempDir(), "go_1.pdf")
	require.NoError(t, os.WriteFile(docPath, []byte("%PDF-1.4 test"), 0o644))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/upload/v1beta/fileSearchStores/abc123:uploadToFileSearchStore", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))

		metadataValues := r.MultipartForm.Value["metadata"]
		require.Len(t, metadataValues, 1)

		var uploadCfg entity.UploadConfig
		require.NoError(t, json.Unmarshal([]byte(metadataValues[0]), &uploadCfg))
		assert.Equal(t, "go_1.pdf", uploadCfg.DisplayName)
		require.Len(t, uploadCfg.CustomMetadata, 1)
		assert.Equal(t, "department", uploadCfg.CustomMetadata[0].Key)
		assert.Equal(t, "Finance", uploadCfg.CustomMetadata[0].StringValue)

		files := r.MultipartForm.File["file"]
		require.Len(t, files, 1)
		assert.Equal(t, "go_1.pdf", files[0].Filename)

		f, err := files[0].Open()
		require.NoError(t, err)
		defer f.Close()
		content, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.4 test", string(content))

		json.NewEncoder(w).Encode(entity.Operation{Name: "operations/upload-1"})
	}))
	defer server.Close()

	uploadCfg := &entity.UploadConfig{
		DisplayName: "go_1.pdf",
		CustomMetadata: []entity.CustomMetadata{
			{Key: "department", StringValue: "Finance"},
		},
	}

	op, err := testConnector(server.URL).UploadToStore(context.Background(), "fileSearchStores/abc123", docPath, uploadCfg)
	require.NoError(t, err)
	assert.Equal(t, "operations/upload-1", op.Name)
	assert.False(t, op.Done)
}

func TestGetOperation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1beta/operations/upload-1", r.URL.Path)

		json.NewEncoder(w).Encode(entity.Operation{Name: "operations/upload-1", Done: true})
	}))
	defer server.Close()

	op, err := testConnector(server.URL).GetOperation(context.Background(), "operations/upload-1")
	require.NoError(t, err)
	assert.True(t, op.Done)
	assert.Nil(t, op.Error)
}

func TestGenerateWithFileSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-test:generateContent", r.URL.Path)

		var req entity.GenerateContentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "what is GO 123?", req.Contents[0].Parts[0].Text)
		require.Len(t, req.Tools, 1)
		require.NotNil(t, req.Tools[0].FileSearch)
		assert.Equal(t, []string{"fileSearchStores/abc123"}, req.Tools[0].FileSearch.FileSearchStoreNames)

		json.NewEncoder(w).Encode(entity.GenerateContentResponse{
			Candidates: []entity.Candidate{{
				Content: &entity.Content{Parts: []entity.Part{{Text: "GO 123 covers it."}}},
				GroundingMetadata: &entity.GroundingMetadata{
					GroundingChunks: []entity.GroundingChunk{
						{RetrievedContext: &entity.RetrievedContext{Title: "go_123.pdf"}},
					},
				},
			}},
		})
	}))
	defer server.Close()

	contents := []entity.Content{entity.NewTextContent(entity.RoleUser, "what is GO 123?")}

	resp, err := testConnector(server.URL).GenerateWithFileSearch(context.Background(), "fileSearchStores/abc123", contents)
	require.NoError(t, err)
	assert.Equal(t, "GO 123 covers it.", resp.Text())
	assert.Equal(t, []string{"go_123.pdf"}, resp.SourceTitles())
}

func TestHTTPErrorMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"store not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	_, err := testConnector(server.URL).GetOperation(context.Background(), "operations/missing")
	require.Error(t, err)

	var httpErr *pkghttp.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Contains(t, httpErr.Message, "store not found")
}
