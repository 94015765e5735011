package drive

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

func TestBuildListQuery(t *testing.T) {
	tests := []struct {
		name     string
		folderID string
		mimeType string
		expected string
	}{
		{
			name:     "folder with MIME type filter",
			folderID: "F1",
			mimeType: "application/pdf",
			expected: "'F1' in parents and trashed = false and mimeType='application/pdf'",
		},
		{
			name:     "folder without MIME type filter",
			folderID: "F1",
			mimeType: "",
			expected: "'F1' in parents and trashed = false",
		},
		{
			name:     "image filter",
			folderID: "folder-abc",
			mimeType: "image/png",
			expected: "'folder-abc' in parents and trashed = false and mimeType='image/png'",
		},
		{
			name:     "google docs filter",
			folderID: "root",
			mimeType: "application/vnd.google-apps.document",
			expected: "'root' in parents and trashed = false and mimeType='application/vnd.google-apps.document'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildListQuery(tt.folderID, tt.mimeType)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestToFileRecord(t *testing.T) {
	driveFile := &drive.File{
		Id:          "file123",
		Name:        "report.pdf",
		MimeType:    "application/pdf",
		WebViewLink: "https://drive.google.com/file/d/file123/view",
	}

	record := toFileRecord(driveFile)

	assert.Equal(t, "file123", record.ID)
	assert.Equal(t, "report.pdf", record.Name)
	assert.Equal(t, "application/pdf", record.MimeType)
	assert.Equal(t, "https://drive.google.com/file/d/file123/view", record.WebViewLink)
}

func TestToFileRecordMinimalData(t *testing.T) {
	record := toFileRecord(&drive.File{Id: "file456", Name: "minimal.txt"})

	assert.Equal(t, "file456", record.ID)
	assert.Equal(t, "minimal.txt", record.Name)
	assert.Empty(t, record.MimeType)
	assert.Empty(t, record.WebViewLink)
}

// newTestClient builds a Client against a fake Drive API server.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	service, err := drive.NewService(context.Background(),
		option.WithoutAuthentication(),
		option.WithEndpoint(srv.URL))
	require.NoError(t, err)

	return &Client{
		service: service,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestListFilesSinglePage(t *testing.T) {
	var gotQuery string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"nextPageToken": "page-2",
			"files": []map[string]string{
				{"id": "f1", "name": "a.pdf", "mimeType": "application/pdf", "webViewLink": "https://example.com/f1"},
				{"id": "f2", "name": "b.pdf", "mimeType": "application/pdf", "webViewLink": "https://example.com/f2"},
			},
		})
	})

	client := newTestClient(t, handler)

	records, err := client.ListFiles(context.Background(), "F1", "application/pdf")
	require.NoError(t, err)

	assert.Equal(t, "'F1' in parents and trashed = false and mimeType='application/pdf'", gotQuery)

	// Server order preserved, and only the first page is returned even
	// though the server advertised another one.
	require.Len(t, records, 2)
	assert.Equal(t, "f1", records[0].ID)
	assert.Equal(t, "a.pdf", records[0].Name)
	assert.Equal(t, "f2", records[1].ID)
}

func TestListFilesOmitsMimeConstraint(t *testing.T) {
	var gotQuery string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"files": []map[string]string{}})
	})

	client := newTestClient(t, handler)

	_, err := client.ListFiles(context.Background(), "F1", "")
	require.NoError(t, err)

	assert.Equal(t, "'F1' in parents and trashed = false", gotQuery)
	assert.NotContains(t, gotQuery, "mimeType")
}

func TestListAllFilesWalksPages(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("pageToken") {
		case "":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"nextPageToken": "page-2",
				"files":         []map[string]string{{"id": "f1", "name": "a.pdf"}},
			})
		case "page-2":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"files": []map[string]string{{"id": "f2", "name": "b.pdf"}},
			})
		default:
			http.Error(w, "unexpected page token", http.StatusBadRequest)
		}
	})

	client := newTestClient(t, handler)

	records, err := client.ListAllFiles(context.Background(), "F1", "application/pdf")
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "f1", records[0].ID)
	assert.Equal(t, "f2", records[1].ID)
}

func TestDownloadFileWritesAllChunks(t *testing.T) {
	chunks := []string{"first-chunk|", "second-chunk|", "third-chunk"}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "media", r.URL.Query().Get("alt"))

		flusher, ok := w.(http.Flusher)
		require.True(t, ok)
		for _, chunk := range chunks {
			_, _ = io.WriteString(w, chunk)
			flusher.Flush()
		}
	})

	client := newTestClient(t, handler)

	path, err := client.DownloadFile(context.Background(), "f1")
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(path) })

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	// The file content must equal the concatenation of all served chunks.
	assert.Equal(t, "first-chunk|second-chunk|third-chunk", string(content))
}

func TestDownloadFileTransportError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"code": 500, "message": "backend error"}}`, http.StatusInternalServerError)
	})

	client := newTestClient(t, handler)

	_, err := client.DownloadFile(context.Background(), "f1")
	require.Error(t, err)

	var apiErr *googleapi.Error
	require.True(t, errors.As(err, &apiErr), "vendor error should propagate, got %v", err)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Code)
}

func TestGetFileMetadata(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("fields"), "mimeType")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id":          "f1",
			"name":        "manual.pdf",
			"mimeType":    "application/pdf",
			"webViewLink": "https://example.com/f1",
		})
	})

	client := newTestClient(t, handler)

	record, err := client.GetFileMetadata(context.Background(), "f1")
	require.NoError(t, err)

	assert.Equal(t, "f1", record.ID)
	assert.Equal(t, "manual.pdf", record.Name)
	assert.Equal(t, "application/pdf", record.MimeType)
	assert.Equal(t, "https://example.com/f1", record.WebViewLink)
}

func TestGetFileMetadataNotFound(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error": {"code": 404, "message": "File not found: missing-id"}}`)
	})

	client := newTestClient(t, handler)

	record, err := client.GetFileMetadata(context.Background(), "missing-id")
	require.Error(t, err)
	assert.Nil(t, record, "a missing file must not yield an empty record")

	var apiErr *googleapi.Error
	require.True(t, errors.As(err, &apiErr), "not-found should propagate as the vendor error, got %v", err)
	assert.Equal(t, http.StatusNotFound, apiErr.Code)
}

func TestDefaultMimeType(t *testing.T) {
	assert.Equal(t, "application/pdf", DefaultMimeType)
}
