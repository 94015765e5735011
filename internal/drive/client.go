package drive

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/oauth2"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/okibo/drivefetch/internal/instrumentation"
	"github.com/okibo/drivefetch/internal/logging"
)

const (
	// DefaultMimeType is the MIME type filter applied when the caller does
	// not choose one.
	DefaultMimeType = "application/pdf"

	// Field projections requested from the API.
	listFields     = "files(id, name, mimeType, webViewLink)"
	metadataFields = "id, name, mimeType, webViewLink"
)

// Operation names used in logs and metrics.
const (
	opListFiles       = "list_files"
	opDownloadFile    = "download_file"
	opGetFileMetadata = "get_file_metadata"
)

// Client wraps the Google Drive API service with read-only operations.
type Client struct {
	service *drive.Service
	logger  *slog.Logger
	metrics *instrumentation.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used by the client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder used by the client. A nil recorder
// disables metrics.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a Drive client from an authenticated token source.
// The service handle is built once, bound to API v3 and the scope carried
// by the token source, and reused for every subsequent call.
func NewClient(ctx context.Context, ts oauth2.TokenSource, opts ...Option) (*Client, error) {
	c := &Client{logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.WithService(c.logger, "drive")

	service, err := drive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}
	c.service = service

	return c, nil
}

// ListFiles lists the non-trashed children of folderID, constrained to
// mimeType when it is non-empty. Results come back in server order, which
// is not guaranteed stable across calls.
//
// Only the first result page is returned. Callers that need complete
// listings for folders exceeding one page should use ListAllFiles.
func (c *Client) ListFiles(ctx context.Context, folderID, mimeType string) ([]*FileRecord, error) {
	start := time.Now()

	fileList, err := c.service.Files.List().
		Context(ctx).
		Q(buildListQuery(folderID, mimeType)).
		Spaces("drive").
		Fields(listFields).
		Do()
	c.metrics.RecordDriveOperation(ctx, opListFiles, err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("failed to list files in folder %s: %w", folderID, err)
	}

	records := make([]*FileRecord, len(fileList.Files))
	for i, f := range fileList.Files {
		records[i] = toFileRecord(f)
	}

	c.logger.Debug("listed folder",
		logging.Operation(opListFiles),
		logging.FolderID(folderID),
		logging.MimeType(mimeType),
		slog.Int("count", len(records)))

	return records, nil
}

// ListAllFiles is like ListFiles but walks every result page.
func (c *Client) ListAllFiles(ctx context.Context, folderID, mimeType string) ([]*FileRecord, error) {
	start := time.Now()

	var records []*FileRecord
	err := c.service.Files.List().
		Context(ctx).
		Q(buildListQuery(folderID, mimeType)).
		Spaces("drive").
		Fields("nextPageToken, " + listFields).
		Pages(ctx, func(page *drive.FileList) error {
			for _, f := range page.Files {
				records = append(records, toFileRecord(f))
			}
			return nil
		})
	c.metrics.RecordDriveOperation(ctx, opListFiles, err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("failed to list files in folder %s: %w", folderID, err)
	}

	c.logger.Debug("listed folder",
		logging.Operation(opListFiles),
		logging.FolderID(folderID),
		logging.MimeType(mimeType),
		slog.Int("count", len(records)))

	return records, nil
}

// DownloadFile streams the content of fileID into a freshly created
// temporary file and returns its path. Ownership of the file transfers to
// the caller; the client neither tracks nor deletes it. Transport failures
// propagate as the vendor error.
func (c *Client) DownloadFile(ctx context.Context, fileID string) (string, error) {
	start := time.Now()

	resp, err := c.service.Files.Get(fileID).
		Context(ctx).
		Download()
	if err != nil {
		c.metrics.RecordDriveOperation(ctx, opDownloadFile, err, time.Since(start))
		return "", fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	tmp, err := os.CreateTemp("", "drivefetch-*")
	if err != nil {
		c.metrics.RecordDriveOperation(ctx, opDownloadFile, err, time.Since(start))
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}

	n, err := io.Copy(tmp, resp.Body)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		c.metrics.RecordDriveOperation(ctx, opDownloadFile, err, time.Since(start))
		return "", fmt.Errorf("failed to write download of file %s: %w", fileID, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		c.metrics.RecordDriveOperation(ctx, opDownloadFile, err, time.Since(start))
		return "", fmt.Errorf("failed to close temporary file: %w", err)
	}

	c.metrics.RecordDriveOperation(ctx, opDownloadFile, nil, time.Since(start))
	c.metrics.RecordDownloadBytes(ctx, n)
	c.logger.Info("downloaded file",
		logging.Operation(opDownloadFile),
		logging.FileID(fileID),
		slog.Int64("bytes", n),
		slog.String("path", tmp.Name()))

	return tmp.Name(), nil
}

// GetFileMetadata fetches the metadata record for a single file. A missing
// file surfaces as the vendor not-found error, never as an empty record.
func (c *Client) GetFileMetadata(ctx context.Context, fileID string) (*FileRecord, error) {
	start := time.Now()

	file, err := c.service.Files.Get(fileID).
		Context(ctx).
		Fields(metadataFields).
		Do()
	c.metrics.RecordDriveOperation(ctx, opGetFileMetadata, err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata for file %s: %w", fileID, err)
	}

	return toFileRecord(file), nil
}

// buildListQuery builds the server-side filter expression selecting the
// non-trashed children of folderID, optionally constrained to a MIME type.
func buildListQuery(folderID, mimeType string) string {
	query := fmt.Sprintf("'%s' in parents and trashed = false", folderID)
	if mimeType != "" {
		query += fmt.Sprintf(" and mimeType='%s'", mimeType)
	}
	return query
}

// toFileRecord converts a Drive API File to our FileRecord type.
func toFileRecord(f *drive.File) *FileRecord {
	return &FileRecord{
		ID:          f.Id,
		Name:        f.Name,
		MimeType:    f.MimeType,
		WebViewLink: f.WebViewLink,
	}
}
