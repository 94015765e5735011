package drive

// FileRecord describes one remote file. Immutable and transient; records
// are never cached and are re-fetched on every call.
type FileRecord struct {
	// ID is the unique identifier for the file
	ID string `json:"id"`

	// Name is the name of the file
	Name string `json:"name"`

	// MimeType is the MIME type of the file
	MimeType string `json:"mimeType,omitempty"`

	// WebViewLink is a link for opening the file in a relevant Google
	// editor or viewer
	WebViewLink string `json:"webViewLink,omitempty"`
}
