// Package drive provides a read-only client for the Google Drive API.
//
// The client wraps one authenticated *drive.Service bound to API v3 and the
// drive.readonly scope, and exposes three operations:
//   - Listing the files of a folder, optionally filtered by MIME type
//   - Downloading a file's content to a local temporary file
//   - Fetching a single file's metadata
//
// File metadata is returned as FileRecord values. Records are transient:
// nothing is cached, every call is a fresh round trip, and the server
// decides result order.
//
// Vendor API errors (*googleapi.Error) propagate to the caller wrapped with
// operation context only; nothing is translated or retried. A Client
// instance is not safe for concurrent use because the underlying token is
// mutated during refresh.
package drive
