// Package google provides OAuth2 authentication and credential management
// for the Google Drive API.
//
// Credentials live in the process environment: GOOGLE_TOKEN_JSON holds the
// serialized token bundle (read and rewritten after refresh or interactive
// authorization) and GOOGLE_CREDENTIALS_JSON holds the OAuth client
// configuration (read-only). The TokenStore interface allows other storage
// backends to be plugged in, which is also how tests substitute credential
// state.
package google
