package google

import "errors"

// ErrNoCredentials is returned when no usable credential path exists:
// there is no stored token and no OAuth client configuration to obtain one.
// This is fatal and never triggers network access.
var ErrNoCredentials = errors.New("google: credentials not found")

// ErrMalformedToken is returned when the stored token blob cannot be
// parsed into a usable OAuth2 token.
var ErrMalformedToken = errors.New("google: malformed token JSON")

// ErrMalformedClientConfig is returned when the OAuth client configuration
// blob cannot be parsed.
var ErrMalformedClientConfig = errors.New("google: malformed client config JSON")
