package google

import (
	"encoding/json"
	"fmt"

	"golang.org/x/oauth2"
)

// ReadOnlyScope is the only scope this tool requests. All Drive access is
// read-only.
const ReadOnlyScope = "https://www.googleapis.com/auth/drive.readonly"

// ParseToken deserializes a token blob into an OAuth2 token.
//
// The contract is the standard oauth2 JSON shape: an object carrying
// access_token, token_type, refresh_token and expiry. A blob that is not
// valid JSON, or that carries neither an access token nor a refresh token,
// fails with ErrMalformedToken.
func ParseToken(data []byte) (*oauth2.Token, error) {
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if tok.AccessToken == "" && tok.RefreshToken == "" {
		return nil, fmt.Errorf("%w: no access_token or refresh_token present", ErrMalformedToken)
	}
	return &tok, nil
}

// EncodeToken serializes a token for storage.
func EncodeToken(tok *oauth2.Token) ([]byte, error) {
	data, err := json.Marshal(tok)
	if err != nil {
		return nil, fmt.Errorf("failed to encode token: %w", err)
	}
	return data, nil
}
