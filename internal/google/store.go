package google

import (
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Environment variables carrying credential state.
const (
	// TokenEnvVar holds the serialized token bundle. It is read during
	// authentication and rewritten whenever the token changes, so a later
	// run can skip the interactive flow.
	TokenEnvVar = "GOOGLE_TOKEN_JSON"

	// ClientConfigEnvVar holds the serialized OAuth client configuration
	// ("installed" or "web" application JSON as issued by the Google
	// developer console). Read-only.
	ClientConfigEnvVar = "GOOGLE_CREDENTIALS_JSON"
)

// TokenStore abstracts where the token bundle lives. Load returns
// (nil, nil) when no token is stored.
type TokenStore interface {
	Load() (*oauth2.Token, error)
	Save(tok *oauth2.Token) error
}

// EnvTokenStore stores the token bundle in a process environment variable.
// This keeps credentials scoped to the process tree; a refreshed token is
// visible to later authenticate calls in the same process but not to other
// processes.
type EnvTokenStore struct {
	// Var is the environment variable name. Defaults to TokenEnvVar.
	Var string
}

// NewEnvTokenStore creates a store backed by GOOGLE_TOKEN_JSON.
func NewEnvTokenStore() *EnvTokenStore {
	return &EnvTokenStore{Var: TokenEnvVar}
}

// Load reads and parses the token from the environment.
func (s *EnvTokenStore) Load() (*oauth2.Token, error) {
	raw := os.Getenv(s.Var)
	if raw == "" {
		return nil, nil
	}
	return ParseToken([]byte(raw))
}

// Save writes the token back to the environment.
func (s *EnvTokenStore) Save(tok *oauth2.Token) error {
	data, err := EncodeToken(tok)
	if err != nil {
		return err
	}
	if err := os.Setenv(s.Var, string(data)); err != nil {
		return fmt.Errorf("failed to set %s: %w", s.Var, err)
	}
	return nil
}

// LoadClientConfig reads the OAuth client configuration from the
// environment. Returns (nil, nil) when the variable is unset; parsing
// failures surface as ErrMalformedClientConfig.
func LoadClientConfig(scopes ...string) (*oauth2.Config, error) {
	raw := os.Getenv(ClientConfigEnvVar)
	if raw == "" {
		return nil, nil
	}
	conf, err := google.ConfigFromJSON([]byte(raw), scopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedClientConfig, err)
	}
	return conf, nil
}
