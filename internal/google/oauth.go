package google

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/oauth2"

	"github.com/okibo/drivefetch/internal/instrumentation"
	"github.com/okibo/drivefetch/internal/logging"
)

// Authentication method labels recorded in metrics and logs.
const (
	authMethodCached      = "cached"
	authMethodRefresh     = "refresh"
	authMethodInteractive = "interactive"
)

// Authenticator resolves a usable OAuth2 token source from the configured
// credential stores. It is not safe for concurrent use: the token is
// mutated in place during refresh.
type Authenticator struct {
	store   TokenStore
	config  *oauth2.Config // nil when GOOGLE_CREDENTIALS_JSON is unset
	logger  *slog.Logger
	metrics *instrumentation.Metrics

	// openURL launches the user's browser during the interactive flow.
	openURL func(url string) error
}

// NewAuthenticator creates an Authenticator backed by the environment:
// tokens in GOOGLE_TOKEN_JSON, client configuration in
// GOOGLE_CREDENTIALS_JSON. metrics may be nil.
func NewAuthenticator(logger *slog.Logger, metrics *instrumentation.Metrics) (*Authenticator, error) {
	conf, err := LoadClientConfig(ReadOnlyScope)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Authenticator{
		store:   NewEnvTokenStore(),
		config:  conf,
		logger:  logging.WithService(logger, "google"),
		metrics: metrics,
		openURL: openBrowser,
	}, nil
}

// Authenticate produces a token source bound to the read-only Drive scope.
//
// Resolution order: a stored, non-expired token is used as-is; an expired
// token with a refresh token is refreshed once through the vendor token
// endpoint; otherwise the interactive authorization flow runs. When no
// client configuration exists and no usable token is stored, Authenticate
// fails with ErrNoCredentials without any network access. Any token
// obtained by refresh or interactive authorization is persisted back to
// the store before returning.
func (a *Authenticator) Authenticate(ctx context.Context) (oauth2.TokenSource, error) {
	tok, err := a.store.Load()
	if err != nil {
		return nil, err
	}

	if tok != nil && tok.Valid() {
		a.logger.Debug("using cached token",
			slog.String("method", authMethodCached),
			slog.String("token", logging.SanitizeToken(tok.AccessToken)))
		a.metrics.RecordAuth(ctx, authMethodCached, nil)
		return a.tokenSource(ctx, tok), nil
	}

	switch {
	case tok != nil && tok.RefreshToken != "" && a.config != nil:
		refreshed, err := a.refresh(ctx, tok)
		a.metrics.RecordAuth(ctx, authMethodRefresh, err)
		if err != nil {
			return nil, err
		}
		tok = refreshed

	case a.config == nil:
		a.metrics.RecordAuth(ctx, "none", ErrNoCredentials)
		return nil, ErrNoCredentials

	default:
		fresh, err := a.authorizeInteractive(ctx)
		a.metrics.RecordAuth(ctx, authMethodInteractive, err)
		if err != nil {
			return nil, fmt.Errorf("interactive authorization failed: %w", err)
		}
		tok = fresh
	}

	if err := a.store.Save(tok); err != nil {
		return nil, fmt.Errorf("failed to persist token: %w", err)
	}
	a.logger.Info("token persisted",
		slog.String("token", logging.SanitizeToken(tok.AccessToken)))

	return a.tokenSource(ctx, tok), nil
}

// tokenSource wraps tok so that subsequent expiry is handled through the
// client configuration when one is available.
func (a *Authenticator) tokenSource(ctx context.Context, tok *oauth2.Token) oauth2.TokenSource {
	if a.config == nil {
		return oauth2.StaticTokenSource(tok)
	}
	return oauth2.ReuseTokenSource(tok, a.config.TokenSource(ctx, tok))
}

// refresh exchanges the refresh token for a fresh access token. Exactly one
// round trip to the token endpoint; failures are not retried.
func (a *Authenticator) refresh(ctx context.Context, tok *oauth2.Token) (*oauth2.Token, error) {
	a.logger.Debug("refreshing expired token", slog.String("method", authMethodRefresh))

	fresh, err := a.config.TokenSource(ctx, tok).Token()
	a.metrics.RecordTokenRefresh(ctx, err)
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}
	return fresh, nil
}
