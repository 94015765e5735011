package google

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/exec"
	"runtime"

	"golang.org/x/oauth2"

	"github.com/okibo/drivefetch/internal/logging"
)

// authResult carries the outcome of the OAuth redirect back to the flow.
type authResult struct {
	code string
	err  error
}

// authorizeInteractive obtains a fresh token through the browser consent
// flow. It listens on an ephemeral loopback port for the OAuth redirect and
// blocks until the user completes authorization or ctx is done.
func (a *Authenticator) authorizeInteractive(ctx context.Context) (*oauth2.Token, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("failed to start callback listener: %w", err)
	}

	state, err := randomState()
	if err != nil {
		return nil, err
	}

	// The redirect URL must match the ephemeral listener address.
	conf := *a.config
	conf.RedirectURL = fmt.Sprintf("http://%s/callback", ln.Addr().String())

	results := make(chan authResult, 1)
	srv := &http.Server{Handler: newCallbackHandler(state, results)}
	go func() {
		if serveErr := srv.Serve(ln); serveErr != nil && serveErr != http.ErrServerClosed {
			deliver(results, authResult{err: serveErr})
		}
	}()
	defer srv.Close()

	authURL := conf.AuthCodeURL(state, oauth2.AccessTypeOffline)
	a.logger.Info("authorization required, complete the consent flow in your browser",
		slog.String("url", authURL))
	if err := a.openURL(authURL); err != nil {
		a.logger.Warn("could not open browser, visit the URL manually", logging.Err(err))
	}

	var res authResult
	select {
	case res = <-results:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.err != nil {
		return nil, res.err
	}

	tok, err := conf.Exchange(ctx, res.code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange auth code: %w", err)
	}
	return tok, nil
}

// newCallbackHandler handles the OAuth redirect request. Only the first
// result is delivered; stray repeat requests are answered but ignored.
func newCallbackHandler(state string, results chan<- authResult) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		if errMsg := q.Get("error"); errMsg != "" {
			http.Error(w, "Authorization failed. You can close this window.", http.StatusBadRequest)
			deliver(results, authResult{err: fmt.Errorf("authorization denied: %s", errMsg)})
			return
		}
		if q.Get("state") != state {
			http.Error(w, "Invalid state parameter.", http.StatusBadRequest)
			deliver(results, authResult{err: fmt.Errorf("state mismatch in OAuth callback")})
			return
		}
		code := q.Get("code")
		if code == "" {
			http.Error(w, "Missing authorization code.", http.StatusBadRequest)
			deliver(results, authResult{err: fmt.Errorf("no authorization code in OAuth callback")})
			return
		}

		fmt.Fprintln(w, "Authorization complete. You can close this window.")
		deliver(results, authResult{code: code})
	})
	return mux
}

func deliver(results chan<- authResult, res authResult) {
	select {
	case results <- res:
	default:
	}
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state parameter: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// openBrowser launches the system browser for the given URL. Best effort;
// the URL is always logged so the user can open it manually.
func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
