package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
)

// OAuthResult carries the outcome of an authorization code flow.
type OAuthResult struct {
	Token *oauth2.Token
	err   error
}

func (o *OAuthResult) Error() error {
	return o.err
}

// OAuthHandler handles the OAuth2 authorization code callback during the
// CLI's `auth youtube` flow. Implements [Handler] for registration with a
// [Router] on a short-lived localhost server.
type OAuthHandler struct {
	config     *oauth2.Config
	state      string
	resultChan chan OAuthResult
	once       sync.Once
	handled    bool
	mu         sync.Mutex
}

// NewOAuthHandler creates an OAuth callback handler. The state token must be
// cryptographically random for CSRF protection.
func NewOAuthHandler(config *oauth2.Config, state string) *OAuthHandler {
	return &OAuthHandler{
		config:     config,
		state:      state,
		resultChan: make(chan OAuthResult, 1),
	}
}

// Routes returns the mux patterns this handler serves.
func (h *OAuthHandler) Routes() []string {
	return []string{"GET /callback"}
}

// ServeHTTP validates the state parameter, exchanges the authorization code
// for a token and sends the result through the result channel. Only the
// first callback is processed.
func (h *OAuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.handled {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.handled = true
	h.mu.Unlock()

	query := r.URL.Query()

	if query.Get("state") != h.state {
		h.fail(w, http.StatusBadRequest, fmt.Errorf("invalid state parameter"))
		return
	}

	code := query.Get("code")
	if code == "" {
		err := fmt.Errorf("authorization failed: %s - %s",
			query.Get("error"), query.Get("error_description"))
		h.fail(w, http.StatusBadRequest, err)
		return
	}

	token, err := h.config.Exchange(context.Background(), code)
	if err != nil {
		h.fail(w, http.StatusInternalServerError, fmt.Errorf("token exchange failed: %w", err))
		return
	}

	h.send(OAuthResult{Token: token})

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `<!DOCTYPE html>
<html>
<head>
    <title>mixtape</title>
    <style>
        body { font-family: sans-serif; display: flex; align-items: center;
               justify-content: center; height: 100vh; margin: 0; background: #181818; }
        .card { text-align: center; background: #282828; color: #eee;
                padding: 2rem; border-radius: 8px; }
        h1 { color: #ff5555; margin: 0 0 1rem 0; }
    </style>
</head>
<body>
    <div class="card">
        <h1>Signed in</h1>
        <p>You can close this tab and return to the terminal.</p>
    </div>
</body>
</html>
`)
}

func (h *OAuthHandler) fail(w http.ResponseWriter, status int, err error) {
	h.send(OAuthResult{err: err})
	http.Error(w, err.Error(), status)
}

func (h *OAuthHandler) send(result OAuthResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the channel the flow's outcome arrives on. It receives
// exactly one result and is then closed.
func (h *OAuthHandler) Result() <-chan OAuthResult {
	return h.resultChan
}
