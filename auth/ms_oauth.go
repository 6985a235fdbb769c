package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	browser "github.com/pkg/browser"
)

const (
	msAuthorizeURL = "https://login.live.com/oauth20_authorize.srf"
	msTokenURL     = "https://login.live.com/oauth20_token.srf"
)

type msTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// authorizeWithLocalServer opens the Microsoft consent page in the
// user's browser and captures the authorization code on a loopback HTTP
// server, returning a refresh token.
func (c *Client) authorizeWithLocalServer(ctx context.Context) (string, error) {
	if c.cfg.ClientID == "" {
		return "", errors.New("missing client_id in Config")
	}

	ln, port, err := listenLoopback(c.cfg.RedirectPort)
	if err != nil {
		return "", err
	}

	redirectURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	codeCh := make(chan string, 1)
	srv := &http.Server{Handler: callbackHandler(codeCh)}
	go func() { _ = srv.Serve(ln) }()
	defer func() { _ = srv.Close() }()

	authURL := buildAuthorizeURL(c.cfg.ClientID, redirectURL, c.cfg.Scopes)
	if err := browser.OpenURL(authURL); err != nil {
		// headless environments cannot open a browser; hand the URL back
		return "", fmt.Errorf("failed to open browser, navigate to %s manually: %w", authURL, err)
	}

	select {
	case <-ctx.Done():
		return "", errors.New("authentication canceled")
	case code := <-codeCh:
		if code == "" {
			return "", errors.New("failed to obtain authorization code")
		}
		tokens, err := c.exchangeAuthCode(ctx, redirectURL, code)
		if err != nil {
			return "", err
		}
		if tokens.RefreshToken == "" {
			return "", errors.New("no refresh_token in token response")
		}
		return tokens.RefreshToken, nil
	}
}

func buildAuthorizeURL(clientID, redirectURL string, scopes []string) string {
	q := url.Values{}
	q.Set("client_id", clientID)
	q.Set("response_type", "code")
	q.Set("redirect_uri", redirectURL)
	q.Set("scope", strings.Join(scopes, " "))
	q.Set("prompt", "select_account")
	return msAuthorizeURL + "?" + q.Encode()
}

func callbackHandler(codeCh chan<- string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			_, _ = io.WriteString(w, "Cannot authenticate.")
		} else {
			_, _ = io.WriteString(w, "You may now close this page.")
		}
		select {
		case codeCh <- code:
		default:
		}
	})
	return mux
}

func listenLoopback(port int) (net.Listener, int, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to start callback server: %w", err)
	}
	return ln, ln.Addr().(*net.TCPAddr).Port, nil
}

func (c *Client) exchangeAuthCode(ctx context.Context, redirectURL, code string) (*msTokenResponse, error) {
	form := url.Values{}
	form.Set("client_id", c.cfg.ClientID)
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", redirectURL)
	return c.postTokenForm(ctx, form)
}

func (c *Client) refreshAccessToken(ctx context.Context, refreshToken string) (*msTokenResponse, error) {
	form := url.Values{}
	form.Set("client_id", c.cfg.ClientID)
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	return c.postTokenForm(ctx, form)
}

func (c *Client) postTokenForm(ctx context.Context, form url.Values) (*msTokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, msTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		data, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("token request failed: %s: %s", res.Status, string(data))
	}

	var out msTokenResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
