// Package auth implements the session-validation side of online-mode
// login: the Microsoft OAuth → Xbox Live → XSTS → Minecraft services
// token chain, and the Mojang session server join call the protocol
// engine delegates to during the encryption handshake.
//
// https://minecraft.wiki/w/Microsoft_authentication
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client drives the Microsoft authentication chain.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Config configures a Client.
type Config struct {
	// ClientID is the Azure application id to authenticate as.
	ClientID string
	// RedirectPort for the local OAuth callback server; 0 picks one.
	RedirectPort int
	// Scopes defaults to XboxLive.signin + offline_access.
	Scopes     []string
	HTTPClient *http.Client
}

// LoginData is the result of a completed login.
type LoginData struct {
	AccessToken  string
	RefreshToken string
	UUID         string
	Username     string
}

// NewClient creates an auth client.
func NewClient(cfg Config) *Client {
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = []string{"XboxLive.signin", "offline_access"}
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &Client{cfg: cfg, httpClient: httpClient}
}

// Login runs the full interactive flow: browser consent, token
// exchange, XBL/XSTS, Minecraft login, entitlement check, and profile
// fetch.
func (c *Client) Login(ctx context.Context) (LoginData, error) {
	refreshToken, err := c.authorizeWithLocalServer(ctx)
	if err != nil {
		return LoginData{}, err
	}
	return c.LoginWithRefreshToken(ctx, refreshToken)
}

// LoginWithRefreshToken completes the chain from a cached Microsoft
// refresh token, skipping the browser.
func (c *Client) LoginWithRefreshToken(ctx context.Context, refreshToken string) (LoginData, error) {
	if c.cfg.ClientID == "" {
		return LoginData{}, errors.New("missing client_id in Config")
	}

	tokens, err := c.refreshAccessToken(ctx, refreshToken)
	if err != nil {
		return LoginData{}, err
	}

	xbl, err := c.xblAuthenticate(ctx, tokens.AccessToken)
	if err != nil {
		return LoginData{}, err
	}
	if len(xbl.DisplayClaims.XUI) == 0 {
		return LoginData{}, errors.New("xbl response carries no user hash")
	}

	xsts, err := c.xstsAuthorize(ctx, xbl.Token)
	if err != nil {
		return LoginData{}, err
	}

	mc, err := c.minecraftLoginWithXbox(ctx, xbl.DisplayClaims.XUI[0].UHS, xsts.Token)
	if err != nil {
		return LoginData{}, err
	}

	owns, err := c.checkGameOwnership(ctx, mc.AccessToken)
	if err != nil {
		return LoginData{}, err
	}
	if !owns {
		return LoginData{}, errors.New("account does not own Minecraft (no entitlements)")
	}

	profile, err := c.fetchProfile(ctx, mc.AccessToken)
	if err != nil {
		return LoginData{}, err
	}
	if profile == nil || profile.ID == "" {
		return LoginData{}, errors.New("minecraft profile not found for account")
	}

	return LoginData{
		AccessToken:  mc.AccessToken,
		RefreshToken: tokens.RefreshToken,
		UUID:         profile.ID,
		Username:     profile.Name,
	}, nil
}

// NewSession binds login data to a session server client, producing the
// Authenticator the protocol engine calls during the key exchange.
func (c *Client) NewSession(data LoginData) *Session {
	return &Session{
		sessionServer: NewSessionServer(),
		accessToken:   data.AccessToken,
		profileID:     data.UUID,
	}
}

// postJSON posts body as JSON and decodes a 2xx response into out.
func postJSON(ctx context.Context, hc *http.Client, url string, body, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(buf)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		data, _ := io.ReadAll(res.Body)
		return fmt.Errorf("%s failed: %s: %s", url, res.Status, string(data))
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// getJSON issues an authorized GET and decodes a 2xx response into out.
func getJSON(ctx context.Context, hc *http.Client, url, bearer string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	res, err := hc.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		data, _ := io.ReadAll(res.Body)
		return res.StatusCode, fmt.Errorf("%s failed: %s: %s", url, res.Status, string(data))
	}
	return res.StatusCode, json.NewDecoder(res.Body).Decode(out)
}
