package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// SessionServer talks to the Mojang session server.
type SessionServer struct {
	baseURL    string
	httpClient *http.Client
}

// NewSessionServer creates a client for the production session server.
func NewSessionServer() *SessionServer {
	return NewSessionServerWithURL("https://sessionserver.mojang.com")
}

// NewSessionServerWithURL creates a client against a custom base URL,
// mainly for tests.
func NewSessionServerWithURL(baseURL string) *SessionServer {
	return &SessionServer{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type joinRequest struct {
	AccessToken     string `json:"accessToken"`
	SelectedProfile string `json:"selectedProfile"`
	ServerID        string `json:"serverId"`
}

// Join announces a pending server join for the given profile and server
// hash. The session server answers 204 on success.
func (s *SessionServer) Join(ctx context.Context, accessToken, profileID, serverHash string) error {
	body := joinRequest{
		AccessToken:     accessToken,
		SelectedProfile: profileID,
		ServerID:        serverHash,
	}

	// success is a bodiless 204
	var out struct {
		Error        string `json:"error"`
		ErrorMessage string `json:"errorMessage"`
	}
	if err := postJSON(ctx, s.httpClient, s.baseURL+"/session/minecraft/join", body, &out); err != nil {
		return fmt.Errorf("session join failed: %w", err)
	}
	if out.Error != "" {
		return fmt.Errorf("session join rejected: %s: %s", out.Error, out.ErrorMessage)
	}
	return nil
}

// HasJoinedResponse is the profile the session server returns for a
// completed join.
type HasJoinedResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Properties []struct {
		Name      string `json:"name"`
		Value     string `json:"value"`
		Signature string `json:"signature,omitempty"`
	} `json:"properties"`
}

// HasJoined checks whether username has announced a join for serverHash.
// Returns nil when the session server has no record.
func (s *SessionServer) HasJoined(ctx context.Context, username, serverHash string) (*HasJoinedResponse, error) {
	q := url.Values{}
	q.Set("username", username)
	q.Set("serverId", serverHash)

	var out HasJoinedResponse
	status, err := getJSON(ctx, s.httpClient, s.baseURL+"/session/minecraft/hasJoined?"+q.Encode(), "", &out)
	if status == http.StatusNoContent {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("hasJoined failed: %w", err)
	}
	return &out, nil
}

// Session binds an authenticated account to the session server; it is
// the Authenticator the protocol engine calls during the key exchange.
type Session struct {
	sessionServer *SessionServer
	accessToken   string
	profileID     string
}

// NewSession builds a session from a raw access token and profile id,
// for callers that manage tokens themselves.
func NewSession(accessToken, profileID string) *Session {
	return NewSessionServer().NewSession(accessToken, profileID)
}

// NewSession binds an account to this session server.
func (s *SessionServer) NewSession(accessToken, profileID string) *Session {
	return &Session{
		sessionServer: s,
		accessToken:   accessToken,
		profileID:     profileID,
	}
}

// JoinServer announces the join for the server hash the engine computed
// from the encryption handshake.
func (s *Session) JoinServer(serverHash string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.sessionServer.Join(ctx, s.accessToken, s.profileID, serverHash)
}
