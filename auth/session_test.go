package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-mclib/client/auth"
)

func TestSessionJoin(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/session/minecraft/join", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s := auth.NewSessionServerWithURL(srv.URL)
	err := s.Join(context.Background(), "token-123", "069a79f444e94726a5befca90e38aaf5", "-1f66ab447b4f8f9e")
	require.NoError(t, err)

	assert.Equal(t, "token-123", gotBody["accessToken"])
	assert.Equal(t, "069a79f444e94726a5befca90e38aaf5", gotBody["selectedProfile"])
	assert.Equal(t, "-1f66ab447b4f8f9e", gotBody["serverId"])
}

func TestSessionJoinRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error":        "ForbiddenOperationException",
			"errorMessage": "Invalid token",
		})
	}))
	defer srv.Close()

	s := auth.NewSessionServerWithURL(srv.URL)
	err := s.Join(context.Background(), "bad-token", "069a79f444e94726a5befca90e38aaf5", "hash")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session join failed")
}

func TestSessionHasJoined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/session/minecraft/hasJoined", r.URL.Path)
		switch r.URL.Query().Get("username") {
		case "bot":
			_ = json.NewEncoder(w).Encode(auth.HasJoinedResponse{
				ID:   "069a79f444e94726a5befca90e38aaf5",
				Name: "bot",
			})
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	s := auth.NewSessionServerWithURL(srv.URL)

	joined, err := s.HasJoined(context.Background(), "bot", "hash")
	require.NoError(t, err)
	require.NotNil(t, joined)
	assert.Equal(t, "bot", joined.Name)

	missing, err := s.HasJoined(context.Background(), "stranger", "hash")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSessionImplementsJoinServer(t *testing.T) {
	var gotHash string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotHash = body["serverId"]
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	session := auth.NewSessionServerWithURL(srv.URL).NewSession("token", "profile-id")
	require.NoError(t, session.JoinServer("deadbeef"))
	assert.Equal(t, "deadbeef", gotHash)
}
