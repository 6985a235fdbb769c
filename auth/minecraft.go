package auth

import (
	"context"
	"fmt"
	"net/http"
)

const (
	mcLoginWithXboxURL = "https://api.minecraftservices.com/authentication/login_with_xbox"
	mcEntitlementsURL  = "https://api.minecraftservices.com/entitlements/mcstore"
	mcProfileURL       = "https://api.minecraftservices.com/minecraft/profile"
)

type minecraftLoginResponse struct {
	Username    string `json:"username"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func (c *Client) minecraftLoginWithXbox(ctx context.Context, userHash, xstsToken string) (*minecraftLoginResponse, error) {
	body := map[string]string{
		"identityToken": fmt.Sprintf("XBL3.0 x=%s;%s", userHash, xstsToken),
	}

	var out minecraftLoginResponse
	if err := postJSON(ctx, c.httpClient, mcLoginWithXboxURL, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type entitlementsResponse struct {
	Items []struct {
		Name string `json:"name"`
	} `json:"items"`
}

// checkGameOwnership expects both product_minecraft and game_minecraft.
// https://minecraft.wiki/w/Microsoft_authentication#Checking_game_ownership
func (c *Client) checkGameOwnership(ctx context.Context, accessToken string) (bool, error) {
	var out entitlementsResponse
	if _, err := getJSON(ctx, c.httpClient, mcEntitlementsURL, accessToken, &out); err != nil {
		return false, err
	}

	var hasProduct, hasGame bool
	for _, item := range out.Items {
		switch item.Name {
		case "product_minecraft":
			hasProduct = true
		case "game_minecraft":
			hasGame = true
		}
	}
	return hasProduct && hasGame, nil
}

type minecraftProfile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (c *Client) fetchProfile(ctx context.Context, accessToken string) (*minecraftProfile, error) {
	var out minecraftProfile
	status, err := getJSON(ctx, c.httpClient, mcProfileURL, accessToken, &out)
	if status == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
