package auth

import (
	"context"
)

const (
	xblUserAuthenticateURL = "https://user.auth.xboxlive.com/user/authenticate"
	xstsAuthorizeURL       = "https://xsts.auth.xboxlive.com/xsts/authorize"
)

type xboxDisplayClaims struct {
	XUI []struct {
		UHS string `json:"uhs"`
	} `json:"xui"`
}

type xblRequest struct {
	Properties struct {
		AuthMethod string `json:"AuthMethod"`
		SiteName   string `json:"SiteName"`
		RpsTicket  string `json:"RpsTicket"`
	} `json:"Properties"`
	RelyingParty string `json:"RelyingParty"`
	TokenType    string `json:"TokenType"`
}

type xblResponse struct {
	Token         string            `json:"Token"`
	DisplayClaims xboxDisplayClaims `json:"DisplayClaims"`
}

func (c *Client) xblAuthenticate(ctx context.Context, msAccessToken string) (*xblResponse, error) {
	body := xblRequest{
		RelyingParty: "http://auth.xboxlive.com",
		TokenType:    "JWT",
	}
	body.Properties.AuthMethod = "RPS"
	body.Properties.SiteName = "user.auth.xboxlive.com"
	body.Properties.RpsTicket = "d=" + msAccessToken

	var out xblResponse
	if err := postJSON(ctx, c.httpClient, xblUserAuthenticateURL, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type xstsRequest struct {
	Properties struct {
		SandboxID  string   `json:"SandboxId"`
		UserTokens []string `json:"UserTokens"`
	} `json:"Properties"`
	RelyingParty string `json:"RelyingParty"`
	TokenType    string `json:"TokenType"`
}

type xstsResponse struct {
	Token         string            `json:"Token"`
	DisplayClaims xboxDisplayClaims `json:"DisplayClaims"`
}

func (c *Client) xstsAuthorize(ctx context.Context, xblToken string) (*xstsResponse, error) {
	body := xstsRequest{
		RelyingParty: "rp://api.minecraftservices.com/",
		TokenType:    "JWT",
	}
	body.Properties.SandboxID = "RETAIL"
	body.Properties.UserTokens = []string{xblToken}

	var out xstsResponse
	if err := postJSON(ctx, c.httpClient, xstsAuthorizeURL, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
