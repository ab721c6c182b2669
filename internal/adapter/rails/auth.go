package rails

import (
	"context"
)

// AuthClient verifies transaction credentials against the auth service.
type AuthClient struct {
	c *Client
}

// NewAuthClient creates a new AuthClient.
func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{c: c}
}

type verifyRequest struct {
	UserID     string `json:"user_id"`
	Credential string `json:"credential"`
}

type verifyResponse struct {
	Valid bool `json:"valid"`
}

// Verify asks the auth service whether secret is the user's current
// transaction credential.
func (a *AuthClient) Verify(ctx context.Context, userID, secret string) (bool, error) {
	var resp verifyResponse
	err := a.c.postJSON(ctx, "/v1/credentials/verify", verifyRequest{
		UserID:     userID,
		Credential: secret,
	}, &resp)
	if err != nil {
		return false, err
	}

	return resp.Valid, nil
}
