package todoapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/TWRT/todo-client/internal/models"
	"github.com/TWRT/todo-client/internal/pkg/logger"
)

func (c *Client) SignIn(ctx context.Context, email, password string) (*models.AuthResult, error) {
	resp, err := c.authenticate(ctx, "/auth/sign-in", signInRequest{
		Email:    email,
		Password: password,
	}, "Sign in failed")
	if err != nil {
		return nil, err
	}

	if err := c.storeSession(resp.Token, resp.User.displayName("")); err != nil {
		return nil, err
	}
	return toAuthResult(resp, ""), nil
}

// SignUp registers a new account. The submitted name becomes the display
// name when the server does not return one.
func (c *Client) SignUp(ctx context.Context, email, password, name string) (*models.AuthResult, error) {
	resp, err := c.authenticate(ctx, "/auth/sign-up", signUpRequest{
		Email:    email,
		Password: password,
		Name:     name,
	}, "Sign up failed")
	if err != nil {
		return nil, err
	}

	if err := c.storeSession(resp.Token, resp.User.displayName(name)); err != nil {
		return nil, err
	}
	return toAuthResult(resp, name), nil
}

// SignOut clears the local session first and then tells the server.
// Only a failure to clear local state is returned.
func (c *Client) SignOut(ctx context.Context) error {
	if err := c.session.Store().Clear(); err != nil {
		return fmt.Errorf("clear session (todo api): %w", err)
	}

	// the session is already gone locally, so a 401 here is not an expiry
	if err := c.call(ctx, http.MethodPost, "/auth/logout", nil, nil, false); err != nil {
		logger.Errorf(ctx, "sign out (todo api): %v", err)
	}
	return nil
}

func (c *Client) authenticate(ctx context.Context, endpoint string, body any, fallback string) (*authResponse, error) {
	reader, err := encodeBody(body)
	if err != nil {
		return nil, fmt.Errorf("marshal auth request (todo api): %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseUrl+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build request (todo api): %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s (todo api): %w", endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body (todo api): %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &AuthError{Message: errorMessage(respBody, fallback)}
	}

	var authResp authResponse
	if err := json.Unmarshal(respBody, &authResp); err != nil {
		return nil, fmt.Errorf("parse auth response (todo api): %w", err)
	}
	if authResp.Token == "" {
		return nil, &AuthError{Message: fallback}
	}
	return &authResp, nil
}

func (c *Client) storeSession(token, userName string) error {
	store := c.session.Store()
	if err := store.SetToken(token); err != nil {
		return fmt.Errorf("store token (todo api): %w", err)
	}
	if userName == "" {
		return nil
	}
	if err := store.SetUserName(userName); err != nil {
		return fmt.Errorf("store user name (todo api): %w", err)
	}
	return nil
}

func toAuthResult(resp *authResponse, fallbackName string) *models.AuthResult {
	return &models.AuthResult{
		Token: resp.Token,
		User: models.User{
			Id:    resp.User.Id,
			Email: resp.User.Email,
			Name:  resp.User.displayName(fallbackName),
		},
	}
}
