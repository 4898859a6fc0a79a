package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/fitlife/fitlife-backend/internal/users"

	"github.com/stretchr/testify/require"
)

type credentials struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Name     string  `json:"name,omitempty"`
	Age      int     `json:"age,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Weight   float64 `json:"weight,omitempty"`
}

// registerAndLogin creates a fresh account and returns its user id
// together with a valid bearer token.
func (s *IntegrationTestSuite) registerAndLogin(ctx context.Context, t *testing.T, username, password string) (int, string) {
	t.Helper()

	creds := credentials{
		Username: username,
		Password: password,
		Name:     username,
		Age:      30,
		Height:   180,
		Weight:   80,
	}
	credsJson, err := json.Marshal(creds)
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/register", serverEndpoint), bytes.NewBuffer(credsJson))
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var registerResp users.RegisterResponse
	require.NoError(t, json.Unmarshal(respBytes, &registerResp))
	require.True(t, registerResp.ID > 0)

	return registerResp.ID, s.login(ctx, t, username, password)
}

func (s *IntegrationTestSuite) login(ctx context.Context, t *testing.T, username, password string) string {
	t.Helper()

	creds := credentials{
		Username: username,
		Password: password,
	}
	credsJson, err := json.Marshal(creds)
	require.NoError(t, err)

	req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/login", serverEndpoint), bytes.NewBuffer(credsJson))
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NotEmpty(t, respBytes)

	var loginResp users.LoginResponse
	require.NoError(t, json.Unmarshal(respBytes, &loginResp))
	require.NotEmpty(t, loginResp.AccessToken)
	require.Equal(t, "bearer", loginResp.TokenType)

	return loginResp.AccessToken
}

// authorizedReq builds a request with the test user agent and the
// given bearer token set.
func authorizedReq(ctx context.Context, t *testing.T, method, url, token string, body io.Reader) *http.Request {
	t.Helper()

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
