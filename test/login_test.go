package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/fitlife/fitlife-backend/internal/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestAccounts_RegisterAndLogin() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	userID, token := s.registerAndLogin(ctx, t, "marko", "super-secret")
	require.True(t, userID > 0)
	require.NotEmpty(t, token)

	t.Run("me", func(t *testing.T) {
		req := authorizedReq(ctx, t, "GET", serverEndpoint+"/me", token, nil)
		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var meResp users.MeResponse
		require.NoError(t, json.Unmarshal(respBytes, &meResp))
		assert.Equal(t, userID, meResp.ID)
		assert.Equal(t, "marko", meResp.Username)
		assert.Equal(t, "marko", meResp.Name)
		assert.Equal(t, 30, meResp.Age)
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		creds := credentials{Username: "marko", Password: "another-pass"}
		credsJson, err := json.Marshal(creds)
		require.NoError(t, err)

		req, err := http.NewRequestWithContext(ctx, "POST", serverEndpoint+"/register", bytes.NewBuffer(credsJson))
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("wrong password", func(t *testing.T) {
		creds := credentials{Username: "marko", Password: "wrong-pass"}
		credsJson, err := json.Marshal(creds)
		require.NoError(t, err)

		req, err := http.NewRequestWithContext(ctx, "POST", serverEndpoint+"/login", bytes.NewBuffer(credsJson))
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "error, wrong credentials", strings.TrimSpace(string(respBytes)))
	})

	t.Run("logout kills the session", func(t *testing.T) {
		logoutToken := s.login(ctx, t, "marko", "super-secret")

		req := authorizedReq(ctx, t, "GET", serverEndpoint+"/logout", logoutToken, nil)
		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		req = authorizedReq(ctx, t, "GET", serverEndpoint+"/me", logoutToken, nil)
		resp, err = s.httpClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("protected route without token", func(t *testing.T) {
		req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/workouts/%d", serverEndpoint, userID), nil)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func (s *IntegrationTestSuite) TestAccounts_OpenEndpoints() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("recommended calories without token", func(t *testing.T) {
		url := serverEndpoint + "/recommended-calories?age=30&weight=80&height=180&gender=male&activity_level=medium&target=muscle_gain"
		req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var calResp struct {
			RecommendedCalories float64 `json:"recommended_calories"`
			Target              string  `json:"target"`
		}
		require.NoError(t, json.Unmarshal(respBytes, &calResp))
		assert.InDelta(t, 2909.0, calResp.RecommendedCalories, 0.01)
		assert.Equal(t, "muscle_gain", calResp.Target)
	})

	t.Run("training programs list without token", func(t *testing.T) {
		req, err := http.NewRequestWithContext(ctx, "GET", serverEndpoint+"/training-programs", nil)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var listResp struct {
			AvailablePrograms []string `json:"available_programs"`
		}
		require.NoError(t, json.Unmarshal(respBytes, &listResp))
		assert.Equal(t, []string{"muscle_gain"}, listResp.AvailablePrograms)
	})

	t.Run("training program download", func(t *testing.T) {
		req, err := http.NewRequestWithContext(ctx, "GET", serverEndpoint+"/training-programs/muscle_gain", nil)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "muscle_gain.pdf")
	})

	t.Run("version", func(t *testing.T) {
		req, err := http.NewRequestWithContext(ctx, "GET", serverEndpoint+"/version", nil)
		require.NoError(t, err)
		req.Header.Set("User-Agent", "test-agent")

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "test-version-info", string(respBytes))
	})
}
