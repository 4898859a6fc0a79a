package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/fitlife/fitlife-backend/internal/datekey"
	"github.com/fitlife/fitlife-backend/internal/weight"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestWeightLog() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	userID, token := s.registerAndLogin(ctx, t, "weight-user", "super-secret")

	addWeight := func(t *testing.T, kilos float64, date datekey.Key) weight.Entry {
		t.Helper()
		reqBody := fmt.Sprintf(`{"user_id":%d,"weight":%.1f,"date":%q}`, userID, kilos, date)
		req := authorizedReq(ctx, t, "POST", serverEndpoint+"/weight", token, bytes.NewBufferString(reqBody))

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var entry weight.Entry
		require.NoError(t, json.Unmarshal(respBytes, &entry))
		require.True(t, entry.ID > 0)
		return entry
	}

	listWeights := func(t *testing.T, rangeParam string) weight.ListResponse {
		t.Helper()
		url := fmt.Sprintf("%s/weight/%d", serverEndpoint, userID)
		if rangeParam != "" {
			url += "?range=" + rangeParam
		}
		req := authorizedReq(ctx, t, "GET", url, token, nil)

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var listResp weight.ListResponse
		require.NoError(t, json.Unmarshal(respBytes, &listResp))
		return listResp
	}

	now := time.Now()
	today := datekey.FromTime(now)
	lastWeek := datekey.FromTime(now.AddDate(0, 0, -6))
	twoMonthsAgo := datekey.FromTime(now.AddDate(0, 0, -60))

	oldEntry := addWeight(t, 85.5, twoMonthsAgo)
	addWeight(t, 83.0, lastWeek)
	addWeight(t, 82.5, today)

	t.Run("list all", func(t *testing.T) {
		listResp := listWeights(t, "all")
		require.Len(t, listResp.Logs, 3)
		assert.Equal(t, twoMonthsAgo, listResp.Logs[0].Date)
		assert.Equal(t, today, listResp.Logs[2].Date)
	})

	t.Run("last 7 days", func(t *testing.T) {
		listResp := listWeights(t, "7d")
		require.Len(t, listResp.Logs, 2)
		assert.Equal(t, 83.0, listResp.Logs[0].Weight)
		assert.Equal(t, 82.5, listResp.Logs[1].Weight)
	})

	t.Run("last 30 days", func(t *testing.T) {
		listResp := listWeights(t, "30d")
		assert.Len(t, listResp.Logs, 2)
	})

	t.Run("default range is all", func(t *testing.T) {
		listResp := listWeights(t, "")
		assert.Len(t, listResp.Logs, 3)
	})

	t.Run("same day resubmission overwrites", func(t *testing.T) {
		updated := addWeight(t, 82.1, today)
		assert.Equal(t, 82.1, updated.Weight)

		listResp := listWeights(t, "all")
		require.Len(t, listResp.Logs, 3)
		assert.Equal(t, 82.1, listResp.Logs[2].Weight)
	})

	t.Run("invalid range", func(t *testing.T) {
		url := fmt.Sprintf("%s/weight/%d?range=14d", serverEndpoint, userID)
		req := authorizedReq(ctx, t, "GET", url, token, nil)
		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("delete entry", func(t *testing.T) {
		url := fmt.Sprintf("%s/weight/%d/%d", serverEndpoint, userID, oldEntry.ID)
		req := authorizedReq(ctx, t, "DELETE", url, token, nil)
		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		listResp := listWeights(t, "all")
		assert.Len(t, listResp.Logs, 2)
	})

	t.Run("delete unknown entry", func(t *testing.T) {
		url := fmt.Sprintf("%s/weight/%d/999999", serverEndpoint, userID)
		req := authorizedReq(ctx, t, "DELETE", url, token, nil)
		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
