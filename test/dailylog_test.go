package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/fitlife/fitlife-backend/internal/dailylog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestDailyLog_Workouts() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	userID, token := s.registerAndLogin(ctx, t, "workout-user", "super-secret")

	addWorkout := func(t *testing.T, exercise string, duration int) dailylog.AddWorkoutResponse {
		t.Helper()
		reqBody := fmt.Sprintf(`{"user_id":%d,"exercise":%q,"duration":%d}`, userID, exercise, duration)
		req := authorizedReq(ctx, t, "POST", serverEndpoint+"/workouts", token, bytes.NewBufferString(reqBody))

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var addResp dailylog.AddWorkoutResponse
		require.NoError(t, json.Unmarshal(respBytes, &addResp))
		return addResp
	}

	running := addWorkout(t, "Running", 30)
	cycling := addWorkout(t, "Cycling", 45)
	require.True(t, running.Workout.ID > 0)
	require.True(t, cycling.Workout.ID > running.Workout.ID)

	t.Run("list today", func(t *testing.T) {
		req := authorizedReq(ctx, t, "GET", fmt.Sprintf("%s/workouts/%d", serverEndpoint, userID), token, nil)
		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var getResp dailylog.GetEntriesResponse
		require.NoError(t, json.Unmarshal(respBytes, &getResp))
		require.Len(t, getResp.Entries, 2)
		assert.Equal(t, "Running", getResp.Entries[0].Exercise)
		assert.Equal(t, "Cycling", getResp.Entries[1].Exercise)
	})

	t.Run("total minutes", func(t *testing.T) {
		req := authorizedReq(ctx, t, "GET", fmt.Sprintf("%s/workouts/%d/total", serverEndpoint, userID), token, nil)
		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var totalResp dailylog.TotalResponse
		require.NoError(t, json.Unmarshal(respBytes, &totalResp))
		assert.Equal(t, 75, totalResp.Total)
	})

	t.Run("delete one, total drops", func(t *testing.T) {
		url := fmt.Sprintf("%s/workouts/%d/%s/%d", serverEndpoint, userID, running.Date, running.Workout.ID)
		req := authorizedReq(ctx, t, "DELETE", url, token, nil)
		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		req = authorizedReq(ctx, t, "GET", fmt.Sprintf("%s/workouts/%d/total", serverEndpoint, userID), token, nil)
		resp, err = s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var totalResp dailylog.TotalResponse
		require.NoError(t, json.Unmarshal(respBytes, &totalResp))
		assert.Equal(t, 45, totalResp.Total)
	})

	t.Run("delete unknown entry", func(t *testing.T) {
		url := fmt.Sprintf("%s/workouts/%d/%s/99999", serverEndpoint, userID, running.Date)
		req := authorizedReq(ctx, t, "DELETE", url, token, nil)
		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("other users logs are off limits", func(t *testing.T) {
		_, otherToken := s.registerAndLogin(ctx, t, "workout-snooper", "super-secret")

		url := fmt.Sprintf("%s/workouts/%d", serverEndpoint, userID)
		req := authorizedReq(ctx, t, "GET", url, otherToken, nil)
		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		addBody := fmt.Sprintf(`{"user_id":%d,"exercise":"Planted Evidence","duration":10}`, userID)
		req = authorizedReq(ctx, t, "POST", serverEndpoint+"/workouts", otherToken, bytes.NewBufferString(addBody))
		resp, err = s.httpClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func (s *IntegrationTestSuite) TestDailyLog_Nutrition() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	userID, token := s.registerAndLogin(ctx, t, "nutrition-user", "super-secret")

	addFood := func(t *testing.T, food string, calories int, mealType string) dailylog.AddFoodResponse {
		t.Helper()
		reqBody := fmt.Sprintf(`{"user_id":%d,"food":%q,"calories":%d,"mealType":%q}`, userID, food, calories, mealType)
		req := authorizedReq(ctx, t, "POST", serverEndpoint+"/nutrition", token, bytes.NewBufferString(reqBody))

		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var addResp dailylog.AddFoodResponse
		require.NoError(t, json.Unmarshal(respBytes, &addResp))
		return addResp
	}

	apple := addFood(t, "Apple", 95, "snack")
	addFood(t, "Chicken breast", 335, "lunch")

	t.Run("calories total", func(t *testing.T) {
		req := authorizedReq(ctx, t, "GET", fmt.Sprintf("%s/nutrition/%d/total", serverEndpoint, userID), token, nil)
		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var totalResp dailylog.TotalResponse
		require.NoError(t, json.Unmarshal(respBytes, &totalResp))
		assert.Equal(t, 430, totalResp.Total)
	})

	t.Run("remove apple, total drops", func(t *testing.T) {
		url := fmt.Sprintf("%s/nutrition/%d/%s/%d", serverEndpoint, userID, apple.Date, apple.Food.ID)
		req := authorizedReq(ctx, t, "DELETE", url, token, nil)
		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		req = authorizedReq(ctx, t, "GET", fmt.Sprintf("%s/nutrition/%d/total", serverEndpoint, userID), token, nil)
		resp, err = s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var totalResp dailylog.TotalResponse
		require.NoError(t, json.Unmarshal(respBytes, &totalResp))
		assert.Equal(t, 335, totalResp.Total)
	})

	t.Run("unknown meal type rejected", func(t *testing.T) {
		reqBody := fmt.Sprintf(`{"user_id":%d,"food":"Mystery","calories":100,"mealType":"brunch"}`, userID)
		req := authorizedReq(ctx, t, "POST", serverEndpoint+"/nutrition", token, bytes.NewBufferString(reqBody))
		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("calorie goal roundtrip", func(t *testing.T) {
		goalURL := fmt.Sprintf("%s/nutrition/%d/goal", serverEndpoint, userID)

		req := authorizedReq(ctx, t, "PUT", goalURL, token, bytes.NewBufferString(`{"goal":2200}`))
		resp, err := s.httpClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		req = authorizedReq(ctx, t, "GET", goalURL, token, nil)
		resp, err = s.httpClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBytes, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var goalResp dailylog.CalorieGoalResponse
		require.NoError(t, json.Unmarshal(respBytes, &goalResp))
		assert.Equal(t, 2200, goalResp.Goal)
	})
}
