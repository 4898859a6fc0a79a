package dailylog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/fitlife/fitlife-backend/internal/datekey"
	"github.com/fitlife/fitlife-backend/internal/telemetry/tracing"
	"github.com/fitlife/fitlife-backend/pkg"
)

type addFoodRequest struct {
	UserID   int      `json:"user_id"`
	Food     string   `json:"food"`
	Calories int      `json:"calories"`
	MealType MealType `json:"mealType"`
	Date     string   `json:"date"`
}

type AddFoodResponse struct {
	UserID int         `json:"user_id"`
	Date   datekey.Key `json:"date"`
	Food   Entry       `json:"food"`
}

func (handler *Handler) HandleAddFood(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylog.addFood")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req addFoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new food log, unmarshal json params: %s", err)
		http.Error(w, "add food log failed", http.StatusBadRequest)
		return
	}

	if req.Food == "" {
		http.Error(w, "error, food empty", http.StatusBadRequest)
		return
	}
	if req.Calories <= 0 {
		http.Error(w, "error, calories must be positive", http.StatusBadRequest)
		return
	}
	if !req.MealType.Valid() {
		http.Error(w, "error, unknown meal type", http.StatusBadRequest)
		return
	}

	userID, day, ok := checkedUserAndDay(ctx, w, req.UserID, req.Date)
	if !ok {
		return
	}

	added, err := handler.nutrition.Add(ctx, userID, day, Entry{
		Food:     req.Food,
		Calories: req.Calories,
		MealType: req.MealType,
	})
	if err != nil {
		log.Errorf("failed to add food log [%s] for user %d: %s", req.Food, userID, err)
		http.Error(w, "error, failed to add food log", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterFoodEntries.Inc()

	respJson, err := json.Marshal(AddFoodResponse{
		UserID: userID,
		Date:   day,
		Food:   added,
	})
	if err != nil {
		log.Errorf("failed to marshal new food log: %s", err)
		http.Error(w, "error, failed to add food log", http.StatusInternalServerError)
		return
	}

	log.Debugf("new food log added: %s", respJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusCreated)
}

func (handler *Handler) HandleGetFoodLogs(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylog.getFoodLogs")
	defer span.End()

	handler.handleGetEntries(ctx, w, r, handler.nutrition)
}

func (handler *Handler) HandleDeleteFood(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylog.deleteFood")
	defer span.End()

	handler.handleDeleteEntry(ctx, w, r, handler.nutrition)
}

func (handler *Handler) HandleCaloriesTotal(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylog.caloriesTotal")
	defer span.End()

	handler.handleTotal(ctx, w, r, handler.nutrition, EntryCalories)
}

func (handler *Handler) HandleCaloriesBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylog.caloriesBreakdown")
	defer span.End()

	handler.handleBreakdown(ctx, w, r, handler.nutrition, EntryFood, EntryCalories)
}

type CalorieGoalResponse struct {
	UserID int `json:"user_id"`
	Goal   int `json:"goal"`
}

type setCalorieGoalRequest struct {
	Goal int `json:"goal"`
}

func (handler *Handler) HandleGetCalorieGoal(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylog.getCalorieGoal")
	defer span.End()

	vars := mux.Vars(r)
	userID, err := strconv.Atoi(vars["userId"])
	if err != nil || userID <= 0 {
		http.Error(w, "error, invalid user id", http.StatusBadRequest)
		return
	}
	if !ownUser(ctx, w, userID) {
		return
	}

	raw, err := handler.adapter.ReadScalar(ctx, userID, calorieGoalScalar)
	if err != nil {
		log.Errorf("failed to read calorie goal for user %d: %s", userID, err)
		http.Error(w, "failed to read calorie goal", http.StatusInternalServerError)
		return
	}

	goal := 0
	if raw != "" {
		goal, err = strconv.Atoi(raw)
		if err != nil {
			log.Warnf("stored calorie goal for user %d unreadable [%s], treating as unset", userID, raw)
			goal = 0
		}
	}

	respJson, err := json.Marshal(CalorieGoalResponse{
		UserID: userID,
		Goal:   goal,
	})
	if err != nil {
		log.Errorf("failed to marshal calorie goal: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) HandleSetCalorieGoal(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylog.setCalorieGoal")
	defer span.End()

	vars := mux.Vars(r)
	userID, err := strconv.Atoi(vars["userId"])
	if err != nil || userID <= 0 {
		http.Error(w, "error, invalid user id", http.StatusBadRequest)
		return
	}
	if !ownUser(ctx, w, userID) {
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req setCalorieGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("set calorie goal, unmarshal json params: %s", err)
		http.Error(w, "set calorie goal failed", http.StatusBadRequest)
		return
	}
	if req.Goal <= 0 {
		http.Error(w, "error, goal must be positive", http.StatusBadRequest)
		return
	}

	if err := handler.adapter.SaveScalar(ctx, userID, calorieGoalScalar, strconv.Itoa(req.Goal)); err != nil {
		log.Errorf("failed to save calorie goal for user %d: %s", userID, err)
		http.Error(w, "failed to save calorie goal", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(CalorieGoalResponse{
		UserID: userID,
		Goal:   req.Goal,
	})
	if err != nil {
		log.Errorf("failed to marshal calorie goal: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}
