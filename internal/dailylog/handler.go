package dailylog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/fitlife/fitlife-backend/internal/auth"
	"github.com/fitlife/fitlife-backend/internal/datekey"
	"github.com/fitlife/fitlife-backend/internal/telemetry/metrics"
	"github.com/fitlife/fitlife-backend/internal/telemetry/tracing"
	"github.com/fitlife/fitlife-backend/pkg"
)

const calorieGoalScalar = "calorie_goal"

type DeleteEntryResponse struct {
	DeletedID int64 `json:"deletedId"`
}

type TotalResponse struct {
	UserID int         `json:"user_id"`
	Date   datekey.Key `json:"date"`
	Total  int         `json:"total"`
}

type BreakdownResponse struct {
	UserID    int              `json:"user_id"`
	Date      datekey.Key      `json:"date"`
	Breakdown []BreakdownSlice `json:"breakdown"`
}

// Handler serves the day-bucketed workout and nutrition logs.
type Handler struct {
	workouts  *Service
	nutrition *Service
	adapter   Adapter
	metrics   *metrics.Manager
}

func NewHandler(workouts, nutrition *Service, adapter Adapter, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		workouts:  workouts,
		nutrition: nutrition,
		adapter:   adapter,
		metrics:   metricsManager,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/workouts", handler.HandleAddWorkout).Methods("POST", "OPTIONS").Name("new-workout")
	r.HandleFunc("/workouts/{userId}", handler.HandleGetWorkouts).Methods("GET", "OPTIONS").Name("get-workouts")
	r.HandleFunc("/workouts/{userId}/total", handler.HandleWorkoutsTotal).Methods("GET", "OPTIONS").Name("workouts-total")
	r.HandleFunc("/workouts/{userId}/breakdown", handler.HandleWorkoutsBreakdown).Methods("GET", "OPTIONS").Name("workouts-breakdown")
	r.HandleFunc("/workouts/{userId}/{date}/{entryId}", handler.HandleDeleteWorkout).Methods("DELETE", "OPTIONS").Name("delete-workout")

	r.HandleFunc("/nutrition", handler.HandleAddFood).Methods("POST", "OPTIONS").Name("new-food-log")
	r.HandleFunc("/nutrition/{userId}", handler.HandleGetFoodLogs).Methods("GET", "OPTIONS").Name("get-food-logs")
	r.HandleFunc("/nutrition/{userId}/total", handler.HandleCaloriesTotal).Methods("GET", "OPTIONS").Name("calories-total")
	r.HandleFunc("/nutrition/{userId}/breakdown", handler.HandleCaloriesBreakdown).Methods("GET", "OPTIONS").Name("calories-breakdown")
	r.HandleFunc("/nutrition/{userId}/goal", handler.HandleGetCalorieGoal).Methods("GET", "OPTIONS").Name("get-calorie-goal")
	r.HandleFunc("/nutrition/{userId}/goal", handler.HandleSetCalorieGoal).Methods("PUT", "OPTIONS").Name("set-calorie-goal")
	r.HandleFunc("/nutrition/{userId}/{date}/{entryId}", handler.HandleDeleteFood).Methods("DELETE", "OPTIONS").Name("delete-food-log")
}

type addWorkoutRequest struct {
	UserID   int    `json:"user_id"`
	Exercise string `json:"exercise"`
	Duration int    `json:"duration"`
	Date     string `json:"date"`
}

type AddWorkoutResponse struct {
	UserID  int         `json:"user_id"`
	Date    datekey.Key `json:"date"`
	Workout Entry       `json:"workout"`
}

func (handler *Handler) HandleAddWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylog.addWorkout")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req addWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new workout, unmarshal json params: %s", err)
		http.Error(w, "add workout failed", http.StatusBadRequest)
		return
	}

	if req.Exercise == "" {
		http.Error(w, "error, exercise empty", http.StatusBadRequest)
		return
	}
	if req.Duration <= 0 {
		http.Error(w, "error, duration must be positive", http.StatusBadRequest)
		return
	}

	userID, day, ok := checkedUserAndDay(ctx, w, req.UserID, req.Date)
	if !ok {
		return
	}

	added, err := handler.workouts.Add(ctx, userID, day, Entry{
		Exercise: req.Exercise,
		Duration: req.Duration,
	})
	if err != nil {
		log.Errorf("failed to add workout [%s] for user %d: %s", req.Exercise, userID, err)
		http.Error(w, "error, failed to add workout", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterWorkoutEntries.Inc()

	respJson, err := json.Marshal(AddWorkoutResponse{
		UserID:  userID,
		Date:    day,
		Workout: added,
	})
	if err != nil {
		log.Errorf("failed to marshal new workout: %s", err)
		http.Error(w, "error, failed to add workout", http.StatusInternalServerError)
		return
	}

	log.Debugf("new workout added: %s", respJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusCreated)
}

type GetEntriesResponse struct {
	UserID  int         `json:"user_id"`
	Date    datekey.Key `json:"date"`
	Entries []Entry     `json:"entries"`
}

func (handler *Handler) HandleGetWorkouts(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylog.getWorkouts")
	defer span.End()

	handler.handleGetEntries(ctx, w, r, handler.workouts)
}

func (handler *Handler) HandleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylog.deleteWorkout")
	defer span.End()

	handler.handleDeleteEntry(ctx, w, r, handler.workouts)
}

func (handler *Handler) HandleWorkoutsTotal(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylog.workoutsTotal")
	defer span.End()

	handler.handleTotal(ctx, w, r, handler.workouts, EntryDuration)
}

func (handler *Handler) HandleWorkoutsBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylog.workoutsBreakdown")
	defer span.End()

	handler.handleBreakdown(ctx, w, r, handler.workouts, EntryExercise, EntryDuration)
}

func (handler *Handler) handleGetEntries(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	service *Service,
) {
	userID, day, ok := requestUserAndDay(w, r)
	if !ok {
		return
	}

	entries, err := service.EntriesFor(ctx, userID, day)
	if err != nil {
		log.Errorf("failed to get %s entries for user %d: %s", service.storeName, userID, err)
		http.Error(w, "failed to get log entries", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(GetEntriesResponse{
		UserID:  userID,
		Date:    day,
		Entries: entries,
	})
	if err != nil {
		log.Errorf("failed to marshal log entries: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) handleDeleteEntry(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	service *Service,
) {
	vars := mux.Vars(r)
	userID, err := strconv.Atoi(vars["userId"])
	if err != nil || userID <= 0 {
		http.Error(w, "error, invalid user id", http.StatusBadRequest)
		return
	}
	if !ownUser(ctx, w, userID) {
		return
	}
	day, err := datekey.Parse(vars["date"])
	if err != nil {
		http.Error(w, "error, invalid date", http.StatusBadRequest)
		return
	}
	entryID, err := strconv.ParseInt(vars["entryId"], 10, 64)
	if err != nil {
		http.Error(w, "error, entry id NaN", http.StatusBadRequest)
		return
	}

	if err := service.Remove(ctx, userID, day, entryID); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			log.Debugf("%s entry %d not found for user %d", service.storeName, entryID, userID)
			http.Error(w, "log entry not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete %s entry %d for user %d: %s", service.storeName, entryID, userID, err)
		http.Error(w, "log entry not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteEntryResponse{
		DeletedID: entryID,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) handleTotal(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	service *Service,
	value func(Entry) int,
) {
	userID, day, ok := requestUserAndDay(w, r)
	if !ok {
		return
	}

	entries, err := service.EntriesFor(ctx, userID, day)
	if err != nil {
		log.Errorf("failed to get %s entries for user %d: %s", service.storeName, userID, err)
		http.Error(w, "failed to get log entries", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(TotalResponse{
		UserID: userID,
		Date:   day,
		Total:  Total(entries, value),
	})
	if err != nil {
		log.Errorf("failed to marshal total response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) handleBreakdown(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	service *Service,
	label func(Entry) string,
	value func(Entry) int,
) {
	userID, day, ok := requestUserAndDay(w, r)
	if !ok {
		return
	}

	entries, err := service.EntriesFor(ctx, userID, day)
	if err != nil {
		log.Errorf("failed to get %s entries for user %d: %s", service.storeName, userID, err)
		http.Error(w, "failed to get log entries", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(BreakdownResponse{
		UserID:    userID,
		Date:      day,
		Breakdown: Breakdown(entries, label, value),
	})
	if err != nil {
		log.Errorf("failed to marshal breakdown response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

// ownUser rejects requests targeting a different user than the one owning
// the session. Open routes carry no session user and pass through.
func ownUser(ctx context.Context, w http.ResponseWriter, userID int) bool {
	if loggedID, ok := auth.LoggedUser(ctx); ok && loggedID != userID {
		http.Error(w, "error, forbidden", http.StatusForbidden)
		return false
	}
	return true
}

// requestUserAndDay pulls the user ID route var and the date query param,
// writing the error response itself when either is invalid.
func requestUserAndDay(w http.ResponseWriter, r *http.Request) (int, datekey.Key, bool) {
	vars := mux.Vars(r)
	userID, err := strconv.Atoi(vars["userId"])
	if err != nil || userID <= 0 {
		http.Error(w, "error, invalid user id", http.StatusBadRequest)
		return 0, "", false
	}
	if !ownUser(r.Context(), w, userID) {
		return 0, "", false
	}

	dateParam := r.URL.Query().Get("date")
	if dateParam == "" {
		// default to today's bucket
		return userID, datekey.Today(), true
	}

	day, err := datekey.Parse(dateParam)
	if err != nil {
		http.Error(w, "error, invalid date", http.StatusBadRequest)
		return 0, "", false
	}
	return userID, day, true
}

// checkedUserAndDay validates an add-request user ID and date, enforcing the
// no-future-dates rule at this boundary (the store itself accepts any day).
func checkedUserAndDay(ctx context.Context, w http.ResponseWriter, userID int, date string) (int, datekey.Key, bool) {
	if userID <= 0 {
		http.Error(w, "error, invalid user id", http.StatusBadRequest)
		return 0, "", false
	}
	if !ownUser(ctx, w, userID) {
		return 0, "", false
	}

	day := datekey.Today()
	if date != "" {
		parsed, err := datekey.Parse(date)
		if err != nil {
			http.Error(w, "error, invalid date", http.StatusBadRequest)
			return 0, "", false
		}
		day = parsed
	}

	if day.After(datekey.Today()) {
		http.Error(w, "error, date in the future", http.StatusBadRequest)
		return 0, "", false
	}
	return userID, day, true
}
