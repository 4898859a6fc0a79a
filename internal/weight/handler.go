package weight

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/fitlife/fitlife-backend/internal/auth"
	"github.com/fitlife/fitlife-backend/internal/datekey"
	"github.com/fitlife/fitlife-backend/internal/telemetry/metrics"
	"github.com/fitlife/fitlife-backend/internal/telemetry/tracing"
	"github.com/fitlife/fitlife-backend/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=weight_mocks_test.go -package=weight_test

var (
	ErrWeightLogNotFound = errors.New("weight log not found")
	ErrUserNotFound      = errors.New("user not found")
)

type weightRepo interface {
	Add(ctx context.Context, entry Entry) (*Entry, error)
	ListForUser(ctx context.Context, userID int) ([]Entry, error)
	Delete(ctx context.Context, userID, id int) error
}

type ListResponse struct {
	UserID int     `json:"user_id"`
	Range  Window  `json:"range"`
	Logs   []Entry `json:"logs"`
}

type DeleteWeightLogResponse struct {
	DeletedID int `json:"deletedId"`
}

type Handler struct {
	repo    weightRepo
	metrics *metrics.Manager

	// injectable clock so range filtering is deterministic in tests
	nowFunc func() time.Time
}

func NewHandler(repo weightRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metricsManager,
		nowFunc: time.Now,
	}
}

// ownUser rejects requests targeting a different user than the one owning
// the session. Requests without a session user pass through.
func ownUser(ctx context.Context, w http.ResponseWriter, userID int) bool {
	if loggedID, ok := auth.LoggedUser(ctx); ok && loggedID != userID {
		http.Error(w, "error, forbidden", http.StatusForbidden)
		return false
	}
	return true
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/weight", handler.HandleAdd).Methods("POST", "OPTIONS").Name("new-weight-log")
	r.HandleFunc("/weight/{userId}", handler.HandleList).Methods("GET", "OPTIONS").Name("get-weight-logs")
	r.HandleFunc("/weight/{userId}/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-weight-log")
}

type addWeightRequest struct {
	UserID int     `json:"user_id"`
	Weight float64 `json:"weight"`
	Date   string  `json:"date"`
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weight.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req addWeightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new weight log, unmarshal json params: %s", err)
		http.Error(w, "add weight log failed", http.StatusBadRequest)
		return
	}

	if req.UserID <= 0 {
		http.Error(w, "error, invalid user id", http.StatusBadRequest)
		return
	}
	if !ownUser(ctx, w, req.UserID) {
		return
	}
	if req.Weight <= 0 {
		http.Error(w, "error, weight must be positive", http.StatusBadRequest)
		return
	}

	day := datekey.FromTime(handler.nowFunc())
	if req.Date != "" {
		parsed, err := datekey.Parse(req.Date)
		if err != nil {
			http.Error(w, "error, invalid date", http.StatusBadRequest)
			return
		}
		day = parsed
	}
	if day.After(datekey.FromTime(handler.nowFunc())) {
		http.Error(w, "error, date in the future", http.StatusBadRequest)
		return
	}

	added, err := handler.repo.Add(ctx, Entry{
		UserID: req.UserID,
		Weight: req.Weight,
		Date:   day,
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Debugf("new weight log for unknown user %d", req.UserID)
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to add weight log for user %d: %s", req.UserID, err)
		http.Error(w, "error, failed to add weight log", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterWeightLogs.Inc()

	addedJson, err := json.Marshal(added)
	if err != nil {
		log.Errorf("failed to marshal new weight log: %s", err)
		http.Error(w, "error, failed to add weight log", http.StatusInternalServerError)
		return
	}

	log.Debugf("new weight log added: %s", addedJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weight.list")
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

	window, err := ParseWindow(r.URL.Query().Get("range"))
	if err != nil {
		http.Error(w, "error, invalid range", http.StatusBadRequest)
		return
	}

	logs, err := handler.repo.ListForUser(ctx, userID)
	if err != nil {
		log.Errorf("failed to list weight logs for user %d: %s", userID, err)
		http.Error(w, "failed to get weight logs", http.StatusInternalServerError)
		return
	}

	filtered := Filter(logs, window, handler.nowFunc())

	respJson, err := json.Marshal(ListResponse{
		UserID: userID,
		Range:  window,
		Logs:   filtered,
	})
	if err != nil {
		log.Errorf("failed to marshal weight logs: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weight.delete")
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
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "error, weight log id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, ErrWeightLogNotFound) {
			http.Error(w, "weight log not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete weight log %d for user %d: %s", id, userID, err)
		http.Error(w, "weight log not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteWeightLogResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}
