package calories

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/fitlife/fitlife-backend/internal/telemetry/tracing"
	"github.com/fitlife/fitlife-backend/pkg"
)

type RecommendationResponse struct {
	RecommendedCalories float64 `json:"recommended_calories"`
	Target              string  `json:"target"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/recommended-calories", handler.HandleRecommended).Methods("GET", "OPTIONS").Name("recommended-calories")
}

func (handler *Handler) HandleRecommended(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.calories.recommended")
	defer span.End()

	query := r.URL.Query()

	age, err := strconv.Atoi(query.Get("age"))
	if err != nil || age <= 0 {
		http.Error(w, "error, invalid age", http.StatusBadRequest)
		return
	}
	weightKilos, err := strconv.ParseFloat(query.Get("weight"), 64)
	if err != nil || weightKilos <= 0 {
		http.Error(w, "error, invalid weight", http.StatusBadRequest)
		return
	}
	heightCentims, err := strconv.ParseFloat(query.Get("height"), 64)
	if err != nil || heightCentims <= 0 {
		http.Error(w, "error, invalid height", http.StatusBadRequest)
		return
	}
	gender, err := ParseGender(query.Get("gender"))
	if err != nil {
		http.Error(w, "error, invalid gender", http.StatusBadRequest)
		return
	}
	activityLevel, err := ParseActivityLevel(query.Get("activity_level"))
	if err != nil {
		http.Error(w, "error, invalid activity level", http.StatusBadRequest)
		return
	}
	target := ParseTarget(query.Get("target"))

	recommended, err := Recommended(Params{
		Age:           age,
		WeightKilos:   weightKilos,
		HeightCentims: heightCentims,
		Gender:        gender,
		ActivityLevel: activityLevel,
		Target:        target,
	})
	if err != nil {
		http.Error(w, "error, invalid parameters", http.StatusBadRequest)
		return
	}

	targetLabel := string(target)
	if targetLabel == "" {
		targetLabel = "No specific target provided"
	}

	respJson, err := json.Marshal(RecommendationResponse{
		RecommendedCalories: recommended,
		Target:              targetLabel,
	})
	if err != nil {
		log.Errorf("failed to marshal calorie recommendation: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}
