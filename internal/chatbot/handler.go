package chatbot

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/fitlife/fitlife-backend/internal/telemetry/metrics"
	"github.com/fitlife/fitlife-backend/internal/telemetry/tracing"
	"github.com/fitlife/fitlife-backend/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=chatbot_mocks_test.go -package=chatbot_test

type chatbotApi interface {
	Ask(ctx context.Context, question string) (string, error)
}

type AskChatbotResponse struct {
	Response string `json:"response"`
}

type Handler struct {
	api     chatbotApi
	metrics *metrics.Manager
}

func NewHandler(api chatbotApi, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		api:     api,
		metrics: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/chatbot/llm_chatbot/", handler.HandleAsk).Methods("POST", "OPTIONS").Name("ask-chatbot")
}

type askChatbotRequest struct {
	Question string `json:"question"`
}

func (handler *Handler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.chatbot.ask")
	defer span.End()

	var req askChatbotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("ask chatbot, unmarshal json params: %s", err)
		http.Error(w, "ask chatbot failed", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		http.Error(w, "error, question empty", http.StatusBadRequest)
		return
	}

	handler.metrics.CounterChatbotQuestions.Inc()

	answer, err := handler.api.Ask(ctx, req.Question)
	if err != nil {
		log.Errorf("ask chatbot [%s]: %s", req.Question, err)
		http.Error(w, "chatbot unavailable", http.StatusBadGateway)
		return
	}

	respJson, err := json.Marshal(AskChatbotResponse{
		Response: answer,
	})
	if err != nil {
		log.Errorf("ask chatbot, marshal response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}
