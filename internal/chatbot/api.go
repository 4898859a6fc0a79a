// Package chatbot proxies fitness questions to the LLM chatbot microservice.
package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"

	"github.com/fitlife/fitlife-backend/internal/telemetry/tracing"
)

const (
	oneHour           = 60 * 60
	answerCacheExpire = oneHour * 6
)

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// Api is a client for the chatbot service. Answers are cached per question
// so repeated questions skip the model round trip.
type Api struct {
	serviceURL string
	cache      *freecache.Cache
	httpClient *http.Client
}

func NewApi(serviceURL string, httpClient *http.Client) *Api {
	megabyte := 1024 * 1024
	cacheSize := 10 * megabyte

	return &Api{
		serviceURL: strings.TrimSuffix(serviceURL, "/"),
		cache:      freecache.NewCache(cacheSize),
		httpClient: httpClient,
	}
}

func (a *Api) Ask(ctx context.Context, question string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "chatbotApi.ask")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("question empty")
	}

	cacheKey := []byte(strings.ToLower(question))
	if answerBytes, err := a.cache.Get(cacheKey); err == nil {
		log.Tracef("found chatbot answer in cache for: %s", question)
		return string(answerBytes), nil
	}

	reqJson, err := json.Marshal(askRequest{Question: question})
	if err != nil {
		return "", fmt.Errorf("marshal question: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, "POST",
		a.serviceURL+"/chatbot/llm_chatbot/",
		bytes.NewReader(reqJson),
	)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read chatbot response bytes: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chatbot service status %d: %s", resp.StatusCode, respBytes)
	}

	var chatbotResp askResponse
	if err := json.Unmarshal(respBytes, &chatbotResp); err != nil {
		return "", fmt.Errorf("unmarshal chatbot response: %w", err)
	}
	if chatbotResp.Error != "" {
		return "", fmt.Errorf("chatbot service error: %s", chatbotResp.Error)
	}

	if err := a.cache.Set(cacheKey, []byte(chatbotResp.Response), answerCacheExpire); err != nil {
		log.Errorf("failed to cache chatbot answer for [%s]: %s", question, err)
	}

	return chatbotResp.Response, nil
}
