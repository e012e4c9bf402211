package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"fieldwatch/internal/types"
)

// slackAPIBase is the default Slack API base URL. Overridable in tests via
// SlackClientConfig.BaseURL.
const slackAPIBase = "https://slack.com"

// SlackClientConfig holds the configuration for creating a SlackClient.
// BotToken and Channel arrive out-of-band (environment); their absence is a
// hard configuration error, reported distinctly from delivery failures.
type SlackClientConfig struct {
	BotToken types.SecretString
	Channel  string // channel or user ID the bot posts to
	BaseURL  string // override for testing; defaults to slackAPIBase
	Logger   *slog.Logger
}

// SlackClient delivers plain-text notifications via Slack's chat.postMessage
// API through BaseClient, inheriting the circuit breaker and retry policy.
type SlackClient struct {
	base    *BaseClient
	token   types.SecretString
	channel string
	baseURL string
	logger  *slog.Logger
}

// NewSlackClient creates a SlackClient. It fails fast when either credential
// is missing; a misconfigured notifier must never look like a delivery
// failure at send time.
func NewSlackClient(httpClient *http.Client, cfg SlackClientConfig) (*SlackClient, error) {
	if cfg.BotToken.Unmask() == "" {
		return nil, types.NewAppError(
			types.ErrCodeConfigMissingCredential,
			"slack bot token is not configured",
			nil,
		)
	}
	if cfg.Channel == "" {
		return nil, types.NewAppError(
			types.ErrCodeConfigMissingCredential,
			"slack channel is not configured",
			nil,
		)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = slackAPIBase
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	base := NewBaseClient(
		httpClient,
		"slack",
		RetryPolicy{
			MaxRetries: 2,
			MinWait:    500 * time.Millisecond,
			MaxWait:    5 * time.Second,
		},
		"fieldwatch/1.0",
	)

	return &SlackClient{
		base:    base,
		token:   cfg.BotToken,
		channel: cfg.Channel,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
	}, nil
}

// slackPostMessageRequest is the chat.postMessage JSON request body.
type slackPostMessageRequest struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

// slackPostMessageResponse is the subset of the chat.postMessage response the
// client cares about.
type slackPostMessageResponse struct {
	OK    bool   `json:"ok"`
	TS    string `json:"ts"`
	Error string `json:"error"`
}

// PostMessage sends a plain-text message to the configured channel and
// returns Slack's message timestamp as the delivery id. A response with
// ok:false is a delivery failure, not a transport failure, and maps to
// notify_delivery_failed.
func (s *SlackClient) PostMessage(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(slackPostMessageRequest{
		Channel: s.channel,
		Text:    text,
	})
	if err != nil {
		return "", types.NewAppError(
			types.ErrCodeInternalUnexpected,
			"failed to marshal slack message payload",
			err,
		)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/chat.postMessage", bytes.NewReader(body))
	if err != nil {
		return "", types.NewAppError(
			types.ErrCodeInternalUnexpected,
			"failed to create slack request",
			err,
		)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+s.token.Unmask())

	resp, err := s.base.Do(req)
	if err != nil {
		return "", types.NewAppError(
			types.ErrCodeNotifyDelivery,
			"slack request failed",
			err,
		)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", types.NewAppError(
			types.ErrCodeNotifyDelivery,
			"failed to read slack response",
			err,
		)
	}

	var decoded slackPostMessageResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", types.NewAppError(
			types.ErrCodeNotifyDelivery,
			"slack returned a malformed response",
			err,
		)
	}
	if !decoded.OK {
		reason := decoded.Error
		if reason == "" {
			reason = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return "", types.NewAppError(
			types.ErrCodeNotifyDelivery,
			fmt.Sprintf("slack rejected the message: %s", reason),
			nil,
		)
	}

	s.logger.InfoContext(ctx, "slack notification delivered",
		"channel", s.channel,
		"ts", decoded.TS,
	)
	return decoded.TS, nil
}
