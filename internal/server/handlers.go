package server

import (
	"net/http"

	"fieldwatch/internal/observability"
	"fieldwatch/internal/types"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	JSON(w, r, http.StatusOK, APIResponse{Data: map[string]string{"status": "ok"}})
}

func (s *Server) handleOutlook(w http.ResponseWriter, r *http.Request) {
	outlook, err := s.service.GetOutlook(r.Context())
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, http.StatusOK, APIResponse{Data: outlook})
}

func (s *Server) handleConditions(w http.ResponseWriter, r *http.Request) {
	snap, err := s.service.GetConditions(r.Context())
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, http.StatusOK, APIResponse{Data: snap})
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	cards, err := s.service.GetForecast(r.Context())
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, http.StatusOK, APIResponse{Data: cards})
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := s.service.GetAlerts(r.Context())
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, http.StatusOK, APIResponse{Data: alerts})
}

// notifyRequest is the body of POST /v1/notifications.
type notifyRequest struct {
	Text string `json:"text"`
}

// notifyResponse mirrors the Slack acknowledgment.
type notifyResponse struct {
	OK bool   `json:"ok"`
	TS string `json:"ts"`
}

// defaultNotifyText substitutes for an empty message body; an empty POST is a
// valid "ping" and not a validation failure.
const defaultNotifyText = "No message provided"

func (s *Server) handleNotify(w http.ResponseWriter, r *http.Request) {
	var req notifyRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		Error(w, r, err)
		return
	}
	if req.Text == "" {
		req.Text = defaultNotifyText
	}

	if s.notifier == nil {
		Error(w, r, types.NewAppError(
			types.ErrCodeConfigMissingCredential,
			"notification credentials are not configured",
			nil,
		))
		return
	}

	ts, err := s.notifier.PostMessage(r.Context(), req.Text)
	if err != nil {
		s.metrics.Notifications.WithLabelValues(observability.StatusError).Inc()
		Error(w, r, err)
		return
	}
	s.metrics.Notifications.WithLabelValues(observability.StatusOK).Inc()

	JSON(w, r, http.StatusOK, APIResponse{Data: notifyResponse{OK: true, TS: ts}})
}
