package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldwatch/internal/observability"
	"fieldwatch/internal/types"
)

// mockService is a hand-rolled OutlookService double.
type mockService struct {
	outlook types.Outlook
	err     error
}

func (m *mockService) GetOutlook(ctx context.Context) (types.Outlook, error) {
	return m.outlook, m.err
}

func (m *mockService) GetConditions(ctx context.Context) (types.WeatherSnapshot, error) {
	return m.outlook.Conditions, m.err
}

func (m *mockService) GetForecast(ctx context.Context) ([]types.ForecastCard, error) {
	return m.outlook.Forecast, m.err
}

func (m *mockService) GetAlerts(ctx context.Context) ([]string, error) {
	return m.outlook.ActiveAlerts, m.err
}

// mockNotifier records posted messages.
type mockNotifier struct {
	posted []string
	err    error
}

func (m *mockNotifier) PostMessage(ctx context.Context, text string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.posted = append(m.posted, text)
	return "1724500000.000100", nil
}

func newTestServer(svc OutlookService, notifier Notifier) http.Handler {
	return New(Config{
		Service:  svc,
		Notifier: notifier,
		Metrics:  observability.NewMetrics(),
	}).Routes()
}

func testOutlook() types.Outlook {
	return types.Outlook{
		GeneratedAt:  time.Date(2026, 8, 25, 18, 0, 0, 0, time.UTC),
		ActiveAlerts: []string{"Wind Advisory"},
		Assessment: types.Assessment{
			NowMatches:    []types.MatchRecord{},
			FutureMatches: []types.MatchRecord{},
			DrivingRisk:   types.RiskLow,
			VenueRisk:     types.RiskLow,
		},
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthz(t *testing.T) {
	handler := newTestServer(&mockService{}, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ok", body["data"].(map[string]any)["status"])
}

func TestGetOutlook(t *testing.T) {
	handler := newTestServer(&mockService{outlook: testOutlook()}, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/outlook", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"), "request id is generated and echoed")

	body := decodeBody(t, rec)
	data := body["data"].(map[string]any)
	assert.Equal(t, []any{"Wind Advisory"}, data["active_alerts"])
}

func TestRequestIDPropagated(t *testing.T) {
	handler := newTestServer(&mockService{outlook: testOutlook()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/outlook", nil)
	req.Header.Set("X-Request-Id", "req-abc-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "req-abc-123", rec.Header().Get("X-Request-Id"))
}

func TestGetOutlookUpstreamFailure(t *testing.T) {
	svc := &mockService{err: types.NewAppError(types.ErrCodeUpstreamWeather, "forecast fetch failed", nil)}
	handler := newTestServer(svc, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/outlook", nil))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	body := decodeBody(t, rec)
	errDetail := body["error"].(map[string]any)
	assert.Equal(t, "upstream_weather_unavailable", errDetail["code"])
	assert.NotEmpty(t, errDetail["request_id"])
}

func TestGetConditions(t *testing.T) {
	o := testOutlook()
	temp := 50.0
	o.Conditions = types.WeatherSnapshot{TemperatureF: &temp, StationID: "KFDK"}
	handler := newTestServer(&mockService{outlook: o}, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/conditions", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "KFDK", body["data"].(map[string]any)["station_id"])
}

func TestGetAlerts(t *testing.T) {
	handler := newTestServer(&mockService{outlook: testOutlook()}, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/alerts", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, []any{"Wind Advisory"}, body["data"])
}

func TestPostNotification(t *testing.T) {
	notifier := &mockNotifier{}
	handler := newTestServer(&mockService{}, notifier)

	req := httptest.NewRequest(http.MethodPost, "/v1/notifications", strings.NewReader(`{"text":"Practice canceled"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["ok"])
	assert.Equal(t, "1724500000.000100", data["ts"])
	assert.Equal(t, []string{"Practice canceled"}, notifier.posted)
}

func TestPostNotificationEmptyTextDefaults(t *testing.T) {
	notifier := &mockNotifier{}
	handler := newTestServer(&mockService{}, notifier)

	req := httptest.NewRequest(http.MethodPost, "/v1/notifications", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"No message provided"}, notifier.posted)
}

func TestPostNotificationWithoutCredentials(t *testing.T) {
	handler := newTestServer(&mockService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/notifications", strings.NewReader(`{"text":"hello"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "config_missing_credential", body["error"].(map[string]any)["code"])
}

func TestPostNotificationDeliveryFailure(t *testing.T) {
	notifier := &mockNotifier{err: types.NewAppError(types.ErrCodeNotifyDelivery, "channel_not_found", nil)}
	handler := newTestServer(&mockService{}, notifier)

	req := httptest.NewRequest(http.MethodPost, "/v1/notifications", strings.NewReader(`{"text":"hello"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "notify_delivery_failed", body["error"].(map[string]any)["code"])
}

func TestPostNotificationMalformedBody(t *testing.T) {
	handler := newTestServer(&mockService{}, &mockNotifier{})

	req := httptest.NewRequest(http.MethodPost, "/v1/notifications", strings.NewReader(`{"text":`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "validation_invalid_body", body["error"].(map[string]any)["code"])
}

func TestPostNotificationUnknownField(t *testing.T) {
	handler := newTestServer(&mockService{}, &mockNotifier{})

	req := httptest.NewRequest(http.MethodPost, "/v1/notifications", strings.NewReader(`{"text":"hi","channel":"C1"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNotificationMethodNotAllowed(t *testing.T) {
	handler := newTestServer(&mockService{}, &mockNotifier{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/notifications", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRecovererCatchesPanic(t *testing.T) {
	srv := New(Config{
		Service: &panickyService{},
		Metrics: observability.NewMetrics(),
	})
	handler := srv.Routes()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/outlook", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "internal_unexpected_error", body["error"].(map[string]any)["code"])
}

// panickyService panics on every call.
type panickyService struct{}

func (p *panickyService) GetOutlook(ctx context.Context) (types.Outlook, error) {
	panic("boom")
}

func (p *panickyService) GetConditions(ctx context.Context) (types.WeatherSnapshot, error) {
	panic("boom")
}

func (p *panickyService) GetForecast(ctx context.Context) ([]types.ForecastCard, error) {
	panic("boom")
}

func (p *panickyService) GetAlerts(ctx context.Context) ([]string, error) {
	panic("boom")
}
