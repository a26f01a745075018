package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexmorbo/slackhook/application/dto"
	"github.com/alexmorbo/slackhook/application/usecase"
	"github.com/alexmorbo/slackhook/domain/delivery"
	"github.com/alexmorbo/slackhook/infrastructure/webhook"
	"github.com/alexmorbo/slackhook/interface/http/handler"
)

type memoryDeliveryRepository struct {
	deliveries map[string]*delivery.Delivery
}

func newMemoryDeliveryRepository() *memoryDeliveryRepository {
	return &memoryDeliveryRepository{deliveries: make(map[string]*delivery.Delivery)}
}

func (r *memoryDeliveryRepository) Save(ctx context.Context, d *delivery.Delivery) error {
	r.deliveries[d.ID()] = d
	return nil
}

func (r *memoryDeliveryRepository) FindByID(ctx context.Context, id string) (*delivery.Delivery, error) {
	d, ok := r.deliveries[id]
	if !ok {
		return nil, delivery.ErrNotFound
	}
	return d, nil
}

func (r *memoryDeliveryRepository) Ping(ctx context.Context) error { return nil }

type staticAttachmentDefaults struct{}

func (staticAttachmentDefaults) AttachmentColor() string      { return "good" }
func (staticAttachmentDefaults) AttachmentFooter() string     { return "slackhook" }
func (staticAttachmentDefaults) AttachmentFooterIcon() string { return "" }

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestRouter(t *testing.T, webhookURL string) (*gin.Engine, *memoryDeliveryRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newMemoryDeliveryRepository()
	client := webhook.NewClient(webhookURL, map[string]any{
		"channel":  "#general",
		"username": "slackhook",
	}, testLogger())
	relay := usecase.NewRelayMessageUseCase(client, repo, staticAttachmentDefaults{}, testLogger())

	router := NewRouter(testLogger(),
		handler.NewMessageHandler(relay, testLogger()),
		handler.NewHealthHandler(repo),
	)
	return router, repo
}

func TestNewRouterRoutes(t *testing.T) {
	router, _ := newTestRouter(t, "https://hooks.example.com/services/T000/B000/XXX")

	routes := make(map[string]string)
	for _, route := range router.Routes() {
		routes[route.Method+" "+route.Path] = route.Handler
	}

	assert.Contains(t, routes, "GET /health/live")
	assert.Contains(t, routes, "GET /health/ready")
	assert.Contains(t, routes, "GET /metrics")
	assert.Contains(t, routes, "POST /api/v1/messages")
	assert.Contains(t, routes, "GET /api/v1/deliveries/:id")
}

func TestRouterRelaysMessageEndToEnd(t *testing.T) {
	var received map[string]any
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	router, repo := newTestRouter(t, upstream.URL)

	body := []byte(`{"text": "Build <passed> & deployed", "icon": ":white_check_mark:", "attachments": [{"title": "build 42"}]}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var out dto.DeliveryOutput
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "sent", out.Status)
	assert.Equal(t, "#general", out.Channel)
	assert.Contains(t, repo.deliveries, out.ID)

	require.NotNil(t, received)
	assert.Equal(t, "Build <passed> & deployed", received["text"])
	assert.Equal(t, "#general", received["channel"])
	assert.Equal(t, ":white_check_mark:", received["icon_emoji"])
	assert.NotContains(t, received, "icon_url")

	attachments, ok := received["attachments"].([]any)
	require.True(t, ok)
	require.Len(t, attachments, 1)
	attachment := attachments[0].(map[string]any)
	assert.Equal(t, "build 42", attachment["title"])
	assert.Equal(t, "good", attachment["color"])
	assert.Equal(t, "slackhook", attachment["footer"])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/deliveries/"+out.ID, nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterReportsWebhookRejection(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("invalid_token"))
	}))
	defer upstream.Close()

	router, repo := newTestRouter(t, upstream.URL)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", bytes.NewReader([]byte(`{"text": "hi"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(http.StatusForbidden), response["upstream_status"])
	assert.Len(t, repo.deliveries, 1)
	for _, d := range repo.deliveries {
		assert.Equal(t, delivery.StatusFailed, d.Status())
	}
}

func TestRouterHealthEndpoints(t *testing.T) {
	router, _ := newTestRouter(t, "https://hooks.example.com/services/T000/B000/XXX")

	for _, path := range []string{"/health/live", "/health/ready", "/metrics"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Empty(t, w.Header().Get("X-Request-ID"), "probes skip the request middleware")
		})
	}
}

func TestRouterDeliveryNotFound(t *testing.T) {
	router, _ := newTestRouter(t, "https://hooks.example.com/services/T000/B000/XXX")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/deliveries/unknown", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouterNotFoundRoute(t *testing.T) {
	router, _ := newTestRouter(t, "https://hooks.example.com/services/T000/B000/XXX")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nonexistent", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouterMethodNotAllowed(t *testing.T) {
	router, _ := newTestRouter(t, "https://hooks.example.com/services/T000/B000/XXX")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/health/live", nil))

	assert.True(t, w.Code == http.StatusNotFound || w.Code == http.StatusMethodNotAllowed,
		"should return 404 or 405 for wrong HTTP method")
}
