package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gathr/pkg/utils"
)

type stubWebhookService struct {
	mainErr    error
	connectErr error

	mainCalls    int
	connectCalls int
	lastPayload  []byte
}

func (s *stubWebhookService) HandleMainEvent(ctx context.Context, payload []byte, signature string) error {
	s.mainCalls++
	s.lastPayload = payload
	return s.mainErr
}

func (s *stubWebhookService) HandleConnectEvent(ctx context.Context, payload []byte, signature string) error {
	s.connectCalls++
	s.lastPayload = payload
	return s.connectErr
}

func newWebhookRouter(svc *stubWebhookService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	controller := NewStripeWebhookController(svc)
	r.POST("/api/stripe/webhook/main-account", controller.HandleMainAccountWebhook)
	r.POST("/api/stripe/webhook/connected-account", controller.HandleConnectedAccountWebhook)
	return r
}

func postWebhook(r *gin.Engine, path string, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	if signature != "" {
		req.Header.Set("Stripe-Signature", signature)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestWebhookMissingSignatureHeader(t *testing.T) {
	svc := &stubWebhookService{}
	r := newWebhookRouter(svc)

	rec := postWebhook(r, "/api/stripe/webhook/main-account", []byte(`{}`), "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, svc.mainCalls, "service never sees an unsigned delivery")
}

func TestWebhookSignatureFailureReturns400(t *testing.T) {
	svc := &stubWebhookService{
		mainErr: fmt.Errorf("%w: no valid signature", utils.ErrWebhookSignature),
	}
	r := newWebhookRouter(svc)

	rec := postWebhook(r, "/api/stripe/webhook/main-account", []byte(`{}`), "t=1,v1=bad")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Webhook Error:")
}

func TestWebhookProcessingFailureReturns500(t *testing.T) {
	svc := &stubWebhookService{mainErr: errors.New("db down")}
	r := newWebhookRouter(svc)

	rec := postWebhook(r, "/api/stripe/webhook/main-account", []byte(`{}`), "t=1,v1=sig")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWebhookSuccessAcks(t *testing.T) {
	svc := &stubWebhookService{}
	r := newWebhookRouter(svc)

	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded"}`)
	rec := postWebhook(r, "/api/stripe/webhook/main-account", payload, "t=1,v1=sig")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["received"])
	assert.Equal(t, payload, svc.lastPayload, "raw bytes reach the verifier untouched")
}

func TestWebhookEndpointsAreSeparate(t *testing.T) {
	svc := &stubWebhookService{}
	r := newWebhookRouter(svc)

	postWebhook(r, "/api/stripe/webhook/connected-account", []byte(`{}`), "t=1,v1=sig")

	assert.Zero(t, svc.mainCalls)
	assert.Equal(t, 1, svc.connectCalls)
}
