package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fuelmywork/fuelmywork-backend/internal/creators"
	"github.com/fuelmywork/fuelmywork-backend/internal/payments"
	"github.com/fuelmywork/fuelmywork-backend/internal/support"
	pkgauth "github.com/fuelmywork/fuelmywork-backend/pkg/auth"
	"github.com/fuelmywork/fuelmywork-backend/pkg/config"
	"github.com/fuelmywork/fuelmywork-backend/pkg/db/models"
	"github.com/fuelmywork/fuelmywork-backend/pkg/enums"
	pkgerrors "github.com/fuelmywork/fuelmywork-backend/pkg/errors"
	"github.com/fuelmywork/fuelmywork-backend/pkg/pagination"
	"github.com/fuelmywork/fuelmywork-backend/pkg/razorpay"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubCreatorsService struct{}

func (stubCreatorsService) GetByID(context.Context, uuid.UUID) (*models.Creator, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "creator not found")
}

func (stubCreatorsService) GetByUsername(context.Context, string) (*models.Creator, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "creator not found")
}

func (stubCreatorsService) PublicProfile(context.Context, string) (*creators.PublicProfileDTO, error) {
	return &creators.PublicProfileDTO{Username: "asha", Name: "Asha Rao"}, nil
}

func (stubCreatorsService) PaymentSettings(context.Context, uuid.UUID) (*creators.PaymentSettingsDTO, error) {
	return &creators.PaymentSettingsDTO{}, nil
}

func (stubCreatorsService) UpdatePaymentSettings(context.Context, uuid.UUID, creators.UpdatePaymentSettingsInput) (*creators.PaymentSettingsDTO, error) {
	return &creators.PaymentSettingsDTO{}, nil
}

func (stubCreatorsService) GatewayCredentials(*models.Creator) (razorpay.Credentials, error) {
	return razorpay.Credentials{}, nil
}

type stubSupportService struct{}

func (stubSupportService) RecordGatewayPayment(context.Context, support.RecordGatewayInput) (*support.EntryDTO, bool, error) {
	return &support.EntryDTO{}, true, nil
}

func (stubSupportService) SubmitDirect(context.Context, support.SubmitDirectInput) (*support.EntryDTO, error) {
	return &support.EntryDTO{}, nil
}

func (stubSupportService) ListPending(context.Context, uuid.UUID) ([]support.EntryDTO, error) {
	return nil, nil
}

func (stubSupportService) Decide(context.Context, uuid.UUID, uuid.UUID, enums.Decision) (*support.EntryDTO, error) {
	return &support.EntryDTO{}, nil
}

func (stubSupportService) Stats(context.Context, uuid.UUID) (*support.StatsDTO, error) {
	return &support.StatsDTO{TotalSupporters: 7}, nil
}

func (stubSupportService) PaymentLog(context.Context, uuid.UUID, enums.SupportStatus, pagination.Params) (*support.EntryPageDTO, error) {
	return &support.EntryPageDTO{}, nil
}

func (stubSupportService) RecentSupporters(context.Context, uuid.UUID, pagination.Params) (*support.SupporterPageDTO, error) {
	return &support.SupporterPageDTO{}, nil
}

type stubPaymentsService struct{}

func (stubPaymentsService) CreateOrder(context.Context, payments.CreateOrderInput) (*payments.OrderDTO, error) {
	return &payments.OrderDTO{OrderID: "order_1"}, nil
}

func (stubPaymentsService) VerifyCallback(context.Context, payments.VerifyCallbackInput) (*support.EntryDTO, bool, error) {
	return &support.EntryDTO{}, true, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080"},
		JWT: config.JWTConfig{
			Secret:            "router-test-secret",
			Issuer:            "fuelmywork-test",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter() http.Handler {
	return NewRouter(RouterParams{
		Config:   testConfig(),
		Logger:   nil,
		DB:       stubPinger{},
		Creators: stubCreatorsService{},
		Support:  stubSupportService{},
		Payments: stubPaymentsService{},
	})
}

func TestRouterHealthLive(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test", rec.Header().Get("X-FuelMyWork-Env"))
}

func TestRouterHealthReady(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterPublicProfile(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/public/creators/asha", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data creators.PublicProfileDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "asha", envelope.Data.Username)
}

func TestRouterCreatorRoutesRequireAuth(t *testing.T) {
	paths := []string{
		"/api/v1/creator/stats",
		"/api/v1/creator/pending",
		"/api/v1/creator/payments",
		"/api/v1/creator/payment-settings",
	}
	router := newTestRouter()
	for _, path := range paths {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestRouterCreatorStatsWithToken(t *testing.T) {
	cfg := testConfig()
	router := NewRouter(RouterParams{
		Config:   cfg,
		DB:       stubPinger{},
		Creators: stubCreatorsService{},
		Support:  stubSupportService{},
		Payments: stubPaymentsService{},
	})

	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "asha@example.com",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/creator/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data support.StatsDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, int64(7), envelope.Data.TotalSupporters)
}

func TestRouterUnknownRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
