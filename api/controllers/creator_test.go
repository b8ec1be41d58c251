package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/fuelmywork/fuelmywork-backend/api/middleware"
	"github.com/fuelmywork/fuelmywork-backend/internal/support"
	"github.com/fuelmywork/fuelmywork-backend/pkg/enums"
	pkgerrors "github.com/fuelmywork/fuelmywork-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedRequest(method, target, body string, creatorID uuid.UUID) *http.Request {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	ctx := middleware.WithUserID(req.Context(), creatorID.String())
	return req.WithContext(ctx)
}

func TestGetCreatorStats(t *testing.T) {
	svc := &fakeSupportService{stats: &support.StatsDTO{TotalSupporters: 12, TotalEarned: "4500.00"}}
	rec := httptest.NewRecorder()
	GetCreatorStats(svc, nil)(rec, authedRequest(http.MethodGet, "/api/v1/creator/stats", "", uuid.New()))

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data support.StatsDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, int64(12), envelope.Data.TotalSupporters)
	assert.Equal(t, "4500.00", envelope.Data.TotalEarned)
}

func TestGetCreatorStatsMissingIdentity(t *testing.T) {
	svc := &fakeSupportService{stats: &support.StatsDTO{}}
	rec := httptest.NewRecorder()
	GetCreatorStats(svc, nil)(rec, httptest.NewRequest(http.MethodGet, "/api/v1/creator/stats", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListPendingPayments(t *testing.T) {
	svc := &fakeSupportService{pending: []support.EntryDTO{{ID: uuid.New(), Status: "unverified"}}}
	rec := httptest.NewRecorder()
	ListPendingPayments(svc, nil)(rec, authedRequest(http.MethodGet, "/api/v1/creator/pending", "", uuid.New()))

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data struct {
			Pending []support.EntryDTO `json:"pending"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data.Pending, 1)
}

func decideRequestWith(t *testing.T, entryID uuid.UUID, creatorID uuid.UUID, body string) *http.Request {
	t.Helper()
	req := authedRequest(http.MethodPost, "/api/v1/creator/pending/"+entryID.String()+"/decide", body, creatorID)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("entryId", entryID.String())
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestDecidePendingPaymentVerify(t *testing.T) {
	creatorID := uuid.New()
	entryID := uuid.New()
	svc := &fakeSupportService{
		decide: func(_ context.Context, gotCreator, gotEntry uuid.UUID, decision enums.Decision) (*support.EntryDTO, error) {
			assert.Equal(t, creatorID, gotCreator)
			assert.Equal(t, entryID, gotEntry)
			assert.Equal(t, enums.DecisionVerify, decision)
			return &support.EntryDTO{ID: gotEntry, Status: "verified"}, nil
		},
	}

	rec := httptest.NewRecorder()
	DecidePendingPayment(svc, nil)(rec, decideRequestWith(t, entryID, creatorID, `{"decision":"verify"}`))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDecidePendingPaymentInvalidDecision(t *testing.T) {
	svc := &fakeSupportService{
		decide: func(context.Context, uuid.UUID, uuid.UUID, enums.Decision) (*support.EntryDTO, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	rec := httptest.NewRecorder()
	DecidePendingPayment(svc, nil)(rec, decideRequestWith(t, uuid.New(), uuid.New(), `{"decision":"maybe"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDecidePendingPaymentAlreadyDecided(t *testing.T) {
	svc := &fakeSupportService{
		decide: func(context.Context, uuid.UUID, uuid.UUID, enums.Decision) (*support.EntryDTO, error) {
			return nil, pkgerrors.New(pkgerrors.CodeAlreadyDecided, "payment already decided")
		},
	}

	rec := httptest.NewRecorder()
	DecidePendingPayment(svc, nil)(rec, decideRequestWith(t, uuid.New(), uuid.New(), `{"decision":"reject"}`))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, string(pkgerrors.CodeAlreadyDecided), decodeErrorCode(t, rec.Body.Bytes()))
}

func TestDecidePendingPaymentBadEntryID(t *testing.T) {
	svc := &fakeSupportService{
		decide: func(context.Context, uuid.UUID, uuid.UUID, enums.Decision) (*support.EntryDTO, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	req := authedRequest(http.MethodPost, "/api/v1/creator/pending/not-a-uuid/decide", `{"decision":"verify"}`, uuid.New())
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("entryId", "not-a-uuid")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	DecidePendingPayment(svc, nil)(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListPaymentsInvalidLimit(t *testing.T) {
	svc := &fakeSupportService{}
	rec := httptest.NewRecorder()
	ListPayments(svc, nil)(rec, authedRequest(http.MethodGet, "/api/v1/creator/payments?limit=abc", "", uuid.New()))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPaymentSettings(t *testing.T) {
	svc := &fakeCreatorsService{}
	rec := httptest.NewRecorder()
	GetPaymentSettings(svc, nil)(rec, authedRequest(http.MethodGet, "/api/v1/creator/payment-settings", "", uuid.New()))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "rzp_key")
}

func TestUpdatePaymentSettings(t *testing.T) {
	svc := &fakeCreatorsService{}
	body := `{"razorpay_key_id":"rzp_new","razorpay_key_secret":"shhh"}`
	rec := httptest.NewRecorder()
	UpdatePaymentSettings(svc, nil)(rec, authedRequest(http.MethodPatch, "/api/v1/creator/payment-settings", body, uuid.New()))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"has_gateway_secret":true`)
}
