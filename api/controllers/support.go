package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/fuelmywork/fuelmywork-backend/api/responses"
	"github.com/fuelmywork/fuelmywork-backend/api/validators"
	"github.com/fuelmywork/fuelmywork-backend/internal/creators"
	"github.com/fuelmywork/fuelmywork-backend/internal/payments"
	"github.com/fuelmywork/fuelmywork-backend/internal/support"
	"github.com/fuelmywork/fuelmywork-backend/pkg/config"
	pkgerrors "github.com/fuelmywork/fuelmywork-backend/pkg/errors"
	"github.com/fuelmywork/fuelmywork-backend/pkg/logger"
	"github.com/fuelmywork/fuelmywork-backend/pkg/redis"
)

type createOrderRequest struct {
	CreatorUsername string          `json:"creator_username" validate:"required"`
	Amount          decimal.Decimal `json:"amount"`
	SupporterName   string          `json:"supporter_name" validate:"max=100"`
	Message         string          `json:"message" validate:"max=200"`
}

// CreateSupportOrder opens a gateway order for a supporter checkout.
func CreateSupportOrder(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		var req createOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithCreator(ctx, req.CreatorUsername)
		}

		order, err := svc.CreateOrder(ctx, payments.CreateOrderInput{
			CreatorUsername: req.CreatorUsername,
			SupporterName:   req.SupporterName,
			Amount:          req.Amount,
			Message:         req.Message,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

type verifyPaymentRequest struct {
	CreatorUsername   string          `json:"creator_username" validate:"required"`
	RazorpayOrderID   string          `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string          `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string          `json:"razorpay_signature" validate:"required"`
	Amount            decimal.Decimal `json:"amount"`
	SupporterName     string          `json:"supporter_name" validate:"max=100"`
	Message           string          `json:"message" validate:"max=200"`
}

// VerifySupportPayment authenticates a checkout completion callback and
// records the support entry. The redis guard only short-circuits logging
// for replays; the ledger's unique index is the source of truth.
func VerifySupportPayment(svc payments.Service, guard *redis.Client, cfg config.GatewayConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		var req verifyPaymentRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithCreator(ctx, req.CreatorUsername)
			ctx = logg.WithOrderID(ctx, req.RazorpayOrderID)
		}

		if guard != nil {
			key := guard.IdempotencyKey("callback", req.CreatorUsername+":"+req.RazorpayPaymentID)
			fresh, err := guard.SetNX(ctx, key, "1", cfg.CallbackGuardTTL)
			if err != nil && logg != nil {
				logg.Warn(ctx, "callback.guard_unavailable")
			}
			if err == nil && !fresh && logg != nil {
				logg.Info(ctx, "callback.replay")
			}
		}

		entry, created, err := svc.VerifyCallback(ctx, payments.VerifyCallbackInput{
			CreatorUsername: req.CreatorUsername,
			OrderID:         req.RazorpayOrderID,
			PaymentID:       req.RazorpayPaymentID,
			Signature:       req.RazorpaySignature,
			SupporterName:   req.SupporterName,
			Amount:          req.Amount,
			Message:         req.Message,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		responses.WriteSuccessStatus(w, status, entry)
	}
}

type directSupportRequest struct {
	CreatorUsername string          `json:"creator_username" validate:"required"`
	Amount          decimal.Decimal `json:"amount"`
	SupporterName   string          `json:"supporter_name" validate:"max=100"`
	Message         string          `json:"message" validate:"max=200"`
	TransactionRef  string          `json:"transaction_ref" validate:"max=100"`
}

// SubmitDirectSupport records a supporter's claim of an off-gateway payment.
func SubmitDirectSupport(creatorSvc creators.Service, supportSvc support.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if creatorSvc == nil || supportSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "support service unavailable"))
			return
		}

		var req directSupportRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithCreator(ctx, req.CreatorUsername)
		}

		creator, err := creatorSvc.GetByUsername(ctx, req.CreatorUsername)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if !creator.DirectCapable() {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotConfigured, "creator does not accept direct payments"))
			return
		}

		entry, err := supportSvc.SubmitDirect(ctx, support.SubmitDirectInput{
			CreatorID:      creator.ID,
			SupporterName:  req.SupporterName,
			Amount:         req.Amount,
			Message:        req.Message,
			TransactionRef: req.TransactionRef,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}
