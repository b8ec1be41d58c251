package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fuelmywork/fuelmywork-backend/api/middleware"
	"github.com/fuelmywork/fuelmywork-backend/api/responses"
	"github.com/fuelmywork/fuelmywork-backend/api/validators"
	"github.com/fuelmywork/fuelmywork-backend/internal/creators"
	"github.com/fuelmywork/fuelmywork-backend/internal/support"
	"github.com/fuelmywork/fuelmywork-backend/pkg/enums"
	pkgerrors "github.com/fuelmywork/fuelmywork-backend/pkg/errors"
	"github.com/fuelmywork/fuelmywork-backend/pkg/logger"
)

func creatorIDFromContext(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid creator id")
	}
	return id, nil
}

// GetCreatorStats returns the authenticated creator's dashboard aggregates.
func GetCreatorStats(svc support.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "support service unavailable"))
			return
		}

		creatorID, err := creatorIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stats, err := svc.Stats(r.Context(), creatorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

// ListPendingPayments returns the creator's undecided direct payments.
func ListPendingPayments(svc support.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "support service unavailable"))
			return
		}

		creatorID, err := creatorIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pending, err := svc.ListPending(r.Context(), creatorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"pending": pending})
	}
}

type decideRequest struct {
	Decision string `json:"decision" validate:"required"`
}

// DecidePendingPayment resolves one pending direct payment to verified or
// rejected.
func DecidePendingPayment(svc support.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "support service unavailable"))
			return
		}

		creatorID, err := creatorIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entryID, err := uuid.Parse(chi.URLParam(r, "entryId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid entry id"))
			return
		}

		var req decideRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		decision, err := enums.ParseDecision(req.Decision)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "decision must be verify or reject"))
			return
		}

		entry, err := svc.Decide(r.Context(), creatorID, entryID, decision)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entry)
	}
}

// ListPayments returns a page of the creator's full payment log.
func ListPayments(svc support.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "support service unavailable"))
			return
		}

		creatorID, err := creatorIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := enums.SupportStatus(strings.TrimSpace(r.URL.Query().Get("status")))
		page, err := svc.PaymentLog(r.Context(), creatorID, status, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// GetPaymentSettings returns the creator's own payment configuration.
func GetPaymentSettings(svc creators.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "creator service unavailable"))
			return
		}

		creatorID, err := creatorIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		settings, err := svc.PaymentSettings(r.Context(), creatorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, settings)
	}
}

type updatePaymentSettingsRequest struct {
	RazorpayKeyID     *string `json:"razorpay_key_id" validate:"omitempty,max=100"`
	RazorpayKeySecret *string `json:"razorpay_key_secret" validate:"omitempty,max=200"`
	UPIID             *string `json:"upi_id" validate:"omitempty,max=100"`
	QRImageURL        *string `json:"qr_image_url" validate:"omitempty,max=500"`
}

// UpdatePaymentSettings applies partial updates to the creator's payment
// configuration.
func UpdatePaymentSettings(svc creators.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "creator service unavailable"))
			return
		}

		creatorID, err := creatorIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updatePaymentSettingsRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		settings, err := svc.UpdatePaymentSettings(r.Context(), creatorID, creators.UpdatePaymentSettingsInput{
			RazorpayKeyID:     req.RazorpayKeyID,
			RazorpayKeySecret: req.RazorpayKeySecret,
			UPIID:             req.UPIID,
			QRImageURL:        req.QRImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, settings)
	}
}
