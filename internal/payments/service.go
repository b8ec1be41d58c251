package payments

import (
	"context"
	"fmt"
	"strings"

	"github.com/fuelmywork/fuelmywork-backend/internal/support"
	"github.com/fuelmywork/fuelmywork-backend/pkg/db/models"
	pkgerrors "github.com/fuelmywork/fuelmywork-backend/pkg/errors"
	"github.com/fuelmywork/fuelmywork-backend/pkg/metrics"
	"github.com/fuelmywork/fuelmywork-backend/pkg/razorpay"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type creatorDirectory interface {
	GetByUsername(ctx context.Context, username string) (*models.Creator, error)
	GatewayCredentials(creator *models.Creator) (razorpay.Credentials, error)
}

type supportLedger interface {
	RecordGatewayPayment(ctx context.Context, input support.RecordGatewayInput) (*support.EntryDTO, bool, error)
}

type orderGateway interface {
	CreateOrder(ctx context.Context, creds razorpay.Credentials, order razorpay.OrderRequest) (*razorpay.Order, error)
}

// CreateOrderInput captures a supporter's checkout intent.
type CreateOrderInput struct {
	CreatorUsername string
	SupporterName   string
	Amount          decimal.Decimal
	Message         string
}

// OrderDTO is what the checkout page needs to open the gateway widget. The
// key id is public by design; the secret never leaves the server.
type OrderDTO struct {
	OrderID         string `json:"order_id"`
	AmountPaise     int64  `json:"amount"`
	Currency        string `json:"currency"`
	RazorpayKeyID   string `json:"razorpay_key_id"`
	CreatorUsername string `json:"creator_username"`
}

// VerifyCallbackInput carries the checkout completion callback.
type VerifyCallbackInput struct {
	CreatorUsername string
	OrderID         string
	PaymentID       string
	Signature       string
	SupporterName   string
	Amount          decimal.Decimal
	Message         string
}

// Service drives the gateway payment flow.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderDTO, error)
	VerifyCallback(ctx context.Context, input VerifyCallbackInput) (*support.EntryDTO, bool, error)
}

type service struct {
	creators creatorDirectory
	ledger   supportLedger
	gateway  orderGateway
	metrics  *metrics.PaymentMetrics
}

// ServiceParams bundles the payment service dependencies.
type ServiceParams struct {
	Creators creatorDirectory
	Ledger   supportLedger
	Gateway  orderGateway
	Metrics  *metrics.PaymentMetrics
}

// NewService builds a payment service.
func NewService(params ServiceParams) (Service, error) {
	if params.Creators == nil {
		return nil, fmt.Errorf("creator directory required")
	}
	if params.Ledger == nil {
		return nil, fmt.Errorf("support ledger required")
	}
	if params.Gateway == nil {
		return nil, fmt.Errorf("order gateway required")
	}
	return &service{
		creators: params.Creators,
		ledger:   params.Ledger,
		gateway:  params.Gateway,
		metrics:  params.Metrics,
	}, nil
}

// CreateOrder opens a gateway order against the creator's own Razorpay
// account. Amounts are taken in rupees and sent to the gateway in paise.
func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderDTO, error) {
	paise, err := support.AmountToPaise(input.Amount)
	if err != nil {
		return nil, err
	}

	creator, err := s.creators.GetByUsername(ctx, input.CreatorUsername)
	if err != nil {
		return nil, err
	}
	creds, err := s.creators.GatewayCredentials(creator)
	if err != nil {
		return nil, err
	}

	receipt := "support_" + uuid.NewString()[:13]
	order, err := s.gateway.CreateOrder(ctx, creds, razorpay.OrderRequest{
		AmountPaise: paise,
		Currency:    razorpay.CurrencyINR,
		Receipt:     receipt,
		Notes: map[string]string{
			"creator":        creator.Username,
			"supporter_name": strings.TrimSpace(input.SupporterName),
		},
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeGateway, err, "create gateway order")
	}
	s.metrics.IncOrderCreated()

	return &OrderDTO{
		OrderID:         order.ID,
		AmountPaise:     order.AmountPaise,
		Currency:        order.Currency,
		RazorpayKeyID:   creds.KeyID,
		CreatorUsername: creator.Username,
	}, nil
}

// VerifyCallback authenticates a checkout completion and writes the verified
// ledger entry. The boolean result reports whether a new entry was created;
// replays of an already-recorded payment return the original entry.
func (s *service) VerifyCallback(ctx context.Context, input VerifyCallbackInput) (*support.EntryDTO, bool, error) {
	if strings.TrimSpace(input.OrderID) == "" || strings.TrimSpace(input.PaymentID) == "" {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "order id and payment id are required")
	}
	if strings.TrimSpace(input.Signature) == "" {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "signature is required")
	}
	paise, err := support.AmountToPaise(input.Amount)
	if err != nil {
		return nil, false, err
	}

	creator, err := s.creators.GetByUsername(ctx, input.CreatorUsername)
	if err != nil {
		return nil, false, err
	}
	creds, err := s.creators.GatewayCredentials(creator)
	if err != nil {
		return nil, false, err
	}

	if !signatureMatches(creds.KeySecret, input.OrderID, input.PaymentID, input.Signature) {
		s.metrics.IncSignatureMismatch()
		return nil, false, pkgerrors.New(pkgerrors.CodeSignatureMismatch, "payment signature verification failed")
	}

	entry, created, err := s.ledger.RecordGatewayPayment(ctx, support.RecordGatewayInput{
		CreatorID:      creator.ID,
		SupporterName:  input.SupporterName,
		AmountPaise:    paise,
		Message:        input.Message,
		TransactionRef: input.PaymentID,
	})
	if err != nil {
		return nil, false, err
	}
	if created {
		s.metrics.IncCallbackVerified()
	}
	return entry, created, nil
}
