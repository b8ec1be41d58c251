package creators

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fuelmywork/fuelmywork-backend/pkg/db/models"
	pkgerrors "github.com/fuelmywork/fuelmywork-backend/pkg/errors"
	"github.com/fuelmywork/fuelmywork-backend/pkg/razorpay"
	"github.com/fuelmywork/fuelmywork-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type creatorRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Creator, error)
	FindByUsername(ctx context.Context, username string) (*models.Creator, error)
	Update(ctx context.Context, creator *models.Creator) error
}

// Service exposes creator lookup and payment settings operations.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Creator, error)
	GetByUsername(ctx context.Context, username string) (*models.Creator, error)
	PublicProfile(ctx context.Context, username string) (*PublicProfileDTO, error)
	PaymentSettings(ctx context.Context, creatorID uuid.UUID) (*PaymentSettingsDTO, error)
	UpdatePaymentSettings(ctx context.Context, creatorID uuid.UUID, input UpdatePaymentSettingsInput) (*PaymentSettingsDTO, error)
	GatewayCredentials(creator *models.Creator) (razorpay.Credentials, error)
}

type service struct {
	repo  creatorRepository
	codec *security.Codec
}

// NewService builds a creator service with the provided dependencies.
func NewService(repo creatorRepository, codec *security.Codec) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("creator repository required")
	}
	if codec == nil {
		return nil, fmt.Errorf("credential codec required")
	}
	return &service{repo: repo, codec: codec}, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Creator, error) {
	creator, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "creator not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load creator")
	}
	return creator, nil
}

func (s *service) GetByUsername(ctx context.Context, username string) (*models.Creator, error) {
	if strings.TrimSpace(username) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	creator, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "creator not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load creator")
	}
	return creator, nil
}

// PublicProfile returns the unauthenticated support page view. Gateway
// capability requires both a key id and a secret that decrypts cleanly;
// a creator with corrupted credentials is reported as not configured
// rather than allowed to fail mid-checkout.
func (s *service) PublicProfile(ctx context.Context, username string) (*PublicProfileDTO, error) {
	creator, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	gatewayCapable := false
	if creator.RazorpayKeyID != "" && creator.RazorpayKeySecret != "" {
		if _, decErr := s.codec.Decrypt(creator.RazorpayKeySecret); decErr == nil {
			gatewayCapable = true
		}
	}
	return toPublicProfile(creator, gatewayCapable), nil
}

func (s *service) PaymentSettings(ctx context.Context, creatorID uuid.UUID) (*PaymentSettingsDTO, error) {
	creator, err := s.GetByID(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	return toPaymentSettings(creator), nil
}

// UpdatePaymentSettings applies the provided fields. Gateway secrets are
// encrypted before they touch the row; stored values are never returned.
func (s *service) UpdatePaymentSettings(ctx context.Context, creatorID uuid.UUID, input UpdatePaymentSettingsInput) (*PaymentSettingsDTO, error) {
	creator, err := s.GetByID(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	if input.RazorpayKeyID != nil {
		creator.RazorpayKeyID = strings.TrimSpace(*input.RazorpayKeyID)
	}
	if input.RazorpayKeySecret != nil {
		secret := strings.TrimSpace(*input.RazorpayKeySecret)
		if secret == "" {
			creator.RazorpayKeySecret = ""
		} else {
			encrypted, encErr := s.codec.Encrypt(secret)
			if encErr != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, encErr, "encrypt gateway secret")
			}
			creator.RazorpayKeySecret = encrypted
		}
	}
	if input.UPIID != nil {
		creator.UPIID = strings.TrimSpace(*input.UPIID)
	}
	if input.QRImageURL != nil {
		creator.QRImageURL = strings.TrimSpace(*input.QRImageURL)
	}

	if err := s.repo.Update(ctx, creator); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update payment settings")
	}
	return toPaymentSettings(creator), nil
}

// GatewayCredentials decrypts the creator's Razorpay credentials for a
// gateway call. Missing or undecryptable credentials surface as
// CodeNotConfigured so callers can tell misconfiguration from gateway
// failures.
func (s *service) GatewayCredentials(creator *models.Creator) (razorpay.Credentials, error) {
	if creator == nil {
		return razorpay.Credentials{}, pkgerrors.New(pkgerrors.CodeInternal, "creator is required")
	}
	if creator.RazorpayKeyID == "" || creator.RazorpayKeySecret == "" {
		return razorpay.Credentials{}, pkgerrors.New(pkgerrors.CodeNotConfigured, "creator has not configured gateway payments")
	}
	secret, err := s.codec.Decrypt(creator.RazorpayKeySecret)
	if err != nil {
		return razorpay.Credentials{}, pkgerrors.Wrap(pkgerrors.CodeNotConfigured, err, "gateway credentials unreadable")
	}
	return razorpay.Credentials{KeyID: creator.RazorpayKeyID, KeySecret: secret}, nil
}
