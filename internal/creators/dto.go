package creators

import (
	"github.com/fuelmywork/fuelmywork-backend/pkg/db/models"
)

// PublicProfileDTO is the unauthenticated view of a creator's support page.
// Credentials never leave the service; only capability flags are exposed.
type PublicProfileDTO struct {
	Username       string `json:"username"`
	Name           string `json:"name"`
	GatewayCapable bool   `json:"gateway_capable"`
	DirectCapable  bool   `json:"direct_capable"`
	UPIID          string `json:"upi_id,omitempty"`
	QRImageURL     string `json:"qr_image_url,omitempty"`
}

// PaymentSettingsDTO is the authenticated owner's view of their own
// payment configuration. The gateway secret is reported as a presence
// flag rather than echoed back.
type PaymentSettingsDTO struct {
	RazorpayKeyID    string `json:"razorpay_key_id"`
	HasGatewaySecret bool   `json:"has_gateway_secret"`
	UPIID            string `json:"upi_id"`
	QRImageURL       string `json:"qr_image_url"`
}

// UpdatePaymentSettingsInput captures the mutable payment fields. Nil
// pointers leave the stored value untouched; empty strings clear it.
type UpdatePaymentSettingsInput struct {
	RazorpayKeyID     *string
	RazorpayKeySecret *string
	UPIID             *string
	QRImageURL        *string
}

func toPublicProfile(creator *models.Creator, gatewayCapable bool) *PublicProfileDTO {
	dto := &PublicProfileDTO{
		Username:       creator.Username,
		Name:           creator.Name,
		GatewayCapable: gatewayCapable,
		DirectCapable:  creator.DirectCapable(),
	}
	if dto.DirectCapable {
		dto.UPIID = creator.UPIID
		dto.QRImageURL = creator.QRImageURL
	}
	return dto
}

func toPaymentSettings(creator *models.Creator) *PaymentSettingsDTO {
	return &PaymentSettingsDTO{
		RazorpayKeyID:    creator.RazorpayKeyID,
		HasGatewaySecret: creator.RazorpayKeySecret != "",
		UPIID:            creator.UPIID,
		QRImageURL:       creator.QRImageURL,
	}
}
