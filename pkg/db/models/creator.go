package models

import (
	"time"

	"github.com/google/uuid"
)

// Creator is the canonical profile of a principal receiving support.
//
// RazorpayKeySecret is stored encrypted (nonceHex:cipherHex) and is only ever
// decrypted transiently while issuing an order or verifying a callback.
type Creator struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Username string    `gorm:"column:username;type:text;not null;uniqueIndex"`
	Email    string    `gorm:"column:email;type:text;not null;uniqueIndex"`
	Name     string    `gorm:"column:name;type:text;not null"`

	RazorpayKeyID     string `gorm:"column:razorpay_key_id;type:text;not null;default:''"`
	RazorpayKeySecret string `gorm:"column:razorpay_key_secret;type:text;not null;default:''"`

	UPIID      string `gorm:"column:upi_id;type:text;not null;default:''"`
	QRImageURL string `gorm:"column:qr_image_url;type:text;not null;default:''"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// DirectCapable reports whether the creator can receive manual payments.
func (c *Creator) DirectCapable() bool {
	return c != nil && (c.UPIID != "" || c.QRImageURL != "")
}
