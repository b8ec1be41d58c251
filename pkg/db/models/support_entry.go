package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/fuelmywork/fuelmywork-backend/pkg/enums"
)

// SupportEntry is one contribution in a creator's ledger.
//
// Gateway entries are written once, already verified, with TransactionRef set
// to the gateway payment id; the partial unique index on
// (creator_id, transaction_ref) makes callback replays idempotent. Direct
// entries start unverified and are decided exactly once by the owning
// creator.
type SupportEntry struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CreatorID uuid.UUID `gorm:"column:creator_id;type:uuid;not null;index"`

	SupporterName  string              `gorm:"column:supporter_name;type:text;not null"`
	AmountPaise    int64               `gorm:"column:amount_paise;not null"`
	Currency       string              `gorm:"column:currency;type:text;not null;default:'INR'"`
	Message        string              `gorm:"column:message;type:text;not null;default:''"`
	Method         enums.PaymentMethod `gorm:"column:method;type:text;not null"`
	TransactionRef string              `gorm:"column:transaction_ref;type:text;not null;default:''"`
	Status         enums.SupportStatus `gorm:"column:status;type:text;not null;default:'unverified'"`

	DecidedAt *time.Time `gorm:"column:decided_at"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
