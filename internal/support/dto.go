package support

import (
	"time"

	"github.com/fuelmywork/fuelmywork-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryDTO is the API view of a ledger entry. Amounts are reported in
// rupees as a decimal string alongside the stored paise value.
type EntryDTO struct {
	ID             uuid.UUID  `json:"id"`
	SupporterName  string     `json:"supporter_name"`
	Amount         string     `json:"amount"`
	AmountPaise    int64      `json:"amount_paise"`
	Currency       string     `json:"currency"`
	Message        string     `json:"message,omitempty"`
	Method         string     `json:"method"`
	TransactionRef string     `json:"transaction_ref,omitempty"`
	Status         string     `json:"status"`
	DecidedAt      *time.Time `json:"decided_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// SupporterDTO is the public feed view of a verified entry. It carries no
// transaction reference and no status since the feed only shows verified
// support.
type SupporterDTO struct {
	SupporterName string    `json:"supporter_name"`
	Amount        string    `json:"amount"`
	Message       string    `json:"message,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// StatsDTO is the creator dashboard snapshot.
type StatsDTO struct {
	TotalSupporters     int64  `json:"total_supporters"`
	TotalEarned         string `json:"total_earned"`
	TotalEarnedPaise    int64  `json:"total_earned_paise"`
	ThisMonth           string `json:"this_month"`
	ThisMonthPaise      int64  `json:"this_month_paise"`
	PendingVerification int64  `json:"pending_verification"`
}

// EntryPageDTO is one page of the creator's payment log.
type EntryPageDTO struct {
	Entries    []EntryDTO `json:"entries"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// SupporterPageDTO is one page of the public supporters feed.
type SupporterPageDTO struct {
	Supporters []SupporterDTO `json:"supporters"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

func rupees(paise int64) string {
	return decimal.NewFromInt(paise).Div(decimal.NewFromInt(100)).StringFixed(2)
}

func toEntryDTO(entry models.SupportEntry) EntryDTO {
	return EntryDTO{
		ID:             entry.ID,
		SupporterName:  entry.SupporterName,
		Amount:         rupees(entry.AmountPaise),
		AmountPaise:    entry.AmountPaise,
		Currency:       entry.Currency,
		Message:        entry.Message,
		Method:         entry.Method.String(),
		TransactionRef: entry.TransactionRef,
		Status:         entry.Status.String(),
		DecidedAt:      entry.DecidedAt,
		CreatedAt:      entry.CreatedAt,
	}
}

func toSupporterDTO(entry models.SupportEntry) SupporterDTO {
	return SupporterDTO{
		SupporterName: entry.SupporterName,
		Amount:        rupees(entry.AmountPaise),
		Message:       entry.Message,
		CreatedAt:     entry.CreatedAt,
	}
}
