package support

import (
	"context"
	"fmt"
	"time"

	"github.com/fuelmywork/fuelmywork-backend/pkg/db"
	"github.com/fuelmywork/fuelmywork-backend/pkg/db/models"
	"github.com/fuelmywork/fuelmywork-backend/pkg/enums"
	"github.com/fuelmywork/fuelmywork-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gatewayTxnIndex backs callback idempotency: one ledger row per
// (creator, gateway payment id), enforced by a partial unique index.
const gatewayTxnIndex = "idx_support_entries_gateway_txn"

// Repository handles support ledger persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to support ledger operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new ledger entry.
func (r *Repository) Create(ctx context.Context, entry *models.SupportEntry) error {
	if entry == nil {
		return fmt.Errorf("entry is required")
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

// CreateGateway inserts a verified gateway entry. A replayed callback hits
// the unique gateway transaction index; the existing row is returned with
// created=false instead of an error.
func (r *Repository) CreateGateway(ctx context.Context, entry *models.SupportEntry) (bool, *models.SupportEntry, error) {
	if entry == nil {
		return false, nil, fmt.Errorf("entry is required")
	}
	err := r.db.WithContext(ctx).Create(entry).Error
	if err == nil {
		return true, entry, nil
	}
	if !db.IsUniqueViolation(err, gatewayTxnIndex) {
		return false, nil, err
	}
	existing, findErr := r.FindGatewayEntry(ctx, entry.CreatorID, entry.TransactionRef)
	if findErr != nil {
		return false, nil, findErr
	}
	return false, existing, nil
}

// FindByID loads an entry by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.SupportEntry, error) {
	var entry models.SupportEntry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindGatewayEntry loads the gateway entry recorded for a payment id.
func (r *Repository) FindGatewayEntry(ctx context.Context, creatorID uuid.UUID, transactionRef string) (*models.SupportEntry, error) {
	var entry models.SupportEntry
	err := r.db.WithContext(ctx).
		Where("creator_id = ? AND transaction_ref = ? AND method = ?", creatorID, transactionRef, enums.PaymentMethodGateway).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListPending returns the creator's undecided direct entries, newest first.
func (r *Repository) ListPending(ctx context.Context, creatorID uuid.UUID) ([]models.SupportEntry, error) {
	var entries []models.SupportEntry
	err := r.db.WithContext(ctx).
		Where("creator_id = ? AND method = ? AND status = ?", creatorID, enums.PaymentMethodDirect, enums.SupportStatusUnverified).
		Order("created_at DESC, id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

type listEntriesParams struct {
	CreatorID uuid.UUID
	Status    enums.SupportStatus
	Limit     int
	Cursor    *pagination.Cursor
}

// List returns a page of the creator's entries newest first, optionally
// filtered by status. The second return value is the cursor for the next
// page, nil on the last page.
func (r *Repository) List(ctx context.Context, params listEntriesParams) ([]models.SupportEntry, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)
	query := r.db.WithContext(ctx).Model(&models.SupportEntry{}).Where("creator_id = ?", params.CreatorID)
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var entries []models.SupportEntry
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, nil, err
	}

	if len(entries) > normalized {
		next := entries[normalized]
		entries = entries[:normalized]
		return entries, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return entries, nil, nil
}

// Transition moves a pending direct entry to its terminal status. The
// pending-state predicate lives in the WHERE clause so concurrent decisions
// resolve to exactly one winner; the caller inspects the affected row count.
func (r *Repository) Transition(ctx context.Context, entryID, creatorID uuid.UUID, to enums.SupportStatus, decidedAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.SupportEntry{}).
		Where("id = ? AND creator_id = ? AND method = ? AND status = ?",
			entryID, creatorID, enums.PaymentMethodDirect, enums.SupportStatusUnverified).
		Updates(map[string]any{
			"status":     to,
			"decided_at": decidedAt,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// StatsRow is the aggregate snapshot for a creator's dashboard.
type StatsRow struct {
	TotalSupporters     int64 `gorm:"column:total_supporters"`
	TotalEarnedPaise    int64 `gorm:"column:total_earned_paise"`
	ThisMonthPaise      int64 `gorm:"column:this_month_paise"`
	PendingVerification int64 `gorm:"column:pending_verification"`
}

// Stats computes the dashboard aggregates in one pass over the ledger.
// Only verified entries count toward supporters and earnings; pending
// counts undecided direct submissions.
func (r *Repository) Stats(ctx context.Context, creatorID uuid.UUID, monthStart time.Time) (*StatsRow, error) {
	var row StatsRow
	err := r.db.WithContext(ctx).Raw(`
SELECT
  COALESCE(SUM(CASE WHEN status = 'verified' THEN 1 ELSE 0 END), 0) AS total_supporters,
  COALESCE(SUM(CASE WHEN status = 'verified' THEN amount_paise ELSE 0 END), 0) AS total_earned_paise,
  COALESCE(SUM(CASE WHEN status = 'verified' AND created_at >= ? THEN amount_paise ELSE 0 END), 0) AS this_month_paise,
  COALESCE(SUM(CASE WHEN status = 'unverified' AND method = 'direct' THEN 1 ELSE 0 END), 0) AS pending_verification
FROM support_entries
WHERE creator_id = ?`, monthStart, creatorID).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}
