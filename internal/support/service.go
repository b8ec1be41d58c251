package support

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fuelmywork/fuelmywork-backend/pkg/db/models"
	"github.com/fuelmywork/fuelmywork-backend/pkg/enums"
	pkgerrors "github.com/fuelmywork/fuelmywork-backend/pkg/errors"
	"github.com/fuelmywork/fuelmywork-backend/pkg/metrics"
	"github.com/fuelmywork/fuelmywork-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	// AnonymousSupporter is recorded when a supporter leaves the name blank.
	AnonymousSupporter = "Anonymous"

	maxSupporterName = 100
	maxMessageLength = 200
)

var (
	minAmount     = decimal.NewFromInt(1)
	paisePerRupee = decimal.NewFromInt(100)
)

// AmountToPaise converts a rupee amount into paise. Amounts below one rupee
// or finer than one paisa are rejected.
func AmountToPaise(amount decimal.Decimal) (int64, error) {
	if amount.LessThan(minAmount) {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "amount must be at least ₹1")
	}
	paise := amount.Mul(paisePerRupee)
	if !paise.IsInteger() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "amount cannot be finer than one paisa")
	}
	return paise.IntPart(), nil
}

type supportRepository interface {
	CreateGateway(ctx context.Context, entry *models.SupportEntry) (bool, *models.SupportEntry, error)
	Create(ctx context.Context, entry *models.SupportEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.SupportEntry, error)
	ListPending(ctx context.Context, creatorID uuid.UUID) ([]models.SupportEntry, error)
	List(ctx context.Context, params listEntriesParams) ([]models.SupportEntry, *pagination.Cursor, error)
	Transition(ctx context.Context, entryID, creatorID uuid.UUID, to enums.SupportStatus, decidedAt time.Time) (int64, error)
	Stats(ctx context.Context, creatorID uuid.UUID, monthStart time.Time) (*StatsRow, error)
}

// RecordGatewayInput captures a signature-verified gateway payment.
type RecordGatewayInput struct {
	CreatorID      uuid.UUID
	SupporterName  string
	AmountPaise    int64
	Message        string
	TransactionRef string
}

// SubmitDirectInput captures a supporter's claim of an off-gateway payment.
type SubmitDirectInput struct {
	CreatorID      uuid.UUID
	SupporterName  string
	Amount         decimal.Decimal
	Message        string
	TransactionRef string
}

// Service exposes the support ledger operations.
type Service interface {
	RecordGatewayPayment(ctx context.Context, input RecordGatewayInput) (*EntryDTO, bool, error)
	SubmitDirect(ctx context.Context, input SubmitDirectInput) (*EntryDTO, error)
	ListPending(ctx context.Context, creatorID uuid.UUID) ([]EntryDTO, error)
	Decide(ctx context.Context, creatorID, entryID uuid.UUID, decision enums.Decision) (*EntryDTO, error)
	Stats(ctx context.Context, creatorID uuid.UUID) (*StatsDTO, error)
	PaymentLog(ctx context.Context, creatorID uuid.UUID, status enums.SupportStatus, params pagination.Params) (*EntryPageDTO, error)
	RecentSupporters(ctx context.Context, creatorID uuid.UUID, params pagination.Params) (*SupporterPageDTO, error)
}

type service struct {
	repo    supportRepository
	metrics *metrics.PaymentMetrics
	now     func() time.Time
}

// NewService builds a support ledger service.
func NewService(repo supportRepository, paymentMetrics *metrics.PaymentMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("support repository required")
	}
	return &service{
		repo:    repo,
		metrics: paymentMetrics,
		now:     time.Now,
	}, nil
}

func normalizeSupporter(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return AnonymousSupporter, nil
	}
	if utf8.RuneCountInString(trimmed) > maxSupporterName {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "supporter name too long")
	}
	return trimmed, nil
}

func normalizeMessage(message string) (string, error) {
	trimmed := strings.TrimSpace(message)
	if utf8.RuneCountInString(trimmed) > maxMessageLength {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "message must be 200 characters or fewer")
	}
	return trimmed, nil
}

// RecordGatewayPayment writes a verified ledger entry for a gateway
// payment. Replays of the same payment id return the original entry with
// created=false.
func (s *service) RecordGatewayPayment(ctx context.Context, input RecordGatewayInput) (*EntryDTO, bool, error) {
	if input.CreatorID == uuid.Nil {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "creator id is required")
	}
	if strings.TrimSpace(input.TransactionRef) == "" {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "transaction reference is required")
	}
	if input.AmountPaise < 100 {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "amount must be at least ₹1")
	}
	name, err := normalizeSupporter(input.SupporterName)
	if err != nil {
		return nil, false, err
	}
	message, err := normalizeMessage(input.Message)
	if err != nil {
		return nil, false, err
	}

	entry := &models.SupportEntry{
		ID:             uuid.New(),
		CreatorID:      input.CreatorID,
		SupporterName:  name,
		AmountPaise:    input.AmountPaise,
		Currency:       "INR",
		Message:        message,
		Method:         enums.PaymentMethodGateway,
		TransactionRef: strings.TrimSpace(input.TransactionRef),
		Status:         enums.SupportStatusVerified,
	}
	created, stored, err := s.repo.CreateGateway(ctx, entry)
	if err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record gateway payment")
	}
	dto := toEntryDTO(*stored)
	return &dto, created, nil
}

// SubmitDirect records a supporter's unverified claim of a direct payment.
func (s *service) SubmitDirect(ctx context.Context, input SubmitDirectInput) (*EntryDTO, error) {
	if input.CreatorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "creator id is required")
	}
	paise, err := AmountToPaise(input.Amount)
	if err != nil {
		return nil, err
	}
	name, err := normalizeSupporter(input.SupporterName)
	if err != nil {
		return nil, err
	}
	message, err := normalizeMessage(input.Message)
	if err != nil {
		return nil, err
	}

	entry := &models.SupportEntry{
		ID:             uuid.New(),
		CreatorID:      input.CreatorID,
		SupporterName:  name,
		AmountPaise:    paise,
		Currency:       "INR",
		Message:        message,
		Method:         enums.PaymentMethodDirect,
		TransactionRef: strings.TrimSpace(input.TransactionRef),
		Status:         enums.SupportStatusUnverified,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record direct payment")
	}
	s.metrics.IncDirectSubmission()
	dto := toEntryDTO(*entry)
	return &dto, nil
}

func (s *service) ListPending(ctx context.Context, creatorID uuid.UUID) ([]EntryDTO, error) {
	entries, err := s.repo.ListPending(ctx, creatorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pending payments")
	}
	dtos := make([]EntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, toEntryDTO(entry))
	}
	return dtos, nil
}

// Decide resolves a pending direct entry to verified or rejected. Rejected
// entries stay in the ledger for audit; neither outcome can be revisited.
func (s *service) Decide(ctx context.Context, creatorID, entryID uuid.UUID, decision enums.Decision) (*EntryDTO, error) {
	if !decision.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "decision must be verify or reject")
	}

	entry, err := s.repo.FindByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment")
	}
	if entry.CreatorID != creatorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "payment belongs to another creator")
	}
	if entry.Method != enums.PaymentMethodDirect {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "gateway payments are verified automatically")
	}
	if entry.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeAlreadyDecided, "payment already decided")
	}

	decidedAt := s.now().UTC()
	affected, err := s.repo.Transition(ctx, entryID, creatorID, decision.TargetStatus(), decidedAt)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decide payment")
	}
	if affected == 0 {
		// Lost a race with another decision on the same entry.
		return nil, pkgerrors.New(pkgerrors.CodeAlreadyDecided, "payment already decided")
	}
	s.metrics.IncDecision(decision.String())

	entry.Status = decision.TargetStatus()
	entry.DecidedAt = &decidedAt
	dto := toEntryDTO(*entry)
	return &dto, nil
}

// Stats returns the creator's dashboard aggregates. The month window starts
// at the first of the current month, UTC.
func (s *service) Stats(ctx context.Context, creatorID uuid.UUID) (*StatsDTO, error) {
	now := s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	row, err := s.repo.Stats(ctx, creatorID, monthStart)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stats")
	}
	return &StatsDTO{
		TotalSupporters:     row.TotalSupporters,
		TotalEarned:         rupees(row.TotalEarnedPaise),
		TotalEarnedPaise:    row.TotalEarnedPaise,
		ThisMonth:           rupees(row.ThisMonthPaise),
		ThisMonthPaise:      row.ThisMonthPaise,
		PendingVerification: row.PendingVerification,
	}, nil
}

func (s *service) listPage(ctx context.Context, creatorID uuid.UUID, status enums.SupportStatus, params pagination.Params) ([]models.SupportEntry, string, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	entries, next, err := s.repo.List(ctx, listEntriesParams{
		CreatorID: creatorID,
		Status:    status,
		Limit:     params.Limit,
		Cursor:    cursor,
	})
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}
	nextCursor := ""
	if next != nil {
		nextCursor = pagination.EncodeCursor(*next)
	}
	return entries, nextCursor, nil
}

// PaymentLog returns a page of the creator's ledger, newest first,
// optionally filtered by status.
func (s *service) PaymentLog(ctx context.Context, creatorID uuid.UUID, status enums.SupportStatus, params pagination.Params) (*EntryPageDTO, error) {
	if status != "" && !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
	}
	entries, nextCursor, err := s.listPage(ctx, creatorID, status, params)
	if err != nil {
		return nil, err
	}
	page := &EntryPageDTO{Entries: make([]EntryDTO, 0, len(entries)), NextCursor: nextCursor}
	for _, entry := range entries {
		page.Entries = append(page.Entries, toEntryDTO(entry))
	}
	return page, nil
}

// RecentSupporters returns a page of the creator's verified support for the
// public feed.
func (s *service) RecentSupporters(ctx context.Context, creatorID uuid.UUID, params pagination.Params) (*SupporterPageDTO, error) {
	entries, nextCursor, err := s.listPage(ctx, creatorID, enums.SupportStatusVerified, params)
	if err != nil {
		return nil, err
	}
	page := &SupporterPageDTO{Supporters: make([]SupporterDTO, 0, len(entries)), NextCursor: nextCursor}
	for _, entry := range entries {
		page.Supporters = append(page.Supporters, toSupporterDTO(entry))
	}
	return page, nil
}
