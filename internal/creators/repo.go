package creators

import (
	"context"
	"fmt"
	"strings"

	"github.com/fuelmywork/fuelmywork-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles creator persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to creator operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new creator row.
func (r *Repository) Create(ctx context.Context, creator *models.Creator) error {
	if creator == nil {
		return fmt.Errorf("creator is required")
	}
	creator.Username = strings.ToLower(strings.TrimSpace(creator.Username))
	return r.db.WithContext(ctx).Create(creator).Error
}

// FindByID loads a creator by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Creator, error) {
	var creator models.Creator
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&creator).Error; err != nil {
		return nil, err
	}
	return &creator, nil
}

// FindByUsername loads a creator by its public handle. Lookup is
// case-insensitive; usernames are stored lowercased.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.Creator, error) {
	var creator models.Creator
	normalized := strings.ToLower(strings.TrimSpace(username))
	if err := r.db.WithContext(ctx).Where("username = ?", normalized).First(&creator).Error; err != nil {
		return nil, err
	}
	return &creator, nil
}

// Update saves the provided creator.
func (r *Repository) Update(ctx context.Context, creator *models.Creator) error {
	if creator == nil {
		return fmt.Errorf("creator is required")
	}
	return r.db.WithContext(ctx).Save(creator).Error
}
