package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"archives/internal/model"
)

// MovementRepository defines movement persistence operations. Movements are
// append-only, so there is no update.
type MovementRepository interface {
	Create(ctx context.Context, movement *model.Movement) error
	ListByFile(ctx context.Context, fileID uuid.UUID) ([]model.Movement, error)
	ListAll(ctx context.Context) ([]model.Movement, error)
}

type movementRepository struct {
	db *gorm.DB
}

// NewMovementRepository creates a new movement repository.
func NewMovementRepository(db *gorm.DB) MovementRepository {
	return &movementRepository{db: db}
}

// Create appends a movement log entry.
func (r *movementRepository) Create(ctx context.Context, movement *model.Movement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// ListByFile lists the movements of one file, oldest first.
func (r *movementRepository) ListByFile(ctx context.Context, fileID uuid.UUID) ([]model.Movement, error) {
	var movements []model.Movement
	if err := r.db.WithContext(ctx).
		Where("file_id = ?", fileID).
		Order("timestamp ASC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// ListAll lists every movement with its file attached, newest first.
func (r *movementRepository) ListAll(ctx context.Context) ([]model.Movement, error) {
	var movements []model.Movement
	if err := r.db.WithContext(ctx).
		Preload("File").
		Order("timestamp DESC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}
