package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"archives/internal/model"
)

// FileFilter narrows file queries. Empty fields are not constrained.
type FileFilter struct {
	CaseCode   string
	CaseNumber string
	CaseYear   string
	PartyName  string
	Status     model.FileStatus
}

// FileRepository defines file persistence operations.
type FileRepository interface {
	Create(ctx context.Context, file *model.File) error
	Update(ctx context.Context, file *model.File) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.File, error)
	FindByCaseIdentifier(ctx context.Context, caseCode, caseNumber, caseYear string) (*model.File, error)
	List(ctx context.Context) ([]model.File, error)
	Search(ctx context.Context, filter FileFilter) ([]model.File, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// WithTransaction runs fn with file and movement repositories bound to a
	// single database transaction.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, files FileRepository, movements MovementRepository) error) error
}

type fileRepository struct {
	db *gorm.DB
}

// NewFileRepository creates a new file repository.
func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{db: db}
}

// Create creates a new file record.
func (r *fileRepository) Create(ctx context.Context, file *model.File) error {
	return r.db.WithContext(ctx).Create(file).Error
}

// Update replaces every column of an existing file.
func (r *fileRepository) Update(ctx context.Context, file *model.File) error {
	return r.db.WithContext(ctx).Save(file).Error
}

// FindByID finds a file by ID.
func (r *fileRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.File, error) {
	var file model.File
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&file).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// FindByCaseIdentifier finds the file carrying the case code, number and year.
func (r *fileRepository) FindByCaseIdentifier(ctx context.Context, caseCode, caseNumber, caseYear string) (*model.File, error) {
	var file model.File
	if err := r.db.WithContext(ctx).
		Where("case_code = ? AND case_number = ? AND case_year = ?", caseCode, caseNumber, caseYear).
		First(&file).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// List lists all files, newest first.
func (r *fileRepository) List(ctx context.Context) ([]model.File, error) {
	var files []model.File
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

// Search lists files matching every non-empty field of filter exactly.
func (r *fileRepository) Search(ctx context.Context, filter FileFilter) ([]model.File, error) {
	q := r.db.WithContext(ctx).Model(&model.File{})
	if filter.CaseCode != "" {
		q = q.Where("case_code = ?", filter.CaseCode)
	}
	if filter.CaseNumber != "" {
		q = q.Where("case_number = ?", filter.CaseNumber)
	}
	if filter.CaseYear != "" {
		q = q.Where("case_year = ?", filter.CaseYear)
	}
	if filter.PartyName != "" {
		q = q.Where("party_name = ?", filter.PartyName)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var files []model.File
	if err := q.Order("created_at DESC").Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

// Delete removes a file and its movement log. It returns
// gorm.ErrRecordNotFound when no file has the given ID.
func (r *fileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("file_id = ?", id).Delete(&model.Movement{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.File{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// WithTransaction executes a function within a database transaction.
func (r *fileRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, files FileRepository, movements MovementRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &fileRepository{db: tx}, &movementRepository{db: tx})
	})
}
