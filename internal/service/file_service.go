package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"archives/internal/cache"
	apperrors "archives/internal/errors"
	"archives/internal/metrics"
	"archives/internal/model"
	"archives/internal/repository"
)

const (
	fileCacheTTL = 5 * time.Minute

	registeredDetails = "File registered in archive."
	destroyedDetails  = "File marked as destroyed by admin"
)

// Search modes select which criteria apply to a query.
const (
	SearchModeCase   = "case"
	SearchModeParty  = "party"
	SearchModeStatus = "status"
)

// SearchCriteria holds the raw search parameters. With an empty Mode every
// non-empty field applies; otherwise only the fields of that mode do.
type SearchCriteria struct {
	Mode       string
	CaseCode   string
	CaseNumber string
	CaseYear   string
	PartyName  string
	Status     string
}

func (c SearchCriteria) filter() (repository.FileFilter, error) {
	var f repository.FileFilter
	switch c.Mode {
	case "":
		f = repository.FileFilter{
			CaseCode:   c.CaseCode,
			CaseNumber: c.CaseNumber,
			CaseYear:   c.CaseYear,
			PartyName:  c.PartyName,
			Status:     model.FileStatus(c.Status),
		}
	case SearchModeCase:
		f = repository.FileFilter{CaseCode: c.CaseCode, CaseNumber: c.CaseNumber, CaseYear: c.CaseYear}
	case SearchModeParty:
		f = repository.FileFilter{PartyName: c.PartyName}
	case SearchModeStatus:
		f = repository.FileFilter{Status: model.FileStatus(c.Status)}
	default:
		return f, apperrors.ErrInvalidSearchMode
	}

	if f.Status != "" && !f.Status.Valid() {
		return f, apperrors.ErrInvalidStatus
	}
	return f, nil
}

// FileService handles file registry operations.
type FileService interface {
	Create(ctx context.Context, file *model.File) (*model.File, error)
	List(ctx context.Context) ([]model.File, error)
	Get(ctx context.Context, id uuid.UUID) (*model.File, error)
	Update(ctx context.Context, id uuid.UUID, changes *model.File) (*model.File, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Destroy(ctx context.Context, id uuid.UUID, details string) (*model.File, error)
	Search(ctx context.Context, criteria SearchCriteria) ([]model.File, error)
}

type fileService struct {
	files repository.FileRepository
	cache *cache.Client
	log   *zap.Logger
}

// NewFileService creates a new file service.
func NewFileService(files repository.FileRepository, cache *cache.Client, log *zap.Logger) FileService {
	return &fileService{
		files: files,
		cache: cache,
		log:   log,
	}
}

func fileCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("file:%s", id.String())
}

// Create registers a new file together with its registered movement.
func (s *fileService) Create(ctx context.Context, file *model.File) (*model.File, error) {
	if !file.Status.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}
	if err := s.ensureUniqueCase(ctx, uuid.Nil, file.CaseCode, file.CaseNumber, file.CaseYear); err != nil {
		return nil, err
	}

	file.ID = uuid.New()
	if file.CurrentLocation == "" {
		file.CurrentLocation = file.Destination
	}

	err := s.files.WithTransaction(ctx, func(ctx context.Context, files repository.FileRepository, movements repository.MovementRepository) error {
		if err := files.Create(ctx, file); err != nil {
			return fmt.Errorf("create file: %w", err)
		}
		return movements.Create(ctx, &model.Movement{
			ID:          uuid.New(),
			FileID:      file.ID,
			Action:      model.MovementActionRegistered,
			Details:     registeredDetails,
			Destination: file.CurrentLocation,
		})
	})
	if err != nil {
		// The unique index catches registrations racing past the pre-check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateCase
		}
		s.log.Error("register file", zap.Error(err))
		return nil, err
	}

	metrics.FilesRegistered.Inc()
	s.log.Info("file registered",
		zap.String("file_id", file.ID.String()),
		zap.String("case_code", file.CaseCode),
		zap.String("case_number", file.CaseNumber),
		zap.String("case_year", file.CaseYear),
	)
	return file, nil
}

// List returns every file.
func (s *fileService) List(ctx context.Context) ([]model.File, error) {
	files, err := s.files.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return files, nil
}

// Get retrieves a file by ID with caching.
func (s *fileService) Get(ctx context.Context, id uuid.UUID) (*model.File, error) {
	var cached model.File
	if s.cache.GetJSON(ctx, fileCacheKey(id), &cached) {
		return &cached, nil
	}

	file, err := s.files.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, fmt.Errorf("get file: %w", err)
	}

	_ = s.cache.SetJSON(ctx, fileCacheKey(id), file, fileCacheTTL)
	return file, nil
}

// Update replaces the editable fields of a file. An empty current location
// keeps the stored one.
func (s *fileService) Update(ctx context.Context, id uuid.UUID, changes *model.File) (*model.File, error) {
	if !changes.Status.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}

	current, err := s.files.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, fmt.Errorf("get file: %w", err)
	}

	if !current.SameCase(changes.CaseCode, changes.CaseNumber, changes.CaseYear) {
		if err := s.ensureUniqueCase(ctx, id, changes.CaseCode, changes.CaseNumber, changes.CaseYear); err != nil {
			return nil, err
		}
	}

	current.Date = changes.Date
	current.PartyName = changes.PartyName
	current.CaseCode = changes.CaseCode
	current.CaseNumber = changes.CaseNumber
	current.CaseYear = changes.CaseYear
	current.LastActivity = changes.LastActivity
	current.Status = changes.Status
	current.ComingFrom = changes.ComingFrom
	current.Destination = changes.Destination
	current.Reason = changes.Reason
	current.StorageLocation = changes.StorageLocation
	if changes.CurrentLocation != "" {
		current.CurrentLocation = changes.CurrentLocation
	}

	if err := s.files.Update(ctx, current); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateCase
		}
		return nil, fmt.Errorf("update file: %w", err)
	}

	_ = s.cache.Delete(ctx, fileCacheKey(id))
	s.log.Info("file updated", zap.String("file_id", id.String()), zap.String("status", string(current.Status)))
	return current, nil
}

// Delete permanently removes a file and its movement log.
func (s *fileService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.files.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrFileNotFound
		}
		return fmt.Errorf("delete file: %w", err)
	}

	_ = s.cache.Delete(ctx, fileCacheKey(id))
	s.log.Info("file deleted", zap.String("file_id", id.String()))
	return nil
}

// Destroy marks a file destroyed and logs a destroyed movement atomically.
func (s *fileService) Destroy(ctx context.Context, id uuid.UUID, details string) (*model.File, error) {
	if details == "" {
		details = destroyedDetails
	}

	var destroyed *model.File
	err := s.files.WithTransaction(ctx, func(ctx context.Context, files repository.FileRepository, movements repository.MovementRepository) error {
		file, err := recordMovement(ctx, files, movements, id, &model.Movement{
			ID:      uuid.New(),
			FileID:  id,
			Action:  model.MovementActionDestroyed,
			Details: details,
		}, "")
		if err != nil {
			return err
		}
		destroyed = file
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, fmt.Errorf("destroy file: %w", err)
	}

	_ = s.cache.Delete(ctx, fileCacheKey(id))
	metrics.MovementsRecorded.WithLabelValues(string(model.MovementActionDestroyed)).Inc()
	s.log.Info("file destroyed", zap.String("file_id", id.String()))
	return destroyed, nil
}

// Search returns the files matching criteria exactly.
func (s *fileService) Search(ctx context.Context, criteria SearchCriteria) ([]model.File, error) {
	filter, err := criteria.filter()
	if err != nil {
		return nil, err
	}

	files, err := s.files.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search files: %w", err)
	}
	return files, nil
}

// ensureUniqueCase fails with ErrDuplicateCase when a file other than self
// already carries the case identifier.
func (s *fileService) ensureUniqueCase(ctx context.Context, self uuid.UUID, caseCode, caseNumber, caseYear string) error {
	existing, err := s.files.FindByCaseIdentifier(ctx, caseCode, caseNumber, caseYear)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("check case identifier: %w", err)
	}
	if existing.ID != self {
		return apperrors.ErrDuplicateCase
	}
	return nil
}
