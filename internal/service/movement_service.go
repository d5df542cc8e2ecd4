package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
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

// RecordMovementInput describes one movement of a file.
type RecordMovementInput struct {
	FileID      uuid.UUID
	Action      model.MovementAction
	Details     string
	Destination string
	// Date is the movement date (YYYY-MM-DD); today when empty.
	Date string
	// Requester and Reason build the details text when Details is empty.
	Requester string
	Reason    string
}

// MovementService handles the movement log.
type MovementService interface {
	Record(ctx context.Context, in RecordMovementInput) (*model.Movement, error)
	ListByFile(ctx context.Context, fileID uuid.UUID) ([]model.Movement, error)
	ListAll(ctx context.Context) ([]model.Movement, error)
}

type movementService struct {
	files     repository.FileRepository
	movements repository.MovementRepository
	cache     *cache.Client
	log       *zap.Logger
	now       func() time.Time
}

// NewMovementService creates a new movement service.
func NewMovementService(
	files repository.FileRepository,
	movements repository.MovementRepository,
	cache *cache.Client,
	log *zap.Logger,
) MovementService {
	return &movementService{
		files:     files,
		movements: movements,
		cache:     cache,
		log:       log,
		now:       time.Now,
	}
}

// Record appends a movement and updates the file's status and location in
// the same transaction.
func (s *movementService) Record(ctx context.Context, in RecordMovementInput) (*model.Movement, error) {
	if !in.Action.Valid() {
		return nil, fmt.Errorf("%w: unknown action %q", apperrors.ErrInvalidMovement, in.Action)
	}
	if in.Action == model.MovementActionRegistered {
		return nil, fmt.Errorf("%w: files are registered through the registry", apperrors.ErrInvalidMovement)
	}

	now := s.now().UTC()
	date := in.Date
	if date == "" {
		date = now.Format(dateLayout)
	}

	movement := &model.Movement{
		ID:          uuid.New(),
		FileID:      in.FileID,
		Action:      in.Action,
		Details:     movementDetails(in),
		Destination: in.Destination,
		Timestamp:   now,
	}

	err := s.files.WithTransaction(ctx, func(ctx context.Context, files repository.FileRepository, movements repository.MovementRepository) error {
		_, err := recordMovement(ctx, files, movements, in.FileID, movement, date)
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFileNotFound
		}
		s.log.Error("record movement", zap.String("file_id", in.FileID.String()), zap.Error(err))
		return nil, err
	}

	_ = s.cache.Delete(ctx, fileCacheKey(in.FileID))
	metrics.MovementsRecorded.WithLabelValues(string(in.Action)).Inc()
	s.log.Info("movement recorded",
		zap.String("file_id", in.FileID.String()),
		zap.String("action", string(in.Action)),
		zap.String("destination", in.Destination),
	)
	return movement, nil
}

// ListByFile returns the movements of a file, oldest first.
func (s *movementService) ListByFile(ctx context.Context, fileID uuid.UUID) ([]model.Movement, error) {
	movements, err := s.movements.ListByFile(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return movements, nil
}

// ListAll returns every movement with its file, newest first.
func (s *movementService) ListAll(ctx context.Context) ([]model.Movement, error) {
	movements, err := s.movements.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return movements, nil
}

func movementDetails(in RecordMovementInput) string {
	if in.Details != "" {
		return in.Details
	}
	var parts []string
	if in.Requester != "" {
		parts = append(parts, "Requested by: "+in.Requester+".")
	}
	if in.Reason != "" {
		parts = append(parts, "Reason: "+in.Reason)
	}
	return strings.Join(parts, " ")
}
