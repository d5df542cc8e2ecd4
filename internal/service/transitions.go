package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"archives/internal/model"
	"archives/internal/repository"
)

// dateLayout is the calendar date format used by file and movement dates.
const dateLayout = "2006-01-02"

// ApplyMovement updates file in place for a movement and reports whether any
// field changed.
//
// A move to Archives marks the file archived and stamps lastActivity with the
// movement date; a move to Registry marks it retrieved; any other destination
// keeps the status. A non-empty destination always becomes the current
// location. A destroyed action marks the file destroyed regardless of
// destination. No transition is refused.
func ApplyMovement(file *model.File, action model.MovementAction, destination, date string) bool {
	changed := false
	setStatus := func(status model.FileStatus) {
		if file.Status != status {
			file.Status = status
			changed = true
		}
	}

	switch destination {
	case model.LocationArchives:
		setStatus(model.FileStatusArchived)
		if date != "" && file.LastActivity != date {
			file.LastActivity = date
			changed = true
		}
	case model.LocationRegistry:
		setStatus(model.FileStatusRetrieved)
	}

	if destination != "" && file.CurrentLocation != destination {
		file.CurrentLocation = destination
		changed = true
	}

	if action == model.MovementActionDestroyed {
		setStatus(model.FileStatusDestroyed)
	}

	return changed
}

// recordMovement appends movement and applies it to the referenced file using
// repositories that are expected to share one transaction.
func recordMovement(ctx context.Context, files repository.FileRepository, movements repository.MovementRepository, fileID uuid.UUID, movement *model.Movement, date string) (*model.File, error) {
	file, err := files.FindByID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if err := movements.Create(ctx, movement); err != nil {
		return nil, fmt.Errorf("create movement: %w", err)
	}

	if ApplyMovement(file, movement.Action, movement.Destination, date) {
		if err := files.Update(ctx, file); err != nil {
			return nil, fmt.Errorf("update file: %w", err)
		}
	}
	return file, nil
}
