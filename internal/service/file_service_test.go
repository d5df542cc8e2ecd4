package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "archives/internal/errors"
	"archives/internal/model"
	"archives/internal/repository"
)

func sampleFile() *model.File {
	return &model.File{
		Date:            "2024-02-10",
		PartyName:       "State v. Mensah",
		CaseCode:        "CR",
		CaseNumber:      "114",
		CaseYear:        "2024",
		LastActivity:    "2024-02-10",
		Status:          model.FileStatusArchived,
		ComingFrom:      model.LocationRegistry,
		Destination:     model.LocationArchives,
		Reason:          "Case closed",
		StorageLocation: "Shelf A3",
	}
}

func TestFileService_Create(t *testing.T) {
	tests := []struct {
		name          string
		file          func() *model.File
		setupMock     func(*MockFileRepository)
		expectedError error
	}{
		{
			name: "registers file with registered movement",
			file: sampleFile,
			setupMock: func(m *MockFileRepository) {
				m.On("FindByCaseIdentifier", mock.Anything, "CR", "114", "2024").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.File")).Return(nil)
				m.Movements.On("Create", mock.Anything, mock.MatchedBy(func(mv *model.Movement) bool {
					return mv.Action == model.MovementActionRegistered &&
						mv.Details == "File registered in archive." &&
						mv.Destination == model.LocationArchives
				})).Return(nil)
			},
		},
		{
			name: "duplicate case identifier",
			file: sampleFile,
			setupMock: func(m *MockFileRepository) {
				m.On("FindByCaseIdentifier", mock.Anything, "CR", "114", "2024").Return(&model.File{ID: uuid.New()}, nil)
			},
			expectedError: apperrors.ErrDuplicateCase,
		},
		{
			name: "duplicate caught by unique index",
			file: sampleFile,
			setupMock: func(m *MockFileRepository) {
				m.On("FindByCaseIdentifier", mock.Anything, "CR", "114", "2024").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.File")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrDuplicateCase,
		},
		{
			name: "invalid status",
			file: func() *model.File {
				f := sampleFile()
				f.Status = "lost"
				return f
			},
			setupMock:     func(m *MockFileRepository) {},
			expectedError: apperrors.ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFileRepoMock()
			tt.setupMock(repo)

			svc := NewFileService(repo, nil, zap.NewNop())
			file, err := svc.Create(context.Background(), tt.file())

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, file)
			} else {
				require.NoError(t, err)
				assert.NotEqual(t, uuid.Nil, file.ID)
				assert.Equal(t, model.LocationArchives, file.CurrentLocation)
			}

			repo.AssertExpectations(t)
			repo.Movements.AssertExpectations(t)
		})
	}
}

func TestFileService_Get(t *testing.T) {
	id := uuid.New()

	t.Run("found", func(t *testing.T) {
		repo := newFileRepoMock()
		repo.On("FindByID", mock.Anything, id).Return(&model.File{ID: id, CaseCode: "TR"}, nil)

		file, err := NewFileService(repo, nil, zap.NewNop()).Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "TR", file.CaseCode)
	})

	t.Run("not found", func(t *testing.T) {
		repo := newFileRepoMock()
		repo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := NewFileService(repo, nil, zap.NewNop()).Get(context.Background(), id)
		assert.ErrorIs(t, err, apperrors.ErrFileNotFound)
	})
}

func TestFileService_Update(t *testing.T) {
	id := uuid.New()

	t.Run("keeps current location when omitted", func(t *testing.T) {
		repo := newFileRepoMock()
		stored := sampleFile()
		stored.ID = id
		stored.CurrentLocation = "Court Room 2"
		repo.On("FindByID", mock.Anything, id).Return(stored, nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(f *model.File) bool {
			return f.CurrentLocation == "Court Room 2" && f.Reason == "Appeal filed"
		})).Return(nil)

		changes := sampleFile()
		changes.Reason = "Appeal filed"

		file, err := NewFileService(repo, nil, zap.NewNop()).Update(context.Background(), id, changes)
		require.NoError(t, err)
		assert.Equal(t, "Appeal filed", file.Reason)
		repo.AssertNotCalled(t, "FindByCaseIdentifier", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("case identifier taken by another file", func(t *testing.T) {
		repo := newFileRepoMock()
		stored := sampleFile()
		stored.ID = id
		repo.On("FindByID", mock.Anything, id).Return(stored, nil)
		repo.On("FindByCaseIdentifier", mock.Anything, "CR", "115", "2024").Return(&model.File{ID: uuid.New()}, nil)

		changes := sampleFile()
		changes.CaseNumber = "115"

		_, err := NewFileService(repo, nil, zap.NewNop()).Update(context.Background(), id, changes)
		assert.ErrorIs(t, err, apperrors.ErrDuplicateCase)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown file", func(t *testing.T) {
		repo := newFileRepoMock()
		repo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := NewFileService(repo, nil, zap.NewNop()).Update(context.Background(), id, sampleFile())
		assert.ErrorIs(t, err, apperrors.ErrFileNotFound)
	})
}

func TestFileService_Delete(t *testing.T) {
	id := uuid.New()
	repo := newFileRepoMock()
	repo.On("Delete", mock.Anything, id).Return(gorm.ErrRecordNotFound)

	err := NewFileService(repo, nil, zap.NewNop()).Delete(context.Background(), id)
	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)
}

func TestFileService_Destroy(t *testing.T) {
	id := uuid.New()
	repo := newFileRepoMock()
	stored := sampleFile()
	stored.ID = id
	stored.CurrentLocation = model.LocationArchives
	repo.On("FindByID", mock.Anything, id).Return(stored, nil)
	repo.Movements.On("Create", mock.Anything, mock.MatchedBy(func(mv *model.Movement) bool {
		return mv.FileID == id &&
			mv.Action == model.MovementActionDestroyed &&
			mv.Details == "File marked as destroyed by admin"
	})).Return(nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(f *model.File) bool {
		return f.Status == model.FileStatusDestroyed
	})).Return(nil)

	file, err := NewFileService(repo, nil, zap.NewNop()).Destroy(context.Background(), id, "")
	require.NoError(t, err)
	assert.Equal(t, model.FileStatusDestroyed, file.Status)
	assert.Equal(t, model.LocationArchives, file.CurrentLocation)

	repo.AssertExpectations(t)
	repo.Movements.AssertExpectations(t)
}

func TestFileService_Search(t *testing.T) {
	all := SearchCriteria{
		CaseCode:   "CR",
		CaseNumber: "114",
		CaseYear:   "2024",
		PartyName:  "Mensah",
		Status:     "archived",
	}

	tests := []struct {
		name          string
		mode          string
		expected      repository.FileFilter
		expectedError error
	}{
		{
			name:     "case mode",
			mode:     SearchModeCase,
			expected: repository.FileFilter{CaseCode: "CR", CaseNumber: "114", CaseYear: "2024"},
		},
		{
			name:     "party mode",
			mode:     SearchModeParty,
			expected: repository.FileFilter{PartyName: "Mensah"},
		},
		{
			name:     "status mode",
			mode:     SearchModeStatus,
			expected: repository.FileFilter{Status: model.FileStatusArchived},
		},
		{
			name: "no mode applies every criterion",
			expected: repository.FileFilter{
				CaseCode:   "CR",
				CaseNumber: "114",
				CaseYear:   "2024",
				PartyName:  "Mensah",
				Status:     model.FileStatusArchived,
			},
		},
		{
			name:          "unknown mode",
			mode:          "judge",
			expectedError: apperrors.ErrInvalidSearchMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFileRepoMock()
			if tt.expectedError == nil {
				repo.On("Search", mock.Anything, tt.expected).Return([]model.File{}, nil)
			}

			criteria := all
			criteria.Mode = tt.mode
			files, err := NewFileService(repo, nil, zap.NewNop()).Search(context.Background(), criteria)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, files)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, files)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestFileService_SearchInvalidStatus(t *testing.T) {
	repo := newFileRepoMock()
	_, err := NewFileService(repo, nil, zap.NewNop()).Search(context.Background(), SearchCriteria{
		Mode:   SearchModeStatus,
		Status: "missing",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
}

func TestFileService_ListWrapsError(t *testing.T) {
	repo := newFileRepoMock()
	repo.On("List", mock.Anything).Return(nil, fmt.Errorf("connection refused"))

	_, err := NewFileService(repo, nil, zap.NewNop()).List(context.Background())
	assert.ErrorContains(t, err, "list files")
}
