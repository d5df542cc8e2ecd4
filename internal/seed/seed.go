// Package seed loads the demo accounts and archived files.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "archives/internal/errors"
	"archives/internal/model"
	"archives/internal/repository"
	"archives/internal/service"
)

const seededMovementDetails = "Moved from Registry to Archives"

// Account is a demo login.
type Account struct {
	Name     string
	Email    string
	Password string
	Role     model.Role
}

// Accounts are the demo logins: one admin and five users.
var Accounts = []Account{
	{Name: "Administrator", Email: "admin@example.com", Password: "admin123", Role: model.RoleAdmin},
	{Name: "User One", Email: "user1@example.com", Password: "user1234", Role: model.RoleUser},
	{Name: "User Two", Email: "user2@example.com", Password: "user1234", Role: model.RoleUser},
	{Name: "User Three", Email: "user3@example.com", Password: "user1234", Role: model.RoleUser},
	{Name: "User Four", Email: "user4@example.com", Password: "user1234", Role: model.RoleUser},
	{Name: "User Five", Email: "user5@example.com", Password: "user1234", Role: model.RoleUser},
}

var (
	partyNames = []string{
		"John Smith", "Mary Johnson", "Robert Williams", "Sarah Davis", "Michael Brown",
		"Lisa Wilson", "David Miller", "Jennifer Garcia", "Christopher Martinez", "Amanda Rodriguez",
		"James Anderson", "Michelle Taylor", "Kevin Thomas", "Nicole Hernandez", "Steven Moore",
		"Rachel Jackson", "Daniel White",
	}
	caseYears = []string{
		"2019", "2019", "2020", "2020", "2021", "2021", "2019", "2020", "2021", "2019",
		"2020", "2021", "2019", "2020", "2021", "2019", "2020",
	}
)

// Files returns the demo archive: seventeen closed cases shelved in Archives.
func Files() []model.File {
	files := make([]model.File, 0, len(partyNames))
	for i, party := range partyNames {
		n := i + 1
		files = append(files, model.File{
			Date:            fmt.Sprintf("2021-12-%02d", n),
			PartyName:       party,
			CaseCode:        model.CaseCodes[i%len(model.CaseCodes)],
			CaseNumber:      strconv.Itoa(n),
			CaseYear:        caseYears[i],
			LastActivity:    fmt.Sprintf("2021-11-%02d", 31-n),
			Status:          model.FileStatusArchived,
			ComingFrom:      model.LocationRegistry,
			Destination:     model.LocationArchives,
			Reason:          "Completed",
			StorageLocation: fmt.Sprintf("Shelf %d", i%10+1),
			CurrentLocation: model.LocationArchives,
		})
	}
	return files
}

// Result counts the records a run created.
type Result struct {
	Users int `json:"users"`
	Files int `json:"files"`
}

// Seeder creates demo data, skipping records that already exist.
type Seeder struct {
	users service.UserService
	files repository.FileRepository
	log   *zap.Logger
}

// New creates a Seeder.
func New(users service.UserService, files repository.FileRepository, log *zap.Logger) *Seeder {
	return &Seeder{users: users, files: files, log: log}
}

// Run seeds accounts and files.
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	var res Result

	for _, a := range Accounts {
		_, err := s.users.RegisterUser(ctx, a.Name, a.Email, a.Password, a.Role)
		if errors.Is(err, apperrors.ErrUserAlreadyExists) {
			continue
		}
		if err != nil {
			return res, fmt.Errorf("seed user %s: %w", a.Email, err)
		}
		res.Users++
	}

	for _, f := range Files() {
		created, err := s.seedFile(ctx, f)
		if err != nil {
			return res, err
		}
		if created {
			res.Files++
		}
	}

	s.log.Info("seed completed", zap.Int("users", res.Users), zap.Int("files", res.Files))
	return res, nil
}

func (s *Seeder) seedFile(ctx context.Context, f model.File) (bool, error) {
	_, err := s.files.FindByCaseIdentifier(ctx, f.CaseCode, f.CaseNumber, f.CaseYear)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("check file %s/%s/%s: %w", f.CaseCode, f.CaseNumber, f.CaseYear, err)
	}

	f.ID = uuid.New()
	err = s.files.WithTransaction(ctx, func(ctx context.Context, files repository.FileRepository, movements repository.MovementRepository) error {
		if err := files.Create(ctx, &f); err != nil {
			return err
		}
		return movements.Create(ctx, &model.Movement{
			ID:          uuid.New(),
			FileID:      f.ID,
			Action:      model.MovementActionMoved,
			Details:     seededMovementDetails,
			Destination: model.LocationArchives,
		})
	})
	if err != nil {
		return false, fmt.Errorf("seed file %s: %w", f.PartyName, err)
	}
	return true, nil
}
