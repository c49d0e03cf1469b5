package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/templui/okrledger/internal/model"
	"github.com/templui/okrledger/internal/period"
	"github.com/templui/okrledger/internal/repository"
	"github.com/templui/okrledger/internal/validation"
)

var (
	ErrObjectiveLocked = errors.New("objective is past its due date")
)

type ObjectiveService struct {
	repo          repository.ObjectiveRepository
	keyResultRepo repository.KeyResultRepository
	progressRepo  repository.ProgressRepository
}

func NewObjectiveService(
	repo repository.ObjectiveRepository,
	keyResultRepo repository.KeyResultRepository,
	progressRepo repository.ProgressRepository,
) *ObjectiveService {
	return &ObjectiveService{
		repo:          repo,
		keyResultRepo: keyResultRepo,
		progressRepo:  progressRepo,
	}
}

func (s *ObjectiveService) Create(userID, title, description string, dueDate time.Time) (*model.Objective, error) {
	err := validation.ValidateTitle(title)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if dueDate.IsZero() {
		return nil, validation.NewError("due_date", "is required")
	}
	if dueDate.Before(now) {
		return nil, validation.NewError("due_date", "must be in the future")
	}

	objective := &model.Objective{
		UserID:      userID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		DueDate:     dueDate.UTC(),
	}

	err = s.repo.Create(objective)
	if err != nil {
		return nil, fmt.Errorf("failed to create objective: %w", err)
	}

	return objective, nil
}

// AddKeyResult attaches a key result. A nil createdAt makes the key result
// start with its objective. createdAt keeps the calendar date it was given in
// its own zone, so an offset never moves it into another month.
func (s *ObjectiveService) AddKeyResult(objectiveID int64, title string, createdAt *time.Time) (*model.KeyResult, error) {
	err := validation.ValidateTitle(title)
	if err != nil {
		return nil, err
	}

	objective, err := s.repo.ByID(objectiveID)
	if err != nil {
		return nil, err
	}

	if createdAt != nil {
		utc := period.WallClockUTC(*createdAt)
		if utc.After(objective.DueDate) {
			return nil, validation.NewError("created_at", "must not be after the objective's due date")
		}
		createdAt = &utc
	}

	keyResult := &model.KeyResult{
		ObjectiveID: objective.ID,
		Title:       strings.TrimSpace(title),
		CreatedAt:   createdAt,
		Status:      model.StatusNotStarted,
	}

	err = s.keyResultRepo.Create(keyResult)
	if err != nil {
		return nil, fmt.Errorf("failed to create key result: %w", err)
	}

	return keyResult, nil
}

// ByID returns the objective with its key results and their current status.
func (s *ObjectiveService) ByID(id int64) (*model.Objective, error) {
	objective, err := s.repo.ByID(id)
	if err != nil {
		return nil, err
	}

	err = s.loadKeyResults(objective)
	if err != nil {
		return nil, err
	}

	return objective, nil
}

func (s *ObjectiveService) Objectives(userID string) ([]*model.Objective, error) {
	objectives, err := s.repo.Objectives(userID)
	if err != nil {
		return nil, err
	}

	for _, objective := range objectives {
		err = s.loadKeyResults(objective)
		if err != nil {
			return nil, err
		}
	}

	return objectives, nil
}

// KeyResult returns a key result with its status and its parent objective.
func (s *ObjectiveService) KeyResult(id int64) (*model.KeyResult, *model.Objective, error) {
	keyResult, err := s.keyResultRepo.ByID(id)
	if err != nil {
		return nil, nil, err
	}

	objective, err := s.repo.ByID(keyResult.ObjectiveID)
	if err != nil {
		return nil, nil, err
	}

	keyResult.Status, err = currentStatus(s.progressRepo, keyResult.ID)
	if err != nil {
		return nil, nil, err
	}

	return keyResult, objective, nil
}

// Update edits an objective. Once the due date has passed only admins may
// edit it.
func (s *ObjectiveService) Update(actor *model.User, id int64, title, description string, dueDate time.Time) error {
	err := validation.ValidateTitle(title)
	if err != nil {
		return err
	}

	objective, err := s.repo.ByID(id)
	if err != nil {
		return err
	}

	if objective.Overdue(time.Now().UTC()) && !actor.IsAdmin() {
		return ErrObjectiveLocked
	}

	if !dueDate.IsZero() {
		if dueDate.Before(objective.CreatedAt) {
			return validation.NewError("due_date", "must not be before the objective was created")
		}
		objective.DueDate = dueDate.UTC()
	}
	objective.Title = strings.TrimSpace(title)
	objective.Description = strings.TrimSpace(description)

	return s.repo.Update(objective)
}

// Delete removes the objective, its key results and their ledger rows.
func (s *ObjectiveService) Delete(id int64) error {
	return s.repo.Delete(id)
}

// CanAct is the ownership decision handed to the ledger: owners and admins
// may act on an objective and its key results.
func (s *ObjectiveService) CanAct(actor *model.User, objective *model.Objective) bool {
	if actor == nil || objective == nil {
		return false
	}
	return actor.IsAdmin() || objective.UserID == actor.ID
}

func (s *ObjectiveService) CanActOnObjective(actor *model.User, objectiveID int64) (bool, error) {
	objective, err := s.repo.ByID(objectiveID)
	if err != nil {
		return false, err
	}
	return s.CanAct(actor, objective), nil
}

func (s *ObjectiveService) CanActOnKeyResult(actor *model.User, keyResultID int64) (bool, error) {
	keyResult, err := s.keyResultRepo.ByID(keyResultID)
	if err != nil {
		return false, err
	}
	return s.CanActOnObjective(actor, keyResult.ObjectiveID)
}

func (s *ObjectiveService) loadKeyResults(objective *model.Objective) error {
	keyResults, err := s.keyResultRepo.KeyResults(objective.ID)
	if err != nil {
		return err
	}

	for _, keyResult := range keyResults {
		keyResult.Status, err = currentStatus(s.progressRepo, keyResult.ID)
		if err != nil {
			return err
		}
	}

	objective.KeyResults = keyResults
	return nil
}
