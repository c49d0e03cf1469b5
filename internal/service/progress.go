package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/templui/okrledger/internal/model"
	"github.com/templui/okrledger/internal/period"
	"github.com/templui/okrledger/internal/repository"
	"github.com/templui/okrledger/internal/validation"
)

type ProgressService struct {
	repo          repository.ProgressRepository
	keyResultRepo repository.KeyResultRepository
	objectiveRepo repository.ObjectiveRepository
}

func NewProgressService(
	repo repository.ProgressRepository,
	keyResultRepo repository.KeyResultRepository,
	objectiveRepo repository.ObjectiveRepository,
) *ProgressService {
	return &ProgressService{
		repo:          repo,
		keyResultRepo: keyResultRepo,
		objectiveRepo: objectiveRepo,
	}
}

// SubmitProgress appends a ledger entry. canAct is the caller's authorization
// decision for this actor and key result. Every check runs before the write;
// a second submission for the same period adds a row rather than replacing
// the first.
func (s *ProgressService) SubmitProgress(actorID string, canAct bool, in validation.ProgressInput) (*model.ProgressEntry, error) {
	err := validation.ValidateMonth(in.Month)
	if err != nil {
		return nil, err
	}

	err = validation.ValidateYear(in.Year)
	if err != nil {
		return nil, err
	}

	err = CheckProgress(in.Status, in.MetricValue)
	if err != nil {
		return nil, err
	}

	keyResult, err := s.keyResultRepo.ByID(in.KeyResultID)
	if err != nil {
		return nil, err
	}

	objective, err := s.objectiveRepo.ByID(keyResult.ObjectiveID)
	if err != nil {
		return nil, err
	}

	// The key result's start and the objective's due date bound its ledger.
	month := period.Month{Year: in.Year, Month: in.Month}
	start := keyResult.StartedAt(objective)
	if !period.InRange(month, start, objective.DueDate) {
		return nil, validation.NewError("month", fmt.Sprintf("period %s is outside the key result's range %s to %s",
			month, period.MonthOf(start), period.MonthOf(objective.DueDate)))
	}

	if !canAct {
		return nil, ErrForbidden
	}

	entry := &model.ProgressEntry{
		KeyResultID:     in.KeyResultID,
		UserID:          actorID,
		Month:           in.Month,
		Year:            in.Year,
		Status:          in.Status,
		MetricValue:     in.MetricValue,
		Evidence:        in.Evidence,
		Comments:        in.Comments,
		Blockers:        in.Blockers,
		ResourcesNeeded: in.ResourcesNeeded,
		CreatedAt:       time.Now().UTC(),
	}

	err = s.repo.Append(entry)
	if err != nil {
		return nil, err
	}

	slog.Info("progress submitted",
		"entry_id", entry.ID,
		"key_result_id", entry.KeyResultID,
		"user_id", actorID,
		"period", entry.Period().String(),
		"status", entry.Status,
	)
	return entry, nil
}

// History returns all entries for the key results grouped by key result,
// newest period first.
func (s *ProgressService) History(keyResultIDs []int64, month, year int) (map[int64][]*model.ProgressEntry, error) {
	return s.repo.History(keyResultIDs, repository.HistoryFilter{Month: month, Year: year})
}

// Progress is History flattened in the order the key results were asked for.
func (s *ProgressService) Progress(keyResultIDs []int64, month, year int) ([]*model.ProgressEntry, error) {
	history, err := s.History(keyResultIDs, month, year)
	if err != nil {
		return nil, err
	}

	entries := []*model.ProgressEntry{}
	seen := make(map[int64]bool, len(keyResultIDs))
	for _, id := range keyResultIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		entries = append(entries, history[id]...)
	}
	return entries, nil
}

// LatestForPeriod returns the current entry of a period, or nil when nothing
// was submitted for it.
func (s *ProgressService) LatestForPeriod(keyResultID int64, month period.Month) (*model.ProgressEntry, error) {
	entry, err := s.repo.LatestForPeriod(keyResultID, month)
	if errors.Is(err, repository.ErrProgressEntryNotFound) {
		return nil, nil
	}
	return entry, err
}

func (s *ProgressService) KeyResultStatus(keyResultID int64) (model.KeyResultStatus, error) {
	_, err := s.keyResultRepo.ByID(keyResultID)
	if err != nil {
		return "", err
	}
	return currentStatus(s.repo, keyResultID)
}

// currentStatus derives a key result's status from its most recent ledger
// entry. It is never stored.
func currentStatus(repo repository.ProgressRepository, keyResultID int64) (model.KeyResultStatus, error) {
	entry, err := repo.LatestForKeyResult(keyResultID)
	if errors.Is(err, repository.ErrProgressEntryNotFound) {
		return model.StatusNotStarted, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load latest entry for key result %d: %w", keyResultID, err)
	}
	return entry.Status, nil
}
