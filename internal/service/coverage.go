package service

import (
	"errors"
	"time"

	"github.com/templui/okrledger/internal/model"
	"github.com/templui/okrledger/internal/period"
	"github.com/templui/okrledger/internal/repository"
)

// CoverageService derives review calendars. Nothing here is stored; every
// call recomputes the grid against the supplied now.
type CoverageService struct {
	objectiveRepo repository.ObjectiveRepository
	keyResultRepo repository.KeyResultRepository
	progressRepo  repository.ProgressRepository
	reviewRepo    repository.QuarterlyReviewRepository
}

func NewCoverageService(
	objectiveRepo repository.ObjectiveRepository,
	keyResultRepo repository.KeyResultRepository,
	progressRepo repository.ProgressRepository,
	reviewRepo repository.QuarterlyReviewRepository,
) *CoverageService {
	return &CoverageService{
		objectiveRepo: objectiveRepo,
		keyResultRepo: keyResultRepo,
		progressRepo:  progressRepo,
		reviewRepo:    reviewRepo,
	}
}

// KeyResultGrid is the monthly calendar of a key result, from its start to
// its objective's due date.
func (s *CoverageService) KeyResultGrid(keyResultID int64, now time.Time) (*model.KeyResultCoverage, error) {
	keyResult, err := s.keyResultRepo.ByID(keyResultID)
	if err != nil {
		return nil, err
	}

	objective, err := s.objectiveRepo.ByID(keyResult.ObjectiveID)
	if err != nil {
		return nil, err
	}

	slots, err := s.monthSlots(keyResult, objective, period.MonthOf(now))
	if err != nil {
		return nil, err
	}

	return &model.KeyResultCoverage{
		KeyResultID: keyResult.ID,
		ObjectiveID: objective.ID,
		Slots:       slots,
	}, nil
}

// ObjectiveGrid is the quarterly calendar of an objective. A quarter counts
// as reviewed when the objective's owner saved a quarterly review for it.
func (s *CoverageService) ObjectiveGrid(objectiveID int64, now time.Time) (*model.ObjectiveCoverage, error) {
	objective, err := s.objectiveRepo.ByID(objectiveID)
	if err != nil {
		return nil, err
	}

	current := period.QuarterOf(now)
	quarters := period.QuarterRange(objective.CreatedAt, objective.DueDate)
	slots := make([]model.QuarterSlot, 0, len(quarters))

	for _, q := range quarters {
		review, err := s.reviewRepo.ByPeriod(objective.UserID, q)
		if err != nil && !errors.Is(err, repository.ErrQuarterlyReviewNotFound) {
			return nil, err
		}

		slot := model.QuarterSlot{
			Quarter: q,
			State:   period.Classify(current, q, review != nil),
		}
		if review != nil {
			slot.ReviewID = review.ID
			if grade, ok := review.Grading[objective.ID]; ok {
				slot.Grade = &grade
			}
		}
		slots = append(slots, slot)
	}

	return &model.ObjectiveCoverage{
		ObjectiveID: objective.ID,
		Slots:       slots,
	}, nil
}

// MissingReviews lists every overdue or due-now month across the key results
// of the user's objectives.
func (s *CoverageService) MissingReviews(userID string, now time.Time) ([]model.MissingReview, error) {
	objectives, err := s.objectiveRepo.Objectives(userID)
	if err != nil {
		return nil, err
	}

	current := period.MonthOf(now)
	missing := []model.MissingReview{}

	for _, objective := range objectives {
		keyResults, err := s.keyResultRepo.KeyResults(objective.ID)
		if err != nil {
			return nil, err
		}

		for _, keyResult := range keyResults {
			slots, err := s.monthSlots(keyResult, objective, current)
			if err != nil {
				return nil, err
			}

			for _, slot := range slots {
				if !slot.State.Expected() {
					continue
				}
				missing = append(missing, model.MissingReview{
					ObjectiveID:    objective.ID,
					ObjectiveTitle: objective.Title,
					KeyResultID:    keyResult.ID,
					KeyResultTitle: keyResult.Title,
					Period:         slot.Month,
					State:          slot.State,
				})
			}
		}
	}

	return missing, nil
}

// monthSlots looks up the current entry of every month in the key result's
// range, one query per month.
func (s *CoverageService) monthSlots(keyResult *model.KeyResult, objective *model.Objective, current period.Month) ([]model.MonthSlot, error) {
	months := period.MonthRange(keyResult.StartedAt(objective), objective.DueDate)
	slots := make([]model.MonthSlot, 0, len(months))

	for _, m := range months {
		entry, err := s.progressRepo.LatestForPeriod(keyResult.ID, m)
		if err != nil && !errors.Is(err, repository.ErrProgressEntryNotFound) {
			return nil, err
		}

		slot := model.MonthSlot{
			Month: m,
			State: period.Classify(current, m, entry != nil),
		}
		if entry != nil {
			slot.EntryID = entry.ID
			slot.Value = entry.MetricValue
		}
		slots = append(slots, slot)
	}

	return slots, nil
}
