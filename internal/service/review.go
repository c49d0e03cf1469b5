package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/templui/okrledger/internal/markdown"
	"github.com/templui/okrledger/internal/model"
	"github.com/templui/okrledger/internal/period"
	"github.com/templui/okrledger/internal/repository"
)

type ReviewService struct {
	repo          repository.QuarterlyReviewRepository
	objectiveRepo repository.ObjectiveRepository
	keyResultRepo repository.KeyResultRepository
	progressRepo  repository.ProgressRepository
	markdown      *markdown.Parser
}

func NewReviewService(
	repo repository.QuarterlyReviewRepository,
	objectiveRepo repository.ObjectiveRepository,
	keyResultRepo repository.KeyResultRepository,
	progressRepo repository.ProgressRepository,
	parser *markdown.Parser,
) *ReviewService {
	return &ReviewService{
		repo:          repo,
		objectiveRepo: objectiveRepo,
		keyResultRepo: keyResultRepo,
		progressRepo:  progressRepo,
		markdown:      parser,
	}
}

// Grade averages, across all key results of the objective, the metric value
// of each key result's latest entry inside the quarter. A key result with no
// entry or no value counts as 0. The result is clamped to [0, 1].
func (s *ReviewService) Grade(objectiveID int64, quarter period.Quarter) (float64, error) {
	_, err := s.objectiveRepo.ByID(objectiveID)
	if err != nil {
		return 0, err
	}

	keyResults, err := s.keyResultRepo.KeyResults(objectiveID)
	if err != nil {
		return 0, err
	}

	if len(keyResults) == 0 {
		return 0, nil
	}

	var total float64
	for _, keyResult := range keyResults {
		entries, err := s.progressRepo.InQuarter(keyResult.ID, quarter)
		if err != nil {
			return 0, fmt.Errorf("failed to load %s entries for key result %d: %w", quarter, keyResult.ID, err)
		}
		if len(entries) > 0 {
			total += entries[0].Value()
		}
	}

	return clamp(total / float64(len(keyResults))), nil
}

// Grading grades every objective of the user whose lifetime covers the quarter.
func (s *ReviewService) Grading(userID string, quarter period.Quarter) (model.Grading, error) {
	objectives, err := s.objectiveRepo.Objectives(userID)
	if err != nil {
		return nil, err
	}

	grading := model.Grading{}
	for _, objective := range objectives {
		if !activeIn(objective, quarter) {
			continue
		}

		grade, err := s.Grade(objective.ID, quarter)
		if err != nil {
			return nil, err
		}
		grading[objective.ID] = grade
	}

	return grading, nil
}

// SubmitQuarterlyReview saves the user's review for the quarter. The first
// save creates the record; later saves overwrite its narrative and grading in
// place. Overrides replace computed grades for objectives in the grading.
func (s *ReviewService) SubmitQuarterlyReview(userID string, quarter period.Quarter, overrides model.Grading, narrative model.Narrative) (*model.QuarterlyReview, error) {
	grading, err := s.Grading(userID, quarter)
	if err != nil {
		return nil, err
	}

	for objectiveID, grade := range overrides {
		if _, ok := grading[objectiveID]; !ok {
			slog.Warn("ignoring grade override for objective outside review",
				"user_id", userID, "objective_id", objectiveID, "quarter", quarter.String())
			continue
		}
		grading[objectiveID] = clamp(grade)
	}

	now := time.Now().UTC()

	review, err := s.repo.ByPeriod(userID, quarter)
	if err != nil && !errors.Is(err, repository.ErrQuarterlyReviewNotFound) {
		return nil, err
	}

	if review != nil {
		review.Narrative = narrative
		review.Grading = grading
		review.UpdatedAt = now

		err = s.repo.Update(review)
		if err != nil {
			return nil, fmt.Errorf("failed to update quarterly review: %w", err)
		}

		slog.Info("quarterly review updated", "review_id", review.ID, "user_id", userID, "quarter", quarter.String())
		return s.render(review), nil
	}

	review = &model.QuarterlyReview{
		UserID:      userID,
		Quarter:     quarter.Quarter,
		Year:        quarter.Year,
		Grading:     grading,
		SubmittedAt: now,
		UpdatedAt:   now,
		Narrative:   narrative,
	}

	err = s.repo.Create(review)
	if err != nil {
		return nil, fmt.Errorf("failed to create quarterly review: %w", err)
	}

	slog.Info("quarterly review created", "review_id", review.ID, "user_id", userID, "quarter", quarter.String())
	return s.render(review), nil
}

func (s *ReviewService) QuarterlyReview(userID string, quarter period.Quarter) (*model.QuarterlyReview, error) {
	review, err := s.repo.ByPeriod(userID, quarter)
	if err != nil {
		return nil, err
	}
	return s.render(review), nil
}

// QuarterlyReviews returns all of the user's reviews, newest quarter first.
func (s *ReviewService) QuarterlyReviews(userID string) ([]*model.QuarterlyReview, error) {
	reviews, err := s.repo.Reviews(userID)
	if err != nil {
		return nil, err
	}

	for _, review := range reviews {
		s.render(review)
	}
	return reviews, nil
}

// render fills NarrativeHTML. Rendering failures leave it empty.
func (s *ReviewService) render(review *model.QuarterlyReview) *model.QuarterlyReview {
	if s.markdown == nil {
		return review
	}

	html, err := s.markdown.RenderNarrative(review.Narrative)
	if err != nil {
		slog.Warn("failed to render review narrative", "error", err, "review_id", review.ID)
		return review
	}

	review.NarrativeHTML = html
	return review
}

func activeIn(objective *model.Objective, quarter period.Quarter) bool {
	for _, q := range period.QuarterRange(objective.CreatedAt, objective.DueDate) {
		if q == quarter {
			return true
		}
	}
	return false
}

func clamp(v float64) float64 {
	return min(max(v, 0), 1)
}
