package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/templui/okrledger/internal/model"
	"github.com/templui/okrledger/internal/storage"
)

type ExportService struct {
	objectiveService *ObjectiveService
	progressService  *ProgressService
	coverageService  *CoverageService
	storage          storage.Storage
}

// NewExportService wires exports. store may be nil, in which case Archive
// returns ErrStorageDisabled.
func NewExportService(
	objectiveService *ObjectiveService,
	progressService *ProgressService,
	coverageService *CoverageService,
	store storage.Storage,
) *ExportService {
	return &ExportService{
		objectiveService: objectiveService,
		progressService:  progressService,
		coverageService:  coverageService,
		storage:          store,
	}
}

// Export collects an objective, its key results, their full ledger and
// their monthly calendars as of now.
func (s *ExportService) Export(objectiveID int64, now time.Time) (*model.ObjectiveExport, error) {
	objective, err := s.objectiveService.ByID(objectiveID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(objective.KeyResults))
	coverage := make([]*model.KeyResultCoverage, 0, len(objective.KeyResults))
	for _, keyResult := range objective.KeyResults {
		ids = append(ids, keyResult.ID)

		grid, err := s.coverageService.KeyResultGrid(keyResult.ID, now)
		if err != nil {
			return nil, err
		}
		coverage = append(coverage, grid)
	}

	history, err := s.progressService.History(ids, 0, 0)
	if err != nil {
		return nil, err
	}

	return &model.ObjectiveExport{
		ExportedAt: now.UTC(),
		Objective:  objective,
		Progress:   history,
		Coverage:   coverage,
	}, nil
}

// Archive stores the export as JSON in object storage.
func (s *ExportService) Archive(objectiveID int64, now time.Time) (*model.ExportArchive, error) {
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}

	export, err := s.Export(objectiveID, now)
	if err != nil {
		return nil, err
	}

	body, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}

	key := fmt.Sprintf("exports/objectives/%d/%s-%s.json", objectiveID, now.UTC().Format("20060102T150405Z"), uuid.New().String())
	err = s.storage.Save(key, bytes.NewReader(body), "application/json")
	if err != nil {
		return nil, err
	}

	url, err := s.storage.PresignedURL(key)
	if err != nil {
		return nil, err
	}

	slog.Info("objective export archived", "objective_id", objectiveID, "key", key)
	return &model.ExportArchive{Key: key, URL: url}, nil
}
