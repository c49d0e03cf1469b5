package service

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/okrledger/internal/markdown"
	"github.com/templui/okrledger/internal/model"
	"github.com/templui/okrledger/internal/period"
	"github.com/templui/okrledger/internal/repository"
	"github.com/templui/okrledger/internal/testutil"
	"github.com/templui/okrledger/internal/validation"
)

type fixture struct {
	userID string
	admin  *model.User
	owner  *model.User

	users      repository.UserRepository
	objectives repository.ObjectiveRepository
	keyResults repository.KeyResultRepository
	progress   repository.ProgressRepository
	reviews    repository.QuarterlyReviewRepository

	objectiveService *ObjectiveService
	progressService  *ProgressService
	coverageService  *CoverageService
	reviewService    *ReviewService
}

func newFixture(t *testing.T) *fixture {
	database := testutil.NewDB(t)
	f := &fixture{
		users:      repository.NewUserRepository(database),
		objectives: repository.NewObjectiveRepository(database),
		keyResults: repository.NewKeyResultRepository(database),
		progress:   repository.NewProgressRepository(database),
		reviews:    repository.NewQuarterlyReviewRepository(database),
	}

	f.userID = testutil.InsertUser(t, database, "owner@example.com", model.RoleMember)
	adminID := testutil.InsertUser(t, database, "admin@example.com", model.RoleAdmin)

	var err error
	f.owner, err = f.users.ByID(f.userID)
	require.NoError(t, err)
	f.admin, err = f.users.ByID(adminID)
	require.NoError(t, err)

	f.objectiveService = NewObjectiveService(f.objectives, f.keyResults, f.progress)
	f.progressService = NewProgressService(f.progress, f.keyResults, f.objectives)
	f.coverageService = NewCoverageService(f.objectives, f.keyResults, f.progress, f.reviews)
	f.reviewService = NewReviewService(f.reviews, f.objectives, f.keyResults, f.progress, markdown.NewParser())
	return f
}

// objective bypasses the service so tests can use dates in the past.
func (f *fixture) objective(t *testing.T, createdAt, dueDate time.Time) *model.Objective {
	t.Helper()
	objective := &model.Objective{
		UserID:    f.userID,
		Title:     "Launch v2",
		CreatedAt: createdAt,
		DueDate:   dueDate,
	}
	require.NoError(t, f.objectives.Create(objective))
	return objective
}

func (f *fixture) keyResult(t *testing.T, objectiveID int64) *model.KeyResult {
	t.Helper()
	keyResult := &model.KeyResult{ObjectiveID: objectiveID, Title: "Ship the API"}
	require.NoError(t, f.keyResults.Create(keyResult))
	return keyResult
}

func (f *fixture) submit(t *testing.T, keyResultID int64, month, year int, status model.KeyResultStatus, value *float64) *model.ProgressEntry {
	t.Helper()
	entry, err := f.progressService.SubmitProgress(f.userID, true, validation.ProgressInput{
		KeyResultID: keyResultID,
		Status:      status,
		MetricValue: value,
		Month:       month,
		Year:        year,
	})
	require.NoError(t, err)
	return entry
}

func ptr(v float64) *float64 {
	return &v
}

func TestCheckProgress(t *testing.T) {
	tests := []struct {
		name    string
		status  model.KeyResultStatus
		metric  *float64
		wantErr string
	}{
		{"not started without value", model.StatusNotStarted, nil, ""},
		{"not started with zero", model.StatusNotStarted, ptr(0), ""},
		{"not started with progress", model.StatusNotStarted, ptr(0.4), "cannot set progress for Not Started"},
		{"in progress without value", model.StatusInProgress, nil, ""},
		{"in progress with value", model.StatusInProgress, ptr(0.5), ""},
		{"done with one", model.StatusDone, ptr(1), ""},
		{"done below one", model.StatusDone, ptr(0.9), "progress value must be 1.0 to mark as Done"},
		{"done without value", model.StatusDone, nil, "progress value must be a number when status is Done"},
		{"unknown status", model.KeyResultStatus("Blocked"), nil, "unknown status Blocked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckProgress(tt.status, tt.metric)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, validation.IsValidation(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSubmitProgressAppends(t *testing.T) {
	f := newFixture(t)
	objective := f.objective(t, testutil.Date(2025, time.January, 1), testutil.Date(2025, time.December, 31))
	keyResult := f.keyResult(t, objective.ID)

	first := f.submit(t, keyResult.ID, 3, 2025, model.StatusInProgress, ptr(0.3))
	second := f.submit(t, keyResult.ID, 3, 2025, model.StatusInProgress, ptr(0.5))
	assert.NotEqual(t, first.ID, second.ID)

	entries, err := f.progressService.Progress([]int64{keyResult.ID}, 3, 2025)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID)

	latest, err := f.progressService.LatestForPeriod(keyResult.ID, period.MonthOf(testutil.Date(2025, time.March, 1)))
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.InDelta(t, 0.5, latest.Value(), 1e-9)
}

func TestSubmitProgressRejections(t *testing.T) {
	f := newFixture(t)
	objective := f.objective(t, testutil.Date(2025, time.January, 1), testutil.Date(2025, time.December, 31))
	keyResult := f.keyResult(t, objective.ID)

	input := func(status model.KeyResultStatus, value *float64) validation.ProgressInput {
		return validation.ProgressInput{KeyResultID: keyResult.ID, Status: status, MetricValue: value, Month: 5, Year: 2025}
	}

	_, err := f.progressService.SubmitProgress(f.userID, true, input(model.StatusNotStarted, ptr(0.4)))
	assert.True(t, validation.IsValidation(err))

	_, err = f.progressService.SubmitProgress(f.userID, true, input(model.StatusDone, ptr(0.9)))
	assert.True(t, validation.IsValidation(err))

	bad := input(model.StatusInProgress, ptr(0.2))
	bad.Month = 13
	_, err = f.progressService.SubmitProgress(f.userID, true, bad)
	assert.True(t, validation.IsValidation(err))

	missing := input(model.StatusInProgress, ptr(0.2))
	missing.KeyResultID = 9999
	_, err = f.progressService.SubmitProgress(f.userID, true, missing)
	assert.True(t, IsNotFound(err))

	_, err = f.progressService.SubmitProgress(f.userID, false, input(model.StatusInProgress, ptr(0.2)))
	assert.ErrorIs(t, err, ErrForbidden)

	// Validation runs before the authorization decision is consulted.
	_, err = f.progressService.SubmitProgress(f.userID, false, input(model.StatusDone, ptr(0.5)))
	assert.True(t, validation.IsValidation(err))

	entries, err := f.progressService.Progress([]int64{keyResult.ID}, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)

	f.submit(t, keyResult.ID, 5, 2025, model.StatusNotStarted, nil)
	f.submit(t, keyResult.ID, 6, 2025, model.StatusDone, ptr(1))
}

func TestSubmitProgressOutsideKeyResultRange(t *testing.T) {
	f := newFixture(t)
	objective := f.objective(t, testutil.Date(2025, time.April, 3), testutil.Date(2025, time.June, 30))
	keyResult := f.keyResult(t, objective.ID)

	started := testutil.Date(2025, time.May, 20)
	late := &model.KeyResult{ObjectiveID: objective.ID, Title: "Late addition", CreatedAt: &started}
	require.NoError(t, f.keyResults.Create(late))

	tests := []struct {
		name        string
		keyResultID int64
		month, year int
	}{
		{"far future", keyResult.ID, 12, 2099},
		{"after due date", keyResult.ID, 7, 2025},
		{"before objective", keyResult.ID, 3, 2025},
		{"before key result start", late.ID, 4, 2025},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := f.progressService.SubmitProgress(f.userID, true, validation.ProgressInput{
				KeyResultID: tt.keyResultID,
				Status:      model.StatusDone,
				MetricValue: ptr(1),
				Month:       tt.month,
				Year:        tt.year,
			})
			assert.Nil(t, entry)
			require.Error(t, err)
			assert.True(t, validation.IsValidation(err))
			assert.Contains(t, err.Error(), "outside the key result's range")
		})
	}

	status, err := f.progressService.KeyResultStatus(keyResult.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusNotStarted, status)

	grade, err := f.reviewService.Grade(objective.ID, period.Quarter{Year: 2099, Quarter: 4})
	require.NoError(t, err)
	assert.Zero(t, grade)

	// Both ends of the range are accepted.
	f.submit(t, keyResult.ID, 4, 2025, model.StatusInProgress, ptr(0.1))
	f.submit(t, keyResult.ID, 6, 2025, model.StatusInProgress, ptr(0.3))
	f.submit(t, late.ID, 5, 2025, model.StatusInProgress, ptr(0.2))
}

func TestKeyResultStatusFollowsLatestEntry(t *testing.T) {
	f := newFixture(t)
	objective := f.objective(t, testutil.Date(2025, time.January, 1), testutil.Date(2025, time.December, 31))
	keyResult := f.keyResult(t, objective.ID)

	status, err := f.progressService.KeyResultStatus(keyResult.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusNotStarted, status)

	f.submit(t, keyResult.ID, 2, 2025, model.StatusInProgress, ptr(0.5))
	f.submit(t, keyResult.ID, 3, 2025, model.StatusDone, ptr(1))

	status, err = f.progressService.KeyResultStatus(keyResult.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDone, status)

	loaded, err := f.objectiveService.ByID(objective.ID)
	require.NoError(t, err)
	require.Len(t, loaded.KeyResults, 1)
	assert.Equal(t, model.StatusDone, loaded.KeyResults[0].Status)

	_, err = f.progressService.KeyResultStatus(9999)
	assert.True(t, IsNotFound(err))
}

func TestKeyResultGrid(t *testing.T) {
	f := newFixture(t)
	objective := f.objective(t, testutil.Date(2025, time.April, 3), testutil.Date(2025, time.August, 20))
	keyResult := f.keyResult(t, objective.ID)
	f.submit(t, keyResult.ID, 4, 2025, model.StatusInProgress, ptr(0.2))

	grid, err := f.coverageService.KeyResultGrid(keyResult.ID, testutil.Date(2025, time.June, 15))
	require.NoError(t, err)
	require.Len(t, grid.Slots, 5)

	want := []period.SlotState{period.SlotReviewed, period.SlotOverdue, period.SlotDueNow, period.SlotFuture, period.SlotFuture}
	for i, slot := range grid.Slots {
		assert.Equal(t, 4+i, slot.Month.Month)
		assert.Equal(t, want[i], slot.State, "month %d", slot.Month.Month)
	}
	require.NotNil(t, grid.Slots[0].Value)
	assert.InDelta(t, 0.2, *grid.Slots[0].Value, 1e-9)
	assert.Nil(t, grid.Slots[1].Value)

	missing, err := f.coverageService.MissingReviews(f.userID, testutil.Date(2025, time.June, 15))
	require.NoError(t, err)
	require.Len(t, missing, 2)
	assert.Equal(t, period.SlotOverdue, missing[0].State)
	assert.Equal(t, 5, missing[0].Period.Month)
	assert.Equal(t, period.SlotDueNow, missing[1].State)
}

func TestKeyResultGridStartsAtKeyResultCreation(t *testing.T) {
	f := newFixture(t)
	objective := f.objective(t, testutil.Date(2025, time.January, 3), testutil.Date(2025, time.June, 30))

	started := testutil.Date(2025, time.April, 10)
	keyResult := &model.KeyResult{ObjectiveID: objective.ID, Title: "Late addition", CreatedAt: &started}
	require.NoError(t, f.keyResults.Create(keyResult))

	grid, err := f.coverageService.KeyResultGrid(keyResult.ID, testutil.Date(2025, time.May, 1))
	require.NoError(t, err)
	require.Len(t, grid.Slots, 3)
	assert.Equal(t, 4, grid.Slots[0].Month.Month)
}

func TestAddKeyResultKeepsCallerCalendarDate(t *testing.T) {
	f := newFixture(t)
	objective := f.objective(t, testutil.Date(2025, time.January, 3), testutil.Date(2025, time.June, 30))

	plusTwo := time.FixedZone("UTC+2", 2*60*60)
	createdAt := time.Date(2025, time.April, 1, 0, 30, 0, 0, plusTwo)
	keyResult, err := f.objectiveService.AddKeyResult(objective.ID, "Early April", &createdAt)
	require.NoError(t, err)
	require.NotNil(t, keyResult.CreatedAt)
	assert.Equal(t, period.Month{Year: 2025, Month: 4}, period.MonthOf(*keyResult.CreatedAt))

	grid, err := f.coverageService.KeyResultGrid(keyResult.ID, testutil.Date(2025, time.May, 1))
	require.NoError(t, err)
	require.Len(t, grid.Slots, 3)
	assert.Equal(t, 4, grid.Slots[0].Month.Month)

	_, err = f.progressService.SubmitProgress(f.userID, true, validation.ProgressInput{
		KeyResultID: keyResult.ID,
		Status:      model.StatusInProgress,
		MetricValue: ptr(0.1),
		Month:       3,
		Year:        2025,
	})
	assert.True(t, validation.IsValidation(err))
}

func TestObjectiveGrid(t *testing.T) {
	f := newFixture(t)
	objective := f.objective(t, testutil.Date(2025, time.February, 1), testutil.Date(2025, time.November, 30))
	keyResult := f.keyResult(t, objective.ID)
	f.submit(t, keyResult.ID, 2, 2025, model.StatusInProgress, ptr(0.7))

	_, err := f.reviewService.SubmitQuarterlyReview(f.userID, period.Quarter{Year: 2025, Quarter: 1}, nil, model.Narrative{})
	require.NoError(t, err)

	grid, err := f.coverageService.ObjectiveGrid(objective.ID, testutil.Date(2025, time.August, 1))
	require.NoError(t, err)
	require.Len(t, grid.Slots, 4)

	assert.Equal(t, period.SlotReviewed, grid.Slots[0].State)
	require.NotNil(t, grid.Slots[0].Grade)
	assert.InDelta(t, 0.7, *grid.Slots[0].Grade, 1e-9)
	assert.Equal(t, period.SlotOverdue, grid.Slots[1].State)
	assert.Equal(t, period.SlotDueNow, grid.Slots[2].State)
	assert.Equal(t, period.SlotFuture, grid.Slots[3].State)
	assert.Nil(t, grid.Slots[1].Grade)
}

func TestQuarterlyGrading(t *testing.T) {
	f := newFixture(t)
	q2 := period.Quarter{Year: 2025, Quarter: 2}

	objective := f.objective(t, testutil.Date(2025, time.January, 10), testutil.Date(2025, time.December, 31))
	first := f.keyResult(t, objective.ID)
	second := f.keyResult(t, objective.ID)

	f.submit(t, first.ID, 4, 2025, model.StatusInProgress, ptr(0.2))
	f.submit(t, first.ID, 5, 2025, model.StatusInProgress, ptr(0.8))
	f.submit(t, second.ID, 6, 2025, model.StatusInProgress, ptr(0.4))
	// Outside the quarter.
	f.submit(t, second.ID, 7, 2025, model.StatusDone, ptr(1))

	grade, err := f.reviewService.Grade(objective.ID, q2)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, grade, 1e-9)

	empty := f.objective(t, testutil.Date(2025, time.January, 10), testutil.Date(2025, time.December, 31))
	f.keyResult(t, empty.ID)
	grade, err = f.reviewService.Grade(empty.ID, q2)
	require.NoError(t, err)
	assert.Zero(t, grade)

	noKeyResults := f.objective(t, testutil.Date(2025, time.January, 10), testutil.Date(2025, time.December, 31))
	grade, err = f.reviewService.Grade(noKeyResults.ID, q2)
	require.NoError(t, err)
	assert.Zero(t, grade)

	_, err = f.reviewService.Grade(9999, q2)
	assert.ErrorIs(t, err, repository.ErrObjectiveNotFound)
	assert.True(t, IsNotFound(err))

	// Ended before Q2, so it is not part of the grading.
	ended := f.objective(t, testutil.Date(2025, time.January, 10), testutil.Date(2025, time.March, 31))

	grading, err := f.reviewService.Grading(f.userID, q2)
	require.NoError(t, err)
	assert.Len(t, grading, 3)
	assert.NotContains(t, grading, ended.ID)
	assert.InDelta(t, 0.6, grading[objective.ID], 1e-9)
}

func TestGradeClampsAboveOne(t *testing.T) {
	f := newFixture(t)
	objective := f.objective(t, testutil.Date(2025, time.January, 10), testutil.Date(2025, time.December, 31))
	keyResult := f.keyResult(t, objective.ID)
	f.submit(t, keyResult.ID, 1, 2025, model.StatusInProgress, ptr(1.7))

	grade, err := f.reviewService.Grade(objective.ID, period.Quarter{Year: 2025, Quarter: 1})
	require.NoError(t, err)
	assert.Equal(t, 1.0, grade)
}

func TestSubmitQuarterlyReviewUpserts(t *testing.T) {
	f := newFixture(t)
	q1 := period.Quarter{Year: 2025, Quarter: 1}
	objective := f.objective(t, testutil.Date(2025, time.January, 10), testutil.Date(2025, time.June, 30))
	keyResult := f.keyResult(t, objective.ID)
	f.submit(t, keyResult.ID, 2, 2025, model.StatusInProgress, ptr(0.5))

	first, err := f.reviewService.SubmitQuarterlyReview(f.userID, q1, nil, model.Narrative{Achievements: "Shipped **beta**"})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, first.Grading[objective.ID], 1e-9)
	assert.Contains(t, first.NarrativeHTML["achievements"], "<strong>beta</strong>")

	overrides := model.Grading{objective.ID: 0.9, 424242: 0.3}
	second, err := f.reviewService.SubmitQuarterlyReview(f.userID, q1, overrides, model.Narrative{Achievements: "Shipped GA", Lessons: "Plan earlier"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	reviews, err := f.reviewService.QuarterlyReviews(f.userID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)

	stored, err := f.reviewService.QuarterlyReview(f.userID, q1)
	require.NoError(t, err)
	assert.Equal(t, "Shipped GA", stored.Achievements)
	assert.Equal(t, "Plan earlier", stored.Lessons)
	assert.InDelta(t, 0.9, stored.Grading[objective.ID], 1e-9)
	assert.NotContains(t, stored.Grading, int64(424242))

	_, err = f.reviewService.QuarterlyReview(f.userID, period.Quarter{Year: 2024, Quarter: 4})
	assert.True(t, IsNotFound(err))
}

func TestObjectiveLifecycle(t *testing.T) {
	f := newFixture(t)

	_, err := f.objectiveService.Create(f.userID, "Past", "", time.Now().AddDate(0, 0, -1))
	assert.True(t, validation.IsValidation(err))

	_, err = f.objectiveService.Create(f.userID, "  ", "", time.Now().AddDate(0, 1, 0))
	assert.True(t, validation.IsValidation(err))

	objective, err := f.objectiveService.Create(f.userID, " Grow ", "desc", time.Now().AddDate(0, 3, 0))
	require.NoError(t, err)
	assert.Equal(t, "Grow", objective.Title)

	keyResult, err := f.objectiveService.AddKeyResult(objective.ID, "Hit 100 users", nil)
	require.NoError(t, err)
	assert.Equal(t, model.StatusNotStarted, keyResult.Status)

	tooLate := time.Now().AddDate(1, 0, 0)
	_, err = f.objectiveService.AddKeyResult(objective.ID, "Later", &tooLate)
	assert.True(t, validation.IsValidation(err))

	_, err = f.objectiveService.AddKeyResult(9999, "Orphan", nil)
	assert.True(t, IsNotFound(err))

	assert.True(t, f.objectiveService.CanAct(f.owner, objective))
	assert.True(t, f.objectiveService.CanAct(f.admin, objective))
	assert.False(t, f.objectiveService.CanAct(&model.User{ID: "someone-else", Role: model.RoleMember}, objective))
	assert.False(t, f.objectiveService.CanAct(nil, objective))

	canAct, err := f.objectiveService.CanActOnKeyResult(f.owner, keyResult.ID)
	require.NoError(t, err)
	assert.True(t, canAct)

	require.NoError(t, f.objectiveService.Update(f.owner, objective.ID, "Grow more", "", time.Time{}))

	require.NoError(t, f.objectiveService.Delete(objective.ID))
	_, err = f.objectiveService.ByID(objective.ID)
	assert.True(t, IsNotFound(err))
}

func TestObjectiveLockedAfterDueDate(t *testing.T) {
	f := newFixture(t)
	objective := f.objective(t, testutil.Date(2024, time.January, 1), testutil.Date(2024, time.June, 30))

	err := f.objectiveService.Update(f.owner, objective.ID, "Rename", "", time.Time{})
	assert.ErrorIs(t, err, ErrObjectiveLocked)

	err = f.objectiveService.Update(f.admin, objective.ID, "Rename", "", time.Time{})
	require.NoError(t, err)

	loaded, err := f.objectiveService.ByID(objective.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rename", loaded.Title)
}

type memoryStorage struct {
	objects map[string][]byte
}

func (m *memoryStorage) Save(key string, body io.Reader, contentType string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.objects[key] = data
	return nil
}

func (m *memoryStorage) PresignedURL(key string) (string, error) {
	return "https://storage.example.com/" + key, nil
}

func TestExport(t *testing.T) {
	f := newFixture(t)
	objective := f.objective(t, testutil.Date(2025, time.April, 1), testutil.Date(2025, time.June, 30))
	keyResult := f.keyResult(t, objective.ID)
	f.submit(t, keyResult.ID, 4, 2025, model.StatusInProgress, ptr(0.4))

	now := testutil.Date(2025, time.May, 10)

	disabled := NewExportService(f.objectiveService, f.progressService, f.coverageService, nil)
	export, err := disabled.Export(objective.ID, now)
	require.NoError(t, err)
	assert.Equal(t, objective.ID, export.Objective.ID)
	assert.Len(t, export.Progress[keyResult.ID], 1)
	require.Len(t, export.Coverage, 1)
	assert.Len(t, export.Coverage[0].Slots, 3)

	_, err = disabled.Archive(objective.ID, now)
	assert.ErrorIs(t, err, ErrStorageDisabled)

	store := &memoryStorage{objects: map[string][]byte{}}
	enabled := NewExportService(f.objectiveService, f.progressService, f.coverageService, store)
	archive, err := enabled.Archive(objective.ID, now)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(archive.Key, fmt.Sprintf("exports/objectives/%d/", objective.ID)))
	assert.Equal(t, "https://storage.example.com/"+archive.Key, archive.URL)
	assert.True(t, bytes.Contains(store.objects[archive.Key], []byte(`"exported_at"`)))

	_, err = enabled.Archive(9999, now)
	assert.True(t, IsNotFound(err))
}

func TestReminders(t *testing.T) {
	f := newFixture(t)
	objective := f.objective(t, testutil.Date(2025, time.April, 1), testutil.Date(2025, time.June, 30))
	f.keyResult(t, objective.ID)

	emails := NewEmailService("", "noreply@example.com", "http://localhost:8090", "OKR Ledger", true)
	reminders := NewReminderService(f.users, f.coverageService, emails)

	sent, err := reminders.Run(testutil.Date(2025, time.May, 10))
	require.NoError(t, err)
	// Only the owner has missing months; the admin owns nothing.
	assert.Equal(t, 1, sent)
}

func TestMissingReviewsEmailTemplate(t *testing.T) {
	missing := []model.MissingReview{
		{ObjectiveTitle: "Launch v2", KeyResultTitle: "Ship the API", Period: period.Month{Year: 2025, Month: 5}, State: period.SlotOverdue},
		{ObjectiveTitle: "Launch v2", KeyResultTitle: "Ship the API", Period: period.Month{Year: 2025, Month: 6}, State: period.SlotDueNow},
	}

	subject, body := missingReviewsEmailTemplate("Ada", missing, "https://okr.example.com", "OKR Ledger")
	assert.Equal(t, "1 overdue progress updates in OKR Ledger", subject)
	assert.Contains(t, body, "Hi Ada")
	assert.Contains(t, body, "- Launch v2 / Ship the API: 2025-05 (overdue)")
	assert.Contains(t, body, "2025-06 (due now)")
}

func TestEmailServiceWithoutClient(t *testing.T) {
	emails := NewEmailService("", "noreply@example.com", "http://localhost", "OKR Ledger", false)
	err := emails.SendMissingReviewsEmail(&model.User{Email: "a@example.com"}, []model.MissingReview{{State: period.SlotDueNow}})
	assert.Error(t, err)

	assert.NoError(t, emails.SendMissingReviewsEmail(&model.User{Email: "a@example.com"}, nil))
}

func TestAuthActor(t *testing.T) {
	f := newFixture(t)
	auth := NewAuthService(f.users, "secret", time.Hour)

	token, err := auth.GenerateJWT(f.owner)
	require.NoError(t, err)

	actor, err := auth.Actor(token)
	require.NoError(t, err)
	assert.Equal(t, f.userID, actor.ID)

	_, err = auth.Actor("not-a-token")
	assert.Error(t, err)

	expired := NewAuthService(f.users, "secret", -time.Hour)
	token, err = expired.GenerateJWT(f.owner)
	require.NoError(t, err)
	_, err = auth.Actor(token)
	assert.Error(t, err)

	ghost, err := auth.GenerateJWT(&model.User{ID: "missing"})
	require.NoError(t, err)
	_, err = auth.Actor(ghost)
	assert.True(t, IsNotFound(err))
}

func TestUserService(t *testing.T) {
	f := newFixture(t)
	users := NewUserService(f.users)

	user, err := users.Register(" Grace@Example.com ", "Grace", true)
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", user.Email)
	assert.True(t, user.IsAdmin())

	_, err = users.Register("grace@example.com", "Again", false)
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	_, err = users.Register("nope", "", false)
	assert.True(t, validation.IsValidation(err))

	found, err := users.ByEmail("GRACE@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	all, err := users.Users()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
