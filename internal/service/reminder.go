package service

import (
	"log/slog"
	"time"

	"github.com/templui/okrledger/internal/repository"
)

// ReminderService emails every user their overdue and due-now months.
type ReminderService struct {
	userRepository  repository.UserRepository
	coverageService *CoverageService
	emailService    *EmailService
}

func NewReminderService(
	userRepository repository.UserRepository,
	coverageService *CoverageService,
	emailService *EmailService,
) *ReminderService {
	return &ReminderService{
		userRepository:  userRepository,
		coverageService: coverageService,
		emailService:    emailService,
	}
}

// Run returns how many users were reminded. A failed send is logged and
// does not stop the remaining users.
func (s *ReminderService) Run(now time.Time) (int, error) {
	users, err := s.userRepository.Users()
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, user := range users {
		missing, err := s.coverageService.MissingReviews(user.ID, now)
		if err != nil {
			return sent, err
		}
		if len(missing) == 0 {
			continue
		}

		err = s.emailService.SendMissingReviewsEmail(user, missing)
		if err != nil {
			slog.Error("failed to send reminder", "error", err, "user_id", user.ID)
			continue
		}
		sent++
	}

	slog.Info("reminders finished", "users", len(users), "sent", sent)
	return sent, nil
}
