package service

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/templui/okrledger/internal/model"
	"github.com/templui/okrledger/internal/repository"
	"github.com/templui/okrledger/internal/validation"
)

// UserService mirrors identities from the external identity provider so
// objectives, ledger rows and reviews can reference them.
type UserService struct {
	userRepository repository.UserRepository
}

func NewUserService(userRepository repository.UserRepository) *UserService {
	return &UserService{
		userRepository: userRepository,
	}
}

func (s *UserService) Register(email, name string, admin bool) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, err
	}

	role := model.RoleMember
	if admin {
		role = model.RoleAdmin
	}

	user := &model.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      strings.TrimSpace(name),
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}

	err = s.userRepository.Create(user)
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	slog.Info("user registered", "user_id", user.ID, "role", role)
	return user, nil
}

func (s *UserService) ByID(id string) (*model.User, error) {
	return s.userRepository.ByID(id)
}

func (s *UserService) ByEmail(email string) (*model.User, error) {
	return s.userRepository.ByEmail(strings.TrimSpace(strings.ToLower(email)))
}

func (s *UserService) Users() ([]*model.User, error) {
	return s.userRepository.Users()
}
