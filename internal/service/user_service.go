package service

import (
	"errors"

	"github.com/google/uuid"

	"go-production-tracker/internal/model"
	"go-production-tracker/internal/repository"
)

var (
	ErrInvalidRole       = errors.New("invalid role, must be USER, ADMIN, or SUPER_ADMIN")
	ErrSelfDemotion      = errors.New("you cannot change your own role")
	ErrSelfDeactivation  = errors.New("you cannot deactivate your own account")
	ErrProfileFieldEmpty = errors.New("please provide full_name or email to update")
)

type UserService interface {
	GetUsers() ([]model.UserResponse, error)
	GetUser(id uuid.UUID) (*model.UserResponse, error)
	UpdateRole(targetID uuid.UUID, role model.Role, requesterID uuid.UUID) (*model.UserResponse, error)
	UpdateTeam(targetID uuid.UUID, team model.Team) (*model.UserResponse, error)
	UpdateStatus(targetID uuid.UUID, isActive bool, requesterID uuid.UUID) (*model.UserResponse, error)
	UpdateProfile(userID uuid.UUID, fullName, email string) (*model.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses, nil
}

func (s *userService) GetUser(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	response := user.ToResponse()
	return &response, nil
}

// UpdateRole promotes or demotes a user. Super admins cannot change their
// own role, so the system always keeps at least one.
func (s *userService) UpdateRole(targetID uuid.UUID, role model.Role, requesterID uuid.UUID) (*model.UserResponse, error) {
	if !model.ValidRole(role) {
		return nil, ErrInvalidRole
	}
	if targetID == requesterID && role != model.RoleSuperAdmin {
		return nil, ErrSelfDemotion
	}

	if _, err := s.userRepo.FindByID(targetID); err != nil {
		return nil, ErrUserNotFound
	}

	if err := s.userRepo.UpdateRole(targetID, role); err != nil {
		return nil, err
	}
	return s.GetUser(targetID)
}

func (s *userService) UpdateTeam(targetID uuid.UUID, team model.Team) (*model.UserResponse, error) {
	if !model.ValidTeam(team) {
		return nil, ErrInvalidTeam
	}

	if _, err := s.userRepo.FindByID(targetID); err != nil {
		return nil, ErrUserNotFound
	}

	if err := s.userRepo.UpdateTeam(targetID, team); err != nil {
		return nil, err
	}
	return s.GetUser(targetID)
}

func (s *userService) UpdateStatus(targetID uuid.UUID, isActive bool, requesterID uuid.UUID) (*model.UserResponse, error) {
	if targetID == requesterID {
		return nil, ErrSelfDeactivation
	}

	if _, err := s.userRepo.FindByID(targetID); err != nil {
		return nil, ErrUserNotFound
	}

	if err := s.userRepo.UpdateActive(targetID, isActive); err != nil {
		return nil, err
	}
	return s.GetUser(targetID)
}

func (s *userService) UpdateProfile(userID uuid.UUID, fullName, email string) (*model.UserResponse, error) {
	if fullName == "" && email == "" {
		return nil, ErrProfileFieldEmpty
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if fullName != "" {
		if len(fullName) < 2 {
			return nil, errors.New("full name must be at least 2 characters long")
		}
		user.FullName = fullName
	}

	if email != "" {
		if existing, _ := s.userRepo.FindByEmail(email); existing != nil && existing.ID != userID {
			return nil, errors.New("email already in use by another user")
		}
		user.Email = email
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	response := user.ToResponse()
	return &response, nil
}
