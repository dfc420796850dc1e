package service

import (
	"errors"
	"regexp"

	"github.com/google/uuid"

	"go-production-tracker/internal/model"
	"go-production-tracker/internal/repository"
	"go-production-tracker/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("your account has been deactivated, please contact admin")
	ErrEmailTaken         = errors.New("email already registered")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrWeakPassword       = errors.New("password must be at least 8 characters long and contain at least one uppercase letter, one lowercase letter, one number, and one special character (@$!%*?&)")
	ErrInvalidTeam        = errors.New("team must be VIDEO or PORTAL")
)

// The strength rule cannot be a single regexp because Go's re2 has no
// lookahead; each character class is checked separately.
var (
	hasLower   = regexp.MustCompile(`[a-z]`)
	hasUpper   = regexp.MustCompile(`[A-Z]`)
	hasDigit   = regexp.MustCompile(`\d`)
	hasSpecial = regexp.MustCompile(`[@$!%*?&]`)
)

type AuthService interface {
	Register(req *RegisterRequest) (*LoginResponse, error)
	Login(email, password string) (*LoginResponse, error)
	ChangePassword(userID uuid.UUID, currentPassword, newPassword string) (string, error)
	ValidateToken(tokenString string) (*model.UserResponse, error)
}

type RegisterRequest struct {
	FullName string     `json:"full_name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Team     model.Team `json:"team"`
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func validatePasswordStrength(password string) error {
	if len(password) < 8 ||
		!hasLower.MatchString(password) ||
		!hasUpper.MatchString(password) ||
		!hasDigit.MatchString(password) ||
		!hasSpecial.MatchString(password) {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a new account. The role is always USER; promotions are
// done by a super admin afterwards.
func (s *authService) Register(req *RegisterRequest) (*LoginResponse, error) {
	if req.FullName == "" || req.Email == "" || req.Password == "" || req.Team == "" {
		return nil, errors.New("please provide full_name, email, password, and team")
	}
	if !model.ValidTeam(req.Team) {
		return nil, ErrInvalidTeam
	}
	if err := validatePasswordStrength(req.Password); err != nil {
		return nil, err
	}

	if existing, _ := s.userRepo.FindByEmail(req.Email); existing != nil {
		return nil, ErrEmailTaken
	}

	user := &model.User{
		Email:    req.Email,
		FullName: req.FullName,
		Team:     req.Team,
		Role:     model.RoleUser,
		IsActive: true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}
	user.CreatedBy = req.Email
	user.UpdatedBy = req.Email

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return s.issueSession(user)
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		return nil, errors.New("failed to update session")
	}

	return s.issueSession(user)
}

// issueSession rotates the token version (single active session per user)
// and signs a fresh JWT.
func (s *authService) issueSession(user *model.User) (*LoginResponse, error) {
	newTokenVersion := uuid.New().String()
	if err := s.userRepo.UpdateTokenVersion(user.ID, newTokenVersion); err != nil {
		return nil, errors.New("failed to update session")
	}
	user.TokenVersion = newTokenVersion

	token, err := jwt.GenerateToken(user.ID, user.Email, user.FullName, string(user.Role), string(user.Team), newTokenVersion)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

// ChangePassword verifies the current password, stores the new one and
// returns a fresh token since the old session is invalidated.
func (s *authService) ChangePassword(userID uuid.UUID, currentPassword, newPassword string) (string, error) {
	if err := validatePasswordStrength(newPassword); err != nil {
		return "", err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return "", ErrUserNotFound
	}

	if !user.CheckPassword(currentPassword) {
		return "", ErrWrongPassword
	}

	if err := user.SetPassword(newPassword); err != nil {
		return "", errors.New("failed to hash new password")
	}
	if err := s.userRepo.Update(user); err != nil {
		return "", err
	}

	response, err := s.issueSession(user)
	if err != nil {
		return "", err
	}
	return response.Token, nil
}

func (s *authService) ValidateToken(tokenString string) (*model.UserResponse, error) {
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if user.TokenVersion != claims.TokenVersion {
		return nil, errors.New("session expired (logged in on another device)")
	}

	response := user.ToResponse()
	return &response, nil
}
