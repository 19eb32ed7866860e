package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/therisers/backoffice/internal/config"
	"github.com/therisers/backoffice/internal/dto"
	"github.com/therisers/backoffice/internal/mailer"
	"github.com/therisers/backoffice/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserFieldsNeeded   = errors.New("firstName, lastName, email and password are required")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrBranchNotFound     = errors.New("branch not found")
)

type AuthService struct {
	db       *gorm.DB
	cfg      *config.Config
	notifier mailer.Notifier
}

func NewAuthService(db *gorm.DB, cfg *config.Config, notifier mailer.Notifier) *AuthService {
	return &AuthService{db: db, cfg: cfg, notifier: notifier}
}

// UsernameBase is the deterministic first candidate: lowercase first
// name glued to lowercase last name.
func UsernameBase(firstName, lastName string) string {
	return strings.ToLower(strings.TrimSpace(firstName)) + strings.ToLower(strings.TrimSpace(lastName))
}

// GenerateUniqueUsername probes base, base1, base2, ... until a free
// username is found. The unique index on users.username is the guard
// against two concurrent registrations winning the same probe.
func (s *AuthService) GenerateUniqueUsername(firstName, lastName string) (string, error) {
	base := UsernameBase(firstName, lastName)
	username := base

	for counter := 1; ; counter++ {
		var existing models.User
		err := s.db.Where("username = ?", username).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return username, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to probe username %q: %w", username, err)
		}
		username = base + strconv.Itoa(counter)
	}
}

// RegisterManager creates a manager account and emails the starter
// credentials. When branchID is non-nil the new manager is linked to
// that branch.
func (s *AuthService) RegisterManager(req *dto.RegisterManagerRequest, branchID *uuid.UUID) (*dto.AuthResponse, error) {
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		return nil, ErrUserFieldsNeeded
	}
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	var branch models.Branch
	if branchID != nil {
		if err := s.db.First(&branch, "id = ?", *branchID).Error; err != nil {
			return nil, ErrBranchNotFound
		}
	}

	username, err := s.GenerateUniqueUsername(req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Username:    username,
		Email:       req.Email,
		Password:    string(hash),
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		City:        req.City,
		Role:        models.RoleManager,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if branchID != nil {
		if err := s.db.Model(&branch).Update("manager_id", user.ID).Error; err != nil {
			return nil, fmt.Errorf("failed to link manager to branch: %w", err)
		}
	}

	s.sendDetailsAsync(user.FullName(), user.Email, req.Password, "Manager")

	return s.authResponse(&user)
}

// CreateSubAdmin registers a sub-admin account.
func (s *AuthService) CreateSubAdmin(req *dto.CreateSubAdminRequest) (*models.User, error) {
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		return nil, ErrUserFieldsNeeded
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	username, err := s.GenerateUniqueUsername(req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleSubAdmin
	}

	user := models.User{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Username:    username,
		Email:       req.Email,
		Password:    string(hash),
		PhoneNumber: req.Phone,
		Role:        role,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create sub admin: %w", err)
	}

	s.sendDetailsAsync(user.FullName(), user.Email, req.Password, "Sub Admin")

	return &user, nil
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.authResponse(&user)
}

func (s *AuthService) authResponse(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		ID:          user.ID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Username:    user.Username,
		Email:       user.Email,
		Role:        user.Role,
		Address:     user.Address,
		PhoneNumber: user.PhoneNumber,
		City:        user.City,
		Token:       token,
	}, nil
}

func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// sendDetailsAsync emails the plaintext starter credentials without
// blocking or failing the registration.
func (s *AuthService) sendDetailsAsync(name, email, password, roleLabel string) {
	if s.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.notifier.SendAccountCreated(ctx, name, email, password, roleLabel); err != nil {
			slog.Error("account email failed", "email", email, "error", err)
		}
	}()
}
