package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"medibook/internal/cache"
	apperrors "medibook/internal/errors"
	"medibook/internal/model"
	"medibook/internal/repository"
)

const (
	doctorDirectoryKey = "doctors:directory"
	doctorDirectoryTTL = 5 * time.Minute
)

// UserService covers the doctor directory and the admin user surface.
type UserService interface {
	// ListDoctors is the public directory patients book from.
	ListDoctors(ctx context.Context) ([]model.DoctorView, error)
	// ListDoctorsFull returns complete doctor records, approval flag
	// included. Admin only.
	ListDoctorsFull(ctx context.Context) ([]model.User, error)
	CreateDoctor(ctx context.Context, name, email, password, specialization string) (*model.User, error)
	SetApproval(ctx context.Context, id uint, approved bool) (*model.User, error)
	DeleteDoctor(ctx context.Context, id uint) error
}

type userService struct {
	users repository.UserRepository
	cache *cache.Client
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepository, cache *cache.Client) UserService {
	return &userService{
		users: users,
		cache: cache,
	}
}

// ListDoctors retrieves the doctor directory with caching.
func (s *userService) ListDoctors(ctx context.Context) ([]model.DoctorView, error) {
	if data, _ := s.cache.Get(ctx, doctorDirectoryKey); data != nil {
		var cached []model.DoctorView
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	doctors, err := s.users.ListByRole(ctx, model.RoleDoctor)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}

	views := make([]model.DoctorView, 0, len(doctors))
	for i := range doctors {
		views = append(views, doctors[i].PublicView())
	}

	if payload, err := json.Marshal(views); err == nil {
		_ = s.cache.Set(ctx, doctorDirectoryKey, payload, doctorDirectoryTTL)
	}

	return views, nil
}

func (s *userService) ListDoctorsFull(ctx context.Context) ([]model.User, error) {
	return s.users.ListByRole(ctx, model.RoleDoctor)
}

// CreateDoctor registers a doctor on behalf of an admin. The record
// still starts unapproved; approval is a separate admin action.
func (s *userService) CreateDoctor(ctx context.Context, name, email, password, specialization string) (*model.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	doctor := &model.User{
		Name:           name,
		Email:          email,
		PasswordHash:   string(hashedPassword),
		Role:           model.RoleDoctor,
		Specialization: specialization,
	}

	if err := s.users.Create(ctx, doctor); err != nil {
		return nil, fmt.Errorf("create doctor: %w", err)
	}

	_ = s.cache.Delete(ctx, doctorDirectoryKey)
	return doctor, nil
}

func (s *userService) SetApproval(ctx context.Context, id uint, approved bool) (*model.User, error) {
	if err := s.users.SetApproval(ctx, id, approved); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("set approval: %w", err)
	}

	_ = s.cache.Delete(ctx, doctorDirectoryKey)
	return s.users.FindByID(ctx, id)
}

func (s *userService) DeleteDoctor(ctx context.Context, id uint) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("delete doctor: %w", err)
	}

	_ = s.cache.Delete(ctx, doctorDirectoryKey)
	return nil
}
