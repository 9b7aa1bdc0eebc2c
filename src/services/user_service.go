package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"portfolio/src/models"
	"portfolio/src/repositories"
	"portfolio/src/schemas"
)

type UserServiceI interface {
	List(ctx context.Context) ([]schemas.UserResponse, error)
	Create(ctx context.Context, req *schemas.CreateUserRequest) (*schemas.CreateUserResponse, error)
	VerifyPassword(ctx context.Context, userID int, password string) (*schemas.VerifyPasswordResponse, error)
	Update(ctx context.Context, userID int, req *schemas.UpdateUserRequest) error
	Delete(ctx context.Context, userID int) (bool, error)
}

type UserService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func (s *UserService) List(ctx context.Context) ([]schemas.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]schemas.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, schemas.UserResponse{
			UserID:    u.UserID,
			Username:  u.Username,
			Avatar:    u.Avatar,
			CreatedAt: u.CreatedAt,
		})
	}
	return responses, nil
}

func (s *UserService) Create(ctx context.Context, req *schemas.CreateUserRequest) (*schemas.CreateUserResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, NewError(KindInvalidInput, "Username and password are required")
	}

	existing, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, NewError(KindUserExists, "Username already exists")
	}

	user := &models.User{
		Username: req.Username,
		Password: hashPassword(req.Password),
		Avatar:   req.Avatar,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return &schemas.CreateUserResponse{
		Message:  "User created successfully",
		UserID:   user.UserID,
		Username: user.Username,
	}, nil
}

func (s *UserService) VerifyPassword(ctx context.Context, userID int, password string) (*schemas.VerifyPasswordResponse, error) {
	if password == "" {
		return nil, NewError(KindInvalidInput, "Password is required")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NewError(KindUserNotFound, "User not found")
	}
	if hashPassword(password) != user.Password {
		return nil, NewError(KindWrongPassword, "Password is incorrect")
	}
	return &schemas.VerifyPasswordResponse{
		Message:  "Password is correct",
		UserID:   user.UserID,
		Username: user.Username,
	}, nil
}

func (s *UserService) Update(ctx context.Context, userID int, req *schemas.UpdateUserRequest) error {
	if req.Username == "" || req.Password == "" {
		return NewError(KindInvalidInput, "Username and password are required")
	}

	user := &models.User{
		UserID:   userID,
		Username: req.Username,
		Password: hashPassword(req.Password),
		Avatar:   req.Avatar,
	}
	updated, err := s.userRepo.Update(ctx, user)
	if err != nil {
		return err
	}
	if !updated {
		return NewError(KindUserNotFound, "User not found")
	}
	return nil
}

func (s *UserService) Delete(ctx context.Context, userID int) (bool, error) {
	return s.userRepo.Delete(ctx, userID)
}
