package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gathr/internal/models/db_models"
	"gathr/internal/models/request_models"
	"gathr/internal/models/response_models"
	"gathr/internal/repositories"
	mem "gathr/pkg/memcache"
	"gathr/pkg/utils"
)

type UserServiceInterface interface {
	SignUp(ctx context.Context, req *request_models.SignUpRequest) (*response_models.AuthResponse, error)
	Login(ctx context.Context, req *request_models.LoginRequest) (*response_models.AuthResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*response_models.UserResponse, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req *request_models.ResetPasswordRequest) error
}

type userService struct {
	db          *gorm.DB
	users       repositories.UserRepositoryInterface
	mail        IMailService
	resetTokens mem.ResetTokenStore
}

func NewUserService(
	db *gorm.DB,
	users repositories.UserRepositoryInterface,
	mail IMailService,
	resetTokens mem.ResetTokenStore,
) UserServiceInterface {
	return &userService{db: db, users: users, mail: mail, resetTokens: resetTokens}
}

func (s *userService) SignUp(ctx context.Context, req *request_models.SignUpRequest) (*response_models.AuthResponse, error) {
	existing, err := s.users.FindByEmail(ctx, s.db, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &db_models.User{
		Name:         req.DisplayName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         "user",
	}
	if err := s.users.Insert(ctx, s.db, user); err != nil {
		return nil, err
	}

	return s.buildAuthResponse(user)
}

func (s *userService) Login(ctx context.Context, req *request_models.LoginRequest) (*response_models.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, s.db, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(user.PasswordHash, req.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	return s.buildAuthResponse(user)
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response_models.UserResponse, error) {
	user, err := s.users.FindByID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// RequestPasswordReset always reports success to the caller so the
// endpoint cannot be used to probe which emails are registered.
func (s *userService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, s.db, email)
	if err != nil {
		return err
	}
	if user == nil {
		log.Printf("user: password reset requested for unknown email")
		return nil
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return err
	}
	s.resetTokens.Set(token, user.Email, 15*time.Minute)

	go func() {
		if err := s.mail.SendMailToResetPassword(user.Email, token); err != nil {
			log.Printf("user: reset mail to %s failed: %v", user.Email, err)
		}
	}()
	return nil
}

func (s *userService) ResetPassword(ctx context.Context, req *request_models.ResetPasswordRequest) error {
	email := s.resetTokens.Consume(req.Token)
	if email == "" {
		return utils.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, s.db, email)
	if err != nil {
		return err
	}
	if user == nil {
		return utils.ErrAccountNotFound
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Save(ctx, s.db, user)
}

func (s *userService) buildAuthResponse(user *db_models.User) (*response_models.AuthResponse, error) {
	token, err := utils.CreateToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &response_models.AuthResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

func toUserResponse(user *db_models.User) response_models.UserResponse {
	return response_models.UserResponse{
		ID:                  user.ID.String(),
		Name:                user.Name,
		Email:               user.Email,
		Role:                user.Role,
		StripeAccountStatus: string(user.StripeAccountStatus),
	}
}
