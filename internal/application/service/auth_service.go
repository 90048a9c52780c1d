package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/entity"
	"github.com/fedotiuk-dm/aksi-wizard-api/internal/domain/repository"
	"github.com/fedotiuk-dm/aksi-wizard-api/pkg/apperror"
	"github.com/fedotiuk-dm/aksi-wizard-api/pkg/utils"
)

// AuthService handles operator authentication
type AuthService struct {
	operatorRepo repository.OperatorRepository
	jwtManager   *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(operatorRepo repository.OperatorRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{operatorRepo: operatorRepo, jwtManager: jwtManager}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	Operator     *entity.Operator
	AccessToken  string
	RefreshToken string
}

// Login authenticates an operator and returns tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	operator, err := s.operatorRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if operator == nil || !operator.Active {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(input.Password, operator.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	branchID := uuid.Nil
	if operator.BranchID != nil {
		branchID = *operator.BranchID
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(operator.ID, operator.Email, operator.Role, branchID)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(operator.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		Operator:     operator,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	operatorID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	operator, err := s.operatorRepo.GetByID(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	if operator == nil || !operator.Active {
		return nil, apperror.ErrInvalidToken
	}

	branchID := uuid.Nil
	if operator.BranchID != nil {
		branchID = *operator.BranchID
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(operator.ID, operator.Email, operator.Role, branchID)
	if err != nil {
		return nil, err
	}

	newRefreshToken, err := s.jwtManager.GenerateRefreshToken(operator.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		Operator:     operator,
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// GetOperator returns the operator by ID
func (s *AuthService) GetOperator(ctx context.Context, id uuid.UUID) (*entity.Operator, error) {
	operator, err := s.operatorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if operator == nil {
		return nil, apperror.NewNotFoundError("Operator")
	}
	return operator, nil
}

// ChangePasswordInput represents the change password input
type ChangePasswordInput struct {
	OperatorID      uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// ChangePassword changes an operator's password
func (s *AuthService) ChangePassword(ctx context.Context, input *ChangePasswordInput) error {
	operator, err := s.operatorRepo.GetByID(ctx, input.OperatorID)
	if err != nil {
		return err
	}
	if operator == nil {
		return apperror.NewNotFoundError("Operator")
	}

	if !utils.CheckPasswordHash(input.CurrentPassword, operator.Password) {
		return apperror.NewBadRequestError("Current password is incorrect")
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	operator.Password = hashed
	return s.operatorRepo.Update(ctx, operator)
}
