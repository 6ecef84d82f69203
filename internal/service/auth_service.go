package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/freelance-bidding/internal/domain/entity"
	"github.com/ignatzorin/freelance-bidding/internal/domain/repository"
	"github.com/ignatzorin/freelance-bidding/internal/domain/valueobject"
	"github.com/ignatzorin/freelance-bidding/internal/logger"
	"github.com/ignatzorin/freelance-bidding/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-bidding/internal/validation"
	"github.com/sirupsen/logrus"
)

// AuthService инкапсулирует регистрацию и аутентификацию профилей.
type AuthService struct {
	profiles     repository.ProfileRepository
	tokenManager *TokenManager
	cost         int
}

// RegisterInput содержит данные пользователя при регистрации.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	Roles       []string
}

// LoginInput содержит данные для входа.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult возвращает итог регистрации или авторизации.
type AuthResult struct {
	Profile   *entity.Profile
	TokenPair *TokenPair
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(profiles repository.ProfileRepository, tokenManager *TokenManager) *AuthService {
	return &AuthService{
		profiles:     profiles,
		tokenManager: tokenManager,
		cost:         bcrypt.DefaultCost,
	}
}

// Register создаёт профиль с начальным набором ролей и выдаёт пару токенов.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	roles, err := valueobject.NewRoleSet(in.Roles...)
	if err != nil {
		return nil, err
	}

	displayName := strings.TrimSpace(in.DisplayName)
	if displayName == "" {
		displayName = deriveDisplayName(in.Email)
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("auth service: hash password: %w", err)
	}

	profile, err := entity.NewProfile(in.Email, string(passHash), displayName, roles)
	if err != nil {
		return nil, err
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}

	logger.L().WithFields(logrus.Fields{
		"profile_id": profile.ID,
		"roles":      profile.Roles.Strings(),
	}).Info("auth: profile registered")

	return s.issue(profile)
}

// Login проверяет пароль и выдаёт новую пару токенов.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	profile, err := s.profiles.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(in.Password)); err != nil {
		logger.L().WithField("profile_id", profile.ID).Warn("auth: invalid password")
		return nil, apperror.ErrInvalidCredentials
	}

	return s.issue(profile)
}

// Refresh выпускает новую пару по действующему refresh токену.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	profileID, err := s.tokenManager.ParseRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.FindByID(ctx, profileID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.ErrInvalidToken
		}
		return nil, err
	}

	return s.issue(profile)
}

func (s *AuthService) issue(profile *entity.Profile) (*AuthResult, error) {
	pair, err := s.tokenManager.GeneratePair(profile)
	if err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}
	return &AuthResult{Profile: profile, TokenPair: pair}, nil
}

func deriveDisplayName(email string) string {
	local, _, _ := strings.Cut(strings.TrimSpace(email), "@")
	return local
}
