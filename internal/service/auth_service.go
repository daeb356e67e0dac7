package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lshigami/interview-coach/internal/apperror"
	"github.com/lshigami/interview-coach/internal/model"
	"github.com/lshigami/interview-coach/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	msgAllFieldsRequired    = "All fields are required."
	msgUsernameTaken        = "Username already exists."
	msgEmailTaken           = "Email already registered."
	msgUserExists           = "User already exists."
	msgInvalidCredentials   = "Invalid username or password."
	msgNoActiveAccount      = "No active account found with the given credentials"
	msgRefreshRequired      = "Refresh token is required."
	msgInvalidOrExpired     = "Invalid or expired token."
	msgTokenInvalidOrExpire = "Token is invalid or expired"
	msgAuthRequired         = "Authentication credentials were not provided."
)

type AuthResult struct {
	User   *model.User
	Tokens *TokenPair
}

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*AuthResult, error)
	Login(ctx context.Context, creds LoginCredentials) (*AuthResult, error)
	ObtainPair(ctx context.Context, creds LoginCredentials) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	Authenticate(ctx context.Context, accessToken string) (*model.User, error)
}

type authService struct {
	userRepo      repository.UserRepository
	blacklistRepo repository.TokenBlacklistRepository
	cache         BlacklistCache
	tokens        TokenService
	validator     *credentialsValidator
}

func NewAuthService(
	userRepo repository.UserRepository,
	blacklistRepo repository.TokenBlacklistRepository,
	cache BlacklistCache,
	tokens TokenService,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		blacklistRepo: blacklistRepo,
		cache:         cache,
		tokens:        tokens,
		validator:     newCredentialsValidator(),
	}
}

func (s *authService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, apperror.Validation(msgAllFieldsRequired)
	}

	taken, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, apperror.Internal("failed to register user", err)
	}
	if taken {
		return nil, apperror.Validation(msgUsernameTaken)
	}
	taken, err = s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal("failed to register user", err)
	}
	if taken {
		return nil, apperror.Validation(msgEmailTaken)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal("failed to register user", err)
	}
	user := &model.User{Username: username, Email: email, Password: string(hash)}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Validation(msgUserExists)
		}
		return nil, apperror.Internal("failed to register user", err)
	}
	log.Info().Uint("userID", user.ID).Str("username", user.Username).Msg("User registered")

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, apperror.Internal("failed to issue tokens", err)
	}
	return &AuthResult{User: user, Tokens: pair}, nil
}

func (s *authService) Login(ctx context.Context, creds LoginCredentials) (*AuthResult, error) {
	creds.Username = strings.TrimSpace(creds.Username)
	if fields := s.validator.Fields(creds); fields != nil {
		return nil, apperror.ValidationFields(fields)
	}
	user, err := s.checkCredentials(ctx, creds)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ValidationFields(map[string][]string{nonFieldErrorsKey: {msgInvalidCredentials}})
	}
	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, apperror.Internal("failed to issue tokens", err)
	}
	return &AuthResult{User: user, Tokens: pair}, nil
}

func (s *authService) ObtainPair(ctx context.Context, creds LoginCredentials) (*TokenPair, error) {
	creds.Username = strings.TrimSpace(creds.Username)
	if fields := s.validator.Fields(creds); fields != nil {
		return nil, apperror.ValidationFields(fields)
	}
	user, err := s.checkCredentials(ctx, creds)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.Unauthorized(msgNoActiveAccount)
	}
	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, apperror.Internal("failed to issue tokens", err)
	}
	return pair, nil
}

// checkCredentials returns nil, nil when the username is unknown or the
// password does not match.
func (s *authService) checkCredentials(ctx context.Context, creds LoginCredentials) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, creds.Username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.Internal("failed to authenticate", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)) != nil {
		return nil, nil
	}
	return user, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, apperror.ValidationFields(map[string][]string{"refresh": {fieldRequiredMessage}})
	}
	claims, err := s.tokens.Parse(refreshToken, TokenTypeRefresh)
	if err != nil {
		return nil, apperror.Unauthorized(msgTokenInvalidOrExpire)
	}
	revoked, err := s.isBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, apperror.Internal("failed to refresh token", err)
	}
	if revoked {
		return nil, apperror.Unauthorized(msgTokenInvalidOrExpire)
	}
	if _, err := s.userRepo.FindByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized(msgTokenInvalidOrExpire)
		}
		return nil, apperror.Internal("failed to refresh token", err)
	}

	access, err := s.tokens.IssueAccess(claims.UserID)
	if err != nil {
		return nil, apperror.Internal("failed to issue tokens", err)
	}
	return &TokenPair{Access: access, Refresh: refreshToken}, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return apperror.Validation(msgRefreshRequired)
	}
	claims, err := s.tokens.Parse(refreshToken, TokenTypeRefresh)
	if err != nil {
		return apperror.Validation(msgInvalidOrExpired)
	}

	entry := &model.TokenBlacklist{
		JTI:       claims.ID,
		UserID:    claims.UserID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if err := s.blacklistRepo.Add(ctx, entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Validation(msgInvalidOrExpired)
		}
		return apperror.Internal("failed to blacklist token", err)
	}
	if err := s.cache.Add(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
		log.Warn().Err(err).Str("jti", claims.ID).Msg("Failed to cache blacklisted token")
	}
	log.Info().Uint("userID", claims.UserID).Msg("User logged out")
	return nil
}

func (s *authService) isBlacklisted(ctx context.Context, jti string) (bool, error) {
	cached, err := s.cache.Contains(ctx, jti)
	if err != nil {
		log.Warn().Err(err).Msg("Token blacklist cache lookup failed, falling back to database")
	} else if cached {
		return true, nil
	}
	return s.blacklistRepo.Exists(ctx, jti)
}

func (s *authService) Authenticate(ctx context.Context, accessToken string) (*model.User, error) {
	if accessToken == "" {
		return nil, apperror.Unauthorized(msgAuthRequired)
	}
	claims, err := s.tokens.Parse(accessToken, TokenTypeAccess)
	if err != nil {
		return nil, apperror.Unauthorized("Given token not valid for any token type")
	}
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Unauthorized("User not found")
		}
		return nil, apperror.Internal("failed to authenticate", err)
	}
	return user, nil
}
