// Package services contains the server-side business logic. This file
// implements AccountService: registration, login with throttling, refresh
// token rotation, and the anti-enumeration password reset.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	cache "github.com/patrickmn/go-cache"
	"golang.org/x/crypto/bcrypt"

	"github.com/dkrasnova/brandkit/internal/common"
	"github.com/dkrasnova/brandkit/internal/dbx"
	"github.com/dkrasnova/brandkit/internal/observe"
	"github.com/dkrasnova/brandkit/internal/server/config"
	"github.com/dkrasnova/brandkit/internal/server/models"
	"github.com/dkrasnova/brandkit/internal/server/repositories/repomanager"
	"github.com/dkrasnova/brandkit/internal/server/token"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const minPasswordLength = 8

// TokenPair is the payload of every successful auth response.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UID          string `json:"uid"`
	Email        string `json:"email"`
}

type AccountService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
	log   observe.Logger

	secret          []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	bcryptCost      int

	// failed-login throttling, keyed by email
	throttle    *cache.Cache
	maxAttempts int
}

func NewAccountService(db *sql.DB, repos repomanager.RepositoryManager, cfg *config.Config, log observe.Logger) *AccountService {
	if log == nil {
		log = observe.NewNop()
	}
	return &AccountService{
		db:              db,
		repos:           repos,
		log:             log,
		secret:          []byte(cfg.SecretKey),
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
		bcryptCost:      cfg.BcryptCost,
		throttle:        cache.New(cfg.LoginWindow, 2*cfg.LoginWindow),
		maxAttempts:     cfg.LoginMaxAttempts,
	}
}

// Register creates the account and its empty profile, then signs the user
// in.
func (s *AccountService) Register(ctx context.Context, email, password string) (*TokenPair, error) {
	if !emailPattern.MatchString(email) {
		return nil, coded(common.CodeInvalidEmail, fmt.Errorf("malformed email"))
	}
	if len(password) < minPasswordLength {
		return nil, coded(common.CodeWeakPassword, fmt.Errorf("password shorter than %d characters", minPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	account, err := s.repos.Accounts(s.db).Create(ctx, &models.Account{Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, coded(common.CodeEmailInUse, err)
		}
		return nil, fmt.Errorf("creating account: %w", err)
	}

	if _, err := s.repos.Profiles(s.db).Create(ctx, &models.Profile{
		UID:      account.ID,
		Email:    account.Email,
		Keywords: []string{},
	}); err != nil {
		return nil, fmt.Errorf("creating profile: %w", err)
	}

	s.log.Info(ctx, "account registered", "uid", account.ID)
	return s.generateTokenPair(ctx, account, s.db)
}

// Login verifies credentials. Failures are counted per email; past the
// limit further attempts are rejected until the throttle window lapses.
func (s *AccountService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	if s.failedAttempts(email) >= s.maxAttempts {
		return nil, coded(common.CodeTooManyRequests, fmt.Errorf("too many failed attempts"))
	}

	account, err := s.repos.Accounts(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.recordFailure(email)
			return nil, coded(common.CodeInvalidCredential, fmt.Errorf("unknown email or wrong password"))
		}
		return nil, fmt.Errorf("looking up account: %w", err)
	}
	if account.Disabled {
		return nil, coded(common.CodeUserDisabled, fmt.Errorf("account disabled"))
	}
	if bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)) != nil {
		s.recordFailure(email)
		return nil, coded(common.CodeInvalidCredential, fmt.Errorf("unknown email or wrong password"))
	}

	s.throttle.Delete(email)
	return s.generateTokenPair(ctx, account, s.db)
}

// Refresh validates a refresh token, rotates it transactionally, and
// returns a fresh pair.
func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	rt, err := s.repos.RefreshTokens(s.db).Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("looking up refresh token: %w", err)
	}
	if rt.Expires.Before(time.Now()) {
		return nil, common.ErrTokenExpired
	}

	account, err := s.repos.Accounts(s.db).GetByID(ctx, rt.UserID)
	if err != nil {
		return nil, fmt.Errorf("looking up account: %w", err)
	}

	var pair *TokenPair
	err = s.inTx(ctx, func(ctx context.Context, q dbx.Querier) error {
		if err := s.repos.RefreshTokens(q).Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, account, q)
		return genErr
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// Logout revokes the refresh token. Unknown tokens succeed; the outcome is
// the same.
func (s *AccountService) Logout(ctx context.Context, refreshToken string) error {
	return s.repos.RefreshTokens(s.db).Delete(ctx, refreshToken)
}

// PasswordReset always succeeds from the caller's point of view, so
// responses don't reveal whether the email is registered.
func (s *AccountService) PasswordReset(ctx context.Context, email string) error {
	if _, err := s.repos.Accounts(s.db).GetByEmail(ctx, email); err != nil {
		s.log.Info(ctx, "password reset for unknown email", "email", email)
		return nil
	}
	// Mail delivery is out of scope; the account exists and would get a link.
	s.log.Info(ctx, "password reset requested", "email", email)
	return nil
}

// ParseAccessToken verifies the bearer credential for the HTTP middleware.
func (s *AccountService) ParseAccessToken(tokenString string) (*token.Claims, error) {
	return token.Parse(tokenString, s.secret)
}

func (s *AccountService) failedAttempts(email string) int {
	if v, ok := s.throttle.Get(email); ok {
		return v.(int)
	}
	return 0
}

func (s *AccountService) recordFailure(email string) {
	if err := s.throttle.Add(email, 1, cache.DefaultExpiration); err != nil {
		if _, incErr := s.throttle.IncrementInt(email, 1); incErr != nil {
			s.throttle.Set(email, 1, cache.DefaultExpiration)
		}
	}
}

// inTx runs fn inside a transaction when a SQL database backs the
// repositories; the in-memory backend runs it directly.
func (s *AccountService) inTx(ctx context.Context, fn func(ctx context.Context, q dbx.Querier) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return dbx.InTx(ctx, s.db, nil, fn)
}

func (s *AccountService) generateTokenPair(ctx context.Context, account *models.Account, q dbx.Querier) (*TokenPair, error) {
	access, err := token.Generate(account.ID, account.Email, s.secret, s.accessTokenTTL)
	if err != nil {
		return nil, common.ErrInternal
	}
	refresh := common.RandHex(32)
	if err := s.repos.RefreshTokens(q).Create(ctx, account.ID, refresh, s.refreshTokenTTL); err != nil {
		return nil, common.ErrInternal
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		UID:          account.ID,
		Email:        account.Email,
	}, nil
}
