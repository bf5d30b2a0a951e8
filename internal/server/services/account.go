// Package services contains server-side business logic. This file implements
// AccountService, which handles registration, login with opportunistic hash
// upgrades, password changes, and logout.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avoronov/factura/internal/common"
	"github.com/avoronov/factura/internal/dbx"
	"github.com/avoronov/factura/internal/logging"
	"github.com/avoronov/factura/internal/server/apperr"
	"github.com/avoronov/factura/internal/server/auth"
	"github.com/avoronov/factura/internal/server/hashing"
	"github.com/avoronov/factura/internal/server/models"
	"github.com/avoronov/factura/internal/server/repositories/repomanager"
)

const (
	minUsernameLength = 3
	minPasswordLength = 8
)

// msgBadCredentials is deliberately identical for unknown usernames and
// wrong passwords.
const msgBadCredentials = "incorrect username or password"

// LoginResult is what a successful login hands back to the boundary.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Username  string
	Role      models.Role
}

// AccountService provides account-related operations behind the request
// pipeline. It raises apperr values; it never formats responses.
type AccountService struct {
	db         *sql.DB
	repos      repomanager.RepositoryManager
	hasher     hashing.Hasher
	tokens     *auth.TokenManager
	sessionTTL time.Duration
	logger     logging.Logger
}

func NewAccountService(
	db *sql.DB,
	repos repomanager.RepositoryManager,
	hasher hashing.Hasher,
	tokens *auth.TokenManager,
	sessionTTL time.Duration,
	logger logging.Logger,
) *AccountService {
	return &AccountService{
		db:         db,
		repos:      repos,
		hasher:     hasher,
		tokens:     tokens,
		sessionTTL: sessionTTL,
		logger:     logger.With("module", "account_service"),
	}
}

// Register creates a new account. Field violations are accumulated and
// raised together as one validation error.
func (s *AccountService) Register(ctx context.Context, username, password, role string) (*models.User, error) {
	username = strings.TrimSpace(username)

	var msgs []string
	if username == "" {
		msgs = append(msgs, "username is required")
	} else if len(username) < minUsernameLength {
		msgs = append(msgs, fmt.Sprintf("username must be at least %d characters", minUsernameLength))
	}
	if password == "" {
		msgs = append(msgs, "password is required")
	} else if len(password) < minPasswordLength {
		msgs = append(msgs, fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	parsedRole, roleErr := models.ParseRole(role)
	if roleErr != nil {
		msgs = append(msgs, "role must be one of admin, user, visitor")
	}
	if len(msgs) > 0 {
		return nil, apperr.Validation(msgs...)
	}

	repo := s.repos.Users(s.db)
	if _, err := repo.GetByUsername(ctx, username); err == nil {
		return nil, apperr.Business("username is already taken")
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, apperr.Store(err)
	}

	encoded, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user, err := repo.Create(ctx, &models.User{
		Username:     username,
		Role:         parsedRole,
		PasswordHash: encoded,
	})
	if err != nil {
		return nil, apperr.Store(err)
	}
	return user, nil
}

// Login verifies credentials and issues a session token. On success, a
// stored hash with stale parameters is upgraded best-effort: a failed
// upgrade is logged and never fails the login.
func (s *AccountService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperr.Business(msgBadCredentials)
	}

	repo := s.repos.Users(s.db)
	user, err := repo.GetByUsername(ctx, username)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, apperr.Business(msgBadCredentials)
	}
	if err != nil {
		return nil, apperr.Store(err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, apperr.Business(msgBadCredentials)
	}

	if s.hasher.NeedsRehash(user.PasswordHash) {
		s.rehash(ctx, user.ID, password)
	}

	expiresAt := time.Now().Add(s.sessionTTL)
	token, err := s.tokens.CreateToken(ctx, user.ID, expiresAt)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Username:  user.Username,
		Role:      user.Role,
	}, nil
}

// ChangePassword replaces the caller's password and revokes every session
// they own, in one transaction.
func (s *AccountService) ChangePassword(ctx context.Context, identity *auth.Identity, current, next string) error {
	var msgs []string
	if current == "" {
		msgs = append(msgs, "current password is required")
	}
	if next == "" {
		msgs = append(msgs, "new password is required")
	} else if len(next) < minPasswordLength {
		msgs = append(msgs, fmt.Sprintf("new password must be at least %d characters", minPasswordLength))
	}
	if next != "" && next == current {
		msgs = append(msgs, "new password must differ from the current one")
	}
	if len(msgs) > 0 {
		return apperr.Validation(msgs...)
	}

	user, err := s.repos.Users(s.db).GetByID(ctx, identity.UserID)
	if errors.Is(err, common.ErrorNotFound) {
		return apperr.ErrSessionInvalid
	}
	if err != nil {
		return apperr.Store(err)
	}

	if !s.hasher.Verify(current, user.PasswordHash) {
		return apperr.Business("current password is incorrect")
	}

	encoded, err := s.hasher.Hash(next)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.Users(tx).UpdatePasswordHash(ctx, user.ID, encoded); err != nil {
			return err
		}
		return s.repos.Sessions(tx).DeleteByUser(ctx, user.ID)
	})
	if err != nil {
		return apperr.Store(err)
	}
	return nil
}

// Logout revokes the presented session token.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	return s.tokens.RevokeToken(ctx, token)
}

func (s *AccountService) rehash(ctx context.Context, userID int64, password string) {
	encoded, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Warn(ctx, "hash upgrade failed", "user_id", userID, "error", err)
		return
	}
	if err := s.repos.Users(s.db).UpdatePasswordHash(ctx, userID, encoded); err != nil {
		s.logger.Warn(ctx, "hash upgrade failed", "user_id", userID, "error", err)
	}
}
