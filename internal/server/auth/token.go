package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avoronov/factura/internal/common"
	"github.com/avoronov/factura/internal/server/apperr"
	"github.com/avoronov/factura/internal/server/repositories/sessions"
	"github.com/avoronov/factura/internal/server/repositories/users"
)

// tokenRandBytes sets session token entropy: 32 random bytes, hex encoded.
const tokenRandBytes = 32

// TokenManager issues opaque session tokens and validates presented ones
// against the session store. Tokens carry no structure at all; the user
// binding lives only in the session row.
type TokenManager struct {
	sessions sessions.Repository
	users    users.Repository
}

func NewTokenManager(s sessions.Repository, u users.Repository) *TokenManager {
	return &TokenManager{sessions: s, users: u}
}

// CreateToken mints a high-entropy random token for userID and persists the
// session record. A failed session write is fatal to login and propagates
// as a storage error.
func (m *TokenManager) CreateToken(ctx context.Context, userID int64, expiresAt time.Time) (string, error) {
	token, err := common.MakeRandHexString(tokenRandBytes)
	if err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}
	if err := m.sessions.Create(ctx, userID, token, expiresAt); err != nil {
		return "", apperr.Store(err)
	}
	return token, nil
}

// ValidateToken resolves a presented token to an identity claim. It fails
// closed: an empty token, an unknown token, and an expired session all
// yield apperr.ErrSessionInvalid without distinguishing which. Storage
// outages surface as apperr.ErrStore instead, so the boundary can report
// them as failures rather than expired sessions.
func (m *TokenManager) ValidateToken(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, apperr.ErrSessionInvalid
	}

	sess, err := m.sessions.FindValid(ctx, token, time.Now())
	if errors.Is(err, common.ErrorNotFound) {
		return nil, apperr.ErrSessionInvalid
	}
	if err != nil {
		return nil, apperr.Store(err)
	}

	user, err := m.users.GetByID(ctx, sess.UserID)
	if errors.Is(err, common.ErrorNotFound) {
		// owner deleted since login: the session is as dead as an expired one
		return nil, apperr.ErrSessionInvalid
	}
	if err != nil {
		return nil, apperr.Store(err)
	}

	return &Identity{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		ExpiresAt: sess.ExpiresAt,
	}, nil
}

// RevokeToken deletes the session record, which makes every future
// validation see "no matching record", the same as early expiry.
func (m *TokenManager) RevokeToken(ctx context.Context, token string) error {
	if err := m.sessions.Delete(ctx, token); err != nil {
		return apperr.Store(err)
	}
	return nil
}

// RevokeUserTokens deletes every session owned by userID.
func (m *TokenManager) RevokeUserTokens(ctx context.Context, userID int64) error {
	if err := m.sessions.DeleteByUser(ctx, userID); err != nil {
		return apperr.Store(err)
	}
	return nil
}
