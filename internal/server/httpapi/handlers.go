package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/avoronov/factura/internal/common"
	"github.com/avoronov/factura/internal/server/auth"
	"github.com/avoronov/factura/internal/server/models"
)

type loginPayload struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	Username  string      `json:"username"`
	Role      models.Role `json:"role"`
}

type userPayload struct {
	ID       int64       `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

type identityPayload struct {
	UserID    int64       `json:"user_id"`
	Username  string      `json:"username"`
	Role      models.Role `json:"role"`
	ExpiresAt time.Time   `json:"expires_at"`
}

func (s *Server) handleLogin(ctx context.Context, _ *auth.Identity, r *http.Request, _ http.ResponseWriter) (Result, error) {
	res, err := s.account.Login(ctx, r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		return Result{}, err
	}
	return OK(loginPayload{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt.UTC(),
		Username:  res.Username,
		Role:      res.Role,
	}), nil
}

func (s *Server) handleRegister(ctx context.Context, _ *auth.Identity, r *http.Request, _ http.ResponseWriter) (Result, error) {
	user, err := s.account.Register(ctx, r.FormValue("username"), r.FormValue("password"), r.FormValue("role"))
	if err != nil {
		return Result{}, err
	}
	return OK(userPayload{ID: user.ID, Username: user.Username, Role: user.Role}), nil
}

func (s *Server) handleLogout(ctx context.Context, _ *auth.Identity, r *http.Request, _ http.ResponseWriter) (Result, error) {
	if err := s.account.Logout(ctx, r.FormValue(common.TokenFieldName)); err != nil {
		return Result{}, err
	}
	return OK("signed out"), nil
}

func (s *Server) handleMe(_ context.Context, identity *auth.Identity, _ *http.Request, _ http.ResponseWriter) (Result, error) {
	return OK(identityPayload{
		UserID:    identity.UserID,
		Username:  identity.Username,
		Role:      identity.Role,
		ExpiresAt: identity.ExpiresAt.UTC(),
	}), nil
}

func (s *Server) handleChangePassword(ctx context.Context, identity *auth.Identity, r *http.Request, _ http.ResponseWriter) (Result, error) {
	err := s.account.ChangePassword(ctx, identity, r.FormValue("current_password"), r.FormValue("new_password"))
	if err != nil {
		return Result{}, err
	}
	return OK("password changed, please sign in again"), nil
}

// handleDiagExport streams the recorded failures as plain text, one entry
// per line. It writes the response itself, so it reports Handled.
func (s *Server) handleDiagExport(_ context.Context, _ *auth.Identity, _ *http.Request, w http.ResponseWriter) (Result, error) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	for _, e := range s.diag.Snapshot() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Time.UTC().Format(time.RFC3339), e.Severity, e.Message)
	}
	return Handled(), nil
}
