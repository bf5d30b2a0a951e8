// Package httpapi exposes the account operations over HTTP. Every endpoint
// goes through the same pipeline: token extraction, session validation, an
// explicit authorization check, then the delegate; results and errors are
// rendered as a uniform JSON envelope.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/avoronov/factura/internal/logging"
	"github.com/avoronov/factura/internal/server/auth"
	"github.com/avoronov/factura/internal/server/diag"
	"github.com/avoronov/factura/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	address string
	logger  logging.Logger
	tokens  *auth.TokenManager
	account *services.AccountService
	diag    *diag.Ring
}

func NewServer(
	address string,
	logger logging.Logger,
	tokens *auth.TokenManager,
	account *services.AccountService,
	ring *diag.Ring,
) *Server {
	return &Server{
		address: address,
		logger:  logger,
		tokens:  tokens,
		account: account,
		diag:    ring,
	}
}

// Handler builds the router. All endpoints accept POST form data.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/login", s.endpoint(LevelAnonymous, s.handleLogin)).Methods(http.MethodPost)
	api.HandleFunc("/register", s.endpoint(LevelAdminOnly, s.handleRegister)).Methods(http.MethodPost)
	api.HandleFunc("/logout", s.endpoint(LevelValidToken, s.handleLogout)).Methods(http.MethodPost)
	api.HandleFunc("/me", s.endpoint(LevelValidToken, s.handleMe)).Methods(http.MethodPost)
	api.HandleFunc("/password", s.endpoint(LevelValidToken, s.handleChangePassword)).Methods(http.MethodPost)
	api.HandleFunc("/diag/export", s.endpoint(LevelAdminOnly, s.handleDiagExport)).Methods(http.MethodPost)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "http server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "starting http server", "address", s.address)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
