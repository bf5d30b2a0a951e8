package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/avoronov/factura/internal/common"
	"github.com/avoronov/factura/internal/logging"
	"github.com/avoronov/factura/internal/server/apperr"
	"github.com/avoronov/factura/internal/server/auth"
)

// Level is the authorization requirement of an endpoint. Each level is
// checked by its own explicit rule; there is no numeric ordering between
// roles.
type Level int

const (
	// LevelAnonymous skips token handling entirely.
	LevelAnonymous Level = iota
	// LevelValidToken requires a live session, any role.
	LevelValidToken
	// LevelAdminOrUser requires a live session held by an admin or a user.
	LevelAdminOrUser
	// LevelAdminOnly requires a live session held by an admin.
	LevelAdminOnly
)

// Result is what a delegate produces on success. OK carries a payload for
// the standard envelope; Handled means the delegate already wrote the
// response itself (streamed exports) and the pipeline must not touch the
// writer again.
type Result struct {
	handled bool
	payload any
}

// OK wraps payload into the Ok envelope.
func OK(payload any) Result {
	return Result{payload: payload}
}

// Handled marks the response as fully written by the delegate.
func Handled() Result {
	return Result{handled: true}
}

// Delegate is the business part of an endpoint. identity is nil for
// anonymous endpoints. A delegate either returns a Result or an error;
// translating errors into envelopes belongs to the pipeline alone.
type Delegate func(ctx context.Context, identity *auth.Identity, r *http.Request, w http.ResponseWriter) (Result, error)

const (
	msgTokenRequired     = "authorization token is required"
	msgSessionExpired    = "your session has expired, please sign in again"
	msgDeniedAdminOrUser = "this operation requires an administrator or user account"
	msgDeniedAdmin       = "this operation requires an administrator account"
	msgStoreFailure      = "the operation could not be completed, please try again later"
	msgUnexpected        = "an unexpected error occurred"
)

// endpoint wraps a delegate with the full request pipeline: token
// extraction, session validation, the authorization check for level, panic
// recovery, and error-to-envelope translation.
func (s *Server) endpoint(level Level, delegate Delegate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := s.logger.With("request_id", uuid.NewString(), "path", r.URL.Path)

		// One recovery boundary around every pipeline step, token handling
		// included.
		defer func() {
			if p := recover(); p != nil {
				log.Error(ctx, "panic while handling request", "panic", p)
				s.diag.Record("error", "panic while handling request")
				writeEnvelope(w, Envelope{Code: CodeKo, Message: msgUnexpected})
			}
		}()

		var identity *auth.Identity
		if level != LevelAnonymous {
			token := r.FormValue(common.TokenFieldName)
			if token == "" {
				writeEnvelope(w, Envelope{Code: CodeOut, Message: msgTokenRequired})
				return
			}
			id, err := s.tokens.ValidateToken(ctx, token)
			if err != nil {
				if errors.Is(err, apperr.ErrSessionInvalid) {
					writeEnvelope(w, Envelope{Code: CodeOut, Message: msgSessionExpired})
					return
				}
				s.fail(ctx, log, w, err)
				return
			}
			identity = id
			log.Debug(ctx, "session validated", "username", identity.Username, "role", identity.Role)

			switch level {
			case LevelAdminOrUser:
				if !auth.IsAdminOrUser(identity) {
					writeEnvelope(w, Envelope{Code: CodeKo, Message: msgDeniedAdminOrUser})
					return
				}
			case LevelAdminOnly:
				if !auth.IsAdmin(identity) {
					writeEnvelope(w, Envelope{Code: CodeKo, Message: msgDeniedAdmin})
					return
				}
			}
		}

		result, err := delegate(ctx, identity, r, w)
		if err != nil {
			s.fail(ctx, log, w, err)
			return
		}
		if result.handled {
			return
		}
		writeEnvelope(w, Envelope{Code: CodeOk, Message: result.payload})
	}
}

// fail is the single place where delegate and validation errors become
// envelopes. Expected client mistakes produce their own message and are
// not logged; everything that signals a broken backend is logged and
// recorded, and the client sees only a generic text.
func (s *Server) fail(ctx context.Context, log logging.Logger, w http.ResponseWriter, err error) {
	var verr *apperr.ValidationError
	if errors.As(err, &verr) {
		var message any
		if len(verr.Messages) == 1 {
			message = verr.Messages[0]
		} else {
			message = verr.Messages
		}
		writeEnvelope(w, Envelope{Code: CodeKo, Message: message})
		return
	}

	var berr *apperr.BusinessError
	if errors.As(err, &berr) {
		log.Info(ctx, "business rule rejected request", "reason", berr.Message)
		s.diag.Record("info", berr.Message)
		writeEnvelope(w, Envelope{Code: CodeKo, Message: berr.Message})
		return
	}

	if errors.Is(err, apperr.ErrSessionInvalid) {
		writeEnvelope(w, Envelope{Code: CodeOut, Message: msgSessionExpired})
		return
	}

	if errors.Is(err, apperr.ErrStore) {
		log.Error(ctx, "store failure", "error", err)
		s.diag.Record("error", err.Error())
		writeEnvelope(w, Envelope{Code: CodeKo, Message: msgStoreFailure})
		return
	}

	log.Error(ctx, "unexpected failure", "error", err)
	s.diag.Record("error", err.Error())
	writeEnvelope(w, Envelope{Code: CodeKo, Message: msgUnexpected})
}
