// Package services contains the application services of the refind client:
// the session store, the profile overview, and the status reconciliation.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dkolesov/refind/internal/client/client"
	"github.com/dkolesov/refind/internal/client/models"
	"github.com/dkolesov/refind/internal/client/repositories/metadata"
	"github.com/dkolesov/refind/internal/common"
	"github.com/dkolesov/refind/internal/logging"
)

// SessionService is the single source of truth for "who is logged in". It
// owns the in-memory session, mirrors it into the local metadata store so it
// survives restarts, and keeps the API client's bearer token in step.
//
// The user and token are set and cleared together: every mutation goes
// through commit, which applies the in-memory change and the storage write
// under one lock, so no caller can observe a half-applied session.
//
// Known trade-off: the token is persisted in cleartext in the local database,
// same exposure the web client had with localStorage.
type SessionService struct {
	client client.Client
	meta   metadata.Repository
	log    logging.Logger

	mu    sync.Mutex
	user  *models.User
	token string
}

func NewSessionService(c client.Client, meta metadata.Repository, log logging.Logger) *SessionService {
	return &SessionService{client: c, meta: meta, log: log}
}

// CurrentUser returns a copy of the logged-in user, or nil when logged out.
func (s *SessionService) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsLoggedIn reports whether a session is active.
func (s *SessionService) IsLoggedIn() bool {
	return s.CurrentUser() != nil
}

// commit replaces the session and its persisted mirror as one uninterrupted
// block. A nil user (or empty token) clears both. Storage failures are logged
// and swallowed: the in-memory session stays authoritative for this process.
func (s *SessionService) commit(ctx context.Context, user *models.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user == nil || token == "" {
		s.user, s.token = nil, ""
		s.client.ClearToken()
		if err := s.meta.Delete(ctx, common.UserStorageKey); err != nil {
			s.log.Warn(ctx, "deleting persisted user", "error", err)
		}
		if err := s.meta.Delete(ctx, common.TokenStorageKey); err != nil {
			s.log.Warn(ctx, "deleting persisted token", "error", err)
		}
		return
	}

	s.user, s.token = user, token
	s.client.SetToken(token)

	raw, err := json.Marshal(user)
	if err != nil {
		s.log.Error(ctx, "encoding session user", "error", err)
		return
	}
	if err := s.meta.Set(ctx, common.UserStorageKey, raw); err != nil {
		s.log.Warn(ctx, "persisting user", "error", err)
	}
	if err := s.meta.Set(ctx, common.TokenStorageKey, []byte(token)); err != nil {
		s.log.Warn(ctx, "persisting token", "error", err)
	}
}

// Restore loads a persisted session, if any. It must run before any consumer
// reads CurrentUser. Makes no network call: the token is trusted until the
// backend rejects it. A corrupt user record self-heals by wiping both keys
// and starting logged out; a broken local cache must never block startup.
func (s *SessionService) Restore(ctx context.Context) {
	rawUser, err := s.meta.Get(ctx, common.UserStorageKey)
	if err != nil {
		s.log.Warn(ctx, "reading persisted user", "error", err)
		return
	}
	rawToken, err := s.meta.Get(ctx, common.TokenStorageKey)
	if err != nil {
		s.log.Warn(ctx, "reading persisted token", "error", err)
		return
	}
	if len(rawUser) == 0 || len(rawToken) == 0 {
		return
	}

	var u models.User
	if err := json.Unmarshal(rawUser, &u); err != nil {
		s.log.Warn(ctx, "discarding corrupt persisted session", "error", err)
		if err := s.meta.Delete(ctx, common.UserStorageKey); err != nil {
			s.log.Warn(ctx, "deleting corrupt user", "error", err)
		}
		if err := s.meta.Delete(ctx, common.TokenStorageKey); err != nil {
			s.log.Warn(ctx, "deleting orphaned token", "error", err)
		}
		return
	}

	s.mu.Lock()
	s.user, s.token = &u, string(rawToken)
	s.mu.Unlock()
	s.client.SetToken(string(rawToken))
	s.log.Info(ctx, "session restored", "user_id", u.ID)
}

// Signup registers a new account. It never establishes a session:
// registration completes through the email verification step.
func (s *SessionService) Signup(ctx context.Context, email, password string) (*client.RegisterResult, error) {
	res, err := s.client.Register(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrRegistrationRejected, err)
	}
	return res, nil
}

// Login authenticates against the backend and, on success, establishes and
// persists the session. A success response missing its token or user is
// treated as an authentication failure; the session is never partially set.
func (s *SessionService) Login(ctx context.Context, email, password string) (*models.User, error) {
	res, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrAuthenticationFailed, err)
	}
	if res.Token == "" || res.User == nil {
		return nil, fmt.Errorf("%w: malformed login response", common.ErrAuthenticationFailed)
	}

	user := *res.User
	s.commit(ctx, &user, res.Token)
	s.log.Info(ctx, "logged in", "user_id", user.ID)
	return &user, nil
}

// VerifyEmail completes registration. When the backend returns a token along
// with the verified user, the session is established exactly as with Login.
func (s *SessionService) VerifyEmail(ctx context.Context, token string) (*client.VerifyResult, error) {
	res, err := s.client.VerifyEmail(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrAuthenticationFailed, err)
	}
	if res.Token != "" && res.User != nil {
		user := *res.User
		s.commit(ctx, &user, res.Token)
	}
	return res, nil
}

// ResendVerification asks the backend to re-send the verification mail.
func (s *SessionService) ResendVerification(ctx context.Context, email string) (*client.RegisterResult, error) {
	res, err := s.client.ResendVerification(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("resend verification: %w", err)
	}
	return res, nil
}

// Logout clears the session and its persisted mirror. It never fails:
// storage delete errors are logged, not surfaced.
func (s *SessionService) Logout(ctx context.Context) {
	s.commit(ctx, nil, "")
	s.log.Info(ctx, "logged out")
}

// UpdateProfile patches the account and merges the backend's response into
// the session. Fields the backend does not echo back keep their previous
// values. The token is not rotated by a profile update.
func (s *SessionService) UpdateProfile(ctx context.Context, updates map[string]any) (*models.User, error) {
	s.mu.Lock()
	cur, token := s.user, s.token
	s.mu.Unlock()
	if cur == nil {
		return nil, common.ErrNotAuthenticated
	}

	updated, err := s.client.UpdateUser(ctx, cur.ID, updates)
	if err != nil {
		return nil, fmt.Errorf("profile update: %w", err)
	}

	merged := cur.Merge(*updated)
	s.commit(ctx, &merged, token)
	return &merged, nil
}

// ChangePassword delegates to the backend. When the backend rotates the
// token, the new one replaces the old in memory and in storage before this
// call returns.
func (s *SessionService) ChangePassword(ctx context.Context, oldPassword, newPassword, confirmPassword string) (*client.PasswordResult, error) {
	s.mu.Lock()
	cur := s.user
	s.mu.Unlock()
	if cur == nil {
		return nil, common.ErrNotAuthenticated
	}

	res, err := s.client.ChangePassword(ctx, oldPassword, newPassword, confirmPassword)
	if err != nil {
		return nil, fmt.Errorf("change password: %w", err)
	}
	if res.Token != "" {
		user := *cur
		s.commit(ctx, &user, res.Token)
	}
	return res, nil
}

// RequestPasswordReset starts the forgotten-password flow. The backend
// answers uniformly whether or not the address exists.
func (s *SessionService) RequestPasswordReset(ctx context.Context, email string) error {
	if err := s.client.RequestPasswordReset(ctx, email); err != nil {
		return fmt.Errorf("request password reset: %w", err)
	}
	return nil
}

// ResetPassword redeems a reset code. The rotated token is persisted only
// when a session is already active; a logged-out caller gets it back in the
// result for a follow-up login.
func (s *SessionService) ResetPassword(ctx context.Context, code, newPassword, confirmPassword string) (*client.PasswordResult, error) {
	res, err := s.client.ResetPassword(ctx, code, newPassword, confirmPassword)
	if err != nil {
		return nil, fmt.Errorf("reset password: %w", err)
	}
	if res.Token != "" {
		s.mu.Lock()
		cur := s.user
		s.mu.Unlock()
		if cur != nil {
			user := *cur
			s.commit(ctx, &user, res.Token)
		}
	}
	return res, nil
}
