// Package client wraps the refind backend REST API. It owns the wire format,
// the auth header, and the error mapping; everything above it works with
// typed results and sentinel errors.
package client

import (
	"context"

	"github.com/dkolesov/refind/internal/client/models"
)

// RegisterResult is the backend's answer to a registration or a
// resend-verification request.
type RegisterResult struct {
	Message   string       `json:"message"`
	EmailSent bool         `json:"email_sent"`
	User      *models.User `json:"user,omitempty"`
}

// LoginResult is the backend's answer to a successful login.
type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// VerifyResult is the backend's answer to an email verification. A token and
// user are present when verification also established a session.
type VerifyResult struct {
	Message string       `json:"message"`
	Token   string       `json:"token,omitempty"`
	User    *models.User `json:"user,omitempty"`
}

// PasswordResult is the backend's answer to a password change or reset.
// Token, when set, is the rotated credential that replaces the old one.
type PasswordResult struct {
	Status string `json:"status"`
	Token  string `json:"token,omitempty"`
}

// Client is the operation surface of the backend API.
//
// The concrete client holds the current bearer token; SetToken/ClearToken are
// called by the session layer when a session is established or torn down.
type Client interface {
	Close() error
	SetToken(token string)
	ClearToken()

	Register(ctx context.Context, email, password string) (*RegisterResult, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	VerifyEmail(ctx context.Context, token string) (*VerifyResult, error)
	ResendVerification(ctx context.Context, email string) (*RegisterResult, error)
	UpdateUser(ctx context.Context, id int64, updates map[string]any) (*models.User, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword, confirmPassword string) (*PasswordResult, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, code, newPassword, confirmPassword string) (*PasswordResult, error)

	LostItems(ctx context.Context) ([]models.ReportItem, error)
	FoundItems(ctx context.Context) ([]models.ReportItem, error)
	Matches(ctx context.Context) ([]models.Match, error)
	CreateLostItem(ctx context.Context, item *models.ReportItem) (*models.ReportItem, error)
	CreateFoundItem(ctx context.Context, item *models.ReportItem) (*models.ReportItem, error)
	DeleteLostItem(ctx context.Context, id int64) error
	DeleteFoundItem(ctx context.Context, id int64) error
	UpdateLostItemStatus(ctx context.Context, id int64, status models.ItemStatus, feedback string) error
	UpdateFoundItemStatus(ctx context.Context, id int64, status models.ItemStatus, feedback string) error
	// ConfirmLostFound and ConfirmFoundReturned cover the backend's dedicated
	// confirmation endpoints. The interactive flows above drive confirmations
	// through the update_status endpoints instead; these exist so the full API
	// surface is callable.
	ConfirmLostFound(ctx context.Context, id int64) error
	ConfirmFoundReturned(ctx context.Context, id int64) error

	ChatMessages(ctx context.Context, matchID int64) ([]models.ChatMessage, error)
	SendChatMessage(ctx context.Context, matchID int64, message string) (*models.ChatMessage, error)
	Feedbacks(ctx context.Context) ([]models.Feedback, error)
	CreateFeedback(ctx context.Context, fb *models.Feedback) (*models.Feedback, error)
}
