package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/dkolesov/refind/internal/client/client"
	"github.com/dkolesov/refind/internal/client/models"
	"github.com/dkolesov/refind/internal/logging"
)

func testLogger(t *testing.T) logging.Logger {
	t.Helper()
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type statusCall struct {
	ID       int64
	Status   models.ItemStatus
	Feedback string
}

// fakeClient implements client.Client for service unit tests.
type fakeClient struct {
	Token        string
	TokenCleared bool

	RegisterRes *client.RegisterResult
	RegisterErr error
	LoginRes    *client.LoginResult
	LoginErr    error
	VerifyRes   *client.VerifyResult
	VerifyErr   error
	ResendRes   *client.RegisterResult
	ResendErr   error

	UpdateUserRes *models.User
	UpdateUserErr error
	ChangePwdRes  *client.PasswordResult
	ChangePwdErr  error
	ForgotErr     error
	ResetRes      *client.PasswordResult
	ResetErr      error

	LostRes    []models.ReportItem
	LostErr    error
	FoundRes   []models.ReportItem
	FoundErr   error
	MatchesRes []models.Match
	MatchesErr error

	LostStatusErr  error
	FoundStatusErr error

	LastRegisterEmail string
	LastLoginEmail    string
	LastUpdateUserID  int64
	LastUpdates       map[string]any
	LostStatusCalls   []statusCall
	FoundStatusCalls  []statusCall
	DeletedLost       []int64
	DeletedFound      []int64
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) SetToken(token string) { f.Token = token }

func (f *fakeClient) ClearToken() {
	f.Token = ""
	f.TokenCleared = true
}

func (f *fakeClient) Register(ctx context.Context, email, password string) (*client.RegisterResult, error) {
	f.LastRegisterEmail = email
	return f.RegisterRes, f.RegisterErr
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*client.LoginResult, error) {
	f.LastLoginEmail = email
	return f.LoginRes, f.LoginErr
}

func (f *fakeClient) VerifyEmail(ctx context.Context, token string) (*client.VerifyResult, error) {
	return f.VerifyRes, f.VerifyErr
}

func (f *fakeClient) ResendVerification(ctx context.Context, email string) (*client.RegisterResult, error) {
	return f.ResendRes, f.ResendErr
}

func (f *fakeClient) UpdateUser(ctx context.Context, id int64, updates map[string]any) (*models.User, error) {
	f.LastUpdateUserID = id
	f.LastUpdates = updates
	return f.UpdateUserRes, f.UpdateUserErr
}

func (f *fakeClient) ChangePassword(ctx context.Context, oldPassword, newPassword, confirmPassword string) (*client.PasswordResult, error) {
	return f.ChangePwdRes, f.ChangePwdErr
}

func (f *fakeClient) RequestPasswordReset(ctx context.Context, email string) error {
	return f.ForgotErr
}

func (f *fakeClient) ResetPassword(ctx context.Context, code, newPassword, confirmPassword string) (*client.PasswordResult, error) {
	return f.ResetRes, f.ResetErr
}

func (f *fakeClient) LostItems(ctx context.Context) ([]models.ReportItem, error) {
	return f.LostRes, f.LostErr
}

func (f *fakeClient) FoundItems(ctx context.Context) ([]models.ReportItem, error) {
	return f.FoundRes, f.FoundErr
}

func (f *fakeClient) Matches(ctx context.Context) ([]models.Match, error) {
	return f.MatchesRes, f.MatchesErr
}

func (f *fakeClient) CreateLostItem(ctx context.Context, item *models.ReportItem) (*models.ReportItem, error) {
	return item, nil
}

func (f *fakeClient) CreateFoundItem(ctx context.Context, item *models.ReportItem) (*models.ReportItem, error) {
	return item, nil
}

func (f *fakeClient) DeleteLostItem(ctx context.Context, id int64) error {
	f.DeletedLost = append(f.DeletedLost, id)
	return nil
}

func (f *fakeClient) DeleteFoundItem(ctx context.Context, id int64) error {
	f.DeletedFound = append(f.DeletedFound, id)
	return nil
}

func (f *fakeClient) UpdateLostItemStatus(ctx context.Context, id int64, status models.ItemStatus, feedback string) error {
	f.LostStatusCalls = append(f.LostStatusCalls, statusCall{ID: id, Status: status, Feedback: feedback})
	return f.LostStatusErr
}

func (f *fakeClient) UpdateFoundItemStatus(ctx context.Context, id int64, status models.ItemStatus, feedback string) error {
	f.FoundStatusCalls = append(f.FoundStatusCalls, statusCall{ID: id, Status: status, Feedback: feedback})
	return f.FoundStatusErr
}

func (f *fakeClient) ConfirmLostFound(ctx context.Context, id int64) error { return nil }

func (f *fakeClient) ConfirmFoundReturned(ctx context.Context, id int64) error { return nil }

func (f *fakeClient) ChatMessages(ctx context.Context, matchID int64) ([]models.ChatMessage, error) {
	return nil, nil
}

func (f *fakeClient) SendChatMessage(ctx context.Context, matchID int64, message string) (*models.ChatMessage, error) {
	return &models.ChatMessage{Message: message}, nil
}

func (f *fakeClient) Feedbacks(ctx context.Context) ([]models.Feedback, error) { return nil, nil }

func (f *fakeClient) CreateFeedback(ctx context.Context, fb *models.Feedback) (*models.Feedback, error) {
	return fb, nil
}
