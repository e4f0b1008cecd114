package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dkolesov/refind/internal/client/client"
	"github.com/dkolesov/refind/internal/client/config"
	"github.com/dkolesov/refind/internal/client/models"
	"github.com/dkolesov/refind/internal/client/repositories/metadata"
	"github.com/dkolesov/refind/internal/client/services"
	"github.com/dkolesov/refind/internal/logging"

	_ "modernc.org/sqlite"
)

// sessionService is the slice of the session layer the CLI uses.
// The real *services.SessionService satisfies it; tests can provide a stub.
type sessionService interface {
	Restore(ctx context.Context)
	CurrentUser() *models.User
	IsLoggedIn() bool
	Signup(ctx context.Context, email, password string) (*client.RegisterResult, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	VerifyEmail(ctx context.Context, token string) (*client.VerifyResult, error)
	ResendVerification(ctx context.Context, email string) (*client.RegisterResult, error)
	Logout(ctx context.Context)
	UpdateProfile(ctx context.Context, updates map[string]any) (*models.User, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword, confirmPassword string) (*client.PasswordResult, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, code, newPassword, confirmPassword string) (*client.PasswordResult, error)
}

// profileService is the slice of the profile layer the CLI uses.
type profileService interface {
	Overview(ctx context.Context, userID int64) (*services.Overview, error)
	MarkFoundReturned(ctx context.Context, foundID int64) error
	ConfirmReceived(ctx context.Context, lostID int64, idx services.MatchIndex) error
	UpdateItemStatus(ctx context.Context, kind models.ItemKind, id int64, status models.ItemStatus, feedback string) error
	DeleteItem(ctx context.Context, kind models.ItemKind, id int64) error
}

type App struct {
	config  *config.Config
	api     client.Client
	session sessionService
	profile profileService
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("initializing local database: %w", err)
	}

	api := client.NewRESTClient(cfg.APIBaseURL, cfg.RequestTimeout, cfg.MaxRetries, log)
	meta := metadata.NewSQLiteRepository(db)

	return &App{
		config:  cfg,
		api:     api,
		session: services.NewSessionService(api, meta, log),
		profile: services.NewProfileService(api, log),
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run restores any persisted session and hands control to the REPL.
// Restore comes first: no command may observe the session before it.
func (a *App) Run(ctx context.Context) {
	defer a.api.Close()
	a.session.Restore(ctx)
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.session.IsLoggedIn()
}

// status is what the REPL prompt shows: the account email, or "guest".
func (a *App) status() string {
	if u := a.session.CurrentUser(); u != nil {
		return u.Email
	}
	return "guest"
}
