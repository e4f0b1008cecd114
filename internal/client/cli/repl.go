package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Verify(ctx context.Context) error
	Resend(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	BrowseLost(ctx context.Context) error
	BrowseFound(ctx context.Context) error
	Report(ctx context.Context) error
	UpdateStatus(ctx context.Context) error
	ConfirmReceived(ctx context.Context) error
	DeleteReport(ctx context.Context) error
	Chat(ctx context.Context) error
	Feedback(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	ResetPassword(ctx context.Context) error
}

// runREPL starts the read–eval–print loop of the refind CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// The prompt shows the current status (from statusFn). The command set
// depends on whether a session is active:
//
//	Logged out:
//	  - help           — show available commands
//	  - register       — create an account
//	  - verify         — redeem an email verification token
//	  - resend         — re-send the verification mail
//	  - login          — authenticate
//	  - lost | found   — browse public reports
//	  - forgot         — request a password reset code
//	  - reset          — redeem a reset code
//	  - exit | quit    — leave the program
//
//	Logged in, additionally:
//	  - profile        — my reports with reconciled statuses
//	  - edit           — update account fields
//	  - report         — file a lost or found report
//	  - status         — change a report's status
//	  - confirm        — confirm receipt of a returned item
//	  - delete         — remove a report
//	  - chat           — messages on a match
//	  - feedback       — leave or browse feedback
//	  - password       — change the password
//	  - logout         — log out
//
// Errors returned by command handlers are ignored here; handlers print their
// own errors. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("refind> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: profile, edit, lost, found, report, status, confirm, delete, chat, feedback, password, logout, exit")
			} else {
				printlnFn("Available commands: register, verify, resend, login, lost, found, forgot, reset, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "verify":
			_ = a.Verify(ctx)

		case "resend":
			_ = a.Resend(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "p", "profile":
			_ = a.Profile(ctx)

		case "edit":
			_ = a.EditProfile(ctx)

		case "lost":
			_ = a.BrowseLost(ctx)

		case "found":
			_ = a.BrowseFound(ctx)

		case "report":
			_ = a.Report(ctx)

		case "status":
			_ = a.UpdateStatus(ctx)

		case "confirm":
			_ = a.ConfirmReceived(ctx)

		case "delete":
			_ = a.DeleteReport(ctx)

		case "chat":
			_ = a.Chat(ctx)

		case "feedback":
			_ = a.Feedback(ctx)

		case "password":
			_ = a.ChangePassword(ctx)

		case "forgot":
			_ = a.ForgotPassword(ctx)

		case "reset":
			_ = a.ResetPassword(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
