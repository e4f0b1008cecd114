package cli

import (
	"context"
	"fmt"

	"github.com/dkolesov/refind/internal/client/client"
	"github.com/dkolesov/refind/internal/common"
)

// getSimpleText, getPassword and getInt64 are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getInt64 = GetInt64

// Register prompts for an email and password and creates an account. No
// session is established: the account activates through email verification.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.session.Signup(ctx, email, string(password))
	if err != nil {
		fmt.Fprintln(a.out, client.Message(err, "Registration failed"))
		return err
	}

	fmt.Fprintln(a.out, res.Message)
	if res.EmailSent {
		fmt.Fprintln(a.out, "Check your inbox for the verification link, then run 'verify'.")
	}
	return nil
}

// Verify redeems an email verification token. When the backend answers with
// a session, the user ends up logged in.
func (a *App) Verify(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Enter verification token", a.out)
	if err != nil {
		return err
	}

	res, err := a.session.VerifyEmail(ctx, token)
	if err != nil {
		fmt.Fprintln(a.out, client.Message(err, "Verification failed"))
		return err
	}

	fmt.Fprintln(a.out, res.Message)
	if u := a.session.CurrentUser(); u != nil {
		fmt.Fprintf(a.out, "Logged in as %s\n", u.Email)
	}
	return nil
}

// Resend asks the backend to re-send the verification mail.
func (a *App) Resend(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	res, err := a.session.ResendVerification(ctx, email)
	if err != nil {
		fmt.Fprintln(a.out, client.Message(err, "Could not resend the verification mail"))
		return err
	}

	fmt.Fprintln(a.out, res.Message)
	return nil
}

// Login prompts for credentials and authenticates. On success the session is
// persisted locally and survives restarts.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		fmt.Fprintln(a.out, client.Message(err, "Login failed"))
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", user.Email)
	return nil
}

// Logout tears down the session and its persisted mirror. Always succeeds.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
