package cli

import (
	"context"
	"fmt"

	"github.com/dkolesov/refind/internal/client/client"
	"github.com/dkolesov/refind/internal/common"
)

// ChangePassword rotates the account password. The confirmation is checked
// locally before anything goes over the wire; the backend checks it again.
func (a *App) ChangePassword(ctx context.Context) error {
	if _, err := a.requireUser(); err != nil {
		return err
	}

	oldPw, err := getPassword("Current password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(oldPw)

	newPw, confirm, err := a.newPasswordPair()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPw)
	defer common.WipeByteArray(confirm)

	res, err := a.session.ChangePassword(ctx, string(oldPw), string(newPw), string(confirm))
	if err != nil {
		fmt.Fprintln(a.out, client.Message(err, "Password change failed"))
		return err
	}
	fmt.Fprintln(a.out, res.Status)
	return nil
}

// ForgotPassword starts the reset flow. The backend answers the same way
// whether or not the address exists.
func (a *App) ForgotPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	if err := a.session.RequestPasswordReset(ctx, email); err != nil {
		fmt.Fprintln(a.out, client.Message(err, "Could not request a reset code"))
		return err
	}
	fmt.Fprintln(a.out, "If the email exists, a reset code has been sent.")
	return nil
}

// ResetPassword redeems a reset code for a new password.
func (a *App) ResetPassword(ctx context.Context) error {
	code, err := getSimpleText(a.reader, "Enter reset code", a.out)
	if err != nil {
		return err
	}

	newPw, confirm, err := a.newPasswordPair()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPw)
	defer common.WipeByteArray(confirm)

	res, err := a.session.ResetPassword(ctx, code, string(newPw), string(confirm))
	if err != nil {
		fmt.Fprintln(a.out, client.Message(err, "Password reset failed"))
		return err
	}
	fmt.Fprintln(a.out, res.Status)
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Log in with your new password.")
	}
	return nil
}

func (a *App) newPasswordPair() (newPw, confirm []byte, err error) {
	newPw, err = getPassword("New password", a.out)
	if err != nil {
		return nil, nil, err
	}
	confirm, err = getPassword("Confirm new password", a.out)
	if err != nil {
		common.WipeByteArray(newPw)
		return nil, nil, err
	}
	if string(newPw) != string(confirm) {
		common.WipeByteArray(newPw)
		common.WipeByteArray(confirm)
		err = fmt.Errorf("passwords do not match")
		fmt.Fprintln(a.out, err.Error())
		return nil, nil, err
	}
	return newPw, confirm, nil
}
