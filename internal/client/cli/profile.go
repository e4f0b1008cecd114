package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/dkolesov/refind/internal/client/client"
	"github.com/dkolesov/refind/internal/client/models"
)

func (a *App) requireUser() (*models.User, error) {
	u := a.session.CurrentUser()
	if u == nil {
		fmt.Fprintln(a.out, "Please log in first.")
		return nil, fmt.Errorf("not logged in")
	}
	return u, nil
}

// Profile lists the user's own reports with their reconciled statuses. Lost
// items awaiting a receipt confirmation are flagged so the user knows the
// 'confirm' command applies to them.
func (a *App) Profile(ctx context.Context) error {
	u, err := a.requireUser()
	if err != nil {
		return err
	}

	ov, err := a.profile.Overview(ctx, u.ID)
	if err != nil {
		fmt.Fprintln(a.out, client.Message(err, "Could not load the profile"))
		return err
	}

	if len(ov.Items) == 0 {
		fmt.Fprintln(a.out, "You have no reports yet. Use 'report' to file one.")
		return nil
	}

	fmt.Fprintf(a.out, "Your reports (%d):\n", len(ov.Items))
	for _, it := range ov.Items {
		fmt.Fprintf(a.out, "  [%s #%d] %s — %s", it.Kind, it.ID, it.ItemName, it.DisplayStatus)
		if _, returned := ov.Index.ReturnedLostIDs[it.ID]; returned && it.Kind == models.KindLost {
			fmt.Fprint(a.out, "  (finder reported a return; run 'confirm' once you have it back)")
		}
		fmt.Fprintln(a.out)
	}
	fmt.Fprintf(a.out, "Matches on file: %d\n", len(ov.Matches))
	return nil
}

// EditProfile patches account fields. Blank answers keep the current value.
func (a *App) EditProfile(ctx context.Context) error {
	u, err := a.requireUser()
	if err != nil {
		return err
	}

	updates := map[string]any{}
	for _, f := range []struct{ key, prompt, current string }{
		{"username", "Username", u.Username},
		{"first_name", "First name", u.FirstName},
		{"last_name", "Last name", u.LastName},
	} {
		v, err := getSimpleText(a.reader, fmt.Sprintf("%s [%s] (blank to keep)", f.prompt, f.current), a.out)
		if err != nil {
			return err
		}
		if v != "" {
			updates[f.key] = v
		}
	}
	if len(updates) == 0 {
		fmt.Fprintln(a.out, "Nothing to change.")
		return nil
	}

	updated, err := a.session.UpdateProfile(ctx, updates)
	if err != nil {
		fmt.Fprintln(a.out, client.Message(err, "Profile update failed"))
		return err
	}
	fmt.Fprintf(a.out, "Saved. Username is now %s.\n", updated.Username)
	return nil
}

// UpdateStatus changes the raw status of one of the user's reports.
func (a *App) UpdateStatus(ctx context.Context) error {
	if _, err := a.requireUser(); err != nil {
		return err
	}

	kind, err := promptKind(a)
	if err != nil {
		return err
	}
	id, err := getInt64(a.reader, "Report id", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	status, err := promptStatus(a)
	if err != nil {
		return err
	}
	feedback, err := getSimpleText(a.reader, "Feedback (optional)", a.out)
	if err != nil {
		return err
	}

	// Marking a found report returned is the finder's half of the return
	// flow; it goes through the dedicated operation.
	if kind == models.KindFound && status == models.StatusReturned && feedback == "" {
		err = a.profile.MarkFoundReturned(ctx, id)
	} else {
		err = a.profile.UpdateItemStatus(ctx, kind, id, status, feedback)
	}
	if err != nil {
		fmt.Fprintln(a.out, client.Message(err, "Status update failed"))
		return err
	}
	fmt.Fprintln(a.out, "Status updated.")
	return nil
}

// ConfirmReceived is the owner's confirmation that a returned item is back in
// their hands. It closes the lost report and the matched found reports.
func (a *App) ConfirmReceived(ctx context.Context) error {
	u, err := a.requireUser()
	if err != nil {
		return err
	}

	ov, err := a.profile.Overview(ctx, u.ID)
	if err != nil {
		fmt.Fprintln(a.out, client.Message(err, "Could not load the profile"))
		return err
	}
	if len(ov.Index.ReturnedLostIDs) == 0 {
		fmt.Fprintln(a.out, "No returns are waiting for your confirmation.")
		return nil
	}

	pending := slices.Sorted(maps.Keys(ov.Index.ReturnedLostIDs))
	fmt.Fprintf(a.out, "Lost reports with a reported return: %v\n", pending)
	lostID, err := getInt64(a.reader, "Lost report id to confirm", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	if err := a.profile.ConfirmReceived(ctx, lostID, ov.Index); err != nil {
		fmt.Fprintln(a.out, client.Message(err, "Confirmation failed"))
		return err
	}
	fmt.Fprintln(a.out, "Confirmed. The report is closed.")
	return nil
}

// DeleteReport removes one of the user's reports.
func (a *App) DeleteReport(ctx context.Context) error {
	if _, err := a.requireUser(); err != nil {
		return err
	}

	kind, err := promptKind(a)
	if err != nil {
		return err
	}
	id, err := getInt64(a.reader, "Report id", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	if err := a.profile.DeleteItem(ctx, kind, id); err != nil {
		fmt.Fprintln(a.out, client.Message(err, "Delete failed"))
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}

func promptKind(a *App) (models.ItemKind, error) {
	s, err := getSimpleText(a.reader, "Kind (lost/found)", a.out)
	if err != nil {
		return "", err
	}
	switch models.ItemKind(s) {
	case models.KindLost, models.KindFound:
		return models.ItemKind(s), nil
	}
	err = fmt.Errorf("unknown kind %q", s)
	fmt.Fprintln(a.out, err.Error())
	return "", err
}

func promptStatus(a *App) (models.ItemStatus, error) {
	s, err := getSimpleText(a.reader, "New status (active/found/returned/inactive)", a.out)
	if err != nil {
		return "", err
	}
	switch models.ItemStatus(s) {
	case models.StatusActive, models.StatusFound, models.StatusReturned, models.StatusInactive:
		return models.ItemStatus(s), nil
	}
	err = fmt.Errorf("unknown status %q", s)
	fmt.Fprintln(a.out, err.Error())
	return "", err
}
