package cli

import (
	"context"
	"fmt"

	"github.com/dkolesov/refind/internal/client/client"
	"github.com/dkolesov/refind/internal/client/models"
)

// Chat shows the conversation attached to a match and optionally sends a
// message into it.
func (a *App) Chat(ctx context.Context) error {
	if _, err := a.requireUser(); err != nil {
		return err
	}

	matches, err := a.api.Matches(ctx)
	if err != nil {
		fmt.Fprintln(a.out, client.Message(err, "Could not load matches"))
		return err
	}
	if len(matches) == 0 {
		fmt.Fprintln(a.out, "No matches yet.")
		return nil
	}

	for _, m := range matches {
		fmt.Fprintf(a.out, "  match #%d", m.ID)
		if m.LostItem != nil {
			fmt.Fprintf(a.out, " lost:%q", m.LostItem.ItemName)
		}
		if m.FoundItem != nil {
			fmt.Fprintf(a.out, " found:%q", m.FoundItem.ItemName)
		}
		fmt.Fprintf(a.out, " (%s)\n", m.Status)
	}

	matchID, err := getInt64(a.reader, "Match id", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	msgs, err := a.api.ChatMessages(ctx, matchID)
	if err != nil {
		fmt.Fprintln(a.out, client.Message(err, "Could not load messages"))
		return err
	}
	for _, m := range msgs {
		sender := "?"
		if m.Sender != nil {
			sender = m.Sender.Username
		}
		fmt.Fprintf(a.out, "  %s: %s\n", sender, m.Message)
	}

	text, err := getSimpleText(a.reader, "Message (blank to skip)", a.out)
	if err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	if _, err := a.api.SendChatMessage(ctx, matchID, text); err != nil {
		fmt.Fprintln(a.out, client.Message(err, "Could not send the message"))
		return err
	}
	fmt.Fprintln(a.out, "Sent.")
	return nil
}

// Feedback lists public feedback and optionally leaves a new note.
func (a *App) Feedback(ctx context.Context) error {
	if _, err := a.requireUser(); err != nil {
		return err
	}

	fbs, err := a.api.Feedbacks(ctx)
	if err != nil {
		fmt.Fprintln(a.out, client.Message(err, "Could not load feedback"))
		return err
	}
	for _, fb := range fbs {
		fmt.Fprintf(a.out, "  %d/5 %s\n", fb.Rating, fb.Note)
	}

	answer, err := getSimpleText(a.reader, "Leave feedback? (y/N)", a.out)
	if err != nil {
		return err
	}
	if answer != "y" && answer != "yes" {
		return nil
	}

	rating, err := getInt64(a.reader, "Rating (1-5)", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	if rating < 1 || rating > 5 {
		err := fmt.Errorf("rating must be between 1 and 5")
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	note, err := getSimpleText(a.reader, "Note", a.out)
	if err != nil {
		return err
	}

	fb := &models.Feedback{Rating: int(rating), Note: note, IsPublic: true}
	if _, err := a.api.CreateFeedback(ctx, fb); err != nil {
		fmt.Fprintln(a.out, client.Message(err, "Could not save the feedback"))
		return err
	}
	fmt.Fprintln(a.out, "Thanks!")
	return nil
}
