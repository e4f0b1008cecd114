package cli

import (
	"context"
	"fmt"

	"github.com/dkolesov/refind/internal/client/client"
	"github.com/dkolesov/refind/internal/client/models"
)

// BrowseLost lists the public lost reports.
func (a *App) BrowseLost(ctx context.Context) error {
	items, err := a.api.LostItems(ctx)
	if err != nil {
		fmt.Fprintln(a.out, client.Message(err, "Could not load lost reports"))
		return err
	}
	a.printItems(items)
	return nil
}

// BrowseFound lists the public found reports.
func (a *App) BrowseFound(ctx context.Context) error {
	items, err := a.api.FoundItems(ctx)
	if err != nil {
		fmt.Fprintln(a.out, client.Message(err, "Could not load found reports"))
		return err
	}
	a.printItems(items)
	return nil
}

func (a *App) printItems(items []models.ReportItem) {
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No reports.")
		return
	}
	for _, it := range items {
		fmt.Fprintf(a.out, "  #%d %s — %s", it.ID, it.ItemName, it.Status)
		if it.Location != "" {
			fmt.Fprintf(a.out, " @ %s", it.Location)
		}
		fmt.Fprintln(a.out)
	}
}

// Report files a new lost or found report.
func (a *App) Report(ctx context.Context) error {
	if _, err := a.requireUser(); err != nil {
		return err
	}

	kind, err := promptKind(a)
	if err != nil {
		return err
	}

	item := &models.ReportItem{Status: models.StatusActive}
	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{"Item name", &item.ItemName},
		{"Description", &item.Description},
		{"Location", &item.Location},
		{"Contact", &item.Contact},
	} {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	date, err := getSimpleText(a.reader, "Date (YYYY-MM-DD)", a.out)
	if err != nil {
		return err
	}

	var created *models.ReportItem
	switch kind {
	case models.KindLost:
		item.DateLost = date
		created, err = a.api.CreateLostItem(ctx, item)
	case models.KindFound:
		item.DateFound = date
		created, err = a.api.CreateFoundItem(ctx, item)
	}
	if err != nil {
		fmt.Fprintln(a.out, client.Message(err, "Could not file the report"))
		return err
	}

	fmt.Fprintf(a.out, "Filed %s report #%d.\n", created.Kind, created.ID)
	return nil
}
