package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dkolesov/refind/internal/client/client"
	"github.com/dkolesov/refind/internal/client/models"
	"github.com/dkolesov/refind/internal/logging"
)

// ProfileService assembles the profile view: the user's own reports with
// their reconciled statuses, plus the actions of the two-step return flow.
type ProfileService struct {
	client client.Client
	log    logging.Logger
}

func NewProfileService(c client.Client, log logging.Logger) *ProfileService {
	return &ProfileService{client: c, log: log}
}

// Overview is a reconciled snapshot of the user's reports and matches.
type Overview struct {
	Items   []models.AnnotatedItem
	Matches []models.Match
	Index   MatchIndex
}

// Overview fetches lost items, found items and matches concurrently, then
// reconciles them for the given user. The three fetches are independent;
// reconciliation waits for all of them.
func (p *ProfileService) Overview(ctx context.Context, userID int64) (*Overview, error) {
	var (
		lost    []models.ReportItem
		found   []models.ReportItem
		matches []models.Match
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lost, err = p.client.LostItems(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		found, err = p.client.FoundItems(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = p.client.Matches(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading profile collections: %w", err)
	}

	return &Overview{
		Items:   Reconcile(userID, lost, found, matches),
		Matches: matches,
		Index:   BuildMatchIndex(matches),
	}, nil
}

// MarkFoundReturned is the finder's half of the return flow: the found
// report moves to returned and shows as pending until the owner confirms.
func (p *ProfileService) MarkFoundReturned(ctx context.Context, foundID int64) error {
	if err := p.client.UpdateFoundItemStatus(ctx, foundID, models.StatusReturned, ""); err != nil {
		return fmt.Errorf("marking found item returned: %w", err)
	}
	return nil
}

// ConfirmReceived is the owner's half: the lost report goes inactive, and
// every returned found report matched to it is inactivated too so it can
// never match again. The follow-up inactivations are best effort.
func (p *ProfileService) ConfirmReceived(ctx context.Context, lostID int64, idx MatchIndex) error {
	if err := p.client.UpdateLostItemStatus(ctx, lostID, models.StatusInactive, ""); err != nil {
		return fmt.Errorf("confirming receipt: %w", err)
	}
	for _, foundID := range idx.ReturnedFoundByLost[lostID] {
		if err := p.client.UpdateFoundItemStatus(ctx, foundID, models.StatusInactive, ""); err != nil {
			p.log.Warn(ctx, "inactivating matched found item", "found_id", foundID, "error", err)
		}
	}
	return nil
}

// UpdateItemStatus changes the raw status of one of the user's reports.
func (p *ProfileService) UpdateItemStatus(ctx context.Context, kind models.ItemKind, id int64, status models.ItemStatus, feedback string) error {
	var err error
	switch kind {
	case models.KindLost:
		err = p.client.UpdateLostItemStatus(ctx, id, status, feedback)
	case models.KindFound:
		err = p.client.UpdateFoundItemStatus(ctx, id, status, feedback)
	default:
		return fmt.Errorf("unknown item kind %q", kind)
	}
	if err != nil {
		return fmt.Errorf("updating %s item %d: %w", kind, id, err)
	}
	return nil
}

// DeleteItem removes one of the user's reports.
func (p *ProfileService) DeleteItem(ctx context.Context, kind models.ItemKind, id int64) error {
	var err error
	switch kind {
	case models.KindLost:
		err = p.client.DeleteLostItem(ctx, id)
	case models.KindFound:
		err = p.client.DeleteFoundItem(ctx, id)
	default:
		return fmt.Errorf("unknown item kind %q", kind)
	}
	if err != nil {
		return fmt.Errorf("deleting %s item %d: %w", kind, id, err)
	}
	return nil
}
