package services

import "github.com/dkolesov/refind/internal/client/models"

// MatchIndex is a precomputed view over the match list. Matches referencing
// items absent from the fetched collections are indexed like any other; they
// simply never get dereferenced.
type MatchIndex struct {
	// ConfirmedFoundIDs holds found-item ids whose linked lost item is
	// inactive, i.e. the owner confirmed receipt.
	ConfirmedFoundIDs map[int64]struct{}

	// ReturnedLostIDs holds lost-item ids linked to a found item marked
	// returned; these carry a pending "confirm received" action.
	ReturnedLostIDs map[int64]struct{}

	// ReturnedFoundByLost maps a lost-item id to the found-item ids linked
	// to it that are marked returned, in match order.
	ReturnedFoundByLost map[int64][]int64
}

// BuildMatchIndex scans matches once and builds the three lookups.
func BuildMatchIndex(matches []models.Match) MatchIndex {
	idx := MatchIndex{
		ConfirmedFoundIDs:   make(map[int64]struct{}),
		ReturnedLostIDs:     make(map[int64]struct{}),
		ReturnedFoundByLost: make(map[int64][]int64),
	}
	for _, m := range matches {
		if m.LostItem == nil || m.FoundItem == nil {
			continue
		}
		if m.FoundItem.Status == models.StatusReturned {
			idx.ReturnedLostIDs[m.LostItem.ID] = struct{}{}
			idx.ReturnedFoundByLost[m.LostItem.ID] = append(idx.ReturnedFoundByLost[m.LostItem.ID], m.FoundItem.ID)
		}
		if m.LostItem.Status == models.StatusInactive {
			idx.ConfirmedFoundIDs[m.FoundItem.ID] = struct{}{}
		}
	}
	return idx
}

// Reconcile computes the user-facing status of every report owned by userID.
//
// A found report whose finder marked it returned stays "pending" until a
// match links it to a lost report the owner has set inactive; only that
// two-sided confirmation shows it as returned. Every other status passes
// through unchanged. The result preserves input order, lost reports first.
//
// Pure function: no I/O, no hidden state, same inputs give the same output.
func Reconcile(userID int64, lost, found []models.ReportItem, matches []models.Match) []models.AnnotatedItem {
	idx := BuildMatchIndex(matches)
	out := make([]models.AnnotatedItem, 0, len(lost)+len(found))

	for _, it := range lost {
		if !it.OwnedBy(userID) {
			continue
		}
		out = append(out, models.AnnotatedItem{ReportItem: it, DisplayStatus: it.Status.Display()})
	}
	for _, it := range found {
		if !it.OwnedBy(userID) {
			continue
		}
		display := it.Status.Display()
		if it.Status == models.StatusReturned {
			if _, confirmed := idx.ConfirmedFoundIDs[it.ID]; !confirmed {
				display = models.DisplayPending
			}
		}
		out = append(out, models.AnnotatedItem{ReportItem: it, DisplayStatus: display})
	}
	return out
}
